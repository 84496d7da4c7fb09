package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldItemID        = "item_id"
	FieldItemName      = "item_name"
	FieldPrice         = "price"
	FieldQuantity      = "quantity"
	FieldCategory      = "category"
	FieldBought        = "bought"
	FieldFilter        = "filter"
	FieldCurrency      = "currency"
	FieldTheme         = "theme"
	FieldRevision      = "revision"
	FieldItemCount     = "item_count"
	FieldSpreadsheetID = "spreadsheet_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWidget  = "widget"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpEdit     = "edit"
	OpToggle   = "toggle"
	OpDelete   = "delete"
	OpList     = "list"
	OpPersist  = "persist"
	OpHydrate  = "hydrate"
	OpRender   = "render"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
