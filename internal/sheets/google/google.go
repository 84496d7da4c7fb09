package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tobuy/internal/cache"
	"tobuy/internal/core"
	ports "tobuy/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// itemsCacheKey is the single cache entry; the whole sheet is read at once.
const itemsCacheKey = "items"

var headerRow = []any{"ID", "Name", "Price", "Quantity", "Category", "Bought", "Created At"}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	items         *cache.LRUCache[[]core.Item]
}

// Ensure interface conformance
var (
	_ ports.ListReplacer = (*Client)(nil)
	_ ports.ListReader   = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SHEET_NAME (default "Shopping List").
// Auth via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Shopping List"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		items:         cache.NewLRUCache[[]core.Item](1, 30*time.Second),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// ReplaceItems mirrors the full list into the sheet: header row, one row
// per item, everything below the new data cleared.
func (c *Client) ReplaceItems(ctx context.Context, items []core.Item) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:G", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	values := make([][]any, 0, len(items)+1)
	values = append(values, headerRow)
	for _, it := range items {
		values = append(values, itemRow(it))
	}

	writeRange := fmt.Sprintf("%s!A1:G%d", c.sheetName, len(values))
	vr := &gsheet.ValueRange{Values: values}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s: %w", writeRange, err)
	}

	c.items.Set(itemsCacheKey, append([]core.Item(nil), items...))
	return nil
}

// ReadItems returns the list currently mirrored in the sheet. Reads are
// cached briefly to keep the worker's reconcile loop off the API quota.
func (c *Client) ReadItems(ctx context.Context) ([]core.Item, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	if cached, ok := c.items.Get(itemsCacheKey); ok {
		return append([]core.Item(nil), cached...), nil
	}

	rng := fmt.Sprintf("%s!A2:G", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	items := make([]core.Item, 0, len(resp.Values))
	for _, row := range resp.Values {
		it, ok := parseItemRow(toStrings(row))
		if !ok {
			continue
		}
		items = append(items, it)
	}

	c.items.Set(itemsCacheKey, append([]core.Item(nil), items...))
	return items, nil
}

// Cleaner exposes the read cache for periodic expiry sweeps.
func (c *Client) Cleaner() cache.Cleaner {
	return c.items
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
