package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tobuy/internal/core"
	"tobuy/internal/services"
	"tobuy/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	svc := services.NewLedgerService(storage.NewMemoryStore(), nil)
	s := NewServer(":0", svc)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := testServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestCreateItem(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/items", `{"name":"Olive Oil","price":"15.90","quantity":"2","category":"Groceries"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /items = %d, body %s", rec.Code, rec.Body.String())
	}
	it := decode[core.Item](t, rec)
	if it.ID == "" || it.Name != "Olive Oil" || it.Price != 15.90 || it.Quantity != 2 {
		t.Errorf("created item = %+v", it)
	}
}

func TestCreateItemFormEncoded(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader("name=Bread&price=3,20&quantity=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("form POST /items = %d, body %s", rec.Code, rec.Body.String())
	}
	it := decode[core.Item](t, rec)
	if it.Price != 3.20 {
		t.Errorf("Price = %v, want 3.20 (decimal comma accepted)", it.Price)
	}
}

func TestCreateItemValidation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"  ","price":"10"}`},
		{"zero price", `{"name":"Soap","price":"0"}`},
		{"negative price", `{"name":"Soap","price":"-5"}`},
		{"unparsable price", `{"name":"Soap","price":"free"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/items", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestEditToggleDeleteItem(t *testing.T) {
	s := testServer(t)

	created := decode[core.Item](t, doJSON(t, s, http.MethodPost, "/items", `{"name":"Lamp","price":"30"}`))

	rec := doJSON(t, s, http.MethodPut, "/items/"+created.ID, `{"name":"Desk Lamp","price":"35","quantity":"1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT = %d, body %s", rec.Code, rec.Body.String())
	}
	edited := decode[core.Item](t, rec)
	if edited.Name != "Desk Lamp" || edited.Price != 35 || edited.ID != created.ID {
		t.Errorf("edited item = %+v", edited)
	}
	if edited.CreatedAt != created.CreatedAt {
		t.Error("edit changed CreatedAt")
	}

	rec = doJSON(t, s, http.MethodPost, "/items/"+created.ID+"/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d", rec.Code)
	}
	resp := decode[struct {
		Summary core.Summary `json:"summary"`
	}](t, rec)
	if resp.Summary.BoughtCount != 1 || resp.Summary.Spent != 35 {
		t.Errorf("summary after toggle = %+v", resp.Summary)
	}

	rec = doJSON(t, s, http.MethodDelete, "/items/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d", rec.Code)
	}

	// Gone now: every id-addressed operation reports 404.
	if rec := doJSON(t, s, http.MethodPost, "/items/"+created.ID+"/toggle", ""); rec.Code != http.StatusNotFound {
		t.Errorf("toggle after delete = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodDelete, "/items/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("delete after delete = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/items/"+created.ID, `{"name":"X","price":"1"}`); rec.Code != http.StatusNotFound {
		t.Errorf("edit after delete = %d, want 404", rec.Code)
	}
}

func TestListItemsWithFilter(t *testing.T) {
	s := testServer(t)

	a := decode[core.Item](t, doJSON(t, s, http.MethodPost, "/items", `{"name":"Pasta","price":"2","category":"Groceries"}`))
	doJSON(t, s, http.MethodPost, "/items", `{"name":"Lamp","price":"30","category":"Home & Living"}`)
	doJSON(t, s, http.MethodPost, "/items/"+a.ID+"/toggle", "")

	type listResp struct {
		Items  []core.Item `json:"items"`
		Filter string      `json:"filter"`
	}

	all := decode[listResp](t, doJSON(t, s, http.MethodGet, "/items", ""))
	if len(all.Items) != 2 {
		t.Fatalf("all items = %d, want 2", len(all.Items))
	}
	// Newest first.
	if all.Items[0].Name != "Lamp" {
		t.Errorf("first item = %q, want Lamp", all.Items[0].Name)
	}

	pending := decode[listResp](t, doJSON(t, s, http.MethodGet, "/items?filter=Pending", ""))
	if len(pending.Items) != 1 || pending.Items[0].Name != "Lamp" {
		t.Errorf("pending items = %v", pending.Items)
	}

	cat := decode[listResp](t, doJSON(t, s, http.MethodGet, "/items?filter=Groceries", ""))
	if len(cat.Items) != 1 || cat.Items[0].Name != "Pasta" {
		t.Errorf("category items = %v", cat.Items)
	}

	unknown := decode[listResp](t, doJSON(t, s, http.MethodGet, "/items?filter=Nonexistent", ""))
	if len(unknown.Items) != 0 {
		t.Errorf("unknown filter matched %d items", len(unknown.Items))
	}
}

func TestCategories(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/categories", "")
	initial := decode[struct {
		Categories []core.Category `json:"categories"`
	}](t, rec)
	if len(initial.Categories) != len(core.DefaultCategories()) {
		t.Fatalf("got %d categories, want the curated set", len(initial.Categories))
	}

	rec = doJSON(t, s, http.MethodPost, "/categories", `{"name":"Camping"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /categories = %d", rec.Code)
	}
	cat := decode[core.Category](t, rec)
	if cat.Name != "Camping" || cat.Emoji != core.DefaultCategoryEmoji {
		t.Errorf("created category = %+v", cat)
	}

	// Case-insensitive duplicate.
	if rec := doJSON(t, s, http.MethodPost, "/categories", `{"name":"camping"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate category status = %d, want 422", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/categories", `{"name":"  "}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank category status = %d, want 422", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	s := testServer(t)

	a := decode[core.Item](t, doJSON(t, s, http.MethodPost, "/items", `{"name":"Air Fryer","price":"120"}`))
	doJSON(t, s, http.MethodPost, "/items", `{"name":"Headphones","price":"59.99"}`)
	doJSON(t, s, http.MethodPost, "/items/"+a.ID+"/toggle", "")

	resp := decode[summaryResponse](t, doJSON(t, s, http.MethodGet, "/summary", ""))
	if resp.Budget != 179.99 || resp.Spent != 120 {
		t.Errorf("summary = %+v", resp.Summary)
	}
	if resp.BudgetDisplay != "$179.99" {
		t.Errorf("BudgetDisplay = %q", resp.BudgetDisplay)
	}
	if resp.SpentCompact != "$120.00" {
		t.Errorf("SpentCompact = %q", resp.SpentCompact)
	}
}

func TestBreakdownEndpoint(t *testing.T) {
	s := testServer(t)

	doJSON(t, s, http.MethodPost, "/items", `{"name":"Pasta","price":"2","category":"Groceries"}`)
	doJSON(t, s, http.MethodPost, "/items", `{"name":"Lamp","price":"30","category":"Home & Living"}`)

	resp := decode[struct {
		Breakdown []breakdownRow `json:"breakdown"`
	}](t, doJSON(t, s, http.MethodGet, "/breakdown", ""))
	if len(resp.Breakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(resp.Breakdown))
	}
	if resp.Breakdown[0].Name != "Home & Living" {
		t.Errorf("top category = %q, want the larger total first", resp.Breakdown[0].Name)
	}
	if resp.Breakdown[0].TotalDisplay != "$30.00" {
		t.Errorf("TotalDisplay = %q", resp.Breakdown[0].TotalDisplay)
	}
	if resp.Breakdown[0].Emoji == "" {
		t.Error("curated category lost its emoji in the breakdown")
	}
}

func TestSettingsEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPut, "/settings", `{"currency":"JPY","theme":"dark","filter":"Pending"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /settings = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[settingsResponse](t, rec)
	if resp.Currency.Code != core.JPY || resp.Theme != core.ThemeDark || resp.Filter != "Pending" {
		t.Errorf("settings = %+v", resp)
	}

	if rec := doJSON(t, s, http.MethodPut, "/settings", `{"currency":"GBP"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unsupported currency status = %d, want 422", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/settings", `{"theme":"sepia"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unsupported theme status = %d, want 422", rec.Code)
	}

	// Rejected updates must not partially apply.
	after := decode[settingsResponse](t, doJSON(t, s, http.MethodGet, "/settings", ""))
	if after.Currency.Code != core.JPY || after.Theme != core.ThemeDark {
		t.Errorf("settings after rejected updates = %+v", after)
	}
}

func TestWidgetPreviewEndpoint(t *testing.T) {
	s := testServer(t)

	doJSON(t, s, http.MethodPost, "/items", `{"name":"Batteries","price":"4","quantity":"3"}`)
	doJSON(t, s, http.MethodPut, "/settings", `{"currency":"NGN"}`)

	resp := decode[struct {
		Currency string `json:"currency"`
		Lines    []struct {
			Name  string `json:"name"`
			Total string `json:"total"`
		} `json:"lines"`
	}](t, doJSON(t, s, http.MethodGet, "/widget-preview", ""))

	if resp.Currency != "NGN" {
		t.Errorf("Currency = %q", resp.Currency)
	}
	if len(resp.Lines) != 1 || resp.Lines[0].Name != "Batteries (x3)" || resp.Lines[0].Total != "₦12.00" {
		t.Errorf("Lines = %v", resp.Lines)
	}
}

func TestCurrenciesEndpoint(t *testing.T) {
	s := testServer(t)

	resp := decode[struct {
		Currencies []core.Currency `json:"currencies"`
	}](t, doJSON(t, s, http.MethodGet, "/currencies", ""))
	if len(resp.Currencies) != 4 {
		t.Fatalf("got %d currencies, want 4", len(resp.Currencies))
	}
	if resp.Currencies[0].Code != core.USD || resp.Currencies[3].Code != core.JPY {
		t.Errorf("currency order = %v", resp.Currencies)
	}
}
