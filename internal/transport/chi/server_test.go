package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

func postJSON(t *testing.T, ts string, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func get(t *testing.T, ts string, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func decodeSuggestions(t *testing.T, resp *http.Response) suggestionsResponse {
	t.Helper()
	defer resp.Body.Close()
	var out suggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestCreateSuggestions(t *testing.T) {
	ts := newTestServer(t, testDeps{
		catalog: &mockCatalog{ids: []string{"P1", "P2", "P3"}},
		history: &mockHistory{rows: []domain.PurchaseRow{
			{CustomerID: "C1", RegionCode: "JP-13", ProductID: "P1", Quantity: 1},
			{CustomerID: "C1", RegionCode: "JP-13", ProductID: "P2", Quantity: 2},
		}},
	})

	resp := postJSON(t, ts.URL, "/api/v1/suggestions",
		`{"region_code":"JP-13","cart_lines":[{"product_id":"P1","quantity":1}]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeSuggestions(t, resp)
	if out.Message != "ok" {
		t.Errorf("message = %q, want ok", out.Message)
	}
	if len(out.Suggestions) != 1 || out.Suggestions[0].ProductID != "P2" {
		t.Fatalf("suggestions = %+v, want single P2", out.Suggestions)
	}
	if out.Suggestions[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", out.Suggestions[0].Score)
	}
}

func TestCreateSuggestions_InvalidBody(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := postJSON(t, ts.URL, "/api/v1/suggestions", `{not json`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateSuggestions_CatalogUnavailable(t *testing.T) {
	ts := newTestServer(t, testDeps{
		catalog: &mockCatalog{err: errors.New("connection refused")},
	})

	resp := postJSON(t, ts.URL, "/api/v1/suggestions",
		`{"region_code":"JP-13","cart_lines":[]}`)

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	out := decodeSuggestions(t, resp)
	if out.Message == "" {
		t.Error("expected a descriptive message")
	}
	if out.Suggestions == nil || len(out.Suggestions) != 0 {
		t.Errorf("suggestions = %+v, want empty list", out.Suggestions)
	}
}

func TestCreateSuggestions_HistoryUnavailableDegrades(t *testing.T) {
	ts := newTestServer(t, testDeps{
		catalog: &mockCatalog{ids: []string{"P1", "P2"}},
		history: &mockHistory{err: errors.New("timeout")},
	})

	resp := postJSON(t, ts.URL, "/api/v1/suggestions",
		`{"region_code":"JP-13","cart_lines":[{"product_id":"P1","quantity":1}]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeSuggestions(t, resp)
	if len(out.Suggestions) != 0 {
		t.Errorf("suggestions = %+v, want empty list", out.Suggestions)
	}
}

func TestLegacySuggestions(t *testing.T) {
	ts := newTestServer(t, testDeps{
		catalog: &mockCatalog{ids: []string{"P1", "P2"}},
		history: &mockHistory{rows: []domain.PurchaseRow{
			{CustomerID: "C1", RegionCode: "JP-13", ProductID: "P1", Quantity: 1},
			{CustomerID: "C1", RegionCode: "JP-13", ProductID: "P2", Quantity: 1},
		}},
	})

	q := url.Values{}
	q.Set("province_code", "JP-13")
	q.Set("products", `[{"product_variant_id":"P1","quantity":1}]`)

	resp := get(t, ts.URL, "/suggestions?"+q.Encode())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeSuggestions(t, resp)
	if len(out.Suggestions) != 1 || out.Suggestions[0].ProductID != "P2" {
		t.Fatalf("suggestions = %+v, want single P2", out.Suggestions)
	}
}

func TestLegacySuggestions_MissingProducts(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := get(t, ts.URL, "/suggestions?province_code=JP-13")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLegacySuggestions_MalformedProducts(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	q := url.Values{}
	q.Set("products", `not-json`)

	resp := get(t, ts.URL, "/suggestions?"+q.Encode())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListCustomers(t *testing.T) {
	ts := newTestServer(t, testDeps{
		customers: &mockCustomerRepo{customers: []domain.Customer{
			{ID: "C1", Email: "hana@example.com", FirstName: "Hana", LastName: "Sato", RegionCode: "JP-13"},
			{ID: "C2", Email: "ken@example.com", FirstName: "Ken", LastName: "Tanaka", RegionCode: "JP-27"},
		}},
	})

	resp := get(t, ts.URL, "/api/v1/customers")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out customersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Customers) != 2 {
		t.Fatalf("customers = %+v, want 2", out.Customers)
	}
	if out.Customers[0].Name != "Hana Sato" {
		t.Errorf("name = %q, want %q", out.Customers[0].Name, "Hana Sato")
	}
	if out.Customers[1].RegionCode != "JP-27" {
		t.Errorf("region_code = %q, want JP-27", out.Customers[1].RegionCode)
	}
}

func TestListCustomers_Unavailable(t *testing.T) {
	ts := newTestServer(t, testDeps{
		customers: &mockCustomerRepo{err: errors.New("connection refused")},
	})

	resp := get(t, ts.URL, "/api/v1/customers")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp := get(t, ts.URL, "/health")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("status = %q, want ok", out.Status)
	}
	if out.Checks["database"] != "ok" {
		t.Errorf("checks = %v, want database ok", out.Checks)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	ts := newTestServer(t, testDeps{
		pinger: &mockPinger{err: errors.New("down")},
	})

	resp := get(t, ts.URL, "/health")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
