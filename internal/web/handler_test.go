package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestServer() *Server {
	return New(Config{
		DefaultState: "New Jersey",
		Income:       IncomeDefaults{SavingsRate: 0.15, TaxRate: 0.22, Buffer: 0.05},
		Info:         refdata.Info{Source: rpp.SourceBuiltin},
		Logger:       zerolog.Nop(),
	}, nil)
}

func do(t *testing.T, s *Server, method, target, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestEstimateAPI(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/estimate", `{"state":"CA","basket":"2000"}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got report.Estimate
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Monthly.Equal(decimal.NewFromInt(2252)) {
		t.Errorf("monthly_total = %s, want 2252", got.Monthly)
	}
	if got.State.Code != "CA" {
		t.Errorf("state = %+v, want CA", got.State)
	}
	if got.Source != string(rpp.SourceBuiltin) {
		t.Errorf("rpp_source = %q", got.Source)
	}
}

func TestEstimateAPI_DefaultsStateAndBasket(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/estimate", `{}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got report.Estimate
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.State.Code != "NJ" {
		t.Errorf("default state = %s, want NJ", got.State.Code)
	}
}

func TestEstimateAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"unknown state", `{"state":"Narnia","basket":1000}`, http.StatusUnprocessableEntity, report.KindInvalidState},
		{"bad basket", `{"state":"TX","basket":-1}`, http.StatusUnprocessableEntity, report.KindInvalidInput},
		{"overflowing basket", `{"state":"CA","basket":1e308,"selections":{"housing":"3br+"}}`, http.StatusUnprocessableEntity, report.KindInvalidInput},
		{"bad tier", `{"state":"TX","basket":1000,"selections":{"dining":"always"}}`, http.StatusUnprocessableEntity, report.KindUnknownChoice},
		{"malformed", `{"state":`, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"stat":"TX"}`, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/v1/estimate", tt.body, "application/json")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var e report.Error
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatal(err)
			}
			if e.Kind != tt.kind || e.Message == "" {
				t.Errorf("error body = %+v, want kind %s", e, tt.kind)
			}
		})
	}
}

func TestHouseholdAPI_WithIncome(t *testing.T) {
	body := `{"state":"MS","adults":2,"kids":1,"cars":1,"travel":"occasional","income":{"tax_rate":0.3}}`
	rec := do(t, newTestServer(), http.MethodPost, "/v1/household", body, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got report.Household
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Lines) != 9 {
		t.Errorf("got %d lines, want 9", len(got.Lines))
	}
	if got.Income == nil {
		t.Fatal("income missing")
	}
	if !got.Income.TaxRate.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("tax_rate = %s, want 0.3", got.Income.TaxRate)
	}
	if !got.Income.SavingsRate.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("savings_rate = %s, want default 0.15", got.Income.SavingsRate)
	}
}

func TestHouseholdAPI_InvalidInput(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/household", `{"state":"TX","adults":0}`, "application/json")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestStatesAPI(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/v1/states", "", "")
	var got []report.State
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 51 {
		t.Errorf("got %d states, want 51", len(got))
	}
}

func TestStatusCountsRequests(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodGet, "/healthz", "", "")
	do(t, s, http.MethodGet, "/healthz", "", "")

	rec := do(t, s, http.MethodGet, "/v1/status", "", "")
	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	// The status request itself is counted after its handler runs.
	if st.Requests != 2 {
		t.Errorf("requests = %d, want 2", st.Requests)
	}
	if st.States != 51 || st.RPPSource != "builtin" {
		t.Errorf("status = %+v", st)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated id %q is not a UUID", rec.Header().Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "<script>" {
		t.Error("invalid incoming request id was echoed")
	}
}

func TestFormPage(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`<form method="post" action="/estimate">`, `value="New Jersey"`, `name="housing"`, `<option value="Wyoming">`} {
		if !strings.Contains(body, want) {
			t.Errorf("form page missing %q", want)
		}
	}
}

func TestEstimatePage(t *testing.T) {
	form := url.Values{"state": {"Ohio"}, "adults": {"2"}, "kids": {"1"}, "travel": {"none"}, "dining": {"high"}}
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", form.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Cost of living in Ohio", "Household budget", "Childcare", "Recommended income", "dining (high)"} {
		if !strings.Contains(body, want) {
			t.Errorf("result page missing %q", want)
		}
	}
}

func TestEstimatePage_Rerenders(t *testing.T) {
	form := url.Values{"state": {"<b>Narnia</b>"}, "adults": {"3"}}
	rec := do(t, newTestServer(), http.MethodPost, "/estimate", form.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `class="error"`) {
		t.Error("error message not rendered")
	}
	if strings.Contains(body, "<b>Narnia</b>") {
		t.Error("state value not escaped")
	}
	if !strings.Contains(body, `name="adults" value="3"`) {
		t.Error("household choices not kept")
	}

	form = url.Values{"state": {"Ohio"}, "kids": {"two"}}
	rec = do(t, newTestServer(), http.MethodPost, "/estimate", form.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("non-numeric kids: status = %d, want 422", rec.Code)
	}
}
