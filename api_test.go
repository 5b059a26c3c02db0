package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/party-summaries/:id", getPartySummaryHandler())
	r.GET("/api/party-summaries/summary", partySummaryChartHandler())
	r.GET("/api/party-summaries/status", partySummaryStatusHandler())
	r.POST("/api/parties", createPartyDetailsHandler())
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	fields := map[string]json.RawMessage{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
			t.Fatalf("response is not a JSON object: %v\n%s", err, w.Body.String())
		}
	}
	return w, fields
}

func TestChartHandlerIgnoresRangeEnd(t *testing.T) {
	r := newTestRouter()

	// The counter takes only tab+date; a stray range_end must not move it.
	w, fields := doRequest(t, r, http.MethodGet,
		"/api/party-summaries/summary?tab=TALLY&date=2025-01-01&range_end=2020-01-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var reference string
	if err := json.Unmarshal(fields["reference_date"], &reference); err != nil {
		t.Fatal(err)
	}
	if reference != "2025-01-01" {
		t.Errorf("reference_date = %q, want the selected date 2025-01-01", reference)
	}

	var counts []models.ChartCount
	if err := json.Unmarshal(fields["counts"], &counts); err != nil {
		t.Fatal(err)
	}
	if len(counts) != 3 || counts[1].Value+counts[2].Value != counts[0].Value {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestStatusHandlerHonorsRangeEnd(t *testing.T) {
	r := newTestRouter()

	w, fields := doRequest(t, r, http.MethodGet,
		"/api/party-summaries/status?tab=ERP&date=2025-01-01&range_end=2024-06-15&mode=DONE", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var reference string
	if err := json.Unmarshal(fields["reference_date"], &reference); err != nil {
		t.Fatal(err)
	}
	if reference != "2024-06-15" {
		t.Errorf("reference_date = %q, want the range end 2024-06-15", reference)
	}
}

func TestGetPartySummaryHandler(t *testing.T) {
	r := newTestRouter()

	summaries := models.ListPartySummaries(context.Background())
	if len(summaries) == 0 {
		t.Fatal("expected seeded summaries")
	}

	w, fields := doRequest(t, r, http.MethodGet, "/api/party-summaries/"+summaries[0].ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var name string
	if err := json.Unmarshal(fields["party_name"], &name); err != nil {
		t.Fatal(err)
	}
	if name != summaries[0].PartyName {
		t.Errorf("party_name = %q, want %q", name, summaries[0].PartyName)
	}

	w, _ = doRequest(t, r, http.MethodGet, "/api/party-summaries/no-such-id", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestCreatePartyDetailsValidation(t *testing.T) {
	r := newTestRouter()

	w, fields := doRequest(t, r, http.MethodPost, "/api/parties",
		`{"party_name":"Bad Email Ltd","email":"not-an-address"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var shaped map[string]string
	if err := json.Unmarshal(fields["errors"], &shaped); err != nil {
		t.Fatalf("expected field-level errors, got %s", w.Body.String())
	}
	if shaped["Email"] != "email" {
		t.Errorf("shaped errors = %v", shaped)
	}
}
