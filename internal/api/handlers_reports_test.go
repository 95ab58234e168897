package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/ovira/internal/models"
)

func TestGenerateReportWithoutLogs(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodPost, "/api/reports", bearerFor(t, "user-1"), "")
	expectStatus(t, response, http.StatusUnprocessableEntity)
	if message := readAPIError(t, response.Body); message != "no logs to report" {
		t.Fatalf("expected no logs error, got %q", message)
	}
}

func TestReportLifecycle(t *testing.T) {
	ta := newTestApp(t)
	auth := bearerFor(t, "user-1")
	seedLogs(t, ta, "user-1", 3, models.SymptomLog{
		FlowLevel: models.FlowMedium, PainScale: 4, Mood: models.MoodCalm, EnergyLevel: 6, SleepHours: 7,
	})

	response := ta.do(t, http.MethodPost, "/api/reports", auth, "")
	expectStatus(t, response, http.StatusCreated)
	report := models.HealthReport{}
	decodeJSON(t, response.Body, &report)
	if report.ID == "" || report.UserID != "user-1" {
		t.Fatalf("unexpected report %#v", report)
	}
	if report.CycleData.PeriodDays != 3 || report.Symptoms.AveragePain != 4 {
		t.Fatalf("unexpected report summaries %#v", report)
	}

	response = ta.do(t, http.MethodGet, "/api/reports", auth, "")
	expectStatus(t, response, http.StatusOK)
	reports := []models.HealthReport{}
	decodeJSON(t, response.Body, &reports)
	if len(reports) != 1 || reports[0].ID != report.ID {
		t.Fatalf("expected the generated report in the list, got %#v", reports)
	}

	response = ta.do(t, http.MethodGet, "/api/reports/"+report.ID, auth, "")
	expectStatus(t, response, http.StatusOK)

	response = ta.do(t, http.MethodGet, "/api/reports/"+report.ID, bearerFor(t, "user-2"), "")
	expectStatus(t, response, http.StatusNotFound)

	response = ta.do(t, http.MethodGet, "/api/reports/"+report.ID+"/pdf", auth, "")
	expectStatus(t, response, http.StatusOK)
	assertPDFResponse(t, response, "ovira-health-report-2026-03-10.pdf")

	response = ta.do(t, http.MethodGet, "/api/reports/missing/pdf", auth, "")
	expectStatus(t, response, http.StatusNotFound)
}

func TestGenerateReportAsPDF(t *testing.T) {
	ta := newTestApp(t)
	seedLogs(t, ta, "user-1", 2, models.SymptomLog{
		FlowLevel: models.FlowNone, PainScale: 1, Mood: models.MoodHappy, EnergyLevel: 8, SleepHours: 8,
	})

	response := ta.do(t, http.MethodPost, "/api/reports?format=pdf", bearerFor(t, "user-1"), "")
	expectStatus(t, response, http.StatusOK)
	assertPDFResponse(t, response, "ovira-health-report-2026-03-10.pdf")
}

func assertPDFResponse(t *testing.T, response *http.Response, filename string) {
	t.Helper()

	if contentType := response.Header.Get("Content-Type"); contentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", contentType)
	}
	if disposition := response.Header.Get("Content-Disposition"); !strings.Contains(disposition, filename) {
		t.Fatalf("expected filename %q in %q", filename, disposition)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("expected pdf document, got %q", body[:min(len(body), 16)])
	}
}
