package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovira/internal/memstore"
	"github.com/terraincognita07/ovira/internal/render"
	"github.com/terraincognita07/ovira/internal/services"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app   *fiber.App
	store *memstore.Store
}

func newTestApp(t *testing.T, configure ...func(*Dependencies)) testApp {
	t.Helper()

	store := memstore.New()
	profiles := services.NewProfileService(store, store, time.UTC)
	deps := Dependencies{
		Logs:      services.NewSymptomLogService(store, store, time.UTC),
		Dashboard: services.NewDashboardService(store, profiles, time.UTC, 30),
		Reports:   services.NewReportService(store, store, render.NewPDFRenderer(), 30, 30),
		Profiles:  profiles,
		Chat:      services.NewChatService(nil, profiles),
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Now:       func() time.Time { return testNow },
	}
	for _, apply := range configure {
		apply(&deps)
	}

	handler, err := NewHandler(deps)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return testApp{app: app, store: store}
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := IssueToken(testSecretKey, userID, testNow, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func (ta testApp) do(t *testing.T, method string, path string, auth string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(bytes), err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["error"]
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(body))
	}
}
