package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHealthzIsPublic(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodGet, "/healthz", "", "")
	expectStatus(t, response, http.StatusOK)
}

func TestAPIRejectsMissingOrInvalidTokens(t *testing.T) {
	ta := newTestApp(t)

	expired, err := IssueToken(testSecretKey, "user-1", testNow.Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	foreign, err := IssueToken("another-secret-key-with-32-characters!", "user-1", testNow, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, authClaims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := []struct {
		name string
		auth string
	}{
		{name: "missing header", auth: ""},
		{name: "wrong scheme", auth: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer", auth: "Bearer "},
		{name: "garbage", auth: "Bearer not-a-token"},
		{name: "expired", auth: "Bearer " + expired},
		{name: "foreign secret", auth: "Bearer " + foreign},
		{name: "none algorithm", auth: "Bearer " + unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := ta.do(t, http.MethodGet, "/api/dashboard", tt.auth, "")
			expectStatus(t, response, http.StatusUnauthorized)
			if message := readAPIError(t, response.Body); message != "unauthorized" {
				t.Fatalf("expected unauthorized error, got %q", message)
			}
		})
	}
}

func TestIssueTokenValidation(t *testing.T) {
	if _, err := IssueToken(testSecretKey, " ", testNow, time.Hour); err == nil {
		t.Fatal("expected error for blank user id")
	}
	if _, err := IssueToken("", "user-1", testNow, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := IssueToken(testSecretKey, "user-1", testNow, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestNewHandlerRequiresSecretAndServices(t *testing.T) {
	if _, err := NewHandler(Dependencies{}); err == nil {
		t.Fatal("expected error without secret key")
	}
	if _, err := NewHandler(Dependencies{SecretKey: testSecretKey}); err == nil {
		t.Fatal("expected error without services")
	}
}
