package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func forgedToken(t *testing.T) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": "user_test123",
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("not-the-clerk-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestClerkAuthMiddlewareRejects(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without valid auth")
	})
	protected := ClerkAuthMiddleware(next)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc123"},
		{"forged token", "Bearer " + forgedToken(t)},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/habits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Errorf("error body is not valid JSON: %v", err)
			}
		})
	}
}

// Verification failure messages can contain quotes; the envelope must
// still be valid JSON.
func TestRespondWithErrorEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	message := `token "abc" rejected: unexpected "kid"`

	respondWithError(rec, http.StatusUnauthorized, message)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
	if body["error"] != message {
		t.Errorf("error = %q, want %q", body["error"], message)
	}
}

func TestGetClerkIDMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := GetClerkID(req.Context()); ok {
		t.Error("GetClerkID on a bare context should report absent")
	}
}
