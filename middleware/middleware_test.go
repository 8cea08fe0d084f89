package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"waydown/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signTestToken(t *testing.T, userID string, roles []string, expiry time.Duration) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestValidateJWT(t *testing.T) {
	token := signTestToken(t, "u42", []string{"user"}, time.Hour)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.UserID != "u42" {
		t.Errorf("expected userID u42, got %q", claims.UserID)
	}

	if _, err := ValidateJWT(token); err == nil {
		t.Error("token without Bearer prefix should fail")
	}
	if _, err := ValidateJWT("Bearer not-a-token"); err == nil {
		t.Error("garbage token should fail")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token := signTestToken(t, "u42", []string{"user"}, -time.Minute)
	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Error("expired token should fail")
	}
}

func TestValidateRawToken(t *testing.T) {
	token := signTestToken(t, "u7", nil, time.Hour)

	claims, err := ValidateRawToken(token)
	if err != nil {
		t.Fatalf("expected valid raw token, got %v", err)
	}
	if claims.UserID != "u7" {
		t.Errorf("expected userID u7, got %q", claims.UserID)
	}

	if _, err := ValidateRawToken(""); err == nil {
		t.Error("empty token should fail")
	}
}

func TestAuthenticateSetsContext(t *testing.T) {
	token := signTestToken(t, "u9", []string{"moderator"}, time.Hour)

	var gotUser string
	var gotRoles []string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
	})

	r := httptest.NewRequest("GET", "/api/feed", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "u9" {
		t.Errorf("expected u9 in context, got %q", gotUser)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "moderator" {
		t.Errorf("expected moderator role in context, got %v", gotRoles)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler should not be reached")
	})

	r := httptest.NewRequest("GET", "/api/feed", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("moderator", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	})

	userToken := signTestToken(t, "u1", []string{"user"}, time.Hour)
	r := httptest.NewRequest("GET", "/api/moderation/spots", nil)
	r.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for plain user, got %d", w.Code)
	}

	modToken := signTestToken(t, "u2", []string{"user", "moderator"}, time.Hour)
	r = httptest.NewRequest("GET", "/api/moderation/spots", nil)
	r.Header.Set("Authorization", "Bearer "+modToken)
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for moderator, got %d", w.Code)
	}
}
