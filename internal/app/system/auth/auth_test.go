package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

const testSecret = "test-secret-0123456789-0123456789-ok"

func newManager(t *testing.T, ttl time.Duration) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(testSecret, "token", ttl, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := auth.NewTokenManager("", "token", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	tm := newManager(t, time.Hour)

	token, err := tm.Issue("64f0c1", "mario@example.com", "mario", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ID != "64f0c1" {
		t.Errorf("ID: got %q", claims.ID)
	}
	if claims.Email != "mario@example.com" {
		t.Errorf("Email: got %q", claims.Email)
	}
	if claims.Username != "mario" {
		t.Errorf("Username: got %q", claims.Username)
	}
	if claims.Kind != models.KindUser {
		t.Errorf("Kind: got %q", claims.Kind)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	tm := newManager(t, time.Hour)

	token, err := tm.Issue("64f0c1", "a@b.it", "a", models.KindOrg)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Verify(token + "x"); err == nil {
		t.Error("expected error for tampered token")
	}
	if _, err := tm.Verify("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm := newManager(t, time.Hour)
	other, err := auth.NewTokenManager("another-secret-that-is-long-enough-0", "token", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := other.Issue("64f0c1", "a@b.it", "a", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Verify(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := newManager(t, time.Hour)

	// Craft a token that expired a minute ago, signed with the same secret.
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          "64f0c1",
		"email":        "a@b.it",
		"username":     "a",
		"account_kind": "user",
		"iat":          now.Add(-2 * time.Hour).Unix(),
		"exp":          now.Add(-time.Minute).Unix(),
	})
	token, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	tm := newManager(t, time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":          "64f0c1",
		"account_kind": "user",
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	token, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.Verify(token); err == nil {
		t.Error("expected error for alg=none token")
	}
}

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.CurrentClaims(r)
		if !ok {
			t.Error("claims missing from context")
		}
		_ = claims
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingToken(t *testing.T) {
	tm := newManager(t, time.Hour)

	req := httptest.NewRequest("GET", "/api/reports/mine", nil)
	rec := httptest.NewRecorder()
	tm.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["message"] != "No token provided" {
		t.Errorf("message: got %q", body["message"])
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tm := newManager(t, time.Hour)

	req := httptest.NewRequest("GET", "/api/reports/mine", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	tm.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["message"] != "Invalid or expired token" {
		t.Errorf("message: got %q", body["message"])
	}
}

func TestRequireAuthBearerHeader(t *testing.T) {
	tm := newManager(t, time.Hour)
	token, err := tm.Issue("64f0c1", "a@b.it", "a", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/reports/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	tm.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAuthCookie(t *testing.T) {
	tm := newManager(t, time.Hour)
	token, err := tm.Issue("64f0c1", "a@b.it", "a", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/reports/mine", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	tm.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAuthCookieWinsOverHeader(t *testing.T) {
	tm := newManager(t, time.Hour)
	token, err := tm.Issue("64f0c1", "a@b.it", "a", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Valid cookie plus garbage header: the cookie is used, so this passes.
	req := httptest.NewRequest("GET", "/api/reports/mine", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	tm.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireOrg(t *testing.T) {
	tm := newManager(t, time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := tm.RequireAuth(auth.RequireOrg(next))

	userToken, err := tm.Issue("64f0c1", "a@b.it", "a", models.KindUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	orgToken, err := tm.Issue("64f0c2", "o@b.it", "o", models.KindOrg)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user on org route: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/api/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+orgToken)
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("org on org route: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSetCookie(t *testing.T) {
	tm := newManager(t, time.Hour)
	rec := httptest.NewRecorder()
	tm.SetCookie(rec, "tok123")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token" || c.Value != "tok123" {
		t.Errorf("cookie: got %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Error("cookie must be SameSite=Strict")
	}
	if c.MaxAge != 3600 {
		t.Errorf("MaxAge: got %d, want 3600", c.MaxAge)
	}
}
