// Package auth issues and verifies the signed bearer credential used by the
// API, and provides the request middleware that turns a credential into an
// identity claim.
//
// A credential may arrive as the "token" cookie or as an
// "Authorization: Bearer" header; the cookie wins when both are present.
// A missing credential is Unauthorized (401); a present but invalid or
// expired one is Forbidden (403), so clients can tell "not logged in" apart
// from "bad token".
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Claims is the identity asserted by a verified token.
type Claims struct {
	ID       string
	Email    string
	Username string
	Kind     models.AccountKind
}

// tokenClaims is the JWT payload. Subject carries the account ID.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email    string             `json:"email"`
	Username string             `json:"username"`
	Kind     models.AccountKind `json:"account_kind"`
}

type ctxKey string

const claimsKey ctxKey = "authClaims"

// TokenManager signs and verifies session tokens. It is constructed once at
// startup from config; there is no ambient signing state.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	log        *zap.Logger
}

// NewTokenManager builds a TokenManager. The secret must be non-empty; short
// secrets are accepted with a warning so local development stays easy.
func NewTokenManager(secret, cookieName string, ttl time.Duration, secure bool, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cookieName == "" {
		cookieName = "token"
	}
	return &TokenManager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
		log:        logger,
	}, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration { return tm.ttl }

// Issue signs a time-limited token embedding the account identity.
func (tm *TokenManager) Issue(id, email, username string, kind models.AccountKind) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
		Email:    email,
		Username: username,
		Kind:     kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses a token string and returns the embedded claims. Tampered,
// wrongly signed, and expired tokens all fail.
func (tm *TokenManager) Verify(tokenString string) (Claims, error) {
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid || !tc.Kind.IsValid() {
		return Claims{}, fmt.Errorf("invalid token claims")
	}
	return Claims{
		ID:       tc.Subject,
		Email:    tc.Email,
		Username: tc.Username,
		Kind:     tc.Kind,
	}, nil
}

// SetCookie attaches the token as an HTTP-only, same-site-strict cookie with
// the same lifetime as the token itself.
func (tm *TokenManager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tm.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   tm.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// credential extracts the raw token from the request: cookie first, then the
// Authorization header.
func (tm *TokenManager) credential(r *http.Request) string {
	if c, err := r.Cookie(tm.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a verifiable credential and attaches
// the decoded claims to the request context.
func (tm *TokenManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tm.credential(r)
		if raw == "" {
			httpjson.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}
		claims, err := tm.Verify(raw)
		if err != nil {
			httpjson.Error(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, withClaims(r, claims))
	})
}

// RequireOrg gates organization-moderation endpoints. It must run after
// RequireAuth.
func RequireOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r)
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}
		if claims.Kind != models.KindOrg {
			httpjson.Error(w, http.StatusForbidden, "Access denied: organization only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentClaims returns the identity claims attached by RequireAuth.
func CurrentClaims(r *http.Request) (Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(Claims)
	return c, ok
}

// WithTestClaims injects claims directly into a request context, bypassing
// token verification. Intended for handler tests.
func WithTestClaims(r *http.Request, claims Claims) *http.Request {
	return withClaims(r, claims)
}

func withClaims(r *http.Request, claims Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}
