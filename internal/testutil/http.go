package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsUser attaches user identity claims to the request, bypassing token
// verification the way the auth middleware would have.
func AsUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestClaims(r, auth.Claims{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		Username: u.Username,
		Kind:     models.KindUser,
	})
}

// AsOrg attaches organization identity claims to the request.
func AsOrg(r *http.Request, org models.Organization) *http.Request {
	return auth.WithTestClaims(r, auth.Claims{
		ID:       org.ID.Hex(),
		Email:    org.Email,
		Username: org.Username,
		Kind:     models.KindOrg,
	})
}

// AsClaims attaches arbitrary claims; useful for stale-token scenarios where
// the claimed account no longer exists.
func AsClaims(r *http.Request, id primitive.ObjectID, kind models.AccountKind) *http.Request {
	return auth.WithTestClaims(r, auth.Claims{ID: id.Hex(), Kind: kind})
}
