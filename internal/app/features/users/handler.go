// Package users exposes the citizen account API: registration, login, and
// self-service edit and delete.
package users

import (
	"go.uber.org/zap"

	reportstore "github.com/civicwatch/civicwatch/internal/app/store/reports"
	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

// Handler owns all user account handlers.
type Handler struct {
	Users   *userstore.Store
	Reports *reportstore.Store
	Tokens  *auth.TokenManager
	Log     *zap.Logger
}

// NewHandler constructs a Handler bound to the given stores and token manager.
func NewHandler(users *userstore.Store, reports *reportstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   users,
		Reports: reports,
		Tokens:  tokens,
		Log:     logger,
	}
}
