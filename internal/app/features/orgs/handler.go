// Package orgs exposes the organization account API: registration, login,
// self-service edit and delete, and the moderation surface over user accounts
// and reports.
package orgs

import (
	"go.uber.org/zap"

	orgstore "github.com/civicwatch/civicwatch/internal/app/store/orgs"
	reportstore "github.com/civicwatch/civicwatch/internal/app/store/reports"
	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

// Handler owns all organization handlers.
type Handler struct {
	Orgs    *orgstore.Store
	Users   *userstore.Store
	Reports *reportstore.Store
	Tokens  *auth.TokenManager
	Log     *zap.Logger
}

// NewHandler constructs a Handler bound to the given stores and token manager.
func NewHandler(orgs *orgstore.Store, users *userstore.Store, reports *reportstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:    orgs,
		Users:   users,
		Reports: reports,
		Tokens:  tokens,
		Log:     logger,
	}
}
