// Package reports exposes the issue-report API: creation, public read views
// with owner annotation, and owner-or-organization edit and delete.
package reports

import (
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/store/accounts"
	orgstore "github.com/civicwatch/civicwatch/internal/app/store/orgs"
	reportstore "github.com/civicwatch/civicwatch/internal/app/store/reports"
	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
)

// Handler owns all report handlers.
type Handler struct {
	Reports *reportstore.Store
	Users   *userstore.Store
	Orgs    *orgstore.Store
	Owners  *accounts.Resolver
	Log     *zap.Logger
}

// NewHandler constructs a Handler bound to the given stores and resolver.
func NewHandler(reports *reportstore.Store, users *userstore.Store, orgs *orgstore.Store, owners *accounts.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		Reports: reports,
		Users:   users,
		Orgs:    orgs,
		Owners:  owners,
		Log:     logger,
	}
}
