// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthfeature "github.com/civicwatch/civicwatch/internal/app/features/health"
	orgsfeature "github.com/civicwatch/civicwatch/internal/app/features/orgs"
	reportsfeature "github.com/civicwatch/civicwatch/internal/app/features/reports"
	usersfeature "github.com/civicwatch/civicwatch/internal/app/features/users"
	"github.com/civicwatch/civicwatch/internal/app/store/accounts"
	orgstore "github.com/civicwatch/civicwatch/internal/app/store/orgs"
	reportstore "github.com/civicwatch/civicwatch/internal/app/store/reports"
	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CivicWatch builds the token manager and
// stores once here and hands them to the feature routers; nothing below this
// point holds mutable shared state.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.CookieName, appCfg.TokenTTL, secure, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	orgs := orgstore.New(db)
	reports := reportstore.New(db)
	owners := accounts.NewResolver(db)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(users, reports, tokens, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, tokens))

	orgsHandler := orgsfeature.NewHandler(orgs, users, reports, tokens, logger)
	r.Mount("/api/orgs", orgsfeature.Routes(orgsHandler, tokens))

	reportsHandler := reportsfeature.NewHandler(reports, users, orgs, owners, logger)
	r.Mount("/api/reports", reportsfeature.Routes(reportsHandler, tokens))

	return r, nil
}
