// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; WAFFLE's CoreConfig handles
// framework-level settings like ports, TLS, and logging.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session token configuration
	TokenSecret string        // HMAC secret for signing session tokens (must be strong in production)
	TokenTTL    time.Duration // Token lifetime (default: 1h)
	CookieName  string        // Cookie carrying the token (default: token)
}
