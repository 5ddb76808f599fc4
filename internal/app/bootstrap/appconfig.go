// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level, CORS); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Viewer session configuration. The dashboard has no accounts; the
	// session cookie only pins an anonymous viewer id.
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for the viewer session
	SessionDomain string // Cookie domain (blank means current host)

	// Prediction service configuration
	PredictBaseURL string // Base URL of the prediction API (e.g., http://localhost:8001/api)

	// Alert stream configuration
	AlertStreamURL    string        // WebSocket URL of the upstream alert push endpoint
	AlertUserID       string        // User id sent with acknowledge/resolve calls
	ReconnectInterval time.Duration // Fixed delay between reconnect attempts
	ReconnectAttempts int           // Total dial attempts before giving up

	// Stream ticket signing key; falls back to SessionKey when blank.
	StreamTicketKey string

	// Alert history retention
	AlertRetention       time.Duration // How long resolved alerts are kept
	AlertCleanupInterval time.Duration // How often the cleanup worker runs

	// Google OAuth configuration for the Classroom integration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL of this service, used for the OAuth callback.
	BaseURL string // e.g., "https://riskwatch.example.com" or "http://localhost:8080"
}
