// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for RiskWatch.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, predict_base_url, etc.
//   - Environment variables: RISKWATCH_MONGO_URI, RISKWATCH_PREDICT_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --predict_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "riskwatch", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "riskwatch-viewer", Desc: "Viewer session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Prediction service
	{Name: "predict_base_url", Default: "http://localhost:8001/api", Desc: "Base URL of the prediction API"},

	// Alert stream
	{Name: "alert_stream_url", Default: "ws://localhost:8001/api/alerts/stream", Desc: "WebSocket URL of the alert push endpoint"},
	{Name: "alert_user_id", Default: "riskwatch", Desc: "User id sent with alert acknowledge/resolve calls"},
	{Name: "reconnect_interval", Default: "5s", Desc: "Delay between alert stream reconnect attempts"},
	{Name: "reconnect_attempts", Default: notify.DefaultMaxAttempts, Desc: "Total alert stream dial attempts before giving up"},

	// Stream tickets
	{Name: "stream_ticket_key", Default: "", Desc: "Stream ticket signing key (blank reuses session_key)"},

	// Alert history retention
	{Name: "alert_retention", Default: "720h", Desc: "How long resolved alerts are kept (default: 30 days)"},
	{Name: "alert_cleanup_interval", Default: "1h", Desc: "How often the alert cleanup worker runs"},

	// Google OAuth configuration for the Classroom integration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Base URL for the OAuth callback
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL of this service"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RISKWATCH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RISKWATCH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		PredictBaseURL: strings.TrimRight(appValues.String("predict_base_url"), "/"),

		AlertStreamURL:    appValues.String("alert_stream_url"),
		AlertUserID:       appValues.String("alert_user_id"),
		ReconnectInterval: appValues.Duration("reconnect_interval", notify.DefaultReconnectInterval),
		ReconnectAttempts: appValues.Int("reconnect_attempts"),

		StreamTicketKey: appValues.String("stream_ticket_key"),

		AlertRetention:       appValues.Duration("alert_retention", 30*24*time.Hour),
		AlertCleanupInterval: appValues.Duration("alert_cleanup_interval", time.Hour),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: strings.TrimRight(appValues.String("base_url"), "/"),
	}

	if appCfg.StreamTicketKey == "" {
		appCfg.StreamTicketKey = appCfg.SessionKey
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// RiskWatch validates the MongoDB URI and the alert stream URL scheme to
// catch configuration errors before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if !strings.HasPrefix(appCfg.AlertStreamURL, "ws://") && !strings.HasPrefix(appCfg.AlertStreamURL, "wss://") {
		return fmt.Errorf("alert_stream_url must be a ws:// or wss:// URL, got %q", appCfg.AlertStreamURL)
	}

	if appCfg.PredictBaseURL == "" {
		return fmt.Errorf("predict_base_url must be set")
	}

	if appCfg.ReconnectInterval <= 0 {
		return fmt.Errorf("reconnect_interval must be positive, got %s", appCfg.ReconnectInterval)
	}
	if appCfg.ReconnectAttempts <= 0 {
		return fmt.Errorf("reconnect_attempts must be positive, got %d", appCfg.ReconnectAttempts)
	}

	return nil
}
