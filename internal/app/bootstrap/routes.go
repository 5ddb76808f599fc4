// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	alertsfeature "github.com/dalemusser/riskwatch/internal/app/features/alerts"
	analyzefeature "github.com/dalemusser/riskwatch/internal/app/features/analyze"
	dashboardfeature "github.com/dalemusser/riskwatch/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/riskwatch/internal/app/features/errors"
	healthfeature "github.com/dalemusser/riskwatch/internal/app/features/health"
	integrationsfeature "github.com/dalemusser/riskwatch/internal/app/features/integrations"
	interventionsfeature "github.com/dalemusser/riskwatch/internal/app/features/interventions"
	settingsfeature "github.com/dalemusser/riskwatch/internal/app/features/settings"
	studentsfeature "github.com/dalemusser/riskwatch/internal/app/features/students"
	integrationstore "github.com/dalemusser/riskwatch/internal/app/store/integrations"
	interventionstore "github.com/dalemusser/riskwatch/internal/app/store/interventions"
	notifysettingsstore "github.com/dalemusser/riskwatch/internal/app/store/notifysettings"
	"github.com/dalemusser/riskwatch/internal/app/store/oauthstate"
	"github.com/dalemusser/riskwatch/internal/app/system/ratelimit"
	"github.com/dalemusser/riskwatch/internal/app/system/streamauth"
	"github.com/dalemusser/riskwatch/internal/app/system/viewer"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// RiskWatch applies the viewer session middleware, then mounts the JSON API:
// health, roster analysis, students and interventions, alerts, notification
// settings, integrations, and the dashboard snapshot.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := viewer.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	db := deps.RiskWatchMongoDatabase

	r := chi.NewRouter()

	// Every request gets a viewer id, minted on first visit. Per-viewer data
	// (settings, interventions, integrations) is scoped by it.
	r.Use(sessionMgr.EnsureViewer)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.RiskWatchMongoClient, runtime.Channel, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Roster upload and analysis. Uploads fan out to the prediction service,
	// so they get a per-IP rate limit.
	uploadLimiter := ratelimit.New(30, time.Minute)
	analyzeHandler := analyzefeature.NewHandler(runtime.State, runtime.Predict, errLog, logger)
	r.Route("/analyze", func(r chi.Router) {
		r.Use(ratelimit.Middleware(uploadLimiter))
		analyzeHandler.MountRoutes(r)
	})

	// Student roster and selection
	studentsHandler := studentsfeature.NewHandler(runtime.State, errLog, logger)
	r.Route("/students", studentsHandler.MountRoutes)

	// Interventions live under a student
	interventionsHandler := interventionsfeature.NewHandler(interventionstore.New(db), errLog, logger)
	r.Route("/students/{studentID}/interventions", interventionsHandler.MountRoutes)

	// Alerts: REST surface plus the browser WebSocket stream
	tickets := streamauth.New([]byte(appCfg.StreamTicketKey))
	alertsHandler := alertsfeature.NewHandler(runtime.Channel, runtime.Hub, tickets, errLog, logger)
	r.Route("/alerts", alertsHandler.MountRoutes)

	// Notification settings; saves feed the channel's delivery gating
	settingsHandler := settingsfeature.NewHandler(notifysettingsstore.New(db), errLog, logger)
	settingsHandler.OnSave = runtime.storeSettings
	r.Route("/settings", settingsHandler.MountRoutes)

	// LMS integrations, including the Google OAuth connect flow
	integrationsHandler := integrationsfeature.NewHandler(
		integrationstore.New(db), oauthstate.New(db), runtime.State,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		errLog, logger)
	r.Route("/integrations", integrationsHandler.MountRoutes)

	// Dashboard snapshot and tab switching
	dashboardHandler := dashboardfeature.NewHandler(runtime.State, runtime.Channel, errLog, logger)
	r.Route("/dashboard", dashboardHandler.MountRoutes)

	return r, nil
}
