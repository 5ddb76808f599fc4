// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	alertsfeature "github.com/dalemusser/riskwatch/internal/app/features/alerts"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/app/predict"
	"github.com/dalemusser/riskwatch/internal/app/state"
	alertstore "github.com/dalemusser/riskwatch/internal/app/store/alerts"
	"github.com/dalemusser/riskwatch/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. RiskWatch
// builds its application state store, the prediction client, the browser
// fan-out hub, and the upstream alert channel here, then restores any active
// alerts from storage and starts the channel connecting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	runtime.State = state.NewStore()
	runtime.Predict = predict.New(appCfg.PredictBaseURL, logger)

	// The hub outlives the startup context; Shutdown stops it.
	runtime.Hub = alertsfeature.NewHub(context.Background(), logger)

	history := alertstore.New(deps.RiskWatchMongoDatabase)

	runtime.Channel = notify.NewChannel(notify.Config{
		StreamURL:         appCfg.AlertStreamURL,
		Actions:           notify.NewHTTPActions(appCfg.PredictBaseURL, appCfg.AlertUserID),
		Settings:          runtime.currentSettings,
		History:           history,
		Logger:            logger,
		ReconnectInterval: appCfg.ReconnectInterval,
		MaxAttempts:       appCfg.ReconnectAttempts,
	})
	runtime.Channel.AddDeliverer(&notify.LogDeliverer{Log: logger})
	runtime.Channel.AddDeliverer(runtime.Hub)

	// Active alerts survive restarts through the history store.
	if active, err := history.ListActive(ctx); err != nil {
		logger.Warn("restoring active alerts failed", zap.Error(err))
	} else if len(active) > 0 {
		runtime.Channel.Restore(active)
		logger.Info("restored active alerts", zap.Int("count", len(active)))
	}

	// A dead upstream is not fatal; the channel retries on its own schedule
	// and the dashboard reports the connection status.
	if err := runtime.Channel.Connect(ctx); err != nil {
		logger.Warn("alert stream connect failed, will retry",
			zap.String("url", appCfg.AlertStreamURL),
			zap.Error(err))
	}

	runtime.Cleanup = workers.NewAlertCleanup(history, logger, appCfg.AlertCleanupInterval, appCfg.AlertRetention)
	runtime.Cleanup.Start()

	return nil
}
