// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the alert channel, the browser hub, and the
// MongoDB connection.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if runtime.Cleanup != nil {
		runtime.Cleanup.Stop()
	}
	if runtime.Channel != nil {
		logger.Info("closing alert channel")
		runtime.Channel.Close()
	}
	if runtime.Hub != nil {
		runtime.Hub.Stop()
	}
	if deps.RiskWatchMongoClient != nil {
		logger.Info("disconnecting RiskWatch MongoDB client")
		if err := deps.RiskWatchMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
