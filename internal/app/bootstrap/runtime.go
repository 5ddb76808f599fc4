// internal/app/bootstrap/runtime.go
package bootstrap

import (
	"sync/atomic"

	alertsfeature "github.com/dalemusser/riskwatch/internal/app/features/alerts"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/app/predict"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/app/system/workers"
	"github.com/dalemusser/riskwatch/internal/domain/models"
)

// appRuntime holds the long-lived pieces built in Startup and shared with
// BuildHandler and Shutdown. WAFFLE passes config and DB deps between hooks
// but app-level singletons live here.
type appRuntime struct {
	State   *state.Store
	Predict *predict.Client
	Channel *notify.Channel
	Hub     *alertsfeature.Hub
	Cleanup *workers.AlertCleanup

	// settings is the snapshot the channel consults on every inbound alert.
	// The settings handler replaces it whenever a viewer saves, so delivery
	// gating follows the most recent save without a restart.
	settings atomic.Value // models.NotificationSettings
}

var runtime appRuntime

func (rt *appRuntime) currentSettings() models.NotificationSettings {
	if v, ok := rt.settings.Load().(models.NotificationSettings); ok {
		return v
	}
	return models.DefaultNotificationSettings()
}

func (rt *appRuntime) storeSettings(s models.NotificationSettings) {
	rt.settings.Store(s)
}
