// internal/app/notify/deliver.go
package notify

import (
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// Deliverer is one alert delivery side-channel. The channel fans every
// accepted alert out to all registered deliverers along with the settings in
// effect at ingestion time, so each deliverer can apply its own per-channel
// gate (sound, desktop). A deliverer error degrades that channel only.
type Deliverer interface {
	Deliver(alert models.Alert, settings models.NotificationSettings) error
}

// DelivererFunc adapts a func to the Deliverer interface.
type DelivererFunc func(alert models.Alert, settings models.NotificationSettings) error

// Deliver implements Deliverer.
func (f DelivererFunc) Deliver(alert models.Alert, settings models.NotificationSettings) error {
	return f(alert, settings)
}

// LogDeliverer writes alerts to the service log. It plays the role of the
// operator-facing notice channel; the browser-facing sound and desktop
// channels live behind the alert stream hub, which ships the settings along
// so clients gate locally.
type LogDeliverer struct {
	Log *zap.Logger
}

// Deliver implements Deliverer.
func (d *LogDeliverer) Deliver(alert models.Alert, settings models.NotificationSettings) error {
	d.Log.Info("alert",
		zap.String("alert_id", alert.AlertID),
		zap.String("student", alert.StudentName),
		zap.String("level", string(alert.Level)),
		zap.Float64("risk_score", alert.RiskScore),
		zap.Bool("intervention_recommended", alert.InterventionRecommended),
		zap.String("message", alert.Message))
	return nil
}
