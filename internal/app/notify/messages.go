// internal/app/notify/messages.go
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// Push message types emitted by the prediction service.
const (
	msgConnected    = "connected"     // handshake, carries the server's active-alert count
	msgStudentAlert = "student_alert" // a new alert
	msgAlertUpdate  = "alert_update"  // acknowledge/resolve of an existing alert
	msgPong         = "pong"          // keepalive reply
)

// envelope is the common shape of every push message. Alert-bearing messages
// nest the alert under "alert"; updates carry the id and flags inline.
type envelope struct {
	Type         string        `json:"type"`
	ActiveAlerts int           `json:"active_alerts,omitempty"`
	Alert        *models.Alert `json:"alert,omitempty"`
	AlertID      string        `json:"alert_id,omitempty"`
	Acknowledged bool          `json:"acknowledged,omitempty"`
	Resolved     bool          `json:"resolved,omitempty"`
}

// handleMessage dispatches one inbound push message. Malformed or unknown
// messages are logged and dropped; nothing inbound is ever fatal.
func (c *Channel) handleMessage(data []byte) {
	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		c.log.Debug("dropping unparseable push message", zap.Error(err))
		return
	}

	switch msg.Type {
	case msgConnected:
		c.mu.Lock()
		c.serverSeen = msg.ActiveAlerts
		c.mu.Unlock()
		c.log.Info("alert stream handshake", zap.Int("active_alerts", msg.ActiveAlerts))

	case msgStudentAlert:
		if msg.Alert == nil {
			c.log.Debug("student_alert message without alert payload")
			return
		}
		c.handleStudentAlert(*msg.Alert)

	case msgAlertUpdate:
		c.handleAlertUpdate(msg.AlertID, msg.Acknowledged, msg.Resolved)

	case msgPong:
		// keepalive, nothing to do

	default:
		c.log.Debug("dropping unknown push message", zap.String("type", msg.Type))
	}
}

// handleStudentAlert ingests a new alert. The global kill switch is checked
// before anything else: with notifications disabled the alert causes no list
// mutation and no delivery at all. Otherwise the alert is prepended to the
// active list, mirrored to history, and fanned out to every deliverer.
func (c *Channel) handleStudentAlert(alert models.Alert) {
	settings := c.settings()
	if !settings.EnableNotifications {
		return
	}

	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now().UTC()
	}

	c.mu.Lock()
	c.alerts = append([]models.Alert{alert}, c.alerts...)
	deliverers := append([]Deliverer(nil), c.deliverers...)
	c.mu.Unlock()

	c.log.Info("student alert received",
		zap.String("alert_id", alert.AlertID),
		zap.String("student_id", alert.StudentID),
		zap.String("level", string(alert.Level)),
		zap.Float64("risk_score", alert.RiskScore))

	if c.history != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.history.Insert(ctx, alert); err != nil {
			c.log.Warn("alert history insert failed", zap.String("alert_id", alert.AlertID), zap.Error(err))
		}
		cancel()
	}

	for _, d := range deliverers {
		if err := d.Deliver(alert, settings); err != nil {
			c.log.Debug("alert delivery channel failed", zap.Error(err))
		}
	}
}

// handleAlertUpdate applies a server-initiated state change to an alert
// already in the list: acknowledged flips the flag in place, resolved
// removes the alert. Updates for unknown ids are dropped.
func (c *Channel) handleAlertUpdate(alertID string, acknowledged, resolved bool) {
	if alertID == "" {
		return
	}

	c.mu.Lock()
	idx := -1
	for i := range c.alerts {
		if c.alerts[i].AlertID == alertID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		c.log.Debug("alert_update for unknown alert", zap.String("alert_id", alertID))
		return
	}
	if resolved {
		c.alerts = append(c.alerts[:idx:idx], c.alerts[idx+1:]...)
	} else if acknowledged {
		c.alerts[idx].Acknowledged = true
	}
	c.mu.Unlock()

	if c.history != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if resolved {
			if err := c.history.SetResolved(ctx, alertID); err != nil {
				c.log.Warn("alert history resolve failed", zap.String("alert_id", alertID), zap.Error(err))
			}
		} else if acknowledged {
			if err := c.history.SetAcknowledged(ctx, alertID); err != nil {
				c.log.Warn("alert history acknowledge failed", zap.String("alert_id", alertID), zap.Error(err))
			}
		}
	}
}
