// internal/domain/models/notifysettings.go
package models

import "time"

// DefaultRiskThreshold is the risk score at or above which the upstream
// service is asked to raise alerts.
const DefaultRiskThreshold = 0.7

// NotificationSettings controls alert delivery for one viewer.
// EnableNotifications is the global kill switch: when false, inbound alerts
// are dropped before any list mutation or delivery happens. The per-channel
// flags gate individual delivery channels only.
type NotificationSettings struct {
	ViewerID string `bson:"viewer_id" json:"-"`

	EnableNotifications bool    `bson:"enable_notifications" json:"enable_notifications"`
	EnableSound         bool    `bson:"enable_sound" json:"enable_sound"`
	EnableDesktop       bool    `bson:"enable_desktop" json:"enable_desktop"`
	RiskThreshold       float64 `bson:"risk_threshold" json:"risk_threshold"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// DefaultNotificationSettings returns the settings used when a viewer has
// never saved any: everything on, threshold 0.7.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EnableNotifications: true,
		EnableSound:         true,
		EnableDesktop:       true,
		RiskThreshold:       DefaultRiskThreshold,
	}
}
