// internal/domain/models/alert.go
package models

import "time"

// AlertLevel grades how urgent a risk alert is.
type AlertLevel string

const (
	AlertLow      AlertLevel = "low"
	AlertMedium   AlertLevel = "medium"
	AlertHigh     AlertLevel = "high"
	AlertCritical AlertLevel = "critical"
)

// ValidAlertLevel reports whether level is one of the known levels.
func ValidAlertLevel(level AlertLevel) bool {
	switch level {
	case AlertLow, AlertMedium, AlertHigh, AlertCritical:
		return true
	}
	return false
}

// LevelFor maps a risk score onto an alert level. Used only by the simulate
// path; real alerts arrive with the level already set by the upstream service.
func LevelFor(score float64) AlertLevel {
	switch {
	case score >= 0.9:
		return AlertCritical
	case score >= HighCutoff:
		return AlertHigh
	case score >= ModerateCutoff:
		return AlertMedium
	default:
		return AlertLow
	}
}

// Alert is a server-pushed notice that a student's risk crossed a threshold.
// Alerts are created by inbound push messages and mutated in place when an
// alert_update arrives: acknowledged flips the flag, resolved removes the
// alert from the active list. The simulate endpoint is the only place an
// alert is fabricated client-side.
type Alert struct {
	AlertID           string     `bson:"alert_id" json:"alert_id"`
	StudentID         string     `bson:"student_id" json:"student_id"`
	StudentName       string     `bson:"student_name" json:"student_name"`
	Level             AlertLevel `bson:"alert_level" json:"alert_level"`
	RiskScore         float64    `bson:"risk_score" json:"risk_score"`
	PreviousRiskScore *float64   `bson:"previous_risk_score,omitempty" json:"previous_risk_score,omitempty"`
	Message           string     `bson:"message" json:"message"`
	Timestamp         time.Time  `bson:"timestamp" json:"timestamp"`

	Acknowledged            bool `bson:"acknowledged" json:"acknowledged"`
	Resolved                bool `bson:"resolved" json:"resolved"`
	InterventionRecommended bool `bson:"intervention_recommended" json:"intervention_recommended"`
}
