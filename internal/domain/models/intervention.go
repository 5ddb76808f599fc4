// internal/domain/models/intervention.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Intervention statuses.
const (
	InterventionPlanned   = "planned"
	InterventionActive    = "active"
	InterventionCompleted = "completed"
)

// AllInterventionStatuses lists the valid statuses in lifecycle order.
var AllInterventionStatuses = []string{
	InterventionPlanned,
	InterventionActive,
	InterventionCompleted,
}

// ValidInterventionStatus reports whether status is one of the known statuses.
func ValidInterventionStatus(status string) bool {
	for _, s := range AllInterventionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Intervention is a manually logged support action for a student
// (tutoring referral, counselor meeting, parent contact, ...).
// Notes are sanitized HTML; everything else is plain text.
type Intervention struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ViewerID  string             `bson:"viewer_id" json:"-"`
	StudentID string             `bson:"student_id" json:"student_id"`

	Type   string `bson:"type" json:"type"`     // e.g. "tutoring", "counseling", "parent-contact"
	Note   string `bson:"note" json:"note"`     // sanitized HTML
	Status string `bson:"status" json:"status"` // planned | active | completed

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
