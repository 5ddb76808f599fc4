// internal/domain/models/integration.go
package models

import "time"

// LMS integration providers.
const (
	ProviderCanvas      = "canvas"
	ProviderPowerSchool = "powerschool"
	ProviderGoogle      = "google"
)

// AllProviders lists the supported providers in display order.
var AllProviders = []string{ProviderCanvas, ProviderPowerSchool, ProviderGoogle}

// ValidProvider reports whether name is a supported provider.
func ValidProvider(name string) bool {
	for _, p := range AllProviders {
		if p == name {
			return true
		}
	}
	return false
}

// IntegrationStatus records whether an LMS provider is connected and what it
// exposed at connect time. Only the connection handshake and status live
// here; data sync is the upstream service's job.
type IntegrationStatus struct {
	ViewerID string `bson:"viewer_id" json:"-"`
	Provider string `bson:"provider" json:"provider"`

	Connected bool     `bson:"connected" json:"connected"`
	Account   string   `bson:"account,omitempty" json:"account,omitempty"` // linked account or base URL
	Courses   []string `bson:"courses,omitempty" json:"courses,omitempty"` // course/school names

	ConnectedAt *time.Time `bson:"connected_at,omitempty" json:"connected_at,omitempty"`
}
