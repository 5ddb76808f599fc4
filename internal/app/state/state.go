// internal/app/state/state.go
package state

import "github.com/dalemusser/riskwatch/internal/domain/models"

// Tab identifies one of the dashboard's top-level views.
type Tab string

const (
	TabUpload    Tab = "upload"
	TabConnect   Tab = "connect"
	TabAnalyze   Tab = "analyze"
	TabDashboard Tab = "dashboard"
	TabInsights  Tab = "insights"
)

// ValidTab reports whether t is one of the known tabs.
func ValidTab(t Tab) bool {
	switch t {
	case TabUpload, TabConnect, TabAnalyze, TabDashboard, TabInsights:
		return true
	}
	return false
}

// ProgressFor returns the workflow progress shown for a tab. Progress is a
// pure function of the current tab; the store recomputes it on every tab
// change and nothing else may set it.
func ProgressFor(t Tab) int {
	switch t {
	case TabConnect:
		return 40
	case TabAnalyze:
		return 60
	case TabDashboard:
		return 80
	case TabInsights:
		return 100
	default: // TabUpload and anything unrecognized
		return 20
	}
}

// ModalState describes the one modal dialog the dashboard can show.
type ModalState struct {
	Open    bool   `json:"open"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// UIState holds transient view state.
type UIState struct {
	Loading  bool       `json:"loading"`
	Modal    ModalState `json:"modal"`
	Progress int        `json:"progress"` // derived from CurrentTab, 20..100
}

// NotificationsState mirrors the alert channel's visible status. The channel
// owns its own connection lifecycle and alert list; features copy status into
// the store so subscribers can react, but nothing here drives the channel.
type NotificationsState struct {
	Enabled      bool `json:"enabled"`
	Connected    bool `json:"connected"`
	ActiveAlerts int  `json:"active_alerts"`
}

// ApplicationState is the full dashboard state. One instance lives for the
// life of the process, owned exclusively by Store.
type ApplicationState struct {
	CurrentTab      Tab                                 `json:"current_tab"`
	Students        []models.StudentRecord              `json:"students"`
	SelectedStudent *models.StudentRecord               `json:"selected_student,omitempty"`
	Integrations    map[string]models.IntegrationStatus `json:"integrations"`
	Notifications   NotificationsState                  `json:"notifications"`
	UI              UIState                             `json:"ui"`
}

// initialState returns the state a fresh store starts with.
func initialState() ApplicationState {
	return ApplicationState{
		CurrentTab:   TabUpload,
		Integrations: make(map[string]models.IntegrationStatus),
		UI:           UIState{Progress: ProgressFor(TabUpload)},
	}
}

// clone returns a copy of s with the nested slice and map duplicated, so the
// caller can hold it without observing (or causing) later mutations. The
// original browser implementation handed out shallow copies and leaked its
// nested objects to callers; snapshots here are isolated instead.
func (s ApplicationState) clone() ApplicationState {
	out := s
	if s.Students != nil {
		out.Students = make([]models.StudentRecord, len(s.Students))
		copy(out.Students, s.Students)
	}
	if s.SelectedStudent != nil {
		sel := *s.SelectedStudent
		out.SelectedStudent = &sel
	}
	out.Integrations = make(map[string]models.IntegrationStatus, len(s.Integrations))
	for k, v := range s.Integrations {
		out.Integrations[k] = v
	}
	return out
}
