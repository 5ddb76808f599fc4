// internal/app/state/store.go

// Package state implements the dashboard's application-state container: a
// single mutable ApplicationState with key-scoped subscriptions. Components
// read through Snapshot, write through Apply, and react through Subscribe;
// they never touch each other directly.
//
// Dispatch semantics, deliberately chosen and tested:
//
//   - Subscribers for a key run synchronously, in registration order, with
//     the key's new and old values. Keys absent from an update fire nothing.
//   - A subscriber may call Apply again; the nested dispatch runs to
//     completion before the outer Apply returns. Callbacks run outside the
//     store mutex, so re-entrancy cannot deadlock.
//   - When an update replaces Students, the selection is re-resolved by
//     student ID against the new slice and cleared if the ID is gone. The
//     browser original left the selection stale; that ambiguity is resolved
//     here, not inherited.
package state

import (
	"sync"

	"github.com/dalemusser/riskwatch/internal/domain/models"
)

// Key names a subscribable slice of ApplicationState.
type Key string

const (
	KeyCurrentTab      Key = "currentTab"
	KeyStudents        Key = "students"
	KeySelectedStudent Key = "selectedStudent"
	KeyIntegrations    Key = "integrations"
	KeyNotifications   Key = "notifications"
	KeyUI              Key = "ui"
)

// dispatchOrder fixes the order in which a single Apply reports its touched
// keys. Derived changes (ui from a tab switch, selection from a students
// replacement) fire after the explicit change that caused them.
var dispatchOrder = []Key{
	KeyCurrentTab,
	KeyStudents,
	KeySelectedStudent,
	KeyIntegrations,
	KeyNotifications,
	KeyUI,
}

// Change is what a subscriber receives: the key that changed plus its new
// and old values. Old is the value as of the start of the Apply call that
// produced this change.
type Change struct {
	Key Key
	New any
	Old any
}

// SubscriberFunc receives changes for one subscribed key.
type SubscriberFunc func(Change)

// Selection is Update's way of saying "set the selected student". A non-nil
// Selection with a nil Student clears the selection.
type Selection struct {
	Student *models.StudentRecord
}

// Update is a partial ApplicationState. Nil fields are untouched; non-nil
// fields replace the corresponding state wholesale (no deep merge). Callers
// that want to adjust one nested field must read a snapshot, modify it, and
// write the whole nested struct back.
type Update struct {
	CurrentTab    *Tab
	Students      *[]models.StudentRecord
	Selected      *Selection
	Integrations  *map[string]models.IntegrationStatus
	Notifications *NotificationsState
	UI            *UIState
}

type subscriber struct {
	id int
	fn SubscriberFunc
}

// Store owns the ApplicationState and dispatches key-scoped change
// notifications. Safe for concurrent use; callbacks run on the goroutine
// that called Apply.
type Store struct {
	mu          sync.Mutex
	state       ApplicationState
	subscribers map[Key][]subscriber
	nextSubID   int
}

// NewStore creates a store holding the initial application state
// (upload tab, no students, derived progress).
func NewStore() *Store {
	return &Store{
		state:       initialState(),
		subscribers: make(map[Key][]subscriber),
	}
}

// Snapshot returns an isolated copy of the current state.
func (s *Store) Snapshot() ApplicationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for changes to key and returns an unsubscribe
// func. Unsubscribing during dispatch takes effect from the next Apply.
func (s *Store) Subscribe(key Key, fn SubscriberFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers[key] = append(s.subscribers[key], subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subscribers[key]
		for i, sub := range subs {
			if sub.id == id {
				s.subscribers[key] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Apply merges u into the state one key at a time and notifies the
// subscribers of every touched key. Old values are snapshotted before any
// field of this update is applied.
func (s *Store) Apply(u Update) {
	s.mu.Lock()

	old := s.state.clone()
	touched := make(map[Key]bool)

	if u.CurrentTab != nil && *u.CurrentTab != s.state.CurrentTab {
		s.state.CurrentTab = *u.CurrentTab
		touched[KeyCurrentTab] = true

		// Progress is a derived field: recomputed on every tab change,
		// reported as a ui change.
		progress := ProgressFor(s.state.CurrentTab)
		if s.state.UI.Progress != progress {
			s.state.UI.Progress = progress
			touched[KeyUI] = true
		}
	}

	if u.Students != nil {
		s.state.Students = *u.Students
		touched[KeyStudents] = true

		// Re-resolve the selection against the new slice by identity. The
		// record under the same ID may carry fresh data, so the selection
		// counts as changed whenever one was set.
		if sel := s.state.SelectedStudent; sel != nil {
			s.state.SelectedStudent = findByID(s.state.Students, sel.StudentID)
			touched[KeySelectedStudent] = true
		}
	}

	if u.Selected != nil {
		s.state.SelectedStudent = u.Selected.Student
		touched[KeySelectedStudent] = true
	}

	if u.Integrations != nil {
		s.state.Integrations = *u.Integrations
		touched[KeyIntegrations] = true
	}

	if u.Notifications != nil {
		s.state.Notifications = *u.Notifications
		touched[KeyNotifications] = true
	}

	if u.UI != nil {
		ui := *u.UI
		// Progress cannot be set directly; it tracks the current tab.
		ui.Progress = ProgressFor(s.state.CurrentTab)
		s.state.UI = ui
		touched[KeyUI] = true
	}

	// Collect changes and subscriber lists under the lock, dispatch outside
	// it so subscriber callbacks may call Apply again.
	newState := s.state.clone()
	type pending struct {
		change Change
		subs   []subscriber
	}
	var queue []pending
	for _, key := range dispatchOrder {
		if !touched[key] {
			continue
		}
		subs := s.subscribers[key]
		if len(subs) == 0 {
			continue
		}
		queue = append(queue, pending{
			change: Change{Key: key, New: valueFor(newState, key), Old: valueFor(old, key)},
			subs:   append([]subscriber(nil), subs...),
		})
	}
	s.mu.Unlock()

	for _, p := range queue {
		for _, sub := range p.subs {
			sub.fn(p.change)
		}
	}
}

// SelectStudent resolves id against the current student list and sets the
// selection. It returns the selected record, or nil if id is unknown (the
// selection is cleared in that case).
func (s *Store) SelectStudent(id string) *models.StudentRecord {
	s.mu.Lock()
	resolved := findByID(s.state.Students, id)
	s.mu.Unlock()

	s.Apply(Update{Selected: &Selection{Student: resolved}})
	return resolved
}

func findByID(students []models.StudentRecord, id string) *models.StudentRecord {
	if id == "" {
		return nil
	}
	for i := range students {
		if students[i].StudentID == id {
			rec := students[i]
			return &rec
		}
	}
	return nil
}

// valueFor extracts the value a subscriber of key sees from a state copy.
func valueFor(st ApplicationState, key Key) any {
	switch key {
	case KeyCurrentTab:
		return st.CurrentTab
	case KeyStudents:
		return st.Students
	case KeySelectedStudent:
		return st.SelectedStudent
	case KeyIntegrations:
		return st.Integrations
	case KeyNotifications:
		return st.Notifications
	case KeyUI:
		return st.UI
	}
	return nil
}
