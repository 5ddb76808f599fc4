// internal/app/state/store_test.go
package state_test

import (
	"testing"

	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/domain/models"
)

func threeStudents() []models.StudentRecord {
	return []models.StudentRecord{
		{StudentID: "s1", Name: "Ana", RiskScore: 0.2},
		{StudentID: "s2", Name: "Ben", RiskScore: 0.5},
		{StudentID: "s3", Name: "Cam", RiskScore: 0.8},
	}
}

func TestSubscriberCrossKeyIsolation(t *testing.T) {
	st := state.NewStore()

	calls := 0
	st.Subscribe(state.KeyStudents, func(state.Change) { calls++ })

	ui := state.UIState{Loading: true}
	st.Apply(state.Update{UI: &ui})

	if calls != 0 {
		t.Errorf("students subscriber invoked %d times by a ui update, want 0", calls)
	}
}

func TestSubscriberRegistrationOrder(t *testing.T) {
	st := state.NewStore()

	var order []string
	st.Subscribe(state.KeyStudents, func(state.Change) { order = append(order, "a") })
	st.Subscribe(state.KeyStudents, func(state.Change) { order = append(order, "b") })

	students := threeStudents()
	st.Apply(state.Update{Students: &students})
	st.Apply(state.Update{Students: &students})

	want := []string{"a", "b", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("got %d invocations %v, want %v", len(order), order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("invocation order %v, want %v", order, want)
		}
	}
}

func TestSubscriberSeesNewAndOldValues(t *testing.T) {
	st := state.NewStore()

	var got state.Change
	st.Subscribe(state.KeyCurrentTab, func(c state.Change) { got = c })

	tab := state.TabAnalyze
	st.Apply(state.Update{CurrentTab: &tab})

	if got.New != state.TabAnalyze {
		t.Errorf("new value = %v, want %v", got.New, state.TabAnalyze)
	}
	if got.Old != state.TabUpload {
		t.Errorf("old value = %v, want %v", got.Old, state.TabUpload)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	st := state.NewStore()

	calls := 0
	unsubscribe := st.Subscribe(state.KeyStudents, func(state.Change) { calls++ })

	students := threeStudents()
	st.Apply(state.Update{Students: &students})
	unsubscribe()
	st.Apply(state.Update{Students: &students})

	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1 (one before unsubscribe)", calls)
	}
}

func TestProgressDerivedFromTab(t *testing.T) {
	tests := []struct {
		tab  state.Tab
		want int
	}{
		{state.TabUpload, 20},
		{state.TabConnect, 40},
		{state.TabAnalyze, 60},
		{state.TabDashboard, 80},
		{state.TabInsights, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			st := state.NewStore()
			tab := tt.tab
			st.Apply(state.Update{CurrentTab: &tab})
			if got := st.Snapshot().UI.Progress; got != tt.want {
				t.Errorf("progress for %s = %d, want %d", tt.tab, got, tt.want)
			}
		})
	}
}

func TestProgressCannotBeSetDirectly(t *testing.T) {
	st := state.NewStore()

	tab := state.TabDashboard
	st.Apply(state.Update{CurrentTab: &tab})

	ui := state.UIState{Loading: true, Progress: 7}
	st.Apply(state.Update{UI: &ui})

	snap := st.Snapshot()
	if !snap.UI.Loading {
		t.Error("ui update did not apply")
	}
	if snap.UI.Progress != 80 {
		t.Errorf("progress = %d after direct set attempt, want 80 (derived from dashboard tab)", snap.UI.Progress)
	}
}

func TestTabChangeFiresDerivedUIChange(t *testing.T) {
	st := state.NewStore()

	var keys []state.Key
	st.Subscribe(state.KeyCurrentTab, func(c state.Change) { keys = append(keys, c.Key) })
	st.Subscribe(state.KeyUI, func(c state.Change) { keys = append(keys, c.Key) })

	tab := state.TabInsights
	st.Apply(state.Update{CurrentTab: &tab})

	if len(keys) != 2 || keys[0] != state.KeyCurrentTab || keys[1] != state.KeyUI {
		t.Errorf("dispatched keys = %v, want [currentTab ui]", keys)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	st := state.NewStore()

	students := threeStudents()
	st.Apply(state.Update{Students: &students})

	snap := st.Snapshot()
	snap.Students[0].RiskScore = 0.99
	snap.Integrations["canvas"] = models.IntegrationStatus{Provider: "canvas", Connected: true}

	fresh := st.Snapshot()
	if fresh.Students[0].RiskScore != 0.2 {
		t.Errorf("mutating a snapshot leaked into the store: risk score = %v", fresh.Students[0].RiskScore)
	}
	if _, ok := fresh.Integrations["canvas"]; ok {
		t.Error("mutating a snapshot map leaked into the store")
	}
}

func TestReentrantApplyRunsNestedDispatchFirst(t *testing.T) {
	st := state.NewStore()

	var order []string
	st.Subscribe(state.KeyUI, func(state.Change) { order = append(order, "ui") })
	st.Subscribe(state.KeyStudents, func(c state.Change) {
		order = append(order, "students-begin")
		ui := state.UIState{Loading: true}
		st.Apply(state.Update{UI: &ui})
		order = append(order, "students-end")
	})

	students := threeStudents()
	st.Apply(state.Update{Students: &students})

	want := []string{"students-begin", "ui", "students-end"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSelectStudent(t *testing.T) {
	st := state.NewStore()
	students := threeStudents()
	st.Apply(state.Update{Students: &students})

	// End-to-end shape: 3 students with scores 0.2/0.5/0.8 categorize as
	// one per bucket, then selecting the 0.8 student shows up in snapshots.
	counts := models.Summarize(st.Snapshot().Students)
	if counts.Low != 1 || counts.Moderate != 1 || counts.High != 1 {
		t.Fatalf("category counts = %+v, want 1/1/1", counts)
	}

	selected := st.SelectStudent("s3")
	if selected == nil || selected.RiskScore != 0.8 {
		t.Fatalf("SelectStudent(s3) = %+v, want risk score 0.8", selected)
	}
	snap := st.Snapshot()
	if snap.SelectedStudent == nil || snap.SelectedStudent.RiskScore != 0.8 {
		t.Errorf("snapshot selection = %+v, want risk score 0.8", snap.SelectedStudent)
	}

	if got := st.SelectStudent("missing"); got != nil {
		t.Errorf("SelectStudent(missing) = %+v, want nil", got)
	}
	if sel := st.Snapshot().SelectedStudent; sel != nil {
		t.Errorf("selection after unknown id = %+v, want cleared", sel)
	}
}

func TestStudentsReplacementReresolvesSelection(t *testing.T) {
	st := state.NewStore()
	students := threeStudents()
	st.Apply(state.Update{Students: &students})
	st.SelectStudent("s2")

	// Same ID, fresh score: selection follows the new record.
	updated := []models.StudentRecord{
		{StudentID: "s2", Name: "Ben", RiskScore: 0.9},
	}
	st.Apply(state.Update{Students: &updated})

	sel := st.Snapshot().SelectedStudent
	if sel == nil || sel.RiskScore != 0.9 {
		t.Fatalf("selection after reload = %+v, want re-resolved record with score 0.9", sel)
	}

	// ID gone: selection is cleared, not left stale.
	replaced := []models.StudentRecord{
		{StudentID: "s9", Name: "Di", RiskScore: 0.1},
	}
	st.Apply(state.Update{Students: &replaced})

	if sel := st.Snapshot().SelectedStudent; sel != nil {
		t.Errorf("selection after replacing students = %+v, want cleared", sel)
	}
}
