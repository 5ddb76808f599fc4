package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/riskwatch/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *state.Store) {
	t.Helper()
	logger := zap.NewNop()
	st := state.NewStore()
	channel := notify.NewChannel(notify.Config{
		StreamURL: "ws://localhost:9/alerts/stream",
		Logger:    logger,
	})
	t.Cleanup(channel.Close)
	return dashboard.NewHandler(st, channel, uierrors.NewErrorLogger(logger), logger), st
}

func TestHandleSnapshot_InitialState(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSnapshot(rec.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/dashboard"))

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Tab           string `json:"tab"`
		Progress      int    `json:"progress"`
		Notifications struct {
			Status string `json:"status"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tab != string(state.TabUpload) {
		t.Errorf("tab: got %q, want upload", resp.Tab)
	}
	if resp.Progress != state.ProgressFor(state.TabUpload) {
		t.Errorf("progress: got %d, want %d", resp.Progress, state.ProgressFor(state.TabUpload))
	}
	if resp.Notifications.Status != string(notify.StatusDisconnected) {
		t.Errorf("notifications status: got %q, want disconnected", resp.Notifications.Status)
	}
}

func TestHandleSnapshot_WithRoster(t *testing.T) {
	h, st := newTestHandler(t)

	roster := testutil.SampleStudents()
	st.Apply(state.Update{Students: &roster})
	st.SelectStudent("s3")

	rec := testutil.NewRecorder()
	h.HandleSnapshot(rec.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/dashboard"))

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Summary struct {
			Low      int `json:"low"`
			Moderate int `json:"moderate"`
			High     int `json:"high"`
		} `json:"summary"`
		SelectedStudent *struct {
			StudentID string `json:"student_id"`
		} `json:"selected_student"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary.High != 1 {
		t.Errorf("summary.high: got %d, want 1", resp.Summary.High)
	}
	if resp.SelectedStudent == nil || resp.SelectedStudent.StudentID != "s3" {
		t.Errorf("selected_student: got %+v, want s3", resp.SelectedStudent)
	}
}

func TestHandleTab(t *testing.T) {
	h, st := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/tab", strings.NewReader(`{"tab":"Insights"}`))
	rec := testutil.NewRecorder()

	h.HandleTab(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Tab      string `json:"tab"`
		Progress int    `json:"progress"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tab != string(state.TabInsights) {
		t.Errorf("tab: got %q, want insights", resp.Tab)
	}
	if resp.Progress != 100 {
		t.Errorf("progress: got %d, want 100", resp.Progress)
	}
	if st.Snapshot().CurrentTab != state.TabInsights {
		t.Errorf("state tab: got %q", st.Snapshot().CurrentTab)
	}
}

func TestHandleTab_Unknown(t *testing.T) {
	h, st := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/tab", strings.NewReader(`{"tab":"settings"}`))
	rec := testutil.NewRecorder()

	h.HandleTab(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	if st.Snapshot().CurrentTab != state.TabUpload {
		t.Errorf("state tab after bad request: got %q, want upload", st.Snapshot().CurrentTab)
	}
}
