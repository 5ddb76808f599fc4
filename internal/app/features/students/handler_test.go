package students_test

import (
	"encoding/json"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/features/students"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, seed bool) (*students.Handler, *state.Store) {
	t.Helper()
	logger := zap.NewNop()
	st := state.NewStore()
	if seed {
		roster := testutil.SampleStudents()
		st.Apply(state.Update{Students: &roster})
	}
	return students.NewHandler(st, uierrors.NewErrorLogger(logger), logger), st
}

func TestHandleList(t *testing.T) {
	h, _ := newTestHandler(t, true)

	req := testutil.NewRequest(http.MethodGet, "/students")
	rec := testutil.NewRecorder()

	h.HandleList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Students []struct {
			StudentID string `json:"student_id"`
		} `json:"students"`
		Summary struct {
			Low      int `json:"low"`
			Moderate int `json:"moderate"`
			High     int `json:"high"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Students) != 3 {
		t.Errorf("students: got %d, want 3", len(resp.Students))
	}
	if resp.Summary.Low != 1 || resp.Summary.Moderate != 1 || resp.Summary.High != 1 {
		t.Errorf("summary: got %+v, want 1/1/1", resp.Summary)
	}
}

func TestHandleList_EmptyRoster(t *testing.T) {
	h, _ := newTestHandler(t, false)

	req := testutil.NewRequest(http.MethodGet, "/students")
	rec := testutil.NewRecorder()

	h.HandleList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Students []any `json:"students"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Students) != 0 {
		t.Errorf("students: got %d, want 0", len(resp.Students))
	}
}

func TestHandleGet(t *testing.T) {
	h, _ := newTestHandler(t, true)

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/students/s2"), "studentID", "s2")
	rec := testutil.NewRecorder()

	h.HandleGet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ben Ortiz")

	var student struct {
		Grade string `json:"grade"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &student); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if student.Grade != "74" {
		t.Errorf("grade: got %q, want \"74\"", student.Grade)
	}
}

func TestHandleGet_Unknown(t *testing.T) {
	h, _ := newTestHandler(t, true)

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/students/nope"), "studentID", "nope")
	rec := testutil.NewRecorder()

	h.HandleGet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleSelect(t *testing.T) {
	h, st := newTestHandler(t, true)

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodPost, "/students/s3/select"), "studentID", "s3")
	rec := testutil.NewRecorder()

	h.HandleSelect(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	snap := st.Snapshot()
	if snap.SelectedStudent == nil || snap.SelectedStudent.StudentID != "s3" {
		t.Errorf("SelectedStudent: got %+v, want s3", snap.SelectedStudent)
	}
}

func TestHandleSelect_Unknown(t *testing.T) {
	h, st := newTestHandler(t, true)

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodPost, "/students/nope/select"), "studentID", "nope")
	rec := testutil.NewRecorder()

	h.HandleSelect(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	if st.Snapshot().SelectedStudent != nil {
		t.Error("SelectedStudent: got set, want nil")
	}
}

func TestHandleSummary(t *testing.T) {
	h, _ := newTestHandler(t, true)

	req := testutil.NewRequest(http.MethodGet, "/students/summary")
	rec := testutil.NewRecorder()

	h.HandleSummary(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var counts struct {
		Low      int `json:"low"`
		Moderate int `json:"moderate"`
		High     int `json:"high"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if counts.Low != 1 || counts.Moderate != 1 || counts.High != 1 {
		t.Errorf("summary: got %+v, want 1/1/1", counts)
	}
}
