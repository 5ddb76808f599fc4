// internal/app/features/students/handler.go
package students

import (
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the analyzed roster out of the application state.
type Handler struct {
	State  *state.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a students Handler.
func NewHandler(st *state.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		State:  st,
		Log:    logger,
		ErrLog: errLog,
	}
}

// listResponse is the JSON shape for GET /students.
type listResponse struct {
	Students []models.StudentRecord `json:"students"`
	Summary  models.CategoryCounts  `json:"summary"`
	Selected *models.StudentRecord  `json:"selected,omitempty"`
}

// HandleList handles GET /students.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	snap := h.State.Snapshot()
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Students: snap.Students,
		Summary:  models.Summarize(snap.Students),
		Selected: snap.SelectedStudent,
	})
}

// HandleGet handles GET /students/{studentID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	snap := h.State.Snapshot()
	for _, s := range snap.Students {
		if s.StudentID == id {
			uierrors.WriteJSON(w, http.StatusOK, s)
			return
		}
	}

	h.ErrLog.LogNotFound(w, r, "student not in analyzed roster", "Student not found. Run an analysis first.")
}

// HandleSelect handles POST /students/{studentID}/select: sets the detail
// selection in the application state.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	selected := h.State.SelectStudent(id)
	if selected == nil {
		h.ErrLog.LogNotFound(w, r, "select of unknown student", "Student not found. Run an analysis first.")
		return
	}

	h.Log.Debug("student selected", zap.String("student_id", id))
	uierrors.WriteJSON(w, http.StatusOK, selected)
}

// HandleSummary handles GET /students/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	snap := h.State.Snapshot()
	uierrors.WriteJSON(w, http.StatusOK, models.Summarize(snap.Students))
}
