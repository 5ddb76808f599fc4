// internal/app/features/analyze/handler.go
package analyze

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"github.com/dalemusser/riskwatch/internal/app/predict"
	"github.com/dalemusser/riskwatch/internal/app/state"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// maxUploadBytes caps roster uploads at 16 MB.
const maxUploadBytes = 16 << 20

// Handler owns the roster analysis handlers.
type Handler struct {
	State   *state.Store
	Predict *predict.Client
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs an analyze Handler.
func NewHandler(st *state.Store, client *predict.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		State:   st,
		Predict: client,
		Log:     logger,
		ErrLog:  errLog,
	}
}

// analyzeResponse is returned by both analysis endpoints.
type analyzeResponse struct {
	Students []models.StudentRecord `json:"students"`
	Summary  models.CategoryCounts  `json:"summary"`
	Tab      state.Tab              `json:"tab"`
	Progress int                    `json:"progress"`
}

// HandleUpload handles POST /analyze: a multipart CSV upload forwarded to
// the prediction service. On success the roster replaces the students in the
// application state and the workflow moves to the analyze tab.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "roster upload missing file field", err, "Upload a CSV file in the 'file' field.")
		return
	}
	defer file.Close()

	students, err := h.Predict.Analyze(r.Context(), header.Filename, file)
	if err != nil {
		h.respondPredictError(w, r, err)
		return
	}

	h.applyAndRespond(w, students)
}

// HandleSample handles POST /analyze/sample: asks the prediction service for
// its built-in demo roster. Same state effects as a real upload.
func (h *Handler) HandleSample(w http.ResponseWriter, r *http.Request) {
	students, err := h.Predict.Sample(r.Context())
	if err != nil {
		h.respondPredictError(w, r, err)
		return
	}

	h.applyAndRespond(w, students)
}

func (h *Handler) applyAndRespond(w http.ResponseWriter, students []models.StudentRecord) {
	tab := state.TabAnalyze
	h.State.Apply(state.Update{
		Students:   &students,
		CurrentTab: &tab,
	})

	h.Log.Info("roster analyzed",
		zap.Int("students", len(students)))

	snap := h.State.Snapshot()
	uierrors.WriteJSON(w, http.StatusOK, analyzeResponse{
		Students: students,
		Summary:  models.Summarize(students),
		Tab:      snap.CurrentTab,
		Progress: snap.UI.Progress,
	})
}

func (h *Handler) respondPredictError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, predict.ErrNoData) {
		h.ErrLog.LogBadRequest(w, r, "prediction response had no student data", err, "The analysis returned no student data.")
		return
	}
	h.ErrLog.LogUnavailable(w, r, "prediction service call failed", err, "The analysis service is unavailable. Try again shortly.")
}
