// internal/app/features/interventions/handler.go
package interventions

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	interventionstore "github.com/dalemusser/riskwatch/internal/app/store/interventions"
	"github.com/dalemusser/riskwatch/internal/app/system/htmlsanitize"
	"github.com/dalemusser/riskwatch/internal/app/system/normalize"
	"github.com/dalemusser/riskwatch/internal/app/system/viewer"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the intervention log endpoints. Everything is scoped to the
// viewer session and the student in the URL.
type Handler struct {
	Store  *interventionstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an interventions Handler.
func NewHandler(store *interventionstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}

// createRequest is the body for POST.
type createRequest struct {
	Type   string `json:"type"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

// updateRequest is the body for PATCH. Empty fields are left unchanged.
type updateRequest struct {
	Note   string `json:"note"`
	Status string `json:"status"`
}

// HandleCreate handles POST /students/{studentID}/interventions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}
	studentID := chi.URLParam(r, "studentID")

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse intervention body failed", err, "Invalid JSON body.")
		return
	}
	if req.Type == "" {
		h.ErrLog.LogBadRequest(w, r, "intervention missing type", nil, "An intervention type is required.")
		return
	}

	status := normalize.Status(req.Status)
	if status == "" {
		status = models.InterventionPlanned
	}
	if !models.ValidInterventionStatus(status) {
		h.ErrLog.LogBadRequest(w, r, "invalid intervention status", nil, "status must be planned, active, or completed.")
		return
	}

	iv, err := h.Store.Create(r.Context(), models.Intervention{
		ViewerID:  viewerID,
		StudentID: studentID,
		Type:      req.Type,
		Note:      htmlsanitize.Sanitize(req.Note),
		Status:    status,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create intervention failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("intervention logged",
		zap.String("student_id", studentID),
		zap.String("type", iv.Type))

	uierrors.WriteJSON(w, http.StatusCreated, iv)
}

// HandleList handles GET /students/{studentID}/interventions.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}
	studentID := chi.URLParam(r, "studentID")

	list, err := h.Store.ListForStudent(r.Context(), viewerID, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list interventions failed", err, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Intervention{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"interventions": list})
}

// HandleUpdate handles PATCH /students/{studentID}/interventions/{interventionID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "interventionID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad intervention id", err, "Invalid intervention id.")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse intervention body failed", err, "Invalid JSON body.")
		return
	}

	status := normalize.Status(req.Status)
	if status != "" && !models.ValidInterventionStatus(status) {
		h.ErrLog.LogBadRequest(w, r, "invalid intervention status", nil, "status must be planned, active, or completed.")
		return
	}

	err = h.Store.UpdateStatusAndNote(r.Context(), viewerID, id, status, htmlsanitize.Sanitize(req.Note))
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "intervention not found for update", "Intervention not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update intervention failed", err, "A database error occurred.")
		return
	}

	updated, err := h.Store.Get(r.Context(), viewerID, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload intervention failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /students/{studentID}/interventions/{interventionID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	viewerID := viewer.ID(r)
	if viewerID == "" {
		uierrors.WriteError(w, http.StatusUnauthorized, "No viewer session.")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "interventionID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad intervention id", err, "Invalid intervention id.")
		return
	}

	err = h.Store.Delete(r.Context(), viewerID, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "intervention not found for delete", "Intervention not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete intervention failed", err, "A database error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
