package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/riskwatch/internal/app/features/errors"
	"go.uber.org/zap"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestLogServerError(t *testing.T) {
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students", nil)

	errLog.LogServerError(rec, req, "find students failed", errors.New("boom"), "A database error occurred.")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if msg := decodeError(t, rec); msg != "A database error occurred." {
		t.Errorf("error message: got %q", msg)
	}
}

func TestLogBadRequest(t *testing.T) {
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)

	errLog.LogBadRequest(rec, req, "parse form failed", errors.New("bad form"), "Invalid form data.")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Invalid form data." {
		t.Errorf("error message: got %q", msg)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("body: got %v", body)
	}
}
