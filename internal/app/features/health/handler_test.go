package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/riskwatch/internal/app/features/health"
	"github.com/dalemusser/riskwatch/internal/app/notify"
	"github.com/dalemusser/riskwatch/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_DatabaseConnected(t *testing.T) {
	// Set up a test database to get a connected client
	db := testutil.SetupTestDB(t)
	client := db.Client()
	logger := zap.NewNop()

	channel := notify.NewChannel(notify.Config{
		StreamURL: "ws://localhost:9/alerts/stream",
		Logger:    logger,
	})
	defer channel.Close()

	handler := health.NewHandler(client, channel, logger)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", contentType, "application/json")
	}

	var response struct {
		Status        string `json:"status"`
		Database      string `json:"database"`
		Notifications *struct {
			Status       string `json:"status"`
			ActiveAlerts int    `json:"active_alerts"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("status: got %q, want %q", response.Status, "ok")
	}
	if response.Database != "connected" {
		t.Errorf("database: got %q, want %q", response.Database, "connected")
	}
	if response.Notifications == nil {
		t.Fatal("notifications: missing from response")
	}
	if response.Notifications.Status != string(notify.StatusDisconnected) {
		t.Errorf("notifications status: got %q, want %q", response.Notifications.Status, notify.StatusDisconnected)
	}
}
