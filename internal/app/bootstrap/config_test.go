package bootstrap

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabase:     "riskwatch",
		PredictBaseURL:    "http://localhost:8001/api",
		AlertStreamURL:    "ws://localhost:8001/api/alerts/stream",
		AlertUserID:       "riskwatch",
		ReconnectInterval: 5 * time.Second,
		ReconnectAttempts: 5,
		SessionKey:        "test-session-key",
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed on valid config: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"

	err := ValidateConfig(nil, cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for non-mongodb URI")
	}
}

func TestValidateConfig_BadStreamURL(t *testing.T) {
	cfg := validAppConfig()
	cfg.AlertStreamURL = "http://localhost:8001/api/alerts/stream"

	err := ValidateConfig(nil, cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for non-websocket stream URL")
	}
	if !strings.Contains(err.Error(), "alert_stream_url") {
		t.Errorf("error should name alert_stream_url, got: %v", err)
	}
}

func TestValidateConfig_BadReconnectTuning(t *testing.T) {
	cfg := validAppConfig()
	cfg.ReconnectInterval = 0
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected error for zero reconnect interval")
	}

	cfg = validAppConfig()
	cfg.ReconnectAttempts = -1
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected error for negative reconnect attempts")
	}
}
