// internal/app/notify/actions.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoActions is returned by Acknowledge/Resolve when no Actions client was
// configured.
var ErrNoActions = errors.New("notify: no alert API configured")

// Acknowledge persists the acknowledgment upstream, then flips the local
// flag; the alert stays in the active list. On API failure local state is
// untouched and the error is returned (nothing was changed optimistically,
// so there is nothing to roll back).
func (c *Channel) Acknowledge(ctx context.Context, alertID string) error {
	if c.actions == nil {
		return ErrNoActions
	}
	if err := c.actions.Acknowledge(ctx, alertID); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.alerts {
		if c.alerts[i].AlertID == alertID {
			c.alerts[i].Acknowledged = true
			break
		}
	}
	c.mu.Unlock()

	if c.history != nil {
		if err := c.history.SetAcknowledged(ctx, alertID); err != nil {
			c.log.Warn("alert history acknowledge failed", zap.String("alert_id", alertID), zap.Error(err))
		}
	}
	return nil
}

// Resolve persists the resolution upstream, then removes the alert from the
// active list. On API failure local state is untouched.
func (c *Channel) Resolve(ctx context.Context, alertID string) error {
	if c.actions == nil {
		return ErrNoActions
	}
	if err := c.actions.Resolve(ctx, alertID); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.alerts {
		if c.alerts[i].AlertID == alertID {
			c.alerts = append(c.alerts[:i:i], c.alerts[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if c.history != nil {
		if err := c.history.SetResolved(ctx, alertID); err != nil {
			c.log.Warn("alert history resolve failed", zap.String("alert_id", alertID), zap.Error(err))
		}
	}
	return nil
}

// Simulate fabricates an alert locally and runs it through the normal
// ingestion path, bypassing the network. Demo and test tooling only; this is
// the one place alerts are created client-side.
func (c *Channel) Simulate(studentName string, riskScore float64) models.Alert {
	alert := models.Alert{
		AlertID:     "sim-" + uuid.NewString(),
		StudentID:   "sim-student",
		StudentName: studentName,
		Level:       models.LevelFor(riskScore),
		RiskScore:   riskScore,
		Message:     fmt.Sprintf("Simulated alert: %s risk score %.2f", studentName, riskScore),
		Timestamp:   time.Now().UTC(),

		InterventionRecommended: riskScore >= models.HighCutoff,
	}
	c.handleStudentAlert(alert)
	return alert
}

// HTTPActions talks to the prediction service's alert action endpoints:
// POST {base}/alerts/acknowledge and POST {base}/alerts/resolve, each taking
// {alert_id, user_id} and answering 2xx on success.
type HTTPActions struct {
	BaseURL string
	UserID  string
	Client  *http.Client
}

// NewHTTPActions builds an Actions client for the given base URL.
func NewHTTPActions(baseURL, userID string) *HTTPActions {
	return &HTTPActions{
		BaseURL: baseURL,
		UserID:  userID,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type actionRequest struct {
	AlertID string `json:"alert_id"`
	UserID  string `json:"user_id"`
}

// Acknowledge implements Actions.
func (a *HTTPActions) Acknowledge(ctx context.Context, alertID string) error {
	return a.post(ctx, "/alerts/acknowledge", alertID)
}

// Resolve implements Actions.
func (a *HTTPActions) Resolve(ctx context.Context, alertID string) error {
	return a.post(ctx, "/alerts/resolve", alertID)
}

func (a *HTTPActions) post(ctx context.Context, path, alertID string) error {
	body, err := json.Marshal(actionRequest{AlertID: alertID, UserID: a.UserID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert API %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
