// internal/app/predict/client.go

// Package predict is the client for the upstream prediction service. It
// uploads CSV files for analysis, fetches sample predictions, and normalizes
// the response into canonical StudentRecords. CSV parsing itself and the
// risk-scoring model are entirely the upstream service's job; this client
// only extracts the student array and cleans up identity fields.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNoData is returned when the response parses but carries neither a
// "students" nor a "predictions" array. Callers surface it as "no data",
// not as a server fault.
var ErrNoData = errors.New("predict: response contained no student data")

// Client talks to the prediction service.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// New creates a prediction client for the given base URL.
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
		log:     logger,
	}
}

// Analyze uploads a CSV file and returns the predicted student records in
// server response order.
func (c *Client) Analyze(ctx context.Context, filename string, csv io.Reader) ([]models.StudentRecord, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, csv); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

// Sample fetches the built-in sample predictions (the "load sample data"
// action).
func (c *Client) Sample(ctx context.Context) ([]models.StudentRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sample", nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]models.StudentRecord, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("prediction service error",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("prediction service returned status %d", resp.StatusCode)
	}

	return parseResponse(body)
}

// parseResponse accepts both response shapes the service has used over time:
// {"students": [...]} and {"predictions": [...]}.
func parseResponse(body []byte) ([]models.StudentRecord, error) {
	var payload struct {
		Students    []rawStudent `json:"students"`
		Predictions []rawStudent `json:"predictions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("predict: malformed response: %w", err)
	}

	rows := payload.Students
	if rows == nil {
		rows = payload.Predictions
	}
	if rows == nil {
		return nil, ErrNoData
	}

	students := make([]models.StudentRecord, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.normalize())
	}
	return students, nil
}

// rawStudent mirrors one upstream row before normalization. The identity
// field arrives under three different names depending on the producer;
// flexID additionally tolerates numeric ids.
type rawStudent struct {
	StudentID flexID  `json:"student_id"`
	LowerID   flexID  `json:"id"`
	UpperID   flexID  `json:"ID"`
	Name      string  `json:"name"`
	RiskScore float64 `json:"risk_score"`
	Grade     string  `json:"grade"`

	Attendance float64        `json:"attendance"`
	Extras     map[string]any `json:"extras"`
}

// normalize folds the duck-typed identity fields into the canonical
// StudentID and clamps the risk score into [0,1]. This is the single place
// in the codebase that knows about the upstream naming mess.
func (r rawStudent) normalize() models.StudentRecord {
	id := string(r.StudentID)
	if id == "" {
		id = string(r.LowerID)
	}
	if id == "" {
		id = string(r.UpperID)
	}

	score := r.RiskScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return models.StudentRecord{
		StudentID:  strings.TrimSpace(id),
		Name:       strings.TrimSpace(r.Name),
		RiskScore:  score,
		Grade:      r.Grade,
		Attendance: r.Attendance,
		Extras:     r.Extras,
	}
}

// flexID decodes a JSON string or number into a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// ParseID is exposed for callers that receive loose ids outside the predict
// payload (query params, push messages) and want the same cleanup.
func ParseID(candidates ...string) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return v
		}
	}
	return ""
}

// FormatScore renders a risk score the way the dashboard displays it.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
