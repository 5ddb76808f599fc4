package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SampleStudents returns a small roster spanning all three risk categories.
func SampleStudents() []models.StudentRecord {
	return []models.StudentRecord{
		{StudentID: "s1", Name: "Ada Park", RiskScore: 0.15, Grade: "91", Attendance: 0.97},
		{StudentID: "s2", Name: "Ben Ortiz", RiskScore: 0.52, Grade: "74", Attendance: 0.88},
		{StudentID: "s3", Name: "Cleo Marsh", RiskScore: 0.83, Grade: "58", Attendance: 0.71},
	}
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAlert inserts an unresolved alert for the given student.
func (f *Fixtures) CreateAlert(ctx context.Context, studentID, studentName string, score float64) models.Alert {
	f.t.Helper()

	alert := models.Alert{
		AlertID:     uuid.NewString(),
		StudentID:   studentID,
		StudentName: studentName,
		Level:       models.LevelFor(score),
		RiskScore:   score,
		Message:     "risk score increased",
		Timestamp:   time.Now().UTC(),
	}

	_, err := f.db.Collection("alerts").InsertOne(ctx, alert)
	if err != nil {
		f.t.Fatalf("failed to create test alert: %v", err)
	}

	return alert
}

// CreateIntervention inserts an intervention for a viewer and student.
func (f *Fixtures) CreateIntervention(ctx context.Context, viewerID, studentID, ivType, note string) models.Intervention {
	f.t.Helper()

	iv := models.Intervention{
		ID:        primitive.NewObjectID(),
		ViewerID:  viewerID,
		StudentID: studentID,
		Type:      ivType,
		Note:      note,
		Status:    models.InterventionPlanned,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("interventions").InsertOne(ctx, iv)
	if err != nil {
		f.t.Fatalf("failed to create test intervention: %v", err)
	}

	return iv
}

// CreateIntegration inserts a connected integration for a viewer.
func (f *Fixtures) CreateIntegration(ctx context.Context, viewerID, provider, account string, courses []string) models.IntegrationStatus {
	f.t.Helper()

	now := time.Now().UTC()
	status := models.IntegrationStatus{
		ViewerID:    viewerID,
		Provider:    provider,
		Connected:   true,
		Account:     account,
		Courses:     courses,
		ConnectedAt: &now,
	}

	_, err := f.db.Collection("integrations").InsertOne(ctx, status)
	if err != nil {
		f.t.Fatalf("failed to create test integration: %v", err)
	}

	return status
}
