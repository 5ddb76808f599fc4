package alertstore_test

import (
	"testing"
	"time"

	alertstore "github.com/dalemusser/riskwatch/internal/app/store/alerts"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/dalemusser/riskwatch/internal/testutil"
)

func TestStore_Insert_Replay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := alertstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alert := models.Alert{
		AlertID:     "a1",
		StudentID:   "s3",
		StudentName: "Cleo Marsh",
		Level:       models.AlertHigh,
		RiskScore:   0.83,
		Message:     "risk score increased",
		Timestamp:   time.Now().UTC(),
	}

	if err := store.Insert(ctx, alert); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Replay of the same alert id must not duplicate
	alert.RiskScore = 0.85
	if err := store.Insert(ctx, alert); err != nil {
		t.Fatalf("replay Insert failed: %v", err)
	}

	count, err := db.Collection("alerts").CountDocuments(ctx, map[string]any{"alert_id": "a1"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("documents for alert: got %d, want 1", count)
	}
}

func TestStore_ListActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := alertstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := models.Alert{AlertID: "a1", StudentID: "s1", Level: models.AlertMedium, RiskScore: 0.6, Timestamp: base.Add(-time.Hour)}
	newer := models.Alert{AlertID: "a2", StudentID: "s2", Level: models.AlertHigh, RiskScore: 0.8, Timestamp: base}
	done := models.Alert{AlertID: "a3", StudentID: "s3", Level: models.AlertHigh, RiskScore: 0.75, Timestamp: base.Add(-time.Minute), Resolved: true}

	for _, a := range []models.Alert{older, newer, done} {
		if err := store.Insert(ctx, a); err != nil {
			t.Fatalf("Insert %s failed: %v", a.AlertID, err)
		}
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive: got %d alerts, want 2", len(active))
	}
	// Newest first
	if active[0].AlertID != "a2" || active[1].AlertID != "a1" {
		t.Errorf("ListActive order: got [%s %s], want [a2 a1]", active[0].AlertID, active[1].AlertID)
	}
}

func TestStore_SetAcknowledged_SetResolved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := alertstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alert := models.Alert{AlertID: "a1", StudentID: "s1", Level: models.AlertHigh, RiskScore: 0.8, Timestamp: time.Now().UTC()}
	if err := store.Insert(ctx, alert); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.SetAcknowledged(ctx, "a1"); err != nil {
		t.Fatalf("SetAcknowledged failed: %v", err)
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 1 || !active[0].Acknowledged {
		t.Fatalf("after acknowledge: got %d active, acknowledged=%v; want 1 active acknowledged", len(active), len(active) == 1 && active[0].Acknowledged)
	}

	if err := store.SetResolved(ctx, "a1"); err != nil {
		t.Fatalf("SetResolved failed: %v", err)
	}

	active, err = store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("after resolve: got %d active alerts, want 0", len(active))
	}

	// Resolved alert kept for history
	count, err := db.Collection("alerts").CountDocuments(ctx, map[string]any{"alert_id": "a1"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("history documents: got %d, want 1", count)
	}
}

func TestStore_PurgeResolved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := alertstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC()
	oldResolved := models.Alert{AlertID: "a1", StudentID: "s1", Level: models.AlertHigh, RiskScore: 0.8, Timestamp: base.Add(-48 * time.Hour), Resolved: true}
	newResolved := models.Alert{AlertID: "a2", StudentID: "s2", Level: models.AlertMedium, RiskScore: 0.6, Timestamp: base.Add(-time.Hour), Resolved: true}
	oldActive := models.Alert{AlertID: "a3", StudentID: "s3", Level: models.AlertHigh, RiskScore: 0.9, Timestamp: base.Add(-48 * time.Hour)}

	for _, a := range []models.Alert{oldResolved, newResolved, oldActive} {
		if err := store.Insert(ctx, a); err != nil {
			t.Fatalf("Insert %s failed: %v", a.AlertID, err)
		}
	}

	purged, err := store.PurgeResolved(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("PurgeResolved failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged: got %d, want 1", purged)
	}

	// Recent resolved and unresolved alerts survive regardless of age
	count, err := db.Collection("alerts").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining documents: got %d, want 2", count)
	}
}
