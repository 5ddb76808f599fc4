package notifysettingsstore_test

import (
	"testing"

	notifysettingsstore "github.com/dalemusser/riskwatch/internal/app/store/notifysettings"
	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/dalemusser/riskwatch/internal/testutil"
)

func TestStore_Get_NoSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifysettingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewerID := testutil.NewViewerID()

	settings, err := store.Get(ctx, viewerID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Should return defaults
	if settings.ViewerID != viewerID {
		t.Errorf("ViewerID: got %q, want %q", settings.ViewerID, viewerID)
	}
	if !settings.EnableNotifications {
		t.Error("EnableNotifications: got false, want default true")
	}
	if settings.RiskThreshold != models.DefaultRiskThreshold {
		t.Errorf("RiskThreshold: got %v, want default %v", settings.RiskThreshold, models.DefaultRiskThreshold)
	}
}

func TestStore_Save_NewSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifysettingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewerID := testutil.NewViewerID()

	settings := models.NotificationSettings{
		EnableNotifications: false,
		EnableSound:         true,
		EnableDesktop:       false,
		RiskThreshold:       0.55,
	}

	if err := store.Save(ctx, viewerID, settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := store.Get(ctx, viewerID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if saved.EnableNotifications {
		t.Error("EnableNotifications: got true, want false")
	}
	if !saved.EnableSound {
		t.Error("EnableSound: got false, want true")
	}
	if saved.RiskThreshold != 0.55 {
		t.Errorf("RiskThreshold: got %v, want 0.55", saved.RiskThreshold)
	}
	if saved.UpdatedAt == nil {
		t.Error("UpdatedAt: got nil, want set")
	}
}

func TestStore_Save_UpdateSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifysettingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewerID := testutil.NewViewerID()

	first := models.DefaultNotificationSettings()
	if err := store.Save(ctx, viewerID, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := first
	second.RiskThreshold = 0.9
	second.EnableSound = false
	if err := store.Save(ctx, viewerID, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	saved, err := store.Get(ctx, viewerID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.RiskThreshold != 0.9 {
		t.Errorf("RiskThreshold: got %v, want 0.9", saved.RiskThreshold)
	}
	if saved.EnableSound {
		t.Error("EnableSound: got true, want false")
	}

	// Upsert must not create a second document
	count, err := db.Collection("notification_settings").CountDocuments(ctx, map[string]any{"viewer_id": viewerID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("documents for viewer: got %d, want 1", count)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notifysettingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewerID := testutil.NewViewerID()

	settings := models.DefaultNotificationSettings()
	settings.RiskThreshold = 0.3
	if err := store.Save(ctx, viewerID, settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, viewerID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Back to defaults after delete
	saved, err := store.Get(ctx, viewerID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.RiskThreshold != models.DefaultRiskThreshold {
		t.Errorf("RiskThreshold after delete: got %v, want default %v", saved.RiskThreshold, models.DefaultRiskThreshold)
	}
}
