package oauthstate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/riskwatch/internal/app/store/oauthstate"
	"github.com/dalemusser/riskwatch/internal/testutil"
)

func TestStore_SaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewerID := testutil.NewViewerID()
	expires := time.Now().UTC().Add(10 * time.Minute)

	if err := store.Save(ctx, "state-token", viewerID, expires); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, valid, err := store.Validate(ctx, "state-token")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Fatal("Validate: got invalid, want valid")
	}
	if got != viewerID {
		t.Errorf("viewer: got %q, want %q", got, viewerID)
	}

	// One-time use
	_, valid, err = store.Validate(ctx, "state-token")
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if valid {
		t.Error("second Validate: got valid, want invalid")
	}
}

func TestStore_Validate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	expired := time.Now().UTC().Add(-time.Minute)
	if err := store.Save(ctx, "stale-token", testutil.NewViewerID(), expired); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, valid, err := store.Validate(ctx, "stale-token")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("Validate of expired state: got valid, want invalid")
	}
}

func TestStore_Validate_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, valid, err := store.Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("Validate of unknown state: got valid, want invalid")
	}
}
