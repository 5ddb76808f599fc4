// internal/app/store/notifysettings/settingsstore.go
package notifysettingsstore

import (
	"context"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the notification_settings collection.
// One document per viewer; reading a viewer with no saved settings returns
// the defaults, matching how the browser treated a missing localStorage key.
type Store struct {
	c *mongo.Collection
}

// New creates a new notification settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notification_settings")}
}

// Get returns the settings for a viewer, or the defaults when none exist.
func (s *Store) Get(ctx context.Context, viewerID string) (models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := s.c.FindOne(ctx, bson.M{"viewer_id": viewerID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultNotificationSettings()
		settings.ViewerID = viewerID
		return settings, nil
	}
	if err != nil {
		return models.NotificationSettings{}, err
	}
	return settings, nil
}

// Save upserts the settings for a viewer. The whole document is written;
// there are no partial updates.
func (s *Store) Save(ctx context.Context, viewerID string, settings models.NotificationSettings) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"viewer_id":            viewerID,
			"enable_notifications": settings.EnableNotifications,
			"enable_sound":         settings.EnableSound,
			"enable_desktop":       settings.EnableDesktop,
			"risk_threshold":       settings.RiskThreshold,
			"updated_at":           now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"viewer_id": viewerID}, update, opts)
	return err
}

// Delete removes the settings for a viewer.
func (s *Store) Delete(ctx context.Context, viewerID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"viewer_id": viewerID})
	return err
}
