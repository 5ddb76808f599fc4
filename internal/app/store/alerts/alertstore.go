// internal/app/store/alerts/alertstore.go
package alertstore

import (
	"context"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store mirrors alert state to the alerts collection so the active list
// survives restarts. The notify channel owns the in-memory list; this store
// is its write-behind history.
type Store struct {
	c *mongo.Collection
}

// New creates a new alert store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("alerts")}
}

// Insert records a newly received alert. Replays of the same alert_id
// overwrite rather than duplicate.
func (s *Store) Insert(ctx context.Context, alert models.Alert) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"alert_id": alert.AlertID}, alert, opts)
	return err
}

// SetAcknowledged flips the acknowledged flag.
func (s *Store) SetAcknowledged(ctx context.Context, alertID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"alert_id": alertID},
		bson.M{"$set": bson.M{"acknowledged": true}})
	return err
}

// SetResolved marks an alert resolved. Resolved alerts stay in the
// collection for history but are excluded from ListActive.
func (s *Store) SetResolved(ctx context.Context, alertID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"alert_id": alertID},
		bson.M{"$set": bson.M{"resolved": true}})
	return err
}

// ListActive returns unresolved alerts, newest first. Used at startup to
// reseed the channel's in-memory list.
func (s *Store) ListActive(ctx context.Context) ([]models.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"resolved": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeResolved deletes resolved alerts older than the retention window and
// returns how many were removed.
func (s *Store) PurgeResolved(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.c.DeleteMany(ctx, bson.M{
		"resolved":  true,
		"timestamp": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
