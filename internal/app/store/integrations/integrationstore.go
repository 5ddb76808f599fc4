// internal/app/store/integrations/integrationstore.go
package integrationstore

import (
	"context"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the integrations collection: one document per
// viewer and provider recording connection status.
type Store struct {
	c *mongo.Collection
}

// New creates a new integration store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("integrations")}
}

// List returns the status of every provider for a viewer. Providers with no
// document are reported disconnected, so callers always see all three.
func (s *Store) List(ctx context.Context, viewerID string) (map[string]models.IntegrationStatus, error) {
	out := make(map[string]models.IntegrationStatus, len(models.AllProviders))
	for _, p := range models.AllProviders {
		out[p] = models.IntegrationStatus{ViewerID: viewerID, Provider: p}
	}

	cur, err := s.c.Find(ctx, bson.M{"viewer_id": viewerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.IntegrationStatus
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		out[doc.Provider] = doc
	}
	return out, nil
}

// Connect upserts a provider as connected with the courses it exposed.
func (s *Store) Connect(ctx context.Context, viewerID, provider, account string, courses []string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"viewer_id":    viewerID,
			"provider":     provider,
			"connected":    true,
			"account":      account,
			"courses":      courses,
			"connected_at": now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"viewer_id": viewerID, "provider": provider}, update, opts)
	return err
}

// Disconnect marks a provider disconnected and clears what it exposed.
func (s *Store) Disconnect(ctx context.Context, viewerID, provider string) error {
	update := bson.M{
		"$set": bson.M{
			"connected": false,
		},
		"$unset": bson.M{
			"account":      "",
			"courses":      "",
			"connected_at": "",
		},
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"viewer_id": viewerID, "provider": provider}, update)
	return err
}
