// internal/app/store/interventions/interventionstore.go
package interventionstore

import (
	"context"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the interventions collection. Records are scoped
// to a viewer and a student; the browser original kept one localStorage blob
// per student with the same shape.
type Store struct {
	c *mongo.Collection
}

// New creates a new intervention store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("interventions")}
}

// Create inserts a new intervention record and returns it with its ID set.
func (s *Store) Create(ctx context.Context, iv models.Intervention) (models.Intervention, error) {
	iv.ID = primitive.NewObjectID()
	iv.CreatedAt = time.Now().UTC()
	iv.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, iv); err != nil {
		return models.Intervention{}, err
	}
	return iv, nil
}

// ListForStudent returns a viewer's interventions for one student, newest
// first.
func (s *Store) ListForStudent(ctx context.Context, viewerID, studentID string) ([]models.Intervention, error) {
	filter := bson.M{"viewer_id": viewerID, "student_id": studentID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Intervention
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one intervention by id, scoped to the viewer.
func (s *Store) Get(ctx context.Context, viewerID string, id primitive.ObjectID) (models.Intervention, error) {
	var iv models.Intervention
	err := s.c.FindOne(ctx, bson.M{"_id": id, "viewer_id": viewerID}).Decode(&iv)
	if err != nil {
		return models.Intervention{}, err
	}
	return iv, nil
}

// UpdateStatusAndNote updates an intervention's status and note. Empty
// arguments leave the corresponding field unchanged.
func (s *Store) UpdateStatusAndNote(ctx context.Context, viewerID string, id primitive.ObjectID, status, note string) error {
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	if status != "" {
		set["status"] = status
	}
	if note != "" {
		set["note"] = note
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "viewer_id": viewerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes one intervention, scoped to the viewer.
func (s *Store) Delete(ctx context.Context, viewerID string, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "viewer_id": viewerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
