package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"artisan-directory/internal/artisan"
)

const artisanCollection = "artisans"

// ArtisanStore is the MongoDB-backed artisan.Repository.
type ArtisanStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewArtisanStore(db *mongo.Database) *ArtisanStore {
	return &ArtisanStore{
		coll: db.Collection(artisanCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new document. The identifier and timestamp are assigned
// here so the returned value matches what was written.
func (s *ArtisanStore) Create(ctx context.Context, attrs artisan.Attributes) (artisan.Artisan, error) {
	a := artisan.Artisan{
		ID:         primitive.NewObjectID(),
		Attributes: attrs,
		// BSON dates carry millisecond precision.
		CreatedAt: s.now().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return artisan.Artisan{}, fmt.Errorf("insert artisan: %w", err)
	}
	return a, nil
}

// Find returns matching artisans in natural collection order.
func (s *ArtisanStore) Find(ctx context.Context, filter artisan.Filter) ([]artisan.Artisan, error) {
	cursor, err := s.coll.Find(ctx, artisanFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("find artisans: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]artisan.Artisan, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode artisans: %w", err)
	}
	return out, nil
}

func artisanFilter(f artisan.Filter) bson.D {
	query := bson.D{}
	if f.State != "" {
		query = append(query, bson.E{Key: "state", Value: f.State})
	}
	if f.City != "" {
		query = append(query, bson.E{Key: "city", Value: f.City})
	}
	return query
}
