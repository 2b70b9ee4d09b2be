package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"artisan-directory/internal/contact"
)

const contactCollection = "contacts"

type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(contactCollection)}
}

func (s *ContactStore) Create(ctx context.Context, fields contact.Fields) (contact.Message, error) {
	m := contact.Message{
		ID:        primitive.NewObjectID(),
		Fields:    fields,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return contact.Message{}, fmt.Errorf("insert contact message: %w", err)
	}
	return m, nil
}
