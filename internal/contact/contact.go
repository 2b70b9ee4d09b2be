package contact

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields is what a visitor submits through the contact form.
type Fields struct {
	Name    string `json:"name" form:"name" bson:"name" validate:"required"`
	Email   string `json:"email" form:"email" bson:"email" validate:"required"`
	Subject string `json:"subject,omitempty" form:"subject" bson:"subject,omitempty"`
	Message string `json:"message" form:"message" bson:"message" validate:"required"`
}

type Message struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Fields    `bson:",inline"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, fields Fields) (Message, error)
}

// MemoryStore keeps contact messages in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, fields Fields) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Message{
		ID:        primitive.NewObjectID(),
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	return m, nil
}

// Messages returns a copy of the stored messages in arrival order.
func (s *MemoryStore) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Message(nil), s.messages...)
}
