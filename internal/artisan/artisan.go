package artisan

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attributes are the caller-supplied fields of an artisan profile.
type Attributes struct {
	FullName       string   `json:"fullName" bson:"fullName" validate:"required"`
	Phone          string   `json:"phone" bson:"phone" validate:"required"`
	Email          string   `json:"email" bson:"email" validate:"required"`
	State          string   `json:"state" bson:"state" validate:"required"`
	City           string   `json:"city" bson:"city" validate:"required"`
	Specialty      string   `json:"specialty" bson:"specialty" validate:"required"`
	Experience     string   `json:"experience,omitempty" bson:"experience,omitempty"`
	MinPrice       *float64 `json:"minPrice,omitempty" bson:"minPrice,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty" bson:"maxPrice,omitempty"`
	ProfilePicture string   `json:"profilePicture" bson:"profilePicture"`
}

// Artisan is a stored profile. Records are never mutated after creation.
type Artisan struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Attributes `bson:",inline"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// Filter selects artisans by exact, case-sensitive equality. Empty fields
// are ignored, so the zero Filter matches everything.
type Filter struct {
	State string
	City  string
}

// Matches reports whether a satisfies every non-empty field of f.
func (f Filter) Matches(a Artisan) bool {
	if f.State != "" && a.State != f.State {
		return false
	}
	if f.City != "" && a.City != f.City {
		return false
	}
	return true
}

// Repository persists artisans.
type Repository interface {
	Create(ctx context.Context, attrs Attributes) (Artisan, error)
	Find(ctx context.Context, filter Filter) ([]Artisan, error)
}
