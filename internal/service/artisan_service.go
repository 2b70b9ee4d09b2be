package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"artisan-directory/internal/artisan"
	"artisan-directory/internal/events"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// Publisher announces domain events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, key string, data any) error
}

// Registration is a submitted artisan profile as received from a form or a
// JSON body. Prices are kept as text until Register parses them.
type Registration struct {
	FullName   string `form:"fullName" json:"fullName" validate:"required"`
	Phone      string `form:"phone" json:"phone" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required"`
	State      string `form:"state" json:"state" validate:"required"`
	City       string `form:"city" json:"city" validate:"required"`
	Specialty  string `form:"specialty" json:"specialty" validate:"required"`
	Experience Text   `form:"experience" json:"experience"`
	MinPrice   Text   `form:"minPrice" json:"minPrice"`
	MaxPrice   Text   `form:"maxPrice" json:"maxPrice"`

	// Image holds the uploaded profile picture. nil means no file was sent.
	Image []byte `form:"-" json:"-"`
}

// Text is a scalar field that JSON clients may send either as a string or
// as a number. Numbers keep their literal spelling.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

type ArtisanService struct {
	repo      artisan.Repository
	uploader  Uploader
	publisher Publisher
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewArtisanService(repo artisan.Repository, uploader Uploader, publisher Publisher, logger *zap.Logger) *ArtisanService {
	return &ArtisanService{
		repo:      repo,
		uploader:  uploader,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
	}
}

// Register validates reg, uploads its image if one was sent and stores the
// artisan. Nothing is written when validation or the upload fails.
func (s *ArtisanService) Register(ctx context.Context, reg Registration) (artisan.Artisan, error) {
	attrs, err := s.attributes(reg)
	if err != nil {
		return artisan.Artisan{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	if reg.Image != nil {
		url, err := s.uploader.Upload(ctx, reg.Image)
		if err != nil {
			return artisan.Artisan{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
		}
		attrs.ProfilePicture = url
	}

	created, err := s.repo.Create(ctx, attrs)
	if err != nil {
		return artisan.Artisan{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	if err := s.publisher.Publish(ctx, events.ArtisanRegistered, created); err != nil {
		s.logger.Warn("publish artisan event",
			zap.String("artisan_id", created.ID.Hex()),
			zap.Error(err))
	}
	return created, nil
}

// List returns every artisan in store order.
func (s *ArtisanService) List(ctx context.Context) ([]artisan.Artisan, error) {
	out, err := s.repo.Find(ctx, artisan.Filter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return out, nil
}

// Search returns artisans whose state and city equal the given values
// exactly. Empty values do not constrain the result.
func (s *ArtisanService) Search(ctx context.Context, filter artisan.Filter) ([]artisan.Artisan, error) {
	out, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	return out, nil
}

func (s *ArtisanService) attributes(reg Registration) (artisan.Attributes, error) {
	verr := &ValidationError{}
	if err := collect(s.validate.Struct(reg), verr); err != nil {
		return artisan.Attributes{}, err
	}
	minPrice, ok := parsePrice(string(reg.MinPrice))
	if !ok {
		verr.add("minPrice")
	}
	maxPrice, ok := parsePrice(string(reg.MaxPrice))
	if !ok {
		verr.add("maxPrice")
	}
	if !verr.empty() {
		return artisan.Attributes{}, verr
	}

	return artisan.Attributes{
		FullName:   reg.FullName,
		Phone:      reg.Phone,
		Email:      reg.Email,
		State:      reg.State,
		City:       reg.City,
		Specialty:  reg.Specialty,
		Experience: string(reg.Experience),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}, nil
}

// parsePrice returns nil for an empty value. NaN and infinities are
// rejected since they cannot be encoded back to JSON. The ordering of min
// and max is not checked.
func parsePrice(raw string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}
