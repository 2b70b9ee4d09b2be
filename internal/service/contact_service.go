package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"artisan-directory/internal/contact"
	"artisan-directory/internal/events"
)

type ContactService struct {
	repo      contact.Repository
	publisher Publisher
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewContactService(repo contact.Repository, publisher Publisher, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
	}
}

func (s *ContactService) Submit(ctx context.Context, fields contact.Fields) (contact.Message, error) {
	verr := &ValidationError{}
	if err := collect(s.validate.Struct(fields), verr); err != nil {
		return contact.Message{}, fmt.Errorf("%w: %w", ErrContactFailed, err)
	}
	if !verr.empty() {
		return contact.Message{}, fmt.Errorf("%w: %w", ErrInvalidContact, verr)
	}

	msg, err := s.repo.Create(ctx, fields)
	if err != nil {
		return contact.Message{}, fmt.Errorf("%w: %w", ErrContactFailed, err)
	}
	if err := s.publisher.Publish(ctx, events.ContactReceived, msg); err != nil {
		s.logger.Warn("publish contact event",
			zap.String("contact_id", msg.ID.Hex()),
			zap.Error(err))
	}
	return msg, nil
}
