package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/repository"
)

// ContactService handles contact form submissions
type ContactService interface {
	Submit(ctx context.Context, msg *models.ContactMessage) error
}

type contactService struct {
	repo repository.ContactRepository
	now  func() time.Time
	log  zerolog.Logger
}

func newContactService(repo repository.ContactRepository, log zerolog.Logger, opts ...Option) *contactService {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &contactService{
		repo: repo,
		now:  o.now,
		log:  log.With().Str("service", "contact").Logger(),
	}
}

// NewContactService creates a contact service. Without a repository
// submissions are only logged.
func NewContactService(repo repository.ContactRepository, log zerolog.Logger, opts ...Option) ContactService {
	return newContactService(repo, log, opts...)
}

// Submit stores a validated contact message
func (s *contactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = s.now().UTC()

	if s.repo == nil {
		s.log.Info().
			Str("id", msg.ID).
			Str("name", msg.Name).
			Str("email", msg.Email).
			Int("message_length", len(msg.Message)).
			Msg("Contact form submission received")
		return nil
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	s.log.Info().Str("id", msg.ID).Msg("Contact form submission stored")
	return nil
}
