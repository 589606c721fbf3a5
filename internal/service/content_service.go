package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/repository"
)

// ContentService defines the read and write operations for one content type.
// Public reads never fail because of storage: they fall back to the static
// dataset. Admin reads and writes go to storage only.
type ContentService[E models.Entity] interface {
	ListPublished(ctx context.Context) []E
	GetBySlug(ctx context.Context, slug string) (E, error)
	ListSlugs(ctx context.Context) (slugs []string, degraded bool)
	ListAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, entity E, authorID string) (E, error)
	Update(ctx context.Context, id string, entity E) (E, error)
	Delete(ctx context.Context, id string) error
	StorageMode() string
}

// Fallback supplies fresh copies of the static dataset for one content type
type Fallback[E models.Entity] func() []E

// Storage modes reported by StorageMode
const (
	ModeDatabase = "database"
	ModeFallback = "fallback"
)

// Option customizes a content service
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// contentService is the concrete implementation of ContentService
type contentService[E models.Entity] struct {
	repo     repository.ContentRepository[E]
	fallback Fallback[E]
	now      func() time.Time
	log      zerolog.Logger
}

// NewContentService creates a content service. A nil repo puts it in
// fallback mode: reads are served from fallback and writes fail with
// apperrors.ErrStorageUnavailable.
func NewContentService[E models.Entity](repo repository.ContentRepository[E], fallback Fallback[E], log zerolog.Logger, opts ...Option) ContentService[E] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if fallback == nil {
		fallback = func() []E { return nil }
	}

	return &contentService[E]{
		repo:     repo,
		fallback: fallback,
		now:      func() time.Time { return o.now().UTC() },
		log:      log,
	}
}

// StorageMode reports where public reads are served from
func (s *contentService[E]) StorageMode() string {
	if s.repo == nil {
		return ModeFallback
	}
	return ModeDatabase
}

// ListPublished returns published entities, newest first
func (s *contentService[E]) ListPublished(ctx context.Context) []E {
	if s.repo == nil {
		return s.publishedFallback()
	}

	items, err := s.repo.ListPublished(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Listing from storage failed, serving fallback content")
		return s.publishedFallback()
	}
	return items
}

// GetBySlug returns the published entity with the given slug
func (s *contentService[E]) GetBySlug(ctx context.Context, slug string) (E, error) {
	if s.repo == nil {
		return s.fallbackBySlug(slug)
	}

	item, err := s.repo.GetBySlug(ctx, slug)
	if err == nil {
		return item, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		var zero E
		return zero, err
	}

	s.log.Warn().Err(err).Str("slug", slug).Msg("Lookup in storage failed, serving fallback content")
	return s.fallbackBySlug(slug)
}

// ListSlugs returns the slugs of every servable detail page. degraded is
// true when storage is configured but the fallback slugs were returned.
func (s *contentService[E]) ListSlugs(ctx context.Context) ([]string, bool) {
	degraded := false
	if s.repo != nil {
		slugs, err := s.repo.ListSlugs(ctx)
		if err == nil {
			return slugs, false
		}
		s.log.Warn().Err(err).Msg("Listing slugs from storage failed, serving fallback slugs")
		degraded = true
	}

	items := s.publishedFallback()
	slugs := make([]string, 0, len(items))
	for _, item := range items {
		slugs = append(slugs, item.URLSlug())
	}
	return slugs, degraded
}

// ListAll returns every entity, drafts included
func (s *contentService[E]) ListAll(ctx context.Context) ([]E, error) {
	if s.repo == nil {
		return nil, apperrors.ErrStorageUnavailable
	}
	return s.repo.ListAll(ctx)
}

// GetByID returns an entity regardless of publication state
func (s *contentService[E]) GetByID(ctx context.Context, id string) (E, error) {
	if s.repo == nil {
		var zero E
		return zero, apperrors.ErrStorageUnavailable
	}
	return s.repo.GetByID(ctx, id)
}

// Create stores a validated entity on behalf of authorID
func (s *contentService[E]) Create(ctx context.Context, entity E, authorID string) (E, error) {
	var zero E
	if s.repo == nil {
		return zero, apperrors.ErrStorageUnavailable
	}

	if err := s.ensureSlugFree(ctx, entity.URLSlug(), ""); err != nil {
		return zero, err
	}

	now := s.now()
	meta := entity.Meta()
	meta.ID = uuid.NewString()
	meta.AuthorID = authorID
	meta.CreatedAt = now
	meta.UpdatedAt = now
	meta.PublishedAt = nil
	if entity.IsPublished() {
		meta.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", entity.URLSlug(), err)
	}

	s.log.Info().Str("id", meta.ID).Str("slug", entity.URLSlug()).Bool("published", entity.IsPublished()).Msg("Content created")
	return entity, nil
}

// Update replaces the entity stored under id with a validated entity.
// Ownership and creation time are kept. publishedAt is kept while the entity
// stays published, set when it becomes published and cleared otherwise.
// The stored entity is consulted on purpose so unrelated edits to a
// published entity do not move its publication date.
func (s *contentService[E]) Update(ctx context.Context, id string, entity E) (E, error) {
	var zero E
	if s.repo == nil {
		return zero, apperrors.ErrStorageUnavailable
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := s.ensureSlugFree(ctx, entity.URLSlug(), id); err != nil {
		return zero, err
	}

	now := s.now()
	prev := existing.Meta()
	meta := entity.Meta()
	meta.ID = prev.ID
	meta.AuthorID = prev.AuthorID
	meta.CreatedAt = prev.CreatedAt
	meta.UpdatedAt = now

	switch {
	case !entity.IsPublished():
		meta.PublishedAt = nil
	case existing.IsPublished() && prev.PublishedAt != nil:
		meta.PublishedAt = prev.PublishedAt
	default:
		meta.PublishedAt = &now
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", id, err)
	}

	s.log.Info().Str("id", id).Str("slug", entity.URLSlug()).Bool("published", entity.IsPublished()).Msg("Content updated")
	return entity, nil
}

// Delete removes an entity permanently
func (s *contentService[E]) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return apperrors.ErrStorageUnavailable
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("id", id).Msg("Content deleted")
	return nil
}

func (s *contentService[E]) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	if taken {
		return apperrors.ErrConflict
	}
	return nil
}

func (s *contentService[E]) publishedFallback() []E {
	all := s.fallback()
	items := make([]E, 0, len(all))
	for _, item := range all {
		if item.IsPublished() {
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Meta().DisplayTime().After(items[j].Meta().DisplayTime())
	})
	return items
}

func (s *contentService[E]) fallbackBySlug(slug string) (E, error) {
	for _, item := range s.publishedFallback() {
		if item.URLSlug() == slug {
			return item, nil
		}
	}
	var zero E
	return zero, apperrors.ErrNotFound
}
