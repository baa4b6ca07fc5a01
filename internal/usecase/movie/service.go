package movie

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Service handles catalog CRUD and keeps the search index in step.
type Service struct {
	repo Repository
	sync Sync
	now  func() time.Time
}

// New creates a movie service.
func New(repo Repository, sync Sync) *Service {
	return &Service{repo: repo, sync: sync, now: time.Now}
}

// Create stores a new record under a fresh id and indexes it.
func (s *Service) Create(ctx context.Context, m *dommovie.Movie) (*dommovie.Movie, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMovie, err)
	}

	m.ID = uuid.NewString()
	if err := s.checkSlug(ctx, m); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save movie: %w", err)
	}

	s.sync.Upsert(ctx, m)
	return m, nil
}

// Update replaces the record with id, keeping its creation time, and reindexes it.
func (s *Service) Update(ctx context.Context, id string, m *dommovie.Movie) (*dommovie.Movie, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMovie, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}

	m.ID = id
	if err := s.checkSlug(ctx, m); err != nil {
		return nil, err
	}

	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save movie: %w", err)
	}

	s.sync.Upsert(ctx, m)
	return m, nil
}

// Get returns a record by id.
func (s *Service) Get(ctx context.Context, id string) (*dommovie.Movie, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// Delete removes a record and its index document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	s.sync.Remove(ctx, id)
	return nil
}

// checkSlug rejects a slug already owned by a different record. Some
// dialects would otherwise resolve the conflict by overwriting that record.
func (s *Service) checkSlug(ctx context.Context, m *dommovie.Movie) error {
	other, err := s.repo.GetBySlug(ctx, m.Slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check slug: %w", err)
	case other.ID != m.ID:
		return fmt.Errorf("movie slug %q: %w", m.Slug, domain.ErrAlreadyExists)
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewInvalidParam("id", "must be a UUID")
	}
	return nil
}
