package movie

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// --- Mocks ---

type mockRepo struct {
	movies  map[string]dommovie.Movie
	saveErr error
	saved   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{movies: make(map[string]dommovie.Movie)}
}

func (m *mockRepo) Save(_ context.Context, mv *dommovie.Movie) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	m.movies[mv.ID] = *mv
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (*dommovie.Movie, error) {
	mv, ok := m.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &mv, nil
}

func (m *mockRepo) GetBySlug(_ context.Context, slug string) (*dommovie.Movie, error) {
	for _, mv := range m.movies {
		if mv.Slug == slug {
			return &mv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.movies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.movies, id)
	return nil
}

type mockSync struct {
	upserted []string
	removed  []string
}

func (m *mockSync) Upsert(_ context.Context, mv *dommovie.Movie) { m.upserted = append(m.upserted, mv.ID) }
func (m *mockSync) Remove(_ context.Context, id string) { m.removed = append(m.removed, id) }

// --- Helpers ---

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockRepo, *mockSync) {
	repo := newMockRepo()
	sync := &mockSync{}
	svc := New(repo, sync)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, sync
}

func endgame() *dommovie.Movie {
	return &dommovie.Movie{
		Slug:  "avengers-endgame",
		Name:  "Avengers: Endgame",
		Year:  2019,
		Type:  dommovie.TypeSingle,
		Actor: []string{"Robert Downey Jr."},
	}
}

// --- Tests ---

func TestCreate(t *testing.T) {
	svc, repo, sync := newTestService()

	m, err := svc.Create(context.Background(), endgame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == "" || validateID(m.ID) != nil {
		t.Errorf("expected a generated UUID, got %q", m.ID)
	}
	if !m.CreatedAt.Equal(fixedNow) || !m.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps = %v / %v", m.CreatedAt, m.UpdatedAt)
	}
	if _, ok := repo.movies[m.ID]; !ok {
		t.Error("record not saved")
	}
	if len(sync.upserted) != 1 || sync.upserted[0] != m.ID {
		t.Errorf("upserted = %v", sync.upserted)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc, repo, sync := newTestService()

	bad := endgame()
	bad.Slug = "Not A Slug"
	_, err := svc.Create(context.Background(), bad)
	if !errors.Is(err, domain.ErrInvalidMovie) {
		t.Fatalf("expected ErrInvalidMovie, got %v", err)
	}
	if repo.saved != 0 || len(sync.upserted) != 0 {
		t.Error("invalid movie must not be saved or indexed")
	}
}

func TestCreate_SlugTaken(t *testing.T) {
	svc, _, sync := newTestService()
	if _, err := svc.Create(context.Background(), endgame()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(context.Background(), endgame())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if len(sync.upserted) != 1 {
		t.Errorf("upserted = %v, want only the seed", sync.upserted)
	}
}

func TestCreate_SaveFailureSkipsSync(t *testing.T) {
	svc, repo, sync := newTestService()
	repo.saveErr = errors.New("disk full")

	if _, err := svc.Create(context.Background(), endgame()); err == nil {
		t.Fatal("expected error")
	}
	if len(sync.upserted) != 0 {
		t.Error("failed write must not be indexed")
	}
}

func TestUpdate(t *testing.T) {
	svc, _, sync := newTestService()
	created, err := svc.Create(context.Background(), endgame())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := created.ID

	later := fixedNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	upd := endgame()
	upd.IsHidden = true
	got, err := svc.Update(context.Background(), id, upd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || !got.IsHidden {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(fixedNow) || !got.UpdatedAt.Equal(later) {
		t.Errorf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
	if len(sync.upserted) != 2 {
		t.Errorf("upserted = %v, want create and update", sync.upserted)
	}
}

func TestUpdate_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	a, _ := svc.Create(context.Background(), endgame())
	other := endgame()
	other.Slug = "parasite"
	other.Name = "Parasite"
	b, _ := svc.Create(context.Background(), other)

	tests := []struct {
		name string
		id   string
		slug string
		want error
	}{
		{"malformed id", "42", "x", domain.ErrInvalidQuery},
		{"missing", "00000000-0000-0000-0000-000000000000", "x", domain.ErrNotFound},
		{"slug owned by another record", b.ID, a.Slug, domain.ErrAlreadyExists},
		{"invalid record", a.ID, "Bad Slug", domain.ErrInvalidMovie},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := endgame()
			m.Slug = tc.slug
			_, err := svc.Update(context.Background(), tc.id, m)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService()
	created, _ := svc.Create(context.Background(), endgame())

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil || got.Slug != "avengers-endgame" {
		t.Errorf("Get = (%+v, %v)", got, err)
	}

	if _, err := svc.Get(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo, sync := newTestService()
	created, _ := svc.Create(context.Background(), endgame())

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.movies) != 0 {
		t.Error("record not deleted")
	}
	if len(sync.removed) != 1 || sync.removed[0] != created.ID {
		t.Errorf("removed = %v", sync.removed)
	}

	err := svc.Delete(context.Background(), created.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(sync.removed) != 1 {
		t.Error("missing record must not trigger index removal")
	}
}
