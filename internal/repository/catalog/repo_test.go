package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

func TestOpen_Validation(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Driver: "oracle", DSN: "x"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := Open(ctx, Options{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for empty dsn")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	r := newTestRepo(t)

	n, err := r.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if n != 0 {
		t.Errorf("second Migrate applied %d migrations, want 0", n)
	}
}

func TestSaveGet_RoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	m := endgame()
	m.IsHidden = true
	m.Theatrical = true
	seed(t, r, m)

	got, err := r.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Slug != m.Slug || got.Year != 2019 || got.View != 1000 || got.Time != "181 phút" {
		t.Errorf("scalar fields mismatch: %+v", got)
	}
	if !got.IsHidden || !got.Theatrical || got.IsCopyright {
		t.Errorf("flags mismatch: hidden=%v theatrical=%v copyright=%v", got.IsHidden, got.Theatrical, got.IsCopyright)
	}
	if len(got.Actor) != 2 || got.Category[0].Slug != "hanh-dong" || got.Country[0].Name != "Âu Mỹ" {
		t.Errorf("list fields mismatch: %+v", got)
	}
	if got.TMDB.VoteAverage != 8.3 || got.TMDB.ID != "299534" {
		t.Errorf("rating mismatch: %+v", got.TMDB)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Errorf("created_at = %v", got.CreatedAt)
	}

	bySlug, err := r.GetBySlug(ctx, m.Slug)
	if err != nil || bySlug.ID != m.ID {
		t.Errorf("GetBySlug = (%v, %v)", bySlug, err)
	}
}

func TestSave_OverwritesByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	m := endgame()
	seed(t, r, m)
	m.Name = "Avengers: Hồi Kết"
	m.CreatedAt = baseTime
	m.UpdatedAt = baseTime
	if err := r.Save(ctx, &m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := r.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Count = (%d, %v), want 1", n, err)
	}
	got, _ := r.Get(ctx, m.ID)
	if got.Name != "Avengers: Hồi Kết" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestSave_DuplicateSlug(t *testing.T) {
	r := newTestRepo(t)
	seed(t, r, endgame())

	dup := endgame()
	dup.ID = "00000000-0000-0000-0000-000000000002"
	err := r.Save(context.Background(), &dup)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := endgame()
	seed(t, r, m)

	if err := r.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(ctx, m.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestListAfter_PagesInIDOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	seed(t, r,
		movie.Movie{ID: "c", Slug: "c", Name: "C"},
		movie.Movie{ID: "a", Slug: "a", Name: "A", IsHidden: true},
		movie.Movie{ID: "b", Slug: "b", Name: "B"},
	)

	page, err := r.ListAfter(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListAfter: %v", err)
	}
	if got := strings.Join(ids(page), ","); got != "a,b" {
		t.Errorf("first page = %s", got)
	}

	page, err = r.ListAfter(ctx, "b", 2)
	if err != nil {
		t.Fatalf("ListAfter: %v", err)
	}
	if got := strings.Join(ids(page), ","); got != "c" {
		t.Errorf("second page = %s", got)
	}

	page, _ = r.ListAfter(ctx, "c", 2)
	if len(page) != 0 {
		t.Errorf("expected empty last page, got %v", ids(page))
	}
}

func TestPing(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if r.Driver() != DriverSQLite {
		t.Errorf("Driver = %q", r.Driver())
	}
}
