package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
)

// newTestRepo opens a migrated in-memory sqlite catalog.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	ctx := context.Background()

	r, err := Open(ctx, Options{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	if _, err := r.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return r
}

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seed saves movies with created_at/updated_at one minute apart in slice order.
func seed(t *testing.T, r *Repo, movies ...movie.Movie) {
	t.Helper()
	for i := range movies {
		m := movies[i]
		if m.CreatedAt.IsZero() {
			m.CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = m.CreatedAt
		}
		if err := r.Save(context.Background(), &m); err != nil {
			t.Fatalf("Save %s: %v", m.ID, err)
		}
	}
}

func mustMatch(t *testing.T, key, value string) filter.Condition {
	t.Helper()
	c, err := filter.NewMatch(key, value)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return c
}

func mustText(t *testing.T, key, value string) filter.Condition {
	t.Helper()
	c, err := filter.NewText(key, value)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	return c
}

func mustEquals(t *testing.T, key string, v float64) filter.Condition {
	t.Helper()
	c, err := filter.NewEquals(key, v)
	if err != nil {
		t.Fatalf("NewEquals: %v", err)
	}
	return c
}

func mustExpression(t *testing.T, conds ...filter.Condition) filter.Expression {
	t.Helper()
	e, err := filter.NewExpression(conds...)
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	return e
}

func ids(movies []movie.Movie) []string {
	out := make([]string, len(movies))
	for i := range movies {
		out[i] = movies[i].ID
	}
	return out
}

func endgame() movie.Movie {
	return movie.Movie{
		ID:         "00000000-0000-0000-0000-000000000001",
		Slug:       "avengers-endgame",
		Name:       "Avengers: Endgame",
		OriginName: "Avengers: Endgame",
		Content:    "<p>After the snap.</p>",
		Type:       movie.TypeSingle,
		Status:     movie.StatusCompleted,
		Lang:       "Vietsub",
		Year:       2019,
		View:       1000,
		Time:       "181 phút",
		Actor:      []string{"Robert Downey Jr.", "Chris Evans"},
		Director:   []string{"Anthony Russo"},
		Category:   []movie.Taxon{{ID: "c1", Name: "Hành Động", Slug: "hanh-dong"}},
		Country:    []movie.Taxon{{ID: "k1", Name: "Âu Mỹ", Slug: "au-my"}},
		TMDB:       movie.Rating{Type: "movie", ID: "299534", VoteAverage: 8.3, VoteCount: 25000},
	}
}
