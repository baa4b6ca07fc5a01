package movieindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

const (
	highlightOpen  = "<b>"
	highlightClose = "</b>"
)

// store is the consumer interface for the movie index (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo reads and writes movie documents in the FT index.
type Repo struct {
	store store
	names Names
}

// New creates a movie index repository.
func New(s store, names Names) *Repo {
	return &Repo{store: s, names: names}
}

// Upsert writes the projection of m under its id. Repeated upserts overwrite.
func (r *Repo) Upsert(ctx context.Context, m *movie.Movie) error {
	data, err := json.Marshal(toDocument(m))
	if err != nil {
		return fmt.Errorf("marshal movie %s: %w", m.ID, err)
	}
	key := r.names.Key(m.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// UpsertMany writes several projections in one round-trip.
func (r *Repo) UpsertMany(ctx context.Context, movies []movie.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	items := make([]db.JSONSetItem, 0, len(movies))
	for i := range movies {
		data, err := json.Marshal(toDocument(&movies[i]))
		if err != nil {
			return fmt.Errorf("marshal movie %s: %w", movies[i].ID, err)
		}
		items = append(items, db.JSONSetItem{Key: r.names.Key(movies[i].ID), Path: "$", Data: data})
	}
	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set batch of %d: %w", len(items), err)
	}
	return nil
}

// Remove deletes a document. A missing document is not an error.
func (r *Repo) Remove(ctx context.Context, id string) error {
	key := r.names.Key(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of indexed documents, hidden ones included.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.names.Index(), "*")
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.names.Index(), err)
	}
	return n, nil
}

// Search runs spec against the index. Text queries are ranked by score,
// then vote average, then views; filter-only queries by vote average then
// views; browse-all by last update. An explicit sort overrides all three.
func (r *Repo) Search(ctx context.Context, spec *query.Spec) (result.SearchResult, error) {
	qs, err := BuildQuery(spec)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("build query: %w", err)
	}

	q := &db.SearchQuery{
		IndexName:    r.names.Index(),
		Query:        qs,
		Offset:       spec.Offset,
		Limit:        spec.Limit,
		ReturnFields: []string{"$"},
	}

	hasText := len(tokenize(spec.Text)) > 0
	switch {
	case !spec.Sort.IsZero():
		q.SortBy = string(spec.Sort.Field)
		q.SortDesc = spec.Sort.Desc
	case spec.IsBrowse():
		q.SortBy = string(query.SortUpdatedAt)
		q.SortDesc = true
	case !hasText:
		q.SortBy = string(query.SortVote)
		q.SortDesc = true
	default:
		q.WithScores = true
		q.ReturnFields = []string{"$", "name", "content"}
		q.HighlightFields = []string{"name", "content"}
		q.HighlightOpen = highlightOpen
		q.HighlightClose = highlightClose
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("search %s: %w", r.names.Index(), err)
	}

	hits, err := r.parseHits(sr)
	if err != nil {
		return result.SearchResult{}, err
	}

	if spec.Sort.IsZero() && !spec.IsBrowse() {
		rankHits(hits)
	}

	return result.New(hits, sr.Total, result.BackendIndex), nil
}

// SuggestHits returns up to n raw autocomplete hits for partial.
func (r *Repo) SuggestHits(ctx context.Context, partial string, n int) ([]result.Hit, error) {
	qs := SuggestQuery(partial)
	if qs == "" {
		return nil, nil
	}

	sr, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    r.names.Index(),
		Query:        qs,
		Limit:        n,
		WithScores:   true,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("suggest %s: %w", r.names.Index(), err)
	}
	return r.parseHits(sr)
}

func (r *Repo) parseHits(sr *db.SearchResult) ([]result.Hit, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		raw, ok := e.Fields["$"]
		if !ok {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		hits = append(hits, result.Hit{
			Movie:     doc.toMovie(r.names.ID(e.Key)),
			Score:     e.Score,
			Highlight: highlights(e.Fields),
		})
	}
	return hits, nil
}

func highlights(fields map[string]string) map[string]string {
	var out map[string]string
	for _, name := range []string{"name", "content"} {
		v, ok := fields[name]
		if !ok || !strings.Contains(v, highlightOpen) {
			continue
		}
		if out == nil {
			out = make(map[string]string, 2)
		}
		out[name] = v
	}
	return out
}

// rankHits orders a page by score, then vote average, then views (all descending).
func rankHits(hits []result.Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Movie.TMDB.VoteAverage != b.Movie.TMDB.VoteAverage {
			return a.Movie.TMDB.VoteAverage > b.Movie.TMDB.VoteAverage
		}
		return a.Movie.View > b.Movie.View
	})
}
