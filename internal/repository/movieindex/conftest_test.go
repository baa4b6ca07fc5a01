package movieindex

import (
	"context"
	"strconv"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	delFn          func(ctx context.Context, key string) error
	searchFn       func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	searchCountFn  func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, NewNames("test:")), ms
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

// docJSON is an index document body as returned under RETURN "$".
func docJSON(slug, name string, vote float64, view int64) string {
	return `{"slug":"` + slug + `","name":"` + name + `","is_hidden":0,"view":` +
		itoa(view) + `,"tmdb":{"vote_average":` + ftoa(vote) + `,"vote_count":1},"actor":[],"director":[],"category":[],"country":[]}`
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
