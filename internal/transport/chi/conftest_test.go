package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	"github.com/kailas-cloud/cinedex/internal/usecase/indexing"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

var testSecret = []byte("test-secret")

// --- Fakes ---

type fakeBackend struct {
	res      result.SearchResult
	err      error
	lastSpec *query.Spec
}

func (f *fakeBackend) Search(_ context.Context, spec *query.Spec) (result.SearchResult, error) {
	f.lastSpec = spec
	return f.res, f.err
}

type fakeIndex struct {
	fakeBackend
	suggest []result.Hit
	count   int
}

func (f *fakeIndex) SuggestHits(_ context.Context, _ string, _ int) ([]result.Hit, error) {
	return f.suggest, nil
}

func (f *fakeIndex) Count(_ context.Context) (int, error) { return f.count, nil }

type fakeGate struct{ ready bool }

func (f *fakeGate) Ready(_ context.Context) bool { return f.ready }
func (f *fakeGate) Reason() string { return "not configured" }

type fakeRepo struct {
	movies map[string]dommovie.Movie
}

func (f *fakeRepo) Save(_ context.Context, m *dommovie.Movie) error {
	f.movies[m.ID] = *m
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*dommovie.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*dommovie.Movie, error) {
	for _, m := range f.movies {
		if m.Slug == slug {
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.movies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

type fakeSync struct{ upserts, removes int }

func (f *fakeSync) Upsert(_ context.Context, _ *dommovie.Movie) { f.upserts++ }
func (f *fakeSync) Remove(_ context.Context, _ string) { f.removes++ }

type fakeReindexer struct {
	rep indexing.Report
	err error
}

func (f *fakeReindexer) Reindex(_ context.Context) (indexing.Report, error) { return f.rep, f.err }

type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// --- Harness ---

type harness struct {
	index     *fakeIndex
	catalog   *fakeBackend
	gate      *fakeGate
	repo      *fakeRepo
	sync      *fakeSync
	reindexer *fakeReindexer
	pinger    *fakePinger
	handler   http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		index:     &fakeIndex{},
		catalog:   &fakeBackend{res: result.New(nil, 0, result.BackendCatalog)},
		gate:      &fakeGate{},
		repo:      &fakeRepo{movies: make(map[string]dommovie.Movie)},
		sync:      &fakeSync{},
		reindexer: &fakeReindexer{},
		pinger:    &fakePinger{},
	}
	srv := NewServer(
		searchuc.New(h.index, h.catalog, h.gate, nil, 0),
		movieuc.New(h.repo, h.sync),
		h.reindexer,
		healthuc.New(h.pinger, h.gate),
		zap.NewNop(),
	)
	h.handler = srv.Router(AuthConfig{Secret: testSecret})
	return h
}

func (h *harness) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := IssueToken(testSecret, "ops", DefaultAdminRole, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func hitFor(id, slug, name string) result.Hit {
	return result.Hit{Movie: dommovie.Movie{ID: id, Slug: slug, Name: name}}
}
