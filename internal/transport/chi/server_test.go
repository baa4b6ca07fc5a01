package chi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

func TestSearch_FallbackServesHits(t *testing.T) {
	h := newHarness(t)
	h.catalog.res = result.New([]result.Hit{hitFor("m-1", "avengers-endgame", "Avengers: Endgame")}, 1, result.BackendCatalog)

	rec := h.do(t, http.MethodGet, "/search?q=Endgame", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}

	resp := decode[searchResponse](t, rec)
	if !resp.Success || resp.Total != 1 || len(resp.Hits) != 1 || resp.Backend != "catalog" {
		t.Fatalf("got %+v", resp)
	}
	if resp.Hits[0].Slug != "avengers-endgame" {
		t.Errorf("hit = %+v", resp.Hits[0])
	}
}

func TestSearch_Params(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/search?size=500&page=0&category=hanh-dong&year=2019&search_description=true", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	spec := h.catalog.lastSpec
	if spec.Limit != query.MaxLimit || spec.Offset != 0 {
		t.Errorf("Limit=%d Offset=%d", spec.Limit, spec.Offset)
	}
	if !spec.DescriptionMode || len(spec.Filters.Must()) != 2 {
		t.Errorf("spec = %+v", spec)
	}

	h.do(t, http.MethodGet, "/search?size=10&page=3", "", "")
	if h.catalog.lastSpec.Offset != 20 {
		t.Errorf("Offset = %d, want 20", h.catalog.lastSpec.Offset)
	}
}

func TestSearch_MalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric year", "/search?year=abc"},
		{"non-numeric page", "/search?page=two"},
		{"bad bool", "/search?search_description=maybe"},
		{"unknown duration", "/search?duration=epic"},
		{"unknown prefix field value", "/search?q=year:nineteen"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.do(t, http.MethodGet, tc.target, "", "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decode[errorResponse](t, rec)
			if resp.Success || resp.Message == "" || resp.Error == "" {
				t.Errorf("envelope = %+v", resp)
			}
			if h.catalog.lastSpec != nil {
				t.Error("malformed input must not reach a backend")
			}
		})
	}
}

func TestSearch_CatalogFailureIs500(t *testing.T) {
	h := newHarness(t)
	h.catalog.err = errors.New("connection refused")

	rec := h.do(t, http.MethodGet, "/search?q=x", "", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[errorResponse](t, rec)
	if resp.Message != "internal error" || strings.Contains(rec.Body.String(), "refused") {
		t.Errorf("internals leaked: %s", rec.Body)
	}
}

func TestSuggestions(t *testing.T) {
	h := newHarness(t)
	h.gate.ready = true
	h.index.suggest = []result.Hit{hitFor("m-1", "inception", "Inception")}

	rec := h.do(t, http.MethodGet, "/search/suggestions?q=i", "", "")
	resp := decode[suggestResponse](t, rec)
	if rec.Code != http.StatusOK || resp.Suggestions == nil || len(resp.Suggestions) != 0 {
		t.Errorf("short q: status %d, %+v", rec.Code, resp)
	}

	rec = h.do(t, http.MethodGet, "/search/suggestions?q=ince&limit=3", "", "")
	resp = decode[suggestResponse](t, rec)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "Inception" {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}

	rec = h.do(t, http.MethodGet, "/search/suggestions?q=ince&limit=x", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", rec.Code)
	}
}

func TestAdmin_Auth(t *testing.T) {
	h := newHarness(t)
	userToken, err := IssueToken(testSecret, "u-1", "user", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := IssueToken(testSecret, "ops", DefaultAdminRole, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	forged, err := IssueToken([]byte("other-secret"), "ops", DefaultAdminRole, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong key", forged, http.StatusUnauthorized},
		{"not admin", userToken, http.StatusForbidden},
		{"admin", adminToken(t), http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.do(t, http.MethodGet, "/admin/search/status", "", tc.token)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/search/status", nil)
	req.Header.Set("Authorization", "Basic b3BzOnNlY3JldA==")
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme status = %d", rec.Code)
	}
}

func TestAdmin_AuthDisabled(t *testing.T) {
	h := newHarness(t)
	srv := NewServer(
		searchuc.New(h.index, h.catalog, h.gate, nil, 0),
		nil, h.reindexer, nil, zap.NewNop(),
	)
	handler := srv.Router(AuthConfig{Disabled: true})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/search/status", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAdminSearchMovies(t *testing.T) {
	h := newHarness(t)
	h.catalog.res = result.New([]result.Hit{
		hitFor("1", "squid-game", "Squid Game"),
		hitFor("2", "squid-game", "Squid Game (dup)"),
	}, 2, result.BackendCatalog)

	rec := h.do(t, http.MethodGet, "/admin/search/movies?search=squid&limit=10&sort=year&order=asc", "", adminToken(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	page := decode[searchuc.AdminPage](t, rec)
	if len(page.Movies) != 1 || page.Pagination.TotalItems != 1 || page.Pagination.TotalPages != 1 {
		t.Errorf("page = %+v", page)
	}
	if s := h.catalog.lastSpec.Sort; s.Field != query.SortYear || s.Desc {
		t.Errorf("sort = %+v", s)
	}

	rec = h.do(t, http.MethodGet, "/admin/search/movies?sort=popularity", "", adminToken(t))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown sort status = %d", rec.Code)
	}

	rec = h.do(t, http.MethodGet, "/admin/search/movies?isHidden=true", "", adminToken(t))
	page = decode[searchuc.AdminPage](t, rec)
	if rec.Code != http.StatusOK || len(page.Movies) != 0 {
		t.Errorf("hidden listing: %d %+v", rec.Code, page)
	}
}

func TestAdminSearchStatus(t *testing.T) {
	h := newHarness(t)
	h.gate.ready = true
	h.index.count = 7

	rec := h.do(t, http.MethodGet, "/admin/search/status", "", adminToken(t))
	resp := decode[statusResponse](t, rec)
	if resp.Status != searchuc.StatusActive || resp.DocumentCount == nil || *resp.DocumentCount != 7 {
		t.Errorf("got %+v", resp)
	}
}

func TestAdminReindex(t *testing.T) {
	h := newHarness(t)
	h.reindexer.rep = indexing.Report{Scanned: 3, Indexed: 3}

	rec := h.do(t, http.MethodPost, "/admin/search/reindex", "", adminToken(t))
	resp := decode[reindexResponse](t, rec)
	if rec.Code != http.StatusOK || resp.Indexed != 3 {
		t.Errorf("status %d, %+v", rec.Code, resp)
	}

	h.reindexer.err = domain.ErrIndexUnavailable
	rec = h.do(t, http.MethodPost, "/admin/search/reindex", "", adminToken(t))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unavailable index status = %d", rec.Code)
	}

	h.reindexer.err = domain.ErrBusy
	rec = h.do(t, http.MethodPost, "/admin/search/reindex", "", adminToken(t))
	if rec.Code != http.StatusConflict {
		t.Errorf("overlapping reindex status = %d", rec.Code)
	}
}

func TestAdminMovies_CRUD(t *testing.T) {
	h := newHarness(t)
	tok := adminToken(t)
	body := `{"slug":"avengers-endgame","name":"Avengers: Endgame","year":2019,"actor":["Robert Downey Jr."]}`

	rec := h.do(t, http.MethodPost, "/admin/movies", body, tok)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	created := decode[movieResponse](t, rec)
	id := created.Movie.ID
	if rec.Header().Get("Location") != "/admin/movies/"+id || h.sync.upserts != 1 {
		t.Errorf("location %q upserts %d", rec.Header().Get("Location"), h.sync.upserts)
	}

	if rec = h.do(t, http.MethodPost, "/admin/movies", body, tok); rec.Code != http.StatusConflict {
		t.Errorf("duplicate slug status = %d", rec.Code)
	}
	if rec = h.do(t, http.MethodPost, "/admin/movies", `{"slug":"x"}`, tok); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid movie status = %d", rec.Code)
	}
	if rec = h.do(t, http.MethodPost, "/admin/movies", `{`, tok); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d", rec.Code)
	}

	if rec = h.do(t, http.MethodGet, "/admin/movies/"+id, "", tok); rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}
	if rec = h.do(t, http.MethodGet, "/admin/movies/not-a-uuid", "", tok); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id status = %d", rec.Code)
	}

	upd := strings.Replace(body, `"year":2019`, `"year":2019,"is_hidden":true`, 1)
	rec = h.do(t, http.MethodPut, "/admin/movies/"+id, upd, tok)
	if rec.Code != http.StatusOK || !decode[movieResponse](t, rec).Movie.IsHidden {
		t.Errorf("update status = %d", rec.Code)
	}

	if rec = h.do(t, http.MethodDelete, "/admin/movies/"+id, "", tok); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec = h.do(t, http.MethodDelete, "/admin/movies/"+id, "", tok); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
	if h.sync.removes != 1 {
		t.Errorf("removes = %d", h.sync.removes)
	}
}

func TestHealthCheck(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/health", "", "")
	resp := decode[healthResponse](t, rec)
	if rec.Code != http.StatusOK || resp.Status != "degraded" || resp.Checks["search_index"] != "disabled" {
		t.Errorf("status %d, %+v", rec.Code, resp)
	}

	h.pinger.err = errors.New("down")
	rec = h.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("catalog down status = %d", rec.Code)
	}
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound || decode[errorResponse](t, rec).Success {
		t.Errorf("status = %d", rec.Code)
	}

	rec = h.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestJSONRecoverer(t *testing.T) {
	handler := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decode[errorResponse](t, rec); resp.Success || resp.Message != "internal error" {
		t.Errorf("envelope = %+v", resp)
	}
}
