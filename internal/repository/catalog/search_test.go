package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

func hitIDs(res result.SearchResult) string {
	out := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		out[i] = h.Movie.ID
	}
	return strings.Join(out, ",")
}

func seedCatalog(t *testing.T, r *Repo) {
	t.Helper()
	hidden := endgame()
	hidden.ID, hidden.Slug, hidden.IsHidden = "hidden", "endgame-hidden", true

	seed(t, r,
		endgame(),
		movie.Movie{
			ID: "parasite", Slug: "ky-sinh-trung", Name: "Ký Sinh Trùng", OriginName: "Parasite",
			Year: 2019, Type: movie.TypeSingle,
			Category: []movie.Taxon{{Name: "Tâm Lý", Slug: "tam-ly"}},
			Country:  []movie.Taxon{{Name: "Hàn Quốc", Slug: "han-quoc"}},
			TMDB:     movie.Rating{VoteAverage: 8.5},
		},
		movie.Movie{
			ID: "squid", Slug: "tro-choi-con-muc", Name: "Trò Chơi Con Mực", OriginName: "Squid Game",
			Year: 2021, Type: movie.TypeSeries,
			Country: []movie.Taxon{{Name: "Hàn Quốc", Slug: "han-quoc"}},
		},
		hidden,
	)
}

func TestSearch_BrowseNewestFirstWithoutHidden(t *testing.T) {
	r := newTestRepo(t)
	seedCatalog(t, r)

	spec := &query.Spec{Limit: 10}
	res, err := r.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := hitIDs(res); got != "squid,parasite,"+endgame().ID {
		t.Errorf("order = %s", got)
	}
	if res.Total != 3 || res.Backend != result.BackendCatalog || res.MaxScore != 0 {
		t.Errorf("unexpected result: total=%d backend=%s max=%v", res.Total, res.Backend, res.MaxScore)
	}
}

func TestSearch_TextExcludesHidden(t *testing.T) {
	r := newTestRepo(t)
	seedCatalog(t, r)

	res, err := r.Search(context.Background(), &query.Spec{Text: "Endgame", Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := hitIDs(res); got != endgame().ID {
		t.Errorf("hits = %s", got)
	}
}

func TestSearch_FiltersAndCredits(t *testing.T) {
	r := newTestRepo(t)
	seedCatalog(t, r)
	ctx := context.Background()

	spec := &query.Spec{
		Filters: mustExpression(t, mustMatch(t, "country", "han-quoc"), mustEquals(t, "year", 2019)),
		Limit:   10,
	}
	res, err := r.Search(ctx, spec)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := hitIDs(res); got != "parasite" {
		t.Errorf("country+year hits = %s", got)
	}

	spec = &query.Spec{Filters: mustExpression(t, mustText(t, "actor", "downey")), Limit: 10}
	res, err = r.Search(ctx, spec)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || res.Hits[0].Movie.Slug != "avengers-endgame" {
		t.Errorf("actor hits = %s", hitIDs(res))
	}
}

func TestSearch_Pagination(t *testing.T) {
	r := newTestRepo(t)
	seedCatalog(t, r)
	ctx := context.Background()

	res, err := r.Search(ctx, &query.Spec{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 3 || len(res.Hits) != 1 {
		t.Errorf("total=%d hits=%d", res.Total, len(res.Hits))
	}

	res, err = r.Search(ctx, &query.Spec{Limit: 2, Offset: 50})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 3 || len(res.Hits) != 0 {
		t.Errorf("past the end: total=%d hits=%d", res.Total, len(res.Hits))
	}
}

func TestSearch_ExplicitSort(t *testing.T) {
	r := newTestRepo(t)
	seedCatalog(t, r)

	spec := &query.Spec{Sort: query.Sort{Field: query.SortVote, Desc: true}, Limit: 10}
	res, err := r.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := hitIDs(res); got != "parasite,"+endgame().ID+",squid" {
		t.Errorf("order = %s", got)
	}
}

func TestSearch_InvalidFilter(t *testing.T) {
	r := newTestRepo(t)
	spec := &query.Spec{Filters: mustExpression(t, mustMatch(t, "nope", "x")), Limit: 10}
	if _, err := r.Search(context.Background(), spec); err == nil {
		t.Error("expected error")
	}
}
