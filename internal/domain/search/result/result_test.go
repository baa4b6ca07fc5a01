package result

import (
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

func TestNew(t *testing.T) {
	hits := []Hit{
		{Movie: movie.Movie{ID: "a"}, Score: 1.5},
		{Movie: movie.Movie{ID: "b"}, Score: 3.25},
	}

	r := New(hits, 7, BackendIndex)

	if r.Total != 7 {
		t.Errorf("Total = %d", r.Total)
	}
	if r.MaxScore != 3.25 {
		t.Errorf("MaxScore = %f, want 3.25", r.MaxScore)
	}
	if r.Backend != BackendIndex {
		t.Errorf("Backend = %q", r.Backend)
	}
	if r.Estimated {
		t.Error("fresh result must not be estimated")
	}
}

func TestNew_NoHits(t *testing.T) {
	r := New(nil, 0, BackendCatalog)
	if r.MaxScore != 0 || len(r.Hits) != 0 {
		t.Errorf("unexpected result: %+v", r)
	}
}
