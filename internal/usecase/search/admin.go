package search

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
)

// AdminRequest is one catalog-management search.
type AdminRequest struct {
	Search  string
	Page    int
	Limit   int
	Filters Filters
	// IsHidden restricts to hidden (true) or visible (false) records. Search
	// never returns hidden records, so true always yields an empty page.
	IsHidden *bool
	Sort     query.Sort
}

// Pagination describes an admin page. Totals are estimates scaled by the
// observed dedup ratio.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// AdminPage is the admin search response body.
type AdminPage struct {
	Movies     []movie.Movie `json:"movies"`
	Pagination Pagination    `json:"pagination"`
}

// adminWindow widens the fetched page to absorb near-duplicate documents.
const adminWindow = 2

// SearchAdmin runs an admin search, deduplicating hits by id or slug over a
// window twice the page size, then cutting to the page.
func (s *Service) SearchAdmin(ctx context.Context, req *AdminRequest) (AdminPage, error) {
	limit := query.ClampLimit(req.Limit, query.DefaultLimit)
	page := req.Page
	if page < 1 {
		page = 1
	}
	out := AdminPage{
		Movies:     []movie.Movie{},
		Pagination: Pagination{Page: page, Limit: limit},
	}
	if req.IsHidden != nil && *req.IsHidden {
		return out, nil
	}

	spec, _, err := buildSpec(&Request{
		Query:   req.Search,
		Filters: req.Filters,
		Sort:    req.Sort,
		Size:    limit,
		From:    (page - 1) * limit,
	}, s.extractor)
	if err != nil {
		return AdminPage{}, err
	}
	spec.Limit = limit * adminWindow

	res, err := s.execute(ctx, spec)
	if err != nil {
		return AdminPage{}, err
	}

	ids := make(map[string]struct{}, len(res.Hits))
	slugs := make(map[string]struct{}, len(res.Hits))
	unique := 0
	for i := range res.Hits {
		m := res.Hits[i].Movie
		if _, dup := ids[m.ID]; dup {
			continue
		}
		if _, dup := slugs[m.Slug]; dup && m.Slug != "" {
			continue
		}
		ids[m.ID] = struct{}{}
		slugs[m.Slug] = struct{}{}
		unique++
		if len(out.Movies) < limit {
			out.Movies = append(out.Movies, m)
		}
	}

	total := scaleTotal(res.Total, unique, len(res.Hits))
	out.Pagination.TotalItems = total
	out.Pagination.TotalPages = (total + limit - 1) / limit
	return out, nil
}
