package chi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/duration"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

// binding pairs a query parameter name with its destination.
type binding struct {
	name string
	dest any
}

// bindQuery binds optional form-style query parameters. The first failure
// is reported as an invalid parameter.
func bindQuery(r *http.Request, bs ...binding) error {
	values := r.URL.Query()
	for _, b := range bs {
		if err := runtime.BindQueryParameter("form", true, false, b.name, values, b.dest); err != nil {
			return domain.NewInvalidParam(b.name, "has an invalid value")
		}
	}
	return nil
}

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Q                 *string
	Page              *int
	Size              *int
	Category          *string
	Country           *string
	Year              *int
	Type              *string
	Duration          *string
	SearchDescription *bool
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	err := bindQuery(r,
		binding{"q", &p.Q},
		binding{"page", &p.Page},
		binding{"size", &p.Size},
		binding{"category", &p.Category},
		binding{"country", &p.Country},
		binding{"year", &p.Year},
		binding{"type", &p.Type},
		binding{"duration", &p.Duration},
		binding{"search_description", &p.SearchDescription},
	)
	return p, err
}

// request converts bound parameters into a search request. page < 1 is
// treated as the first page.
func (p SearchParams) request() (searchuc.Request, error) {
	size := query.ClampLimit(deref(p.Size), query.DefaultLimit)
	page := max(deref(p.Page), 1)

	bucket, err := duration.Parse(deref(p.Duration))
	if err != nil {
		return searchuc.Request{}, domain.NewInvalidParam("duration", "must be short, medium or long")
	}

	return searchuc.Request{
		Query: deref(p.Q),
		Size:  size,
		From:  (page - 1) * size,
		Filters: searchuc.Filters{
			Category: deref(p.Category),
			Country:  deref(p.Country),
			Year:     deref(p.Year),
			Type:     deref(p.Type),
		},
		Duration:        bucket,
		DescriptionMode: deref(p.SearchDescription),
	}, nil
}

// SuggestParams are the query parameters of GET /search/suggestions.
type SuggestParams struct {
	Q     *string
	Limit *int
}

func bindSuggestParams(r *http.Request) (SuggestParams, error) {
	var p SuggestParams
	err := bindQuery(r, binding{"q", &p.Q}, binding{"limit", &p.Limit})
	return p, err
}

// AdminSearchParams are the query parameters of GET /admin/search/movies.
type AdminSearchParams struct {
	Search   *string
	Page     *int
	Limit    *int
	Category *string
	Status   *string
	Year     *int
	Type     *string
	IsHidden *bool
	Sort     *string
	Order    *string
}

func bindAdminSearchParams(r *http.Request) (AdminSearchParams, error) {
	var p AdminSearchParams
	err := bindQuery(r,
		binding{"search", &p.Search},
		binding{"page", &p.Page},
		binding{"limit", &p.Limit},
		binding{"category", &p.Category},
		binding{"status", &p.Status},
		binding{"year", &p.Year},
		binding{"type", &p.Type},
		binding{"isHidden", &p.IsHidden},
		binding{"sort", &p.Sort},
		binding{"order", &p.Order},
	)
	return p, err
}

func (p AdminSearchParams) request() (searchuc.AdminRequest, error) {
	field, err := query.ParseSortField(deref(p.Sort))
	if err != nil {
		return searchuc.AdminRequest{}, domain.NewInvalidParam("sort", "unknown sort field")
	}
	desc, err := query.ParseOrder(deref(p.Order))
	if err != nil {
		return searchuc.AdminRequest{}, domain.NewInvalidParam("order", "must be asc or desc")
	}

	return searchuc.AdminRequest{
		Search: deref(p.Search),
		Page:   deref(p.Page),
		Limit:  deref(p.Limit),
		Filters: searchuc.Filters{
			Category: deref(p.Category),
			Status:   deref(p.Status),
			Year:     deref(p.Year),
			Type:     deref(p.Type),
		},
		IsHidden: p.IsHidden,
		Sort:     query.Sort{Field: field, Desc: desc},
	}, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
