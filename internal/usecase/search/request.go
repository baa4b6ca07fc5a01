package search

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/duration"
	"github.com/kailas-cloud/cinedex/internal/domain/search/field"
	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
)

// Accepted year range for year filters and year:value queries.
const (
	MinYear = 1900
	MaxYear = 2099
)

// Filters are explicit caller-supplied hard filters. Zero values are unset.
type Filters struct {
	Category string
	Country  string
	Year     int
	Type     string
	Status   string
	Lang     string
}

// Request is one search call.
type Request struct {
	// Query is raw user text, possibly carrying a "field:value" prefix.
	Query string
	// Field targets Query at a single whitelisted field, bypassing extraction.
	Field string
	Size  int
	From  int

	Filters         Filters
	Duration        duration.Bucket
	DescriptionMode bool
	Sort            query.Sort
}

// buildSpec turns a request into the backend-neutral spec. Structured
// values read from the text become hard filters next to the caller's.
func buildSpec(req *Request, ex *intent.Extractor) (*query.Spec, intent.Intent, error) {
	spec := &query.Spec{
		DescriptionMode: req.DescriptionMode,
		Sort:            req.Sort,
		Offset:          req.From,
		Limit:           req.Size,
	}
	spec.Normalize()

	var conds []filter.Condition
	add := func(c filter.Condition, err error) error {
		if err != nil {
			return err
		}
		conds = append(conds, c)
		return nil
	}

	var in intent.Intent
	target, value := req.Field, strings.TrimSpace(req.Query)
	if target == "" && value != "" {
		in = ex.Extract(value)
		target, value = in.Field, in.Processed
	}

	if target != "" {
		c, err := targeted(target, value)
		if err != nil {
			return nil, in, err
		}
		conds = append(conds, c)
	} else {
		spec.Text = value
		spec.TextOptional = in.Recovered
		if err := structured(in, add); err != nil {
			return nil, in, err
		}
	}

	if err := explicit(req.Filters, add); err != nil {
		return nil, in, err
	}

	expr, err := filter.NewExpression(conds...)
	if err != nil {
		return nil, in, domain.NewInvalidParam("filters", err.Error())
	}
	spec.Filters = expr
	return spec, in, nil
}

// targeted builds the single predicate for an explicit field query.
func targeted(name, value string) (filter.Condition, error) {
	name, typ, ok := field.Lookup(name)
	if !ok {
		return filter.Condition{}, domain.NewInvalidParam("field", "unknown field "+strconv.Quote(name))
	}
	if value == "" {
		return filter.Condition{}, domain.NewInvalidParam(name, "value is required")
	}

	switch {
	case name == field.Category:
		if canon, ok := intent.CanonicalGenre(value); ok {
			return filter.NewMatch(name, intent.Slugify(canon))
		}
		return filter.NewText(name, value)
	case name == field.Country:
		if canon, ok := intent.CanonicalCountry(value); ok {
			return filter.NewMatch(name, intent.Slugify(canon))
		}
		return filter.NewText(name, value)
	case typ == field.Numeric:
		y, err := parseYear(value)
		if err != nil {
			return filter.Condition{}, err
		}
		return filter.NewEquals(name, float64(y))
	case typ == field.Tag:
		return filter.NewMatch(name, strings.ToLower(value))
	default:
		return filter.NewText(name, value)
	}
}

func structured(in intent.Intent, add func(filter.Condition, error) error) error {
	if in.Year != 0 {
		if err := add(filter.NewEquals(field.Year, float64(in.Year))); err != nil {
			return err
		}
	}
	if in.Genre != "" {
		if err := add(filter.NewMatch(field.Category, intent.GenreSlug(in.Genre))); err != nil {
			return err
		}
	}
	if in.Country != "" {
		if err := add(filter.NewMatch(field.Country, intent.CountrySlug(in.Country))); err != nil {
			return err
		}
	}
	if in.Director != "" {
		if err := add(filter.NewText(field.Director, in.Director)); err != nil {
			return err
		}
	}
	if in.Actor != "" {
		if err := add(filter.NewText(field.Actor, in.Actor)); err != nil {
			return err
		}
	}
	return nil
}

func explicit(f Filters, add func(filter.Condition, error) error) error {
	if f.Category != "" {
		if err := add(filter.NewMatch(field.Category, intent.GenreSlug(f.Category))); err != nil {
			return err
		}
	}
	if f.Country != "" {
		if err := add(filter.NewMatch(field.Country, intent.CountrySlug(f.Country))); err != nil {
			return err
		}
	}
	if f.Year != 0 {
		if f.Year < MinYear || f.Year > MaxYear {
			return domain.NewInvalidParam("year", "out of range")
		}
		if err := add(filter.NewEquals(field.Year, float64(f.Year))); err != nil {
			return err
		}
	}
	for _, kv := range [][2]string{
		{field.MovieType, f.Type},
		{field.Status, f.Status},
		{field.Lang, f.Lang},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			if err := add(filter.NewMatch(kv[0], strings.ToLower(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseYear accepts a four-digit year within [MinYear, MaxYear].
func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewInvalidParam("year", "must be numeric")
	}
	if y < MinYear || y > MaxYear {
		return 0, domain.NewInvalidParam("year", "out of range")
	}
	return y, nil
}
