package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// SortField is an explicit ordering key. The zero value means relevance.
type SortField string

// Sort fields.
const (
	SortRelevance SortField = ""
	SortUpdatedAt SortField = "updated_at"
	SortCreatedAt SortField = "created_at"
	SortYear      SortField = "year"
	SortView      SortField = "view"
	SortVote      SortField = "vote_average"
	SortName      SortField = "name"
)

var sortAliases = map[string]SortField{
	"":             SortRelevance,
	"relevance":    SortRelevance,
	"updated_at":   SortUpdatedAt,
	"updatedat":    SortUpdatedAt,
	"created_at":   SortCreatedAt,
	"createdat":    SortCreatedAt,
	"year":         SortYear,
	"view":         SortView,
	"views":        SortView,
	"vote_average": SortVote,
	"rating":       SortVote,
	"name":         SortName,
}

// ParseSortField resolves a caller-supplied sort key (snake or camel case).
func ParseSortField(s string) (SortField, error) {
	f, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

// ParseOrder resolves "asc"/"desc"; empty defaults to descending.
func ParseOrder(s string) (desc bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return true, nil
	case "asc":
		return false, nil
	default:
		return false, fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort is an explicit ordering request.
type Sort struct {
	Field SortField
	Desc  bool
}

// IsZero reports whether relevance ordering applies.
func (s Sort) IsZero() bool { return s.Field == SortRelevance }

// Spec is the backend-neutral search request both query builders consume.
type Spec struct {
	// Text is matched across the weighted text fields.
	Text string
	// TextOptional makes Text rank without restricting the result set.
	TextOptional bool
	// DescriptionMode adds the synopsis to the weighted fields with a higher weight.
	DescriptionMode bool
	// Filters are hard filters; hidden records are excluded by every backend regardless.
	Filters filter.Expression
	Sort    Sort
	Offset  int
	Limit   int
}

// Normalize clamps Limit into [1, MaxLimit] and Offset to >= 0.
func (s *Spec) Normalize() {
	s.Limit = ClampLimit(s.Limit, DefaultLimit)
	if s.Offset < 0 {
		s.Offset = 0
	}
	s.Text = strings.TrimSpace(s.Text)
}

// IsBrowse reports whether nothing restricts or ranks the result set.
func (s *Spec) IsBrowse() bool {
	return s.Text == "" && s.Filters.IsEmpty()
}

// ClampLimit bounds n to [1, MaxLimit]; zero takes def.
func ClampLimit(n, def int) int {
	if n == 0 {
		n = def
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
