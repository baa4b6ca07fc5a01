package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kailas-cloud/cinedex/internal/domain/search/field"
	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
)

const (
	hiddenClause = "is_hidden = 0"
	maxTerms     = 12
)

// fieldColumns maps searchable fields to movies columns.
var fieldColumns = map[string]string{
	field.Name:       "name",
	field.OriginName: "origin_name",
	field.Content:    "content",
	field.Actor:      "actor",
	field.Director:   "director",
	field.Category:   "category",
	field.Country:    "country",
	field.Lang:       "lang",
	field.Status:     "status",
	field.MovieType:  "movie_type",
	field.Slug:       "slug",
	field.Year:       "year",
}

// textColumns are matched by free text, in the index's weight order.
var textColumns = []string{"name", "origin_name", "actor", "director", "content"}

var sortColumns = map[query.SortField]string{
	query.SortUpdatedAt: "updated_at",
	query.SortCreatedAt: "created_at",
	query.SortYear:      "year",
	query.SortView:      "view_count",
	query.SortVote:      "vote_average",
	query.SortName:      "name",
}

// BuildWhere translates a spec into a WHERE clause with ? placeholders.
// Text becomes case-insensitive substring predicates, taxon tags become
// JSON-array membership checks; optional text does not restrict.
func BuildWhere(spec *query.Spec) (string, []any, error) {
	clauses := []string{hiddenClause}
	var args []any

	for _, c := range spec.Filters.Must() {
		clause, cargs, err := conditionClause(c)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, cargs...)
	}

	if !spec.TextOptional {
		if terms := tokenize(spec.Text); len(terms) > 0 {
			alts := make([]string, 0, len(textColumns))
			for _, col := range textColumns {
				clause, cargs := allTerms(col, terms)
				alts = append(alts, clause)
				args = append(args, cargs...)
			}
			clauses = append(clauses, "("+strings.Join(alts, " OR ")+")")
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

func conditionClause(c filter.Condition) (string, []any, error) {
	name, typ, ok := field.Lookup(c.Key())
	if !ok {
		return "", nil, fmt.Errorf("unknown filter field %q", c.Key())
	}
	col := fieldColumns[name]

	switch {
	case c.IsMatch():
		if typ != field.Tag {
			return "", nil, fmt.Errorf("match filter on non-tag field %q", name)
		}
		v := strings.ToLower(strings.TrimSpace(c.Match()))
		if name == field.Category || name == field.Country {
			return col + " LIKE ? ESCAPE '!'", []any{"%" + escapeLike(`"slug":"`+v+`"`) + "%"}, nil
		}
		return "LOWER(" + col + ") = ?", []any{v}, nil

	case c.IsRange():
		if typ != field.Numeric {
			return "", nil, fmt.Errorf("range filter on non-numeric field %q", name)
		}
		clause, args := rangeClause(col, c.Range())
		return clause, args, nil

	case c.IsText():
		if typ != field.Text && name != field.Category && name != field.Country {
			return "", nil, fmt.Errorf("text filter on non-text field %q", name)
		}
		terms := tokenize(c.Text())
		if len(terms) == 0 {
			return "", nil, fmt.Errorf("text filter on %q has no searchable terms", name)
		}
		clause, args := allTerms(col, terms)
		return clause, args, nil
	}

	return "", nil, fmt.Errorf("empty filter condition on %q", name)
}

// allTerms requires every term as a substring of col.
func allTerms(col string, terms []string) (string, []any) {
	parts := make([]string, len(terms))
	args := make([]any, len(terms))
	for i, t := range terms {
		parts[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = "%" + escapeLike(t) + "%"
	}
	return "(" + strings.Join(parts, " AND ") + ")", args
}

func rangeClause(col string, r *filter.Range) (string, []any) {
	var parts []string
	var args []any
	add := func(op string, v *float64) {
		if v != nil {
			parts = append(parts, col+" "+op+" ?")
			args = append(args, *v)
		}
	}
	add(">", r.GT())
	add(">=", r.GTE())
	add("<", r.LT())
	add("<=", r.LTE())
	return "(" + strings.Join(parts, " AND ") + ")", args
}

// orderBy picks the ordering: an explicit sort, newest update first for
// browse-all, otherwise insertion order since no score is available.
func orderBy(spec *query.Spec) string {
	if col, ok := sortColumns[spec.Sort.Field]; ok {
		dir := " ASC"
		if spec.Sort.Desc {
			dir = " DESC"
		}
		return col + dir + ", id ASC"
	}
	if spec.IsBrowse() {
		return "updated_at DESC, id ASC"
	}
	return "created_at ASC, id ASC"
}

// tokenize lowercases s and splits it into letter/digit runs.
func tokenize(s string) []string {
	terms := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	return terms
}

// escapeLike escapes LIKE wildcards with '!' which every supported dialect accepts.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
