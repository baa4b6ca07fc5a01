package movieindex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/cinedex/internal/domain/search/field"
	"github.com/kailas-cloud/cinedex/internal/domain/search/filter"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
)

// hiddenClause excludes hidden records from every query.
const hiddenClause = "@is_hidden:[-inf 0]"

const (
	maxTerms       = 12
	minFuzzyRunes  = 4
	minPrefixRunes = 2
	phraseSlop     = 2
)

// Clause weights. Name dominates, then original name, then credits;
// phrase clauses sit on top of the fuzzy multi-field match.
const (
	weightName           = 10
	weightOriginName     = 6
	weightActor          = 3
	weightDirector       = 3
	weightContent        = 1
	weightContentDesc    = 5
	weightPhraseName     = 20
	weightPhraseOrigin   = 12
	weightPhraseActor    = 6
	weightPhraseDirector = 6
	weightPhraseContent  = 8
)

// textAliases maps taxon fields to their analyzed-name attribute for text conditions.
var textAliases = map[string]string{
	field.Category: "category_name",
	field.Country:  "country_name",
}

// BuildQuery translates a spec into RediSearch query syntax (DIALECT 2).
// Hard filters are intersected; the weighted text clauses form one union,
// made optional with ~ when the text should rank without restricting.
func BuildQuery(spec *query.Spec) (string, error) {
	parts := []string{hiddenClause}

	for _, c := range spec.Filters.Must() {
		clause, err := conditionClause(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, clause)
	}

	if text := textClause(spec); text != "" {
		if spec.TextOptional {
			text = "~" + text
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, " "), nil
}

func conditionClause(c filter.Condition) (string, error) {
	name, typ, ok := field.Lookup(c.Key())
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", c.Key())
	}

	switch {
	case c.IsMatch():
		if typ != field.Tag {
			return "", fmt.Errorf("match filter on non-tag field %q", name)
		}
		return fmt.Sprintf("@%s:{%s}", name, escapeTag(c.Match())), nil

	case c.IsRange():
		if typ != field.Numeric {
			return "", fmt.Errorf("range filter on non-numeric field %q", name)
		}
		return fmt.Sprintf("@%s:%s", name, rangeExpr(c.Range())), nil

	case c.IsText():
		attr := name
		if alias, ok := textAliases[name]; ok {
			attr = alias
		} else if typ != field.Text {
			return "", fmt.Errorf("text filter on non-text field %q", name)
		}
		terms := tokenize(c.Text())
		if len(terms) == 0 {
			return "", fmt.Errorf("text filter on %q has no searchable terms", name)
		}
		return fmt.Sprintf("@%s:(%s)", attr, fuzzy(terms)), nil
	}

	return "", fmt.Errorf("empty filter condition on %q", name)
}

// textClause builds the should-union of fuzzy field matches and phrase boosts.
func textClause(spec *query.Spec) string {
	terms := tokenize(spec.Text)
	if len(terms) == 0 {
		return ""
	}

	f := fuzzy(terms)
	exact := strings.Join(terms, " ")

	contentWeight := weightContent
	if spec.DescriptionMode {
		contentWeight = weightContentDesc
	}

	clauses := []string{
		weighted("name", f, weightName),
		weighted("origin_name", f, weightOriginName),
		weighted("actor", f, weightActor),
		weighted("director", f, weightDirector),
		weighted("content", f, contentWeight),
		phrase("name", exact, weightPhraseName),
		phrase("origin_name", exact, weightPhraseOrigin),
		phrase("actor", exact, weightPhraseActor),
		phrase("director", exact, weightPhraseDirector),
	}
	if spec.DescriptionMode {
		clauses = append(clauses, phrase("content", exact, weightPhraseContent))
	}

	return "(" + strings.Join(clauses, " | ") + ")"
}

func weighted(attr, terms string, weight int) string {
	return fmt.Sprintf("(@%s:(%s))=>{$weight:%d;}", attr, terms, weight)
}

func phrase(attr, terms string, weight int) string {
	return fmt.Sprintf("(@%s:(%s))=>{$weight:%d;$slop:%d;$inorder:true;}", attr, terms, weight, phraseSlop)
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

// fuzzy wraps terms long enough for typo tolerance in %...% (edit distance 1).
func fuzzy(terms []string) string {
	out := make([]string, len(terms))
	for i, t := range terms {
		if len([]rune(t)) >= minFuzzyRunes {
			out[i] = "%" + t + "%"
		} else {
			out[i] = t
		}
	}
	return strings.Join(out, " ")
}

// prefixed marks the last term as a prefix when it is long enough.
func prefixed(terms []string) string {
	out := make([]string, len(terms))
	copy(out, terms)
	last := out[len(out)-1]
	if len([]rune(last)) >= minPrefixRunes {
		out[len(out)-1] = last + "*"
	}
	return strings.Join(out, " ")
}

// escapeTag backslash-escapes everything but letters, digits and underscore.
func escapeTag(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func rangeExpr(r *filter.Range) string {
	lo, hi := "-inf", "+inf"
	switch {
	case r.GT() != nil:
		lo = "(" + formatNum(*r.GT())
	case r.GTE() != nil:
		lo = formatNum(*r.GTE())
	}
	switch {
	case r.LT() != nil:
		hi = "(" + formatNum(*r.LT())
	case r.LTE() != nil:
		hi = formatNum(*r.LTE())
	}
	return "[" + lo + " " + hi + "]"
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SuggestQuery builds the autocomplete query: prefix matches on titles rank
// above fuzzy title matches, then credit prefixes, then a name wildcard.
func SuggestQuery(partial string) string {
	terms := tokenize(partial)
	if len(terms) == 0 {
		return ""
	}

	p := prefixed(terms)
	f := fuzzy(terms)
	last := terms[len(terms)-1]

	clauses := []string{
		weighted("name", p, 10),
		weighted("origin_name", p, 8),
		weighted("name", f, 5),
		weighted("origin_name", f, 4),
		weighted("actor", p, 3),
		weighted("director", p, 2),
	}
	if len([]rune(last)) >= minPrefixRunes {
		clauses = append(clauses, weighted("name", "w'*"+last+"*'", 1))
	}

	return hiddenClause + " (" + strings.Join(clauses, " | ") + ")"
}
