package intent

import "strconv"

// Kind classifies what a query asked for.
type Kind string

// Intent kinds.
const (
	KindGeneral  Kind = "general"
	KindYear     Kind = "year_search"
	KindGenre    Kind = "genre_search"
	KindCountry  Kind = "country_search"
	KindDirector Kind = "director_search"
	KindActor    Kind = "actor_search"
	KindComplex  Kind = "complex_search"
)

// Intent is the structured reading of one raw query. Field is set when the
// query carried an explicit "field:value" prefix; Processed then holds the value.
// Recovered marks a Processed value rebuilt from the original text after
// extraction consumed everything; it should rank, not restrict.
type Intent struct {
	Original  string
	Processed string
	Recovered bool
	Kind      Kind
	Field     string
	Year      int
	Genre     string
	Country   string
	Director  string
	Actor     string
}

// HasStructured reports whether any structured value was extracted.
func (i Intent) HasStructured() bool {
	return i.Year != 0 || i.Genre != "" || i.Country != "" || i.Director != "" || i.Actor != ""
}

// fallbackTerms is how many leading terms of the original query are kept
// when extraction consumed the whole text.
const fallbackTerms = 2

// Extractor turns raw queries into Intents.
type Extractor struct {
	bypass BypassRule
	rules  []Rule
}

// NewExtractor creates an extractor with the given bypass and ordered rules.
func NewExtractor(bypass BypassRule, rules ...Rule) *Extractor {
	return &Extractor{bypass: bypass, rules: rules}
}

// Default returns an extractor with the stock bypass and rule pipeline.
func Default() *Extractor {
	return NewExtractor(DefaultBypassRule(), DefaultRules()...)
}

// Extract reads raw. An explicit field prefix wins; otherwise bypassed
// inputs are returned verbatim, and everything else runs the rule pipeline
// once per family in order, then stopword filtering.
func (e *Extractor) Extract(raw string) Intent {
	raw = normalize(raw)
	out := Intent{Original: raw, Processed: raw, Kind: KindGeneral}
	if raw == "" {
		return out
	}

	if name, value, ok := ParseFieldPrefix(raw); ok {
		out.Field = name
		out.Processed = value
		return out
	}

	if e.bypass.Matches(raw) {
		return out
	}

	text := raw
	for _, r := range e.rules {
		rest, value, ok := r.TryExtract(text)
		if !ok {
			continue
		}
		if !out.assign(r.Kind(), value) {
			continue
		}
		text = rest
		if out.Kind == KindGeneral {
			out.Kind = r.Kind()
		} else {
			out.Kind = KindComplex
		}
	}

	out.Processed = removeStopwords(text)
	if out.Processed == "" && out.HasStructured() {
		out.Processed = leadingTerms(raw, fallbackTerms)
		out.Recovered = out.Processed != ""
	}
	return out
}

func (i *Intent) assign(k Kind, value string) bool {
	switch k {
	case KindYear:
		y, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		i.Year = y
	case KindGenre:
		i.Genre = value
	case KindCountry:
		i.Country = value
	case KindDirector:
		i.Director = value
	case KindActor:
		i.Actor = value
	default:
		return false
	}
	return true
}
