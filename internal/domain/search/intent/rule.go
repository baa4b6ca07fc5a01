package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule extracts one family of structured values (year, genre, country,
// director or actor) from free text. Patterns are tried in order and the
// first acceptable match wins; its span is removed from the text.
type Rule struct {
	kind     Kind
	patterns []*regexp.Regexp
	accept   func(captured string) (string, bool)
}

// Kind returns the intent kind this rule produces.
func (r Rule) Kind() Kind { return r.kind }

// TryExtract returns the text with the matched span removed and the
// normalized captured value. ok is false when no pattern produced an
// acceptable value; text is then returned unchanged.
func (r Rule) TryExtract(text string) (rest, value string, ok bool) {
	for _, re := range r.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			v, accepted := r.accept(text[loc[2]:loc[3]])
			if !accepted {
				continue
			}
			// Remove from the match start (trigger word included) to the end of the capture.
			rest = squash(text[:loc[0]] + " " + text[loc[3]:])
			return rest, v, true
		}
	}
	return text, "", false
}

// boundary-safe edges; RE2 \b only understands ASCII word characters.
const (
	lead  = `(?:^|\s)`
	trail = `(?:$|[^\p{L}\p{N}])`
)

// YearRule matches "năm 2019", "year 2019" and then a bare four-digit year.
func YearRule() Rule {
	return Rule{
		kind: KindYear,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)` + lead + `(?:năm|nam|year|in|phát hành|phat hanh)\s+((?:19|20)\d{2})` + trail),
			regexp.MustCompile(lead + `((?:19|20)\d{2})` + trail),
		},
		accept: func(s string) (string, bool) {
			y, err := strconv.Atoi(s)
			if err != nil || y < 1900 || y > 2099 {
				return "", false
			}
			return s, true
		},
	}
}

// GenreRule matches known genre vocabulary, preferring an explicit trigger
// ("thể loại hành động", "phim kinh dị") over a bare mention.
func GenreRule() Rule {
	return vocabRule(KindGenre, genres, `thể loại|the loai|phim|genre`)
}

// CountryRule matches known country vocabulary, preferring an explicit
// trigger ("phim hàn quốc", "quốc gia nhật bản") over a bare mention.
// Short or ambiguous aliases only count after a trigger.
func CountryRule() Rule {
	return vocabRule(KindCountry, countries, `phim|quốc gia|quoc gia|nước|nuoc|from`)
}

func vocabRule(kind Kind, v vocab, triggers string) Rule {
	all := append(append([]string{}, v.bare...), v.guarded...)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + lead + `(?:` + triggers + `)\s+(` + alternation(all) + `)` + trail),
		regexp.MustCompile(`(?i)` + lead + `(` + alternation(v.bare) + `)` + trail),
	}
	return Rule{
		kind:     kind,
		patterns: patterns,
		accept:   v.canonical,
	}
}

// personName captures up to three name words; trailing stopwords are trimmed on accept.
const personName = `([\p{L}][\p{L}.'\-]*(?:\s+[\p{L}][\p{L}.'\-]*){0,3})`

// DirectorRule matches "đạo diễn Christopher Nolan", "directed by Bong Joon-ho".
func DirectorRule() Rule {
	return Rule{
		kind: KindDirector,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)` + lead + `(?:của đạo diễn|cua dao dien|đạo diễn|dao dien|directed by|director)\s+` + personName),
		},
		accept: acceptPerson,
	}
}

// ActorRule matches "diễn viên Trấn Thành", "starring Tom Hanks".
func ActorRule() Rule {
	return Rule{
		kind: KindActor,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)` + lead + `(?:có sự tham gia của|co su tham gia cua|diễn viên|dien vien|starring|actor|actress)\s+` + personName),
		},
		accept: acceptPerson,
	}
}

func acceptPerson(s string) (string, bool) {
	words := strings.Fields(s)
	for len(words) > 0 && isStopword(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

// DefaultRules returns the extraction pipeline in priority order.
func DefaultRules() []Rule {
	return []Rule{YearRule(), GenreRule(), CountryRule(), DirectorRule(), ActorRule()}
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
