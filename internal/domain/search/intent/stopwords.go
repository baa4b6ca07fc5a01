package intent

import "strings"

// stopPhrases are removed as whole phrases before token filtering.
var stopPhrases = []string{
	"thuyết minh", "thuyet minh", "lồng tiếng", "long tieng", "phụ đề", "phu de",
	"full hd", "hay nhất", "hay nhat", "mới nhất", "moi nhat",
}

// stopwords are generic tokens that carry no title information.
var stopwords = map[string]struct{}{
	"phim": {}, "film": {}, "films": {}, "movie": {}, "movies": {},
	"xem": {}, "watch": {}, "online": {}, "free": {},
	"hd": {}, "fhd": {}, "fullhd": {}, "4k": {}, "1080p": {}, "720p": {},
	"vietsub": {}, "engsub": {}, "sub": {},
	"hay": {}, "nhất": {}, "năm": {}, "về": {}, "của": {}, "với": {},
}

func isStopword(tok string) bool {
	_, ok := stopwords[strings.ToLower(strings.Trim(tok, ".,!?;:\"'"))]
	return ok
}

// removeStopwords drops stop phrases and stopword tokens, preserving the
// original spelling of everything else.
func removeStopwords(s string) string {
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		s = lower
	}
	for _, p := range stopPhrases {
		for {
			i := strings.Index(lower, p)
			if i < 0 {
				break
			}
			s = s[:i] + " " + s[i+len(p):]
			lower = lower[:i] + " " + lower[i+len(p):]
		}
	}

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !isStopword(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// leadingTerms returns up to n non-stopword tokens of s.
func leadingTerms(s string, n int) string {
	var out []string
	for _, w := range strings.Fields(s) {
		if isStopword(w) {
			continue
		}
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	return strings.Join(out, " ")
}
