package intent

import (
	"strings"
	"unicode"
)

// DefaultShortTokenRunes is the length under which a whitespace-free query
// is taken as a literal title fragment.
const DefaultShortTokenRunes = 15

// defaultLiteralPhrases look like pattern triggers but are titles or
// catalog sections. Matching is on folded text.
var defaultLiteralPhrases = []string{
	"phim lẻ", "phim bộ", "phim chiếu rạp", "phim mới", "phim hoạt hình", "tv shows",
	"mắt biếc", "bố già", "người mỹ trầm lặng", "cô gái đến từ hôm qua",
	"năm tháng vội vã", "hai phượng", "em chưa 18", "tiệc trăng máu",
}

// BypassRule short-circuits extraction for inputs that pattern rules
// misread: short single tokens and a list of literal phrases.
type BypassRule struct {
	maxRunes int
	phrases  map[string]struct{}
}

// NewBypassRule creates a bypass rule. maxRunes <= 0 disables the short-token check.
func NewBypassRule(maxRunes int, phrases ...string) BypassRule {
	b := BypassRule{maxRunes: maxRunes, phrases: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		b.phrases[Fold(p)] = struct{}{}
	}
	return b
}

// DefaultBypassRule returns the stock short-token limit and literal phrase list.
func DefaultBypassRule() BypassRule {
	return NewBypassRule(DefaultShortTokenRunes, defaultLiteralPhrases...)
}

// Matches reports whether raw should be used verbatim.
func (b BypassRule) Matches(raw string) bool {
	raw = strings.TrimSpace(raw)
	if b.maxRunes > 0 && len([]rune(raw)) < b.maxRunes && strings.IndexFunc(raw, unicode.IsSpace) < 0 {
		return true
	}
	_, ok := b.phrases[Fold(raw)]
	return ok
}
