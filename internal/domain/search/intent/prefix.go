package intent

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/search/field"
)

var prefixRe = regexp.MustCompile(`^\s*([A-Za-z_]+)\s*:\s*(.*\S)\s*$`)

// ParseFieldPrefix splits "field:value" when field is whitelisted.
// "actor: Tom Hanks" yields ("actor", "Tom Hanks", true); "http://x" and
// "Avengers: Endgame" are not prefixes.
func ParseFieldPrefix(raw string) (name, value string, ok bool) {
	m := prefixRe.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	name, _, ok = field.Lookup(m[1])
	if !ok {
		return "", "", false
	}
	value = strings.TrimSpace(m[2])
	if value == "" {
		return "", "", false
	}
	return name, value, true
}
