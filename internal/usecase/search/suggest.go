package search

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// Suggestion limits.
const (
	MinSuggestRunes     = 2
	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 10

	// Raw hits fetched per requested suggestion.
	suggestFetchFactor = 3
	// Credits longer than this are descriptions, not names.
	maxCreditRunes = 50
	// Category hints only help with very short input.
	maxHintRunes = 3
)

// kind orders suggestions; lower wins.
type kind int

const (
	kindTitle kind = iota
	kindOriginal
	kindCategory
	kindActor
	kindDirector
)

// categoryHints are common category names keyed by folded two-letter prefix.
var categoryHints = map[string][]string{
	"ha": {"Hành Động", "Hài Hước"},
	"ho": {"Hoạt Hình", "Học Đường"},
	"hi": {"Hình Sự"},
	"ti": {"Tình Cảm"},
	"ta": {"Tâm Lý"},
	"ki": {"Kinh Dị", "Kinh Điển", "Kiếm Hiệp"},
	"vi": {"Viễn Tưởng"},
	"ph": {"Phiêu Lưu"},
	"co": {"Cổ Trang"},
	"ch": {"Chiến Tranh", "Chính Kịch"},
	"th": {"Thần Thoại", "Thể Thao"},
	"bi": {"Bí Ẩn"},
	"gi": {"Gia Đình"},
	"kh": {"Khoa Học"},
	"am": {"Âm Nhạc"},
	"tr": {"Trẻ Em"},
	"an": {"Anime"},
}

type suggestion struct {
	text  string
	kind  kind
	score float64
	seq   int
}

// Suggest returns up to limit completions for partial, drawn from the
// index only. An unavailable or failing index yields an empty list.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) []string {
	partial = strings.Join(strings.Fields(partial), " ")
	if utf8.RuneCountInString(partial) < MinSuggestRunes {
		return []string{}
	}
	limit = clampSuggestLimit(limit)

	if !s.gate.Ready(ctx) {
		metrics.SuggestionsTotal.WithLabelValues("unavailable").Inc()
		return []string{}
	}

	hits, err := s.index.SuggestHits(ctx, partial, limit*suggestFetchFactor)
	if err != nil {
		logger.FromContext(ctx).Warn("Suggestion query failed", zap.Error(err))
		metrics.SuggestionsTotal.WithLabelValues("error").Inc()
		return []string{}
	}

	out := rankSuggestions(partial, hits, limit)
	if len(out) == 0 {
		metrics.SuggestionsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SuggestionsTotal.WithLabelValues("ok").Inc()
	}
	return out
}

func clampSuggestLimit(n int) int {
	if n <= 0 {
		return DefaultSuggestLimit
	}
	if n > MaxSuggestLimit {
		return MaxSuggestLimit
	}
	return n
}

// rankSuggestions collects candidates from hits and hints, orders them by
// kind then score, and drops case-insensitive duplicates.
func rankSuggestions(partial string, hits []result.Hit, limit int) []string {
	needle := intent.Fold(partial)
	var cands []suggestion
	push := func(text string, k kind, score float64) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		cands = append(cands, suggestion{text: text, kind: k, score: score, seq: len(cands)})
	}

	for _, h := range hits {
		m := &h.Movie
		push(m.Name, kindTitle, h.Score)
		if !strings.EqualFold(strings.TrimSpace(m.OriginName), strings.TrimSpace(m.Name)) {
			push(m.OriginName, kindOriginal, h.Score)
		}
		for _, a := range m.Actor {
			if creditMatches(a, needle) {
				push(a, kindActor, h.Score)
			}
		}
		for _, d := range m.Director {
			if creditMatches(d, needle) {
				push(d, kindDirector, h.Score)
			}
		}
	}

	for _, hint := range hintsFor(needle) {
		push(hint, kindCategory, 0)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.seq < b.seq
	})

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		key := strings.ToLower(c.text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.text)
		if len(out) == limit {
			break
		}
	}
	return out
}

func creditMatches(credit, needle string) bool {
	if utf8.RuneCountInString(credit) > maxCreditRunes {
		return false
	}
	return strings.Contains(intent.Fold(credit), needle)
}

// hintsFor returns category names starting with the folded partial.
func hintsFor(needle string) []string {
	n := utf8.RuneCountInString(needle)
	if n < MinSuggestRunes || n > maxHintRunes {
		return nil
	}
	var out []string
	for _, name := range categoryHints[string([]rune(needle)[:2])] {
		if strings.HasPrefix(intent.Fold(name), needle) {
			out = append(out, name)
		}
	}
	return out
}
