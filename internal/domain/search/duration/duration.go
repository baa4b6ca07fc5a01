package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Bucket is a coarse runtime class with an inclusive minute range.
type Bucket struct {
	name string
	min  int
	max  int
}

// Known buckets.
var (
	Short  = Bucket{name: "short", min: 0, max: 59}
	Medium = Bucket{name: "medium", min: 60, max: 120}
	Long   = Bucket{name: "long", min: 121, max: math.MaxInt}
)

// Parse resolves a bucket name. The empty string yields the zero Bucket.
func Parse(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Bucket{}, nil
	case Short.name:
		return Short, nil
	case Medium.name:
		return Medium, nil
	case Long.name:
		return Long, nil
	default:
		return Bucket{}, fmt.Errorf("unknown duration bucket %q (want short, medium or long)", s)
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string { return b.name }

// IsZero reports whether no bucket was requested.
func (b Bucket) IsZero() bool { return b.name == "" }

// Contains reports whether minutes fall inside the bucket.
func (b Bucket) Contains(minutes int) bool {
	return minutes >= b.min && minutes <= b.max
}

var (
	hoursRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:giờ|gio|hours?|h)(?:\s*(\d+)\s*(?:phút|phut|mins?|minutes?|m|p)?)?(?:$|[^\p{L}])`)
	minutesRe = regexp.MustCompile(`(?i)(\d+)\s*(?:phút|phut|mins?|minutes?|m|p)(?:$|[^\p{L}])`)
	numberRe  = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// Minutes derives a best-effort runtime for m. Explicit duration wins, then
// runtime, then the free-text time field, then a minutes pattern inside the
// current episode label. fallback is returned when nothing parses.
func Minutes(m *movie.Movie, fallback int) int {
	if m.Duration > 0 {
		return m.Duration
	}
	if m.Runtime > 0 {
		return m.Runtime
	}
	if v, ok := parseText(m.Time, true); ok {
		return v
	}
	if v, ok := parseText(m.EpisodeCurrent, false); ok {
		return v
	}
	return fallback
}

// maxMinutes bounds parsed values; anything longer is a misread label such as "1080p".
const maxMinutes = 600

// parseText extracts minutes from labels like "120 phút", "1h 30m" or
// "45 phút/tập". A bare number counts only when allowBare is set, since
// episode labels such as "12" are counts, not minutes.
func parseText(s string, allowBare bool) (int, bool) {
	if s == "" {
		return 0, false
	}
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins := 0
		if m[2] != "" {
			mins, _ = strconv.Atoi(m[2])
		}
		return bounded(h*60 + mins)
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		v, _ := strconv.Atoi(m[1])
		return bounded(v)
	}
	if allowBare {
		if m := numberRe.FindStringSubmatch(s); m != nil {
			v, _ := strconv.Atoi(m[1])
			return bounded(v)
		}
	}
	return 0, false
}

func bounded(v int) (int, bool) {
	if v <= 0 || v > maxMinutes {
		return 0, false
	}
	return v, true
}
