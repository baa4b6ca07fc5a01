package movie

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Type is the catalog format of a movie.
type Type string

// Catalog formats.
const (
	TypeSingle    Type = "single"
	TypeSeries    Type = "series"
	TypeAnimation Type = "hoathinh"
	TypeTVShows   Type = "tvshows"
)

// Status is the release status of a movie.
type Status string

// Release statuses.
const (
	StatusCompleted Status = "completed"
	StatusOngoing   Status = "ongoing"
	StatusTrailer   Status = "trailer"
)

// Taxon is a category or country reference embedded in a movie.
type Taxon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Rating is external rating metadata from a third-party source.
type Rating struct {
	Type        string  `json:"type,omitempty"`
	ID          string  `json:"id,omitempty"`
	Season      int     `json:"season,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Movie is a catalog record. Slug is globally unique.
type Movie struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	OriginName     string    `json:"origin_name"`
	Content        string    `json:"content"`
	Type           Type      `json:"type"`
	Status         Status    `json:"status"`
	Quality        string    `json:"quality"`
	Lang           string    `json:"lang"`
	Year           int       `json:"year"`
	View           int64     `json:"view"`
	Time           string    `json:"time"`
	EpisodeCurrent string    `json:"episode_current"`
	EpisodeTotal   string    `json:"episode_total"`
	Duration       int       `json:"duration,omitempty"`
	Runtime        int       `json:"runtime,omitempty"`
	IsCopyright    bool      `json:"is_copyright"`
	Theatrical     bool      `json:"chieurap"`
	ExclusiveSub   bool      `json:"sub_docquyen"`
	IsHidden       bool      `json:"is_hidden"`
	Actor          []string  `json:"actor"`
	Director       []string  `json:"director"`
	Category       []Taxon   `json:"category"`
	Country        []Taxon   `json:"country"`
	TMDB           Rating    `json:"tmdb"`
	PosterURL      string    `json:"poster_url"`
	ThumbURL       string    `json:"thumb_url"`
	TrailerURL     string    `json:"trailer_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks the fields a catalog write must carry.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !IsValidSlug(m.Slug) {
		return fmt.Errorf("slug %q must be lowercase alphanumeric words joined by hyphens", m.Slug)
	}
	if m.Year != 0 && (m.Year < 1888 || m.Year > 2100) {
		return fmt.Errorf("year %d out of range", m.Year)
	}
	switch m.Type {
	case "", TypeSingle, TypeSeries, TypeAnimation, TypeTVShows:
	default:
		return fmt.Errorf("unknown type %q", m.Type)
	}
	switch m.Status {
	case "", StatusCompleted, StatusOngoing, StatusTrailer:
	default:
		return fmt.Errorf("unknown status %q", m.Status)
	}
	if m.View < 0 {
		return fmt.Errorf("view must not be negative")
	}
	if m.Duration < 0 || m.Runtime < 0 {
		return fmt.Errorf("duration and runtime must not be negative")
	}
	if m.TMDB.VoteAverage < 0 || m.TMDB.VoteAverage > 10 {
		return fmt.Errorf("vote_average must be within [0, 10]")
	}
	for _, group := range [][]Taxon{m.Category, m.Country} {
		for _, t := range group {
			if !IsValidSlug(t.Slug) {
				return fmt.Errorf("taxon slug %q is invalid", t.Slug)
			}
		}
	}
	return nil
}

// IsValidSlug reports whether s is a well-formed slug.
func IsValidSlug(s string) bool {
	return len(s) <= 255 && slugRegex.MatchString(s)
}

// CategorySlugs returns the category slugs in order.
func (m *Movie) CategorySlugs() []string { return taxonSlugs(m.Category) }

// CountrySlugs returns the country slugs in order.
func (m *Movie) CountrySlugs() []string { return taxonSlugs(m.Country) }

func taxonSlugs(ts []Taxon) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Slug)
	}
	return out
}
