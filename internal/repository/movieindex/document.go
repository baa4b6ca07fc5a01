package movieindex

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

var stripTags = bluemonday.StripTagsPolicy()

// Document is the JSON projection of a movie stored in the index. The id
// lives in the key; booleans are 0/1 so they can be range-filtered;
// timestamps are unix seconds so they can be sorted.
type Document struct {
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	OriginName     string        `json:"origin_name"`
	Content        string        `json:"content"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	Quality        string        `json:"quality"`
	Lang           string        `json:"lang"`
	Year           int           `json:"year"`
	View           int64         `json:"view"`
	Time           string        `json:"time"`
	EpisodeCurrent string        `json:"episode_current"`
	EpisodeTotal   string        `json:"episode_total"`
	Duration       int           `json:"duration"`
	Runtime        int           `json:"runtime"`
	IsCopyright    int           `json:"is_copyright"`
	Theatrical     int           `json:"chieurap"`
	ExclusiveSub   int           `json:"sub_docquyen"`
	IsHidden       int           `json:"is_hidden"`
	Actor          []string      `json:"actor"`
	Director       []string      `json:"director"`
	Category       []movie.Taxon `json:"category"`
	Country        []movie.Taxon `json:"country"`
	TMDB           movie.Rating  `json:"tmdb"`
	PosterURL      string        `json:"poster_url"`
	ThumbURL       string        `json:"thumb_url"`
	TrailerURL     string        `json:"trailer_url"`
	CreatedAt      int64         `json:"created_at"`
	UpdatedAt      int64         `json:"updated_at"`
}

// toDocument projects a catalog record. The synopsis is reduced to plain text.
func toDocument(m *movie.Movie) Document {
	return Document{
		Slug:           m.Slug,
		Name:           m.Name,
		OriginName:     m.OriginName,
		Content:        plainText(m.Content),
		Type:           string(m.Type),
		Status:         string(m.Status),
		Quality:        m.Quality,
		Lang:           m.Lang,
		Year:           m.Year,
		View:           m.View,
		Time:           m.Time,
		EpisodeCurrent: m.EpisodeCurrent,
		EpisodeTotal:   m.EpisodeTotal,
		Duration:       m.Duration,
		Runtime:        m.Runtime,
		IsCopyright:    flag(m.IsCopyright),
		Theatrical:     flag(m.Theatrical),
		ExclusiveSub:   flag(m.ExclusiveSub),
		IsHidden:       flag(m.IsHidden),
		Actor:          nonNil(m.Actor),
		Director:       nonNil(m.Director),
		Category:       nonNilTaxa(m.Category),
		Country:        nonNilTaxa(m.Country),
		TMDB:           m.TMDB,
		PosterURL:      m.PosterURL,
		ThumbURL:       m.ThumbURL,
		TrailerURL:     m.TrailerURL,
		CreatedAt:      unix(m.CreatedAt),
		UpdatedAt:      unix(m.UpdatedAt),
	}
}

// toMovie hydrates a catalog record from an index document.
func (d *Document) toMovie(id string) movie.Movie {
	return movie.Movie{
		ID:             id,
		Slug:           d.Slug,
		Name:           d.Name,
		OriginName:     d.OriginName,
		Content:        d.Content,
		Type:           movie.Type(d.Type),
		Status:         movie.Status(d.Status),
		Quality:        d.Quality,
		Lang:           d.Lang,
		Year:           d.Year,
		View:           d.View,
		Time:           d.Time,
		EpisodeCurrent: d.EpisodeCurrent,
		EpisodeTotal:   d.EpisodeTotal,
		Duration:       d.Duration,
		Runtime:        d.Runtime,
		IsCopyright:    d.IsCopyright != 0,
		Theatrical:     d.Theatrical != 0,
		ExclusiveSub:   d.ExclusiveSub != 0,
		IsHidden:       d.IsHidden != 0,
		Actor:          d.Actor,
		Director:       d.Director,
		Category:       d.Category,
		Country:        d.Country,
		TMDB:           d.TMDB,
		PosterURL:      d.PosterURL,
		ThumbURL:       d.ThumbURL,
		TrailerURL:     d.TrailerURL,
		CreatedAt:      fromUnix(d.CreatedAt),
		UpdatedAt:      fromUnix(d.UpdatedAt),
	}
}

func plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(s)))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}
	return time.Unix(s, 0).UTC()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilTaxa(s []movie.Taxon) []movie.Taxon {
	if s == nil {
		return []movie.Taxon{}
	}
	return s
}
