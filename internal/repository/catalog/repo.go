package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// columns is the movies table column order used by every read and write.
var columns = []string{
	"id", "slug", "name", "origin_name", "content", "movie_type", "status",
	"quality", "lang", "year", "view_count", "time_label", "episode_current",
	"episode_total", "duration", "runtime", "is_copyright", "chieurap",
	"sub_docquyen", "is_hidden", "actor", "director", "category", "country",
	"tmdb_type", "tmdb_id", "tmdb_season", "vote_average", "vote_count",
	"poster_url", "thumb_url", "trailer_url", "created_at", "updated_at",
}

var selectColumns = strings.Join(columns, ", ")

// Save inserts or overwrites a record by id. A slug owned by another id
// yields domain.ErrAlreadyExists.
func (r *Repo) Save(ctx context.Context, m *movie.Movie) error {
	args, err := values(m)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, r.upsert, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("movie slug %q: %w", m.Slug, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving movie %s: %w", m.ID, err)
	}
	return nil
}

// Get returns a record by id.
func (r *Repo) Get(ctx context.Context, id string) (*movie.Movie, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySlug returns a record by slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*movie.Movie, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *Repo) getBy(ctx context.Context, col, v string) (*movie.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		r.dialect.rebind("SELECT "+selectColumns+" FROM movies WHERE "+col+" = ?"), v)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %s: %w", v, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning movie: %w", err)
	}
	return m, nil
}

// Delete removes a record by id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind("DELETE FROM movies WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting movie %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting movie %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListAfter returns up to n records with id greater than afterID in id
// order, hidden ones included. An empty afterID starts from the beginning.
func (r *Repo) ListAfter(ctx context.Context, afterID string, n int) ([]movie.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		r.dialect.rebind("SELECT "+selectColumns+" FROM movies WHERE id > ? ORDER BY id LIMIT ?"),
		afterID, n)
	if err != nil {
		return nil, fmt.Errorf("listing movies after %q: %w", afterID, err)
	}
	return collect(rows)
}

// Count returns the number of records, hidden ones included.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}
	return n, nil
}

func collect(rows *sql.Rows) ([]movie.Movie, error) {
	defer rows.Close()

	var out []movie.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movies: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*movie.Movie, error) {
	var (
		m                                        movie.Movie
		typ, status                              string
		copyright, theatrical, exclusive, hidden int
		actor, director, category, country       string
		createdAt, updatedAt                     int64
	)
	err := s.Scan(
		&m.ID, &m.Slug, &m.Name, &m.OriginName, &m.Content, &typ, &status,
		&m.Quality, &m.Lang, &m.Year, &m.View, &m.Time, &m.EpisodeCurrent,
		&m.EpisodeTotal, &m.Duration, &m.Runtime, &copyright, &theatrical,
		&exclusive, &hidden, &actor, &director, &category, &country,
		&m.TMDB.Type, &m.TMDB.ID, &m.TMDB.Season, &m.TMDB.VoteAverage, &m.TMDB.VoteCount,
		&m.PosterURL, &m.ThumbURL, &m.TrailerURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Type = movie.Type(typ)
	m.Status = movie.Status(status)
	m.IsCopyright = copyright != 0
	m.Theatrical = theatrical != 0
	m.ExclusiveSub = exclusive != 0
	m.IsHidden = hidden != 0
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)

	for _, f := range []struct {
		raw string
		dst any
	}{
		{actor, &m.Actor},
		{director, &m.Director},
		{category, &m.Category},
		{country, &m.Country},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decoding list column for %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

// values returns m's column values in columns order.
func values(m *movie.Movie) ([]any, error) {
	lists := make([]string, 4)
	for i, v := range []any{nonNil(m.Actor), nonNil(m.Director), nonNilTaxa(m.Category), nonNilTaxa(m.Country)} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding list column for %s: %w", m.ID, err)
		}
		lists[i] = string(b)
	}

	return []any{
		m.ID, m.Slug, m.Name, m.OriginName, m.Content, string(m.Type), string(m.Status),
		m.Quality, m.Lang, m.Year, m.View, m.Time, m.EpisodeCurrent,
		m.EpisodeTotal, m.Duration, m.Runtime, flag(m.IsCopyright), flag(m.Theatrical),
		flag(m.ExclusiveSub), flag(m.IsHidden), lists[0], lists[1], lists[2], lists[3],
		m.TMDB.Type, m.TMDB.ID, m.TMDB.Season, m.TMDB.VoteAverage, m.TMDB.VoteCount,
		m.PosterURL, m.ThumbURL, m.TrailerURL, millis(m.CreatedAt), millis(m.UpdatedAt),
	}, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
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
