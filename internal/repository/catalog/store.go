package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/cinedex/internal/repository/catalog/migrations"
)

// Options holds connection settings for the catalog database.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repo is the relational catalog of movie records (source of truth).
type Repo struct {
	db      *sql.DB
	dialect dialect
	upsert  string
}

// Open connects to the catalog and verifies the connection.
// Migrations are not applied; call Migrate.
func Open(ctx context.Context, opts Options) (*Repo, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("catalog dsn is required")
	}

	db, err := sql.Open(d.driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}

	// Every connection to an in-memory sqlite database sees its own copy.
	if d.name == DriverSQLite && strings.Contains(opts.DSN, ":memory:") {
		opts.MaxOpenConns = 1
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	return &Repo{db: db, dialect: d, upsert: d.upsertSQL()}, nil
}

// Driver returns the normalized driver name.
func (r *Repo) Driver() string { return r.dialect.name }

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", r.dialect.name, err)
	}
	return nil
}

// Close closes the connection pool.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Migrate applies pending NNN_name.up.sql migrations for the dialect and
// returns how many ran.
func (r *Repo) Migrate(ctx context.Context) (int, error) {
	fsys, err := fs.Sub(migrations.FS, r.dialect.name)
	if err != nil {
		return 0, fmt.Errorf("migrations for %s: %w", r.dialect.name, err)
	}

	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at BIGINT NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	row := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&current); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	applied := 0
	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := r.apply(ctx, version, string(content)); err != nil {
			return applied, fmt.Errorf("executing migration %s: %w", name, err)
		}
		applied++
	}
	return applied, nil
}

// apply runs one migration file statement by statement (the mysql driver
// rejects multi-statement Exec by default) and records its version.
func (r *Repo) apply(ctx context.Context, version int, content string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range strings.Split(content, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		r.dialect.rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"),
		version, time.Now().Unix(),
	); err != nil {
		return err
	}
	return tx.Commit()
}
