// Package migrations embeds the per-dialect SQL migrations for the catalog.
package migrations

import "embed"

// FS holds one directory of NNN_name.up.sql files per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
