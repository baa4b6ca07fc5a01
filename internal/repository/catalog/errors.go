package catalog

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql" // registers "mysql"
	"github.com/lib/pq"              // registers "postgres"
	"modernc.org/sqlite"             // registers "sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// isUniqueViolation reports a primary key or unique constraint failure from any supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended result codes disabled.
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
		return false
	}
	return false
}
