package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Supported catalog drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// dialect carries what differs between SQL backends: the database/sql
// driver name, the placeholder style and the upsert clause.
type dialect struct {
	name   string
	driver string
	dollar bool
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return dialect{name: DriverSQLite, driver: "sqlite"}, nil
	case "postgres", "postgresql":
		return dialect{name: DriverPostgres, driver: "postgres", dollar: true}, nil
	case "mysql", "mariadb":
		return dialect{name: DriverMySQL, driver: "mysql"}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported catalog driver %q (supported: sqlite, postgres, mysql)", driver)
	}
}

// rebind rewrites ? placeholders to $n for postgres.
func (d dialect) rebind(q string) string {
	if !d.dollar {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// upsertSQL builds an insert of every column that overwrites on id conflict.
func (d dialect) upsertSQL() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	q := "INSERT INTO movies (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")"

	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "id" || c == "created_at" {
			continue
		}
		if d.name == DriverMySQL {
			sets = append(sets, c+" = VALUES("+c+")")
		} else {
			sets = append(sets, c+" = excluded."+c)
		}
	}

	if d.name == DriverMySQL {
		q += " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	} else {
		q += " ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
	}
	return d.rebind(q)
}
