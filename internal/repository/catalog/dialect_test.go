package catalog

import (
	"strings"
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", DriverSQLite, false},
		{"sqlite3", DriverSQLite, false},
		{"PostgreSQL", DriverPostgres, false},
		{"mariadb", DriverMySQL, false},
		{"oracle", "", true},
	}
	for _, tc := range tests {
		d, err := dialectFor(tc.in)
		if (err != nil) != tc.wantErr || d.name != tc.want {
			t.Errorf("dialectFor(%q) = (%q, %v)", tc.in, d.name, err)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := dialect{name: DriverPostgres, dollar: true}
	got := pg.rebind("a = ? AND b LIKE ? ESCAPE '!' LIMIT ?")
	if got != "a = $1 AND b LIKE $2 ESCAPE '!' LIMIT $3" {
		t.Errorf("got %q", got)
	}

	lite := dialect{name: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
}

func TestUpsertSQL(t *testing.T) {
	lite := dialect{name: DriverSQLite}
	q := lite.upsertSQL()
	if !strings.Contains(q, "ON CONFLICT (id) DO UPDATE SET slug = excluded.slug") {
		t.Errorf("sqlite upsert: %s", q)
	}
	if strings.Contains(q, "created_at = excluded") {
		t.Error("created_at must survive updates")
	}
	if n := strings.Count(q, "?"); n != len(columns) {
		t.Errorf("got %d placeholders, want %d", n, len(columns))
	}

	my := dialect{name: DriverMySQL}
	if q := my.upsertSQL(); !strings.Contains(q, "ON DUPLICATE KEY UPDATE slug = VALUES(slug)") {
		t.Errorf("mysql upsert: %s", q)
	}

	pg := dialect{name: DriverPostgres, dollar: true}
	if q := pg.upsertSQL(); strings.Contains(q, "?") || !strings.Contains(q, "$34") {
		t.Errorf("postgres upsert: %s", q)
	}
}
