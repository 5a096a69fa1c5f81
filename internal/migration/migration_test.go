package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY);"),
		},
		"002_add_name.sql": &fstest.MapFile{
			Data: []byte("ALTER TABLE widgets ADD COLUMN name TEXT;"),
		},
	}
}

func TestApplyRunsAllPending(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, testFS())

	var reported []string
	applied, err := r.Apply(func(msg string) { reported = append(reported, msg) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(reported) != 2 {
		t.Errorf("expected 2 report lines, got %d", len(reported))
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec("INSERT INTO widgets (name) VALUES ('a')"); err != nil {
		t.Errorf("schema not usable after migrations: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, testFS())

	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	applied, err := r.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply ran %d migrations, want 0", applied)
	}
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	db := testDB(t)
	r := NewRunner(db, testFS())

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d, want 0 for a fresh database", version)
	}
}

func TestReadMigrationsRejectsBadNames(t *testing.T) {
	db := testDB(t)

	bad := fstest.MapFS{
		"init.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	if _, err := NewRunner(db, bad).ReadMigrations(); err == nil {
		t.Error("expected error for filename without a version prefix")
	}

	dup := fstest.MapFS{
		"001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
		"001_b.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	if _, err := NewRunner(db, dup).ReadMigrations(); err == nil {
		t.Error("expected error for duplicate versions")
	}
}

func TestValidate(t *testing.T) {
	db := testDB(t)

	// Outdated schema: only the first migration applied.
	partial := fstest.MapFS{"001_init.sql": testFS()["001_init.sql"]}
	if _, err := NewRunner(db, partial).Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	full := NewRunner(db, testFS())
	if err := full.Validate(); err == nil {
		t.Error("expected Validate to fail on an outdated schema")
	}

	if _, err := full.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := full.Validate(); err != nil {
		t.Errorf("Validate failed on an up-to-date schema: %v", err)
	}

	// A schema newer than the binary's migration set.
	if err := NewRunner(db, partial).Validate(); err == nil {
		t.Error("expected Validate to fail on a too-new schema")
	}
}
