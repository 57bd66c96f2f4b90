package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer conn.Close()

	version, err := SchemaVersion(conn)
	if err != nil {
		t.Fatalf("SchemaVersion() returned error: %v", err)
	}
	want := Migrations[len(Migrations)-1].Version
	if version != want {
		t.Errorf("schema version = %d, expected %d", version, want)
	}

	for _, table := range []string{"accounts", "movements", "schema_migrations"} {
		var name string
		err := conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	// Reopening must not re-apply anything.
	conn, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() returned error: %v", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("counting migrations: %v", err)
	}
	if count != len(Migrations) {
		t.Errorf("migration rows = %d, expected %d", count, len(Migrations))
	}
}

func TestUniqueAccountNamePerOwner(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer conn.Close()

	insert := "INSERT INTO accounts (owner_id, name, kind) VALUES (?, ?, 'debit')"
	if _, err := conn.Exec(insert, 1, "cash"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// Uniqueness is case-insensitive via lower(name).
	if _, err := conn.Exec(insert, 1, "CASH"); err == nil {
		t.Error("duplicate insert succeeded, expected unique constraint violation")
	}

	// A different owner may reuse the name.
	if _, err := conn.Exec(insert, 2, "cash"); err != nil {
		t.Errorf("insert for second owner failed: %v", err)
	}
}

func TestTransactionRollback(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer conn.Close()

	sentinel := errors.New("midway failure")
	err = conn.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO accounts (owner_id, name, kind) VALUES (1, 'cash', 'debit')"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Transaction() error = %v, expected %v", err, sentinel)
	}

	// The insert was rolled back.
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		t.Fatalf("counting accounts: %v", err)
	}
	if count != 0 {
		t.Errorf("accounts after rollback = %d, expected 0", count)
	}
}
