// Package db provides SQLite storage for the personal-finance ledger.
package db

import (
	"database/sql"
	"fmt"
)

// Migration is one versioned schema step. Statements run inside a single
// transaction together with the version bookkeeping row.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the ordered list of schema versions. Append only; never
// edit an entry that has shipped.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create accounts and movements",
		SQL: `
-- Accounts table
-- One row per account, partitioned by owner (chat user id).
-- balance is a canonical decimal string; it always equals the signed sum
-- of the account's movements.
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('debit', 'credit')),
    balance TEXT NOT NULL DEFAULT '0',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS ux_accounts_owner_name
    ON accounts(owner_id, lower(name));

-- Movements table
-- Transaction log: expenses, income and the two halves of a transfer.
-- related_account_id and transfer_id are set only on transfer halves.
CREATE TABLE IF NOT EXISTS movements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    account_id INTEGER NOT NULL REFERENCES accounts(id),
    kind TEXT NOT NULL CHECK(kind IN ('expense', 'income', 'transfer_out', 'transfer_in')),
    amount TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'uncategorized',
    related_account_id INTEGER REFERENCES accounts(id),
    transfer_id TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_movements_owner_account
    ON movements(owner_id, account_id);

CREATE INDEX IF NOT EXISTS idx_movements_transfer
    ON movements(transfer_id);
`,
	},
}

// Migrate brings the schema up to date. It checks the recorded schema
// version and applies only the migrations above it, each in its own
// transaction. Re-running against an up-to-date database is a no-op.
func Migrate(conn *Connection) error {
	if _, err := conn.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	current, err := SchemaVersion(conn)
	if err != nil {
		return err
	}

	for _, m := range Migrations {
		if m.Version <= current {
			continue
		}
		err := conn.Transaction(func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				m.Version, m.Name,
			); err != nil {
				return fmt.Errorf("recording migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version, 0 for a
// fresh database.
func SchemaVersion(conn *Connection) (int, error) {
	var version sql.NullInt64
	err := conn.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
