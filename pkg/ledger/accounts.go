package ledger

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// CreateAccount creates a new account with a zero balance. The name is
// trimmed and lowercased; (owner, name) must be unique.
func (s *Service) CreateAccount(ownerID int64, name string, kind AccountKind) (*Account, error) {
	k := AccountKind(NormalizeName(string(kind)))
	if !k.Valid() {
		return nil, &Error{Kind: ErrInvalidAccount, Detail: "account kind must be 'debit' or 'credit'"}
	}

	n := NormalizeName(name)
	if n == "" {
		return nil, &Error{Kind: ErrInvalidAccount, Detail: "account name cannot be empty"}
	}

	res, err := s.conn.Exec(
		"INSERT INTO accounts (owner_id, name, kind) VALUES (?, ?, ?)",
		ownerID, n, string(k),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, &Error{Kind: ErrDuplicateAccount, Account: n}
		}
		return nil, fmt.Errorf("failed to create account %q: %w", n, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new account id: %w", err)
	}
	return getAccountByID(s.conn, id)
}

// FindAccount looks up an account by case-insensitive name.
func (s *Service) FindAccount(ownerID int64, name string) (*Account, error) {
	return findAccount(s.conn, ownerID, name)
}

// ListAccounts returns all of the owner's accounts ordered by name.
func (s *Service) ListAccounts(ownerID int64) ([]Account, error) {
	rows, err := s.conn.Query(
		"SELECT "+accountColumns+" FROM accounts WHERE owner_id = ? ORDER BY name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var balance string
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Kind, &balance, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		bal, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("corrupt balance for account %d: %w", a.ID, err)
		}
		a.Balance = bal
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}
