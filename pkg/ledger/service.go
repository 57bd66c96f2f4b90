package ledger

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/finledger/pkg/db"
)

// Service exposes the ledger operations over an injected store connection.
// Every mutating operation runs as a single store transaction; a failure
// midway leaves the store untouched.
type Service struct {
	conn *db.Connection
}

// NewService creates a ledger Service backed by conn.
func NewService(conn *db.Connection) *Service {
	return &Service{conn: conn}
}

// querier is satisfied by both *sql.Tx and the bare connection, so lookup
// helpers can run inside or outside a transaction.
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

const accountColumns = "id, owner_id, name, kind, balance, created_at"

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	var balance string
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Kind, &balance, &a.CreatedAt); err != nil {
		return nil, err
	}
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for account %d: %w", a.ID, err)
	}
	a.Balance = bal
	return &a, nil
}

// findAccount looks up an account by case-insensitive name. Returns a
// domain error with kind ErrAccountNotFound when absent.
func findAccount(q querier, ownerID int64, name string) (*Account, error) {
	row := q.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE owner_id = ? AND lower(name) = ?",
		ownerID, NormalizeName(name),
	)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &Error{Kind: ErrAccountNotFound, Account: NormalizeName(name)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account %q: %w", name, err)
	}
	return a, nil
}

func getAccountByID(q querier, id int64) (*Account, error) {
	row := q.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", id, err)
	}
	return a, nil
}

// setBalance writes a freshly computed balance. Always called inside the
// same transaction as the movement write that caused the change.
func setBalance(q querier, accountID int64, balance decimal.Decimal) error {
	if _, err := q.Exec("UPDATE accounts SET balance = ? WHERE id = ?", balance.String(), accountID); err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
	}
	return nil
}

const movementColumns = "id, owner_id, account_id, kind, amount, category, related_account_id, transfer_id, created_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovement(row rowScanner) (*Movement, error) {
	var m Movement
	var amount string
	var related sql.NullInt64
	var transferID sql.NullString
	err := row.Scan(&m.ID, &m.OwnerID, &m.AccountID, &m.Kind, &amount,
		&m.Category, &related, &transferID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount for movement %d: %w", m.ID, err)
	}
	m.Amount = amt
	m.RelatedAccountID = related.Int64
	m.TransferID = transferID.String
	return &m, nil
}

func getMovement(q querier, ownerID, id int64) (*Movement, error) {
	row := q.QueryRow(
		"SELECT "+movementColumns+" FROM movements WHERE id = ? AND owner_id = ?",
		id, ownerID,
	)
	m, err := scanMovement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &Error{Kind: ErrMovementNotFound, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load movement %d: %w", id, err)
	}
	return m, nil
}

func getMovementByID(q querier, id int64) (*Movement, error) {
	row := q.QueryRow("SELECT "+movementColumns+" FROM movements WHERE id = ?", id)
	m, err := scanMovement(row)
	if err != nil {
		return nil, fmt.Errorf("failed to load movement %d: %w", id, err)
	}
	return m, nil
}

// GetMovement returns a movement by id if it belongs to the owner.
func (s *Service) GetMovement(ownerID, id int64) (*Movement, error) {
	return getMovement(s.conn, ownerID, id)
}
