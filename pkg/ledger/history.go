package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// MovementDetail is a movement enriched with the counterparty account's
// name (empty for expenses and income).
type MovementDetail struct {
	Movement
	RelatedAccount string
}

// History is an account's movement log, newest first.
type History struct {
	Account   Account
	Movements []MovementDetail
}

// ListMovements returns the account's movements, newest first, with the
// related account name resolved for transfer halves.
func (s *Service) ListMovements(ownerID int64, accountName string) (*History, error) {
	account, err := findAccount(s.conn, ownerID, accountName)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(
		`SELECT m.id, m.owner_id, m.account_id, m.kind, m.amount, m.category,
		        m.related_account_id, m.transfer_id, m.created_at,
		        COALESCE(rel.name, '')
		 FROM movements m
		 LEFT JOIN accounts rel ON m.related_account_id = rel.id
		 WHERE m.owner_id = ? AND m.account_id = ?
		 ORDER BY m.created_at DESC, m.id DESC`,
		ownerID, account.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	history := &History{Account: *account}
	for rows.Next() {
		var d MovementDetail
		var amount string
		var related sql.NullInt64
		var transferID sql.NullString
		err := rows.Scan(&d.ID, &d.OwnerID, &d.AccountID, &d.Kind, &amount, &d.Category,
			&related, &transferID, &d.CreatedAt, &d.RelatedAccount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for movement %d: %w", d.ID, err)
		}
		d.Amount = amt
		d.RelatedAccountID = related.Int64
		d.TransferID = transferID.String
		history.Movements = append(history.Movements, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movements: %w", err)
	}
	return history, nil
}
