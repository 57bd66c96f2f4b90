package ledger

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer moves amount from source to dest as a linked double-entry pair:
// a transfer_out row on the source and a transfer_in row on the
// destination sharing one group id. Both rows and both balance updates
// commit as a single unit. Debit sources must cover the amount; credit
// sources are never balance-checked.
func (s *Service) Transfer(ownerID int64, sourceName, destName string, amount decimal.Decimal) (*TransferResult, error) {
	if NormalizeName(sourceName) == NormalizeName(destName) {
		return nil, &Error{Kind: ErrSameAccount, Account: NormalizeName(sourceName)}
	}

	var result *TransferResult
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		source, err := findAccount(tx, ownerID, sourceName)
		if err != nil {
			return err
		}
		dest, err := findAccount(tx, ownerID, destName)
		if err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return &Error{Kind: ErrInvalidAmount}
		}
		if source.Kind == KindDebit && source.Balance.LessThan(amount) {
			return &Error{Kind: ErrInsufficientFunds, Account: source.Name, Balance: source.Balance}
		}

		transferID := uuid.NewString()

		outRes, err := tx.Exec(
			`INSERT INTO movements (owner_id, account_id, kind, amount, related_account_id, transfer_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ownerID, source.ID, string(KindTransferOut), amount.String(), dest.ID, transferID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer_out: %w", err)
		}
		inRes, err := tx.Exec(
			`INSERT INTO movements (owner_id, account_id, kind, amount, related_account_id, transfer_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ownerID, dest.ID, string(KindTransferIn), amount.String(), source.ID, transferID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer_in: %w", err)
		}

		sourceBalance := source.Balance.Sub(amount)
		destBalance := dest.Balance.Add(amount)
		if err := setBalance(tx, source.ID, sourceBalance); err != nil {
			return err
		}
		if err := setBalance(tx, dest.ID, destBalance); err != nil {
			return err
		}

		outID, err := outRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read transfer_out id: %w", err)
		}
		inID, err := inRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read transfer_in id: %w", err)
		}
		out, err := getMovementByID(tx, outID)
		if err != nil {
			return err
		}
		in, err := getMovementByID(tx, inID)
		if err != nil {
			return err
		}

		source.Balance = sourceBalance
		dest.Balance = destBalance
		result = &TransferResult{Out: *out, In: *in, Source: *source, Dest: *dest}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// deleteTransferPair removes both halves of a transfer and reverses both
// balances. The sibling is found by shared transfer id; rows created
// before group ids existed fall back to a match on owner, amount and the
// complementary kind/account pair.
func deleteTransferPair(tx *sql.Tx, ownerID int64, movement *Movement) (*DeleteResult, error) {
	sibling, err := findTransferSibling(tx, ownerID, movement)
	if err != nil {
		return nil, err
	}

	// The historical direction comes from whichever half is transfer_out.
	sourceID := movement.AccountID
	destID := movement.RelatedAccountID
	if movement.Kind == KindTransferIn {
		sourceID, destID = movement.RelatedAccountID, movement.AccountID
	}

	source, err := getAccountByID(tx, sourceID)
	if err != nil {
		return nil, err
	}
	dest, err := getAccountByID(tx, destID)
	if err != nil {
		return nil, err
	}

	amount := movement.Amount
	sourceBalance := source.Balance.Add(amount)
	destBalance := dest.Balance.Sub(amount)

	if _, err := tx.Exec("DELETE FROM movements WHERE id IN (?, ?)", movement.ID, sibling.ID); err != nil {
		return nil, fmt.Errorf("failed to delete transfer pair: %w", err)
	}
	if err := setBalance(tx, source.ID, sourceBalance); err != nil {
		return nil, err
	}
	if err := setBalance(tx, dest.ID, destBalance); err != nil {
		return nil, err
	}

	source.Balance = sourceBalance
	dest.Balance = destBalance
	return &DeleteResult{
		Movements: []Movement{*movement, *sibling},
		Accounts:  []Account{*source, *dest},
	}, nil
}

func findTransferSibling(tx *sql.Tx, ownerID int64, movement *Movement) (*Movement, error) {
	var row *sql.Row
	if movement.TransferID != "" {
		row = tx.QueryRow(
			"SELECT "+movementColumns+" FROM movements WHERE transfer_id = ? AND id != ? AND owner_id = ?",
			movement.TransferID, movement.ID, ownerID,
		)
	} else {
		// Legacy rows without a group id: match the complementary half by
		// amount and swapped account pair.
		row = tx.QueryRow(
			"SELECT "+movementColumns+` FROM movements
			 WHERE owner_id = ? AND amount = ? AND id != ?
			   AND kind IN (?, ?)
			   AND account_id = ? AND related_account_id = ?
			 LIMIT 1`,
			ownerID, movement.Amount.String(), movement.ID,
			string(KindTransferOut), string(KindTransferIn),
			movement.RelatedAccountID, movement.AccountID,
		)
	}

	sibling, err := scanMovement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &Error{Kind: ErrTransferPairNotFound, ID: movement.ID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up transfer sibling: %w", err)
	}
	return sibling, nil
}
