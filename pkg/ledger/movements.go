package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordMovement posts an expense or income against the named account and
// adjusts its balance in the same store transaction. Expenses subtract,
// income adds. Expenses are never blocked by insufficient funds: balances
// may go negative on any account kind.
func (s *Service) RecordMovement(ownerID int64, accountName string, amount decimal.Decimal, category string, kind MovementKind) (*MovementResult, error) {
	if kind != KindExpense && kind != KindIncome {
		return nil, fmt.Errorf("unsupported movement kind %q", kind)
	}
	cat := NormalizeCategory(category)

	var result *MovementResult
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		account, err := findAccount(tx, ownerID, accountName)
		if err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return &Error{Kind: ErrInvalidAmount}
		}

		newBalance := account.Balance.Sub(amount)
		if kind == KindIncome {
			newBalance = account.Balance.Add(amount)
		}

		res, err := tx.Exec(
			"INSERT INTO movements (owner_id, account_id, kind, amount, category) VALUES (?, ?, ?, ?, ?)",
			ownerID, account.ID, string(kind), amount.String(), cat,
		)
		if err != nil {
			return fmt.Errorf("failed to insert movement: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new movement id: %w", err)
		}

		if err := setBalance(tx, account.ID, newBalance); err != nil {
			return err
		}

		movement, err := getMovementByID(tx, id)
		if err != nil {
			return err
		}
		account.Balance = newBalance
		result = &MovementResult{Movement: *movement, Account: *account}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditMovement updates the amount and/or category of an expense or income
// row. An amount change re-applies the posting: the old amount is undone
// and the new one applied to the account balance, atomically with the row
// update. Transfer halves are immutable.
func (s *Service) EditMovement(ownerID, id int64, newAmount *decimal.Decimal, newCategory *string) (*MovementResult, error) {
	var result *MovementResult
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		movement, err := getMovement(tx, ownerID, id)
		if err != nil {
			return err
		}
		if movement.Kind.IsTransfer() {
			return &Error{Kind: ErrNotEditable, ID: id}
		}
		if newAmount == nil && newCategory == nil {
			return &Error{Kind: ErrNoChange, ID: id}
		}
		if newAmount != nil && newAmount.Sign() <= 0 {
			return &Error{Kind: ErrInvalidAmount}
		}

		account, err := getAccountByID(tx, movement.AccountID)
		if err != nil {
			return err
		}

		if newAmount != nil {
			old := movement.Amount
			// Undo the old posting and apply the new one.
			var newBalance decimal.Decimal
			if movement.Kind == KindExpense {
				newBalance = account.Balance.Add(old).Sub(*newAmount)
			} else {
				newBalance = account.Balance.Sub(old).Add(*newAmount)
			}
			if _, err := tx.Exec("UPDATE movements SET amount = ? WHERE id = ?", newAmount.String(), id); err != nil {
				return fmt.Errorf("failed to update movement amount: %w", err)
			}
			if err := setBalance(tx, account.ID, newBalance); err != nil {
				return err
			}
			account.Balance = newBalance
			movement.Amount = *newAmount
		}

		if newCategory != nil {
			cat := NormalizeCategory(*newCategory)
			if _, err := tx.Exec("UPDATE movements SET category = ? WHERE id = ?", cat, id); err != nil {
				return fmt.Errorf("failed to update movement category: %w", err)
			}
			movement.Category = cat
		}

		result = &MovementResult{Movement: *movement, Account: *account}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteMovement removes a movement and re-applies the inverse balance
// delta. Deleting either half of a transfer removes both halves and
// reverses both account balances.
func (s *Service) DeleteMovement(ownerID, id int64) (*DeleteResult, error) {
	var result *DeleteResult
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		movement, err := getMovement(tx, ownerID, id)
		if err != nil {
			return err
		}

		if movement.Kind.IsTransfer() {
			res, err := deleteTransferPair(tx, ownerID, movement)
			if err != nil {
				return err
			}
			result = res
			return nil
		}

		account, err := getAccountByID(tx, movement.AccountID)
		if err != nil {
			return err
		}

		newBalance := account.Balance.Add(movement.Amount)
		if movement.Kind == KindIncome {
			newBalance = account.Balance.Sub(movement.Amount)
		}

		if _, err := tx.Exec("DELETE FROM movements WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete movement %d: %w", id, err)
		}
		if err := setBalance(tx, account.ID, newBalance); err != nil {
			return err
		}

		account.Balance = newBalance
		result = &DeleteResult{
			Movements: []Movement{*movement},
			Accounts:  []Account{*account},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
