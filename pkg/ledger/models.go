// Package ledger implements the balance-mutation engine behind the
// personal-finance bot: accounts, movement recording, paired transfers,
// edit/delete reversal and summaries. All operations keep account
// balances consistent with the movement log.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account. It affects transfer funds checks and
// summary grouping only; balance arithmetic is identical for both kinds.
type AccountKind string

const (
	KindDebit  AccountKind = "debit"
	KindCredit AccountKind = "credit"
)

// Valid reports whether the kind is one of the known account kinds.
func (k AccountKind) Valid() bool {
	return k == KindDebit || k == KindCredit
}

// MovementKind classifies a row in the movement log.
type MovementKind string

const (
	KindExpense     MovementKind = "expense"
	KindIncome      MovementKind = "income"
	KindTransferOut MovementKind = "transfer_out"
	KindTransferIn  MovementKind = "transfer_in"
)

// IsTransfer reports whether the movement is one half of a transfer pair.
func (k MovementKind) IsTransfer() bool {
	return k == KindTransferOut || k == KindTransferIn
}

// CategoryUncategorized is the sentinel category used when none is supplied.
const CategoryUncategorized = "uncategorized"

// Account is one account owned by a single user.
type Account struct {
	ID        int64
	OwnerID   int64
	Name      string
	Kind      AccountKind
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Movement is one row of the transaction log. RelatedAccountID and
// TransferID are set only on transfer halves; Category is meaningful only
// for expenses and income.
type Movement struct {
	ID               int64
	OwnerID          int64
	AccountID        int64
	Kind             MovementKind
	Amount           decimal.Decimal
	Category         string
	RelatedAccountID int64 // 0 = none
	TransferID       string
	CreatedAt        time.Time
}

// MovementResult is the post-operation state returned by record and edit
// operations.
type MovementResult struct {
	Movement Movement
	Account  Account
}

// TransferResult carries both halves of a completed transfer and the
// updated accounts.
type TransferResult struct {
	Out    Movement
	In     Movement
	Source Account
	Dest   Account
}

// DeleteResult describes what a delete removed. Accounts holds the
// post-reversal state: one entry for an expense or income, the historical
// source then destination for a transfer pair.
type DeleteResult struct {
	Movements []Movement
	Accounts  []Account
}

// NormalizeName canonicalizes an account name for storage and comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeCategory canonicalizes a category, mapping empty input to the
// uncategorized sentinel.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return CategoryUncategorized
	}
	return c
}
