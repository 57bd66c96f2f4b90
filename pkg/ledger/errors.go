package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorKind tags an expected domain failure.
type ErrorKind string

const (
	ErrAccountNotFound      ErrorKind = "account_not_found"
	ErrDuplicateAccount     ErrorKind = "duplicate_account"
	ErrInvalidAccount       ErrorKind = "invalid_account"
	ErrInvalidAmount        ErrorKind = "invalid_amount"
	ErrSameAccount          ErrorKind = "same_account"
	ErrInsufficientFunds    ErrorKind = "insufficient_funds"
	ErrMovementNotFound     ErrorKind = "movement_not_found"
	ErrNotEditable          ErrorKind = "not_editable"
	ErrNoChange             ErrorKind = "no_change"
	ErrTransferPairNotFound ErrorKind = "transfer_pair_not_found"
)

// Error is an expected domain failure: a kind plus the parameters a front
// end needs to format a message. Store-level faults are returned as plain
// wrapped errors instead and should be treated as fatal by callers.
type Error struct {
	Kind    ErrorKind
	Account string          // account name, when relevant
	ID      int64           // movement id, when relevant
	Balance decimal.Decimal // current balance, for insufficient funds
	Detail  string          // extra context for invalid input
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrAccountNotFound:
		return fmt.Sprintf("account %q not found", e.Account)
	case ErrDuplicateAccount:
		return fmt.Sprintf("an account named %q already exists", e.Account)
	case ErrInvalidAccount:
		return e.Detail
	case ErrInvalidAmount:
		return "amount must be greater than 0"
	case ErrSameAccount:
		return "source and destination accounts must differ"
	case ErrInsufficientFunds:
		return fmt.Sprintf("insufficient funds in %q: current balance %s", e.Account, e.Balance.StringFixed(2))
	case ErrMovementNotFound:
		return fmt.Sprintf("movement #%d not found", e.ID)
	case ErrNotEditable:
		return "transfers cannot be edited; delete and recreate instead"
	case ErrNoChange:
		return "nothing to change: provide a new amount or category"
	case ErrTransferPairNotFound:
		return fmt.Sprintf("no matching transfer half found for movement #%d", e.ID)
	default:
		return string(e.Kind)
	}
}

// KindOf extracts the domain error kind, if any.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
