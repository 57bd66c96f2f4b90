package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fund creates a debit account with an opening income.
func fund(t *testing.T, s *Service, name, amount string) {
	t.Helper()
	_, err := s.CreateAccount(testOwner, name, KindDebit)
	require.NoError(t, err)
	if amount != "0" {
		_, err = s.RecordMovement(testOwner, name, dec(t, amount), "", KindIncome)
		require.NoError(t, err)
	}
}

func TestTransfer(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")
	fund(t, s, "b", "0")

	result, err := s.Transfer(testOwner, "a", "b", dec(t, "200"))
	require.NoError(t, err)

	require.Equal(t, KindTransferOut, result.Out.Kind)
	require.Equal(t, KindTransferIn, result.In.Kind)
	require.True(t, result.Out.Amount.Equal(dec(t, "200")))
	require.True(t, result.In.Amount.Equal(dec(t, "200")))

	// The halves are linked and mirror each other.
	require.NotEmpty(t, result.Out.TransferID)
	require.Equal(t, result.Out.TransferID, result.In.TransferID)
	require.Equal(t, result.Out.AccountID, result.In.RelatedAccountID)
	require.Equal(t, result.In.AccountID, result.Out.RelatedAccountID)

	require.True(t, result.Source.Balance.Equal(dec(t, "300")))
	require.True(t, result.Dest.Balance.Equal(dec(t, "200")))
	requireBalance(t, s, "a", "300")
	requireBalance(t, s, "b", "200")
	requireLedgerConsistent(t, s)
}

func TestTransferSameAccount(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")

	_, err := s.Transfer(testOwner, "a", "a", dec(t, "10"))
	require.True(t, IsKind(err, ErrSameAccount))

	// Case and whitespace don't dodge the check.
	_, err = s.Transfer(testOwner, "a", "  A ", dec(t, "10"))
	require.True(t, IsKind(err, ErrSameAccount))
}

func TestTransferAccountNotFound(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")

	var de *Error

	_, err := s.Transfer(testOwner, "missing", "a", dec(t, "10"))
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrAccountNotFound, de.Kind)
	require.Equal(t, "missing", de.Account)

	_, err = s.Transfer(testOwner, "a", "nowhere", dec(t, "10"))
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrAccountNotFound, de.Kind)
	require.Equal(t, "nowhere", de.Account)

	// Both missing: the source failure is reported.
	_, err = s.Transfer(testOwner, "ghost", "phantom", dec(t, "10"))
	require.ErrorAs(t, err, &de)
	require.Equal(t, "ghost", de.Account)
}

func TestTransferInvalidAmount(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")
	fund(t, s, "b", "0")

	_, err := s.Transfer(testOwner, "a", "b", dec(t, "0"))
	require.True(t, IsKind(err, ErrInvalidAmount))

	_, err = s.Transfer(testOwner, "a", "b", dec(t, "-3"))
	require.True(t, IsKind(err, ErrInvalidAmount))
}

func TestTransferInsufficientFunds(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "50")
	fund(t, s, "b", "0")

	var de *Error
	_, err := s.Transfer(testOwner, "a", "b", dec(t, "100"))
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrInsufficientFunds, de.Kind)
	require.Equal(t, "a", de.Account)
	require.True(t, de.Balance.Equal(dec(t, "50")))

	// The failed attempt left nothing behind.
	requireBalance(t, s, "a", "50")
	requireBalance(t, s, "b", "0")
	var count int
	require.NoError(t, s.conn.QueryRow(
		"SELECT COUNT(*) FROM movements WHERE kind IN ('transfer_out', 'transfer_in')").Scan(&count))
	require.Zero(t, count)
}

// Credit sources represent credit lines: no funds check applies.
func TestTransferFromCreditAccount(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateAccount(testOwner, "visa", KindCredit)
	require.NoError(t, err)
	fund(t, s, "cash", "0")

	_, err = s.Transfer(testOwner, "visa", "cash", dec(t, "300"))
	require.NoError(t, err)

	requireBalance(t, s, "visa", "-300")
	requireBalance(t, s, "cash", "300")
	requireLedgerConsistent(t, s)
}

func TestDeleteTransferHalfRemovesPair(t *testing.T) {
	for _, half := range []string{"out", "in"} {
		t.Run(half, func(t *testing.T) {
			s := newTestService(t)
			fund(t, s, "a", "500")
			fund(t, s, "b", "0")

			result, err := s.Transfer(testOwner, "a", "b", dec(t, "200"))
			require.NoError(t, err)
			requireBalance(t, s, "a", "300")
			requireBalance(t, s, "b", "200")

			id := result.Out.ID
			if half == "in" {
				id = result.In.ID
			}

			deleted, err := s.DeleteMovement(testOwner, id)
			require.NoError(t, err)
			require.Len(t, deleted.Movements, 2)
			require.Len(t, deleted.Accounts, 2)
			// Historical source first, destination second.
			require.Equal(t, "a", deleted.Accounts[0].Name)
			require.Equal(t, "b", deleted.Accounts[1].Name)

			requireBalance(t, s, "a", "500")
			requireBalance(t, s, "b", "0")
			requireLedgerConsistent(t, s)

			_, err = s.GetMovement(testOwner, result.Out.ID)
			require.True(t, IsKind(err, ErrMovementNotFound))
			_, err = s.GetMovement(testOwner, result.In.ID)
			require.True(t, IsKind(err, ErrMovementNotFound))
		})
	}
}

func TestDeleteTransferPairNotFound(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")
	fund(t, s, "b", "0")

	result, err := s.Transfer(testOwner, "a", "b", dec(t, "200"))
	require.NoError(t, err)

	// Orphan the out half.
	_, err = s.conn.Exec("DELETE FROM movements WHERE id = ?", result.In.ID)
	require.NoError(t, err)

	_, err = s.DeleteMovement(testOwner, result.Out.ID)
	require.True(t, IsKind(err, ErrTransferPairNotFound))

	// The orphaned row survives the failed delete.
	_, err = s.GetMovement(testOwner, result.Out.ID)
	require.NoError(t, err)
}

// Rows created before transfer ids existed are matched by amount and the
// swapped account pair.
func TestDeleteLegacyTransferWithoutGroupID(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")
	fund(t, s, "b", "0")

	a, err := s.FindAccount(testOwner, "a")
	require.NoError(t, err)
	b, err := s.FindAccount(testOwner, "b")
	require.NoError(t, err)

	// Simulate a legacy pair: linked rows with no transfer id, balances
	// already reflecting the transfer.
	res, err := s.conn.Exec(
		`INSERT INTO movements (owner_id, account_id, kind, amount, related_account_id)
		 VALUES (?, ?, 'transfer_out', '200', ?)`, testOwner, a.ID, b.ID)
	require.NoError(t, err)
	outID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = s.conn.Exec(
		`INSERT INTO movements (owner_id, account_id, kind, amount, related_account_id)
		 VALUES (?, ?, 'transfer_in', '200', ?)`, testOwner, b.ID, a.ID)
	require.NoError(t, err)
	_, err = s.conn.Exec("UPDATE accounts SET balance = '300' WHERE id = ?", a.ID)
	require.NoError(t, err)
	_, err = s.conn.Exec("UPDATE accounts SET balance = '200' WHERE id = ?", b.ID)
	require.NoError(t, err)

	deleted, err := s.DeleteMovement(testOwner, outID)
	require.NoError(t, err)
	require.Len(t, deleted.Movements, 2)

	requireBalance(t, s, "a", "500")
	requireBalance(t, s, "b", "0")
	requireLedgerConsistent(t, s)
}
