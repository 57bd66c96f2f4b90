package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryTotals(t *testing.T) {
	s := newTestService(t)

	fund(t, s, "cash", "1000")
	fund(t, s, "savings", "250")
	_, err := s.CreateAccount(testOwner, "visa", KindCredit)
	require.NoError(t, err)
	_, err = s.RecordMovement(testOwner, "visa", dec(t, "400"), "", KindExpense)
	require.NoError(t, err)

	summary, err := s.Summary(testOwner)
	require.NoError(t, err)
	require.Len(t, summary.Accounts, 3)
	require.True(t, summary.DebitTotal.Equal(dec(t, "1250")))
	require.True(t, summary.CreditTotal.Equal(dec(t, "-400")))
	require.True(t, summary.NetWorth.Equal(dec(t, "850")))
}

func TestSummaryEmpty(t *testing.T) {
	s := newTestService(t)

	summary, err := s.Summary(testOwner)
	require.NoError(t, err)
	require.Empty(t, summary.Accounts)
	require.True(t, summary.NetWorth.IsZero())
}

// backdate rewrites a movement's timestamp so period filters can be
// exercised deterministically.
func backdate(t *testing.T, s *Service, id int64, timestamp string) {
	t.Helper()
	_, err := s.conn.Exec("UPDATE movements SET created_at = ? WHERE id = ?", timestamp, id)
	require.NoError(t, err)
}

func record(t *testing.T, s *Service, account, amount, category string, kind MovementKind, timestamp string) {
	t.Helper()
	result, err := s.RecordMovement(testOwner, account, dec(t, amount), category, kind)
	require.NoError(t, err)
	backdate(t, s, result.Movement.ID, timestamp)
}

func TestCategorySummary(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "100", "food", KindExpense, "2025-03-05 09:00:00")
	record(t, s, "cash", "250", "rent", KindExpense, "2025-03-10 09:00:00")
	record(t, s, "cash", "40", "food", KindExpense, "2025-03-20 09:00:00")
	record(t, s, "cash", "900", "salary", KindIncome, "2025-03-01 09:00:00")
	record(t, s, "cash", "60", "", KindIncome, "2025-03-02 09:00:00")

	summary, err := s.CategorySummary(testOwner, nil, nil)
	require.NoError(t, err)

	// Expenses descending by total: rent 250, food 140.
	require.Len(t, summary.Expenses, 2)
	require.Equal(t, "rent", summary.Expenses[0].Category)
	require.True(t, summary.Expenses[0].Total.Equal(dec(t, "250")))
	require.Equal(t, "food", summary.Expenses[1].Category)
	require.True(t, summary.Expenses[1].Total.Equal(dec(t, "140")))

	require.Len(t, summary.Income, 2)
	require.Equal(t, "salary", summary.Income[0].Category)
	require.Equal(t, CategoryUncategorized, summary.Income[1].Category)

	require.True(t, summary.ExpenseTotal.Equal(dec(t, "390")))
	require.True(t, summary.IncomeTotal.Equal(dec(t, "960")))
	require.True(t, summary.Balance.Equal(dec(t, "570")))
}

func TestCategorySummaryPeriodFilter(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "100", "food", KindExpense, "2025-03-05 09:00:00")
	record(t, s, "cash", "70", "food", KindExpense, "2025-04-05 09:00:00")
	record(t, s, "cash", "30", "food", KindExpense, "2024-03-05 09:00:00")

	year, month := 2025, 3
	summary, err := s.CategorySummary(testOwner, &year, &month)
	require.NoError(t, err)
	require.Len(t, summary.Expenses, 1)
	require.True(t, summary.ExpenseTotal.Equal(dec(t, "100")))

	// Year alone covers all its months.
	summary, err = s.CategorySummary(testOwner, &year, nil)
	require.NoError(t, err)
	require.True(t, summary.ExpenseTotal.Equal(dec(t, "170")))

	// Month alone spans years.
	summary, err = s.CategorySummary(testOwner, nil, &month)
	require.NoError(t, err)
	require.True(t, summary.ExpenseTotal.Equal(dec(t, "130")))
}

// Transfers never show up in category or month summaries.
func TestSummariesIgnoreTransfers(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "a", "500")
	fund(t, s, "b", "0")

	_, err := s.Transfer(testOwner, "a", "b", dec(t, "200"))
	require.NoError(t, err)

	summary, err := s.CategorySummary(testOwner, nil, nil)
	require.NoError(t, err)
	require.Len(t, summary.Income, 1) // the funding income only
	require.Empty(t, summary.Expenses)

	months, err := s.MonthlySummary(testOwner, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, months, 1)
	require.True(t, months[0].Income.Equal(dec(t, "500")))
	require.True(t, months[0].Expenses.IsZero())
}

func TestMonthlySummaryRecent(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "100", "", KindExpense, "2025-01-10 09:00:00")
	record(t, s, "cash", "200", "", KindIncome, "2025-01-15 09:00:00")
	record(t, s, "cash", "50", "", KindExpense, "2025-02-10 09:00:00")
	record(t, s, "cash", "80", "", KindIncome, "2024-12-01 09:00:00")

	months, err := s.MonthlySummary(testOwner, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, months, 3)

	// Newest first.
	require.Equal(t, 2025, months[0].Year)
	require.Equal(t, 2, months[0].Month)
	require.True(t, months[0].Balance.Equal(dec(t, "-50")))

	require.Equal(t, 1, months[1].Month)
	require.True(t, months[1].Expenses.Equal(dec(t, "100")))
	require.True(t, months[1].Income.Equal(dec(t, "200")))
	require.True(t, months[1].Balance.Equal(dec(t, "100")))

	require.Equal(t, 2024, months[2].Year)
	require.Equal(t, 12, months[2].Month)
}

func TestMonthlySummaryLimit(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "10", "", KindExpense, "2025-01-10 09:00:00")
	record(t, s, "cash", "10", "", KindExpense, "2025-02-10 09:00:00")
	record(t, s, "cash", "10", "", KindExpense, "2025-03-10 09:00:00")

	months, err := s.MonthlySummary(testOwner, nil, nil, 2)
	require.NoError(t, err)
	require.Len(t, months, 2)
	require.Equal(t, 3, months[0].Month)
	require.Equal(t, 2, months[1].Month)
}

func TestMonthlySummaryYearAscending(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "10", "", KindExpense, "2025-05-10 09:00:00")
	record(t, s, "cash", "10", "", KindExpense, "2025-02-10 09:00:00")
	record(t, s, "cash", "10", "", KindExpense, "2024-08-10 09:00:00")

	year := 2025
	months, err := s.MonthlySummary(testOwner, &year, nil, 0)
	require.NoError(t, err)
	require.Len(t, months, 2)
	require.Equal(t, 2, months[0].Month)
	require.Equal(t, 5, months[1].Month)
}

func TestMonthlySummarySingleBucket(t *testing.T) {
	s := newTestService(t)
	fund(t, s, "cash", "0")

	record(t, s, "cash", "10", "", KindExpense, "2025-05-10 09:00:00")
	record(t, s, "cash", "30", "", KindIncome, "2025-05-12 09:00:00")
	record(t, s, "cash", "10", "", KindExpense, "2025-06-10 09:00:00")

	year, month := 2025, 5
	months, err := s.MonthlySummary(testOwner, &year, &month, 0)
	require.NoError(t, err)
	require.Len(t, months, 1)
	require.True(t, months[0].Balance.Equal(dec(t, "20")))

	// No data for the requested month: empty result, not an error.
	month = 11
	months, err = s.MonthlySummary(testOwner, &year, &month, 0)
	require.NoError(t, err)
	require.Empty(t, months)
}
