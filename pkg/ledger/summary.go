package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AccountSummary is the total view: per-account balances plus aggregate
// totals per kind and their sum.
type AccountSummary struct {
	Accounts    []Account
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	NetWorth    decimal.Decimal
}

// Summary returns the owner's accounts with kind totals and net worth.
func (s *Service) Summary(ownerID int64) (*AccountSummary, error) {
	accounts, err := s.ListAccounts(ownerID)
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{Accounts: accounts}
	for _, a := range accounts {
		if a.Kind == KindDebit {
			summary.DebitTotal = summary.DebitTotal.Add(a.Balance)
		} else {
			summary.CreditTotal = summary.CreditTotal.Add(a.Balance)
		}
	}
	summary.NetWorth = summary.DebitTotal.Add(summary.CreditTotal)
	return summary, nil
}

// CategoryTotal is one category bucket in a category summary.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategorySummary groups expenses and income by category, each sorted by
// total descending, over an optional year/month window.
type CategorySummary struct {
	Expenses     []CategoryTotal
	Income       []CategoryTotal
	ExpenseTotal decimal.Decimal
	IncomeTotal  decimal.Decimal
	Balance      decimal.Decimal // income - expenses
	Year         *int
	Month        *int
}

// CategorySummary aggregates expenses and income by category. A nil year
// or month leaves that dimension unfiltered. Amounts are summed in
// decimal, not by the database, so totals stay exact.
func (s *Service) CategorySummary(ownerID int64, year, month *int) (*CategorySummary, error) {
	query := `SELECT kind, category, amount FROM movements
		WHERE owner_id = ? AND kind IN (?, ?)`
	args := []interface{}{ownerID, string(KindExpense), string(KindIncome)}
	query, args = appendPeriodFilter(query, args, year, month)

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer rows.Close()

	expenses := map[string]decimal.Decimal{}
	income := map[string]decimal.Decimal{}
	summary := &CategorySummary{Year: year, Month: month}
	for rows.Next() {
		var kind, category, amount string
		if err := rows.Scan(&kind, &category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount in category summary: %w", err)
		}
		if category == "" {
			category = CategoryUncategorized
		}
		if MovementKind(kind) == KindExpense {
			expenses[category] = expenses[category].Add(amt)
			summary.ExpenseTotal = summary.ExpenseTotal.Add(amt)
		} else {
			income[category] = income[category].Add(amt)
			summary.IncomeTotal = summary.IncomeTotal.Add(amt)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category summary: %w", err)
	}

	summary.Expenses = sortedCategoryTotals(expenses)
	summary.Income = sortedCategoryTotals(income)
	summary.Balance = summary.IncomeTotal.Sub(summary.ExpenseTotal)
	return summary, nil
}

func sortedCategoryTotals(totals map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthSummary is one (year, month) bucket with its expense and income
// sums and the resulting balance.
type MonthSummary struct {
	Year     int
	Month    int
	Expenses decimal.Decimal
	Income   decimal.Decimal
	Balance  decimal.Decimal // income - expenses
}

// DefaultMonthLimit bounds the unfiltered monthly summary.
const DefaultMonthLimit = 12

// MonthlySummary buckets expenses and income by calendar month. With both
// year and month it returns at most the single matching bucket; with only
// a year, all that year's months ascending; otherwise the most recent
// limit buckets (default 12), newest first.
func (s *Service) MonthlySummary(ownerID int64, year, month *int, limit int) ([]MonthSummary, error) {
	if limit <= 0 {
		limit = DefaultMonthLimit
	}

	query := `SELECT CAST(strftime('%Y', created_at) AS INTEGER),
		CAST(strftime('%m', created_at) AS INTEGER), kind, amount
		FROM movements WHERE owner_id = ? AND kind IN (?, ?)`
	args := []interface{}{ownerID, string(KindExpense), string(KindIncome)}
	query, args = appendPeriodFilter(query, args, year, month)

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summary: %w", err)
	}
	defer rows.Close()

	type bucketKey struct{ year, month int }
	buckets := map[bucketKey]*MonthSummary{}
	for rows.Next() {
		var y, m int
		var kind, amount string
		if err := rows.Scan(&y, &m, &kind, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan month row: %w", err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount in monthly summary: %w", err)
		}
		key := bucketKey{y, m}
		b, ok := buckets[key]
		if !ok {
			b = &MonthSummary{Year: y, Month: m}
			buckets[key] = b
		}
		if MovementKind(kind) == KindExpense {
			b.Expenses = b.Expenses.Add(amt)
		} else {
			b.Income = b.Income.Add(amt)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monthly summary: %w", err)
	}

	out := make([]MonthSummary, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income.Sub(b.Expenses)
		out = append(out, *b)
	}

	ascending := year != nil && month == nil
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			if out[i].Year != out[j].Year {
				return out[i].Year < out[j].Year
			}
			return out[i].Month < out[j].Month
		}
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})

	if year == nil && month == nil && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// appendPeriodFilter adds year/month predicates over created_at.
func appendPeriodFilter(query string, args []interface{}, year, month *int) (string, []interface{}) {
	if year != nil {
		query += " AND CAST(strftime('%Y', created_at) AS INTEGER) = ?"
		args = append(args, *year)
	}
	if month != nil {
		query += " AND CAST(strftime('%m', created_at) AS INTEGER) = ?"
		args = append(args, *month)
	}
	return query, args
}
