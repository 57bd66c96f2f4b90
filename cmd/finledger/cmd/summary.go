package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var (
	summaryYear  int
	summaryMonth int
	monthsLimit  int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show all account balances and net worth",
	Args:  cobra.NoArgs,
	Run:   runSummary,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show expenses and income grouped by category",
	Long: `Show expenses and income grouped by category, optionally limited
to a year and/or month.

Example:
  finledger categories
  finledger categories --year 2025 --month 3`,
	Args: cobra.NoArgs,
	Run:  runCategories,
}

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Show expenses, income and balance per month",
	Long: `Show per-month totals. Without filters the most recent months are
shown, newest first. With --year all months of that year are shown in
order; adding --month narrows to one month.`,
	Args: cobra.NoArgs,
	Run:  runMonths,
}

func init() {
	categoriesCmd.Flags().IntVar(&summaryYear, "year", 0, "filter by year")
	categoriesCmd.Flags().IntVar(&summaryMonth, "month", 0, "filter by month (1-12)")
	monthsCmd.Flags().IntVar(&summaryYear, "year", 0, "filter by year")
	monthsCmd.Flags().IntVar(&summaryMonth, "month", 0, "filter by month (1-12)")
	monthsCmd.Flags().IntVar(&monthsLimit, "limit", 0, "number of months when unfiltered (default 12)")
}

// yearMonthFilters converts the zero-value flags to optional filters.
func yearMonthFilters() (*int, *int) {
	var year, month *int
	if summaryYear > 0 {
		year = &summaryYear
	}
	if summaryMonth >= 1 && summaryMonth <= 12 {
		month = &summaryMonth
	}
	return year, month
}

func runSummary(cmd *cobra.Command, args []string) {
	service, conn := openService()
	defer conn.Close()

	summary, err := service.Summary(owner)
	if err != nil {
		fail(err)
	}

	if len(summary.Accounts) == 0 {
		fmt.Println("No accounts yet.")
		return
	}

	for _, a := range summary.Accounts {
		fmt.Printf("%-20s %-7s %s\n", a.Name, a.Kind, money.Format(a.Balance))
	}
	fmt.Printf("\nDebit total:  %s\n", money.Format(summary.DebitTotal))
	fmt.Printf("Credit total: %s\n", money.Format(summary.CreditTotal))
	fmt.Printf("Net worth:    %s\n", money.Format(summary.NetWorth))
}

func runCategories(cmd *cobra.Command, args []string) {
	year, month := yearMonthFilters()

	service, conn := openService()
	defer conn.Close()

	summary, err := service.CategorySummary(owner, year, month)
	if err != nil {
		fail(err)
	}

	if len(summary.Expenses) == 0 && len(summary.Income) == 0 {
		fmt.Println("No expenses or income in the selected period.")
		return
	}

	fmt.Println("Expenses by category:")
	for _, c := range summary.Expenses {
		fmt.Printf("  %-20s %s\n", c.Category, money.Format(c.Total))
	}
	fmt.Printf("  Total: %s\n\n", money.Format(summary.ExpenseTotal))

	fmt.Println("Income by category:")
	for _, c := range summary.Income {
		fmt.Printf("  %-20s %s\n", c.Category, money.Format(c.Total))
	}
	fmt.Printf("  Total: %s\n\n", money.Format(summary.IncomeTotal))

	fmt.Printf("Balance: %s\n", money.Format(summary.Balance))
}

func runMonths(cmd *cobra.Command, args []string) {
	year, month := yearMonthFilters()

	service, conn := openService()
	defer conn.Close()

	months, err := service.MonthlySummary(owner, year, month, monthsLimit)
	if err != nil {
		fail(err)
	}

	if len(months) == 0 {
		fmt.Println("No movements in the selected period.")
		return
	}

	for _, m := range months {
		fmt.Printf("%s %d: expenses %s | income %s | balance %s\n",
			time.Month(m.Month).String(), m.Year,
			money.Format(m.Expenses), money.Format(m.Income), money.Format(m.Balance))
	}
}
