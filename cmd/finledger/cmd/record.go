package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var expenseCmd = &cobra.Command{
	Use:   "expense ACCOUNT AMOUNT [CATEGORY]",
	Short: "Record an expense",
	Long: `Record an expense against an account.

The amount accepts flexible separators: 1000, 1000.50, 1.000,50 and
1,000.50 all work. The category is optional ('null' also skips it).

Example:
  finledger expense cash 1.250,50 groceries`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		runRecord(args, ledger.KindExpense)
	},
}

var incomeCmd = &cobra.Command{
	Use:   "income ACCOUNT AMOUNT [CATEGORY]",
	Short: "Record income",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		runRecord(args, ledger.KindIncome)
	},
}

func runRecord(args []string, kind ledger.MovementKind) {
	amount, err := money.Parse(args[1])
	if err != nil {
		fail(&ledger.Error{Kind: ledger.ErrInvalidAmount})
	}

	category := ""
	if len(args) == 3 && !money.IsSkip(args[2]) {
		category = args[2]
	}

	service, conn := openService()
	defer conn.Close()

	result, err := service.RecordMovement(owner, args[0], amount, category, kind)
	if err != nil {
		fail(err)
	}

	verb := "Expense"
	if kind == ledger.KindIncome {
		verb = "Income"
	}
	fmt.Printf("%s of %s recorded in %q [%s]. New balance: %s\n",
		verb,
		money.Format(result.Movement.Amount),
		result.Account.Name,
		result.Movement.Category,
		money.Format(result.Account.Balance),
	)
}
