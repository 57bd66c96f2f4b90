package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a movement and reverse its balance effect",
	Long: `Delete a movement by id. The account balance is restored to what
it would be without the entry. Deleting either half of a transfer
removes both halves and restores both accounts.`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail(&ledger.Error{Kind: ledger.ErrMovementNotFound})
	}

	service, conn := openService()
	defer conn.Close()

	result, err := service.DeleteMovement(owner, id)
	if err != nil {
		fail(err)
	}

	m := result.Movements[0]
	if m.Kind.IsTransfer() {
		fmt.Printf("Transfer of %s deleted (both halves removed).\n", money.Format(m.Amount))
	} else {
		fmt.Printf("%s of %s deleted.\n", movementLabel(m.Kind), money.Format(m.Amount))
	}
	for _, a := range result.Accounts {
		fmt.Printf("  %-20s %s\n", a.Name, money.Format(a.Balance))
	}
}

func movementLabel(kind ledger.MovementKind) string {
	switch kind {
	case ledger.KindExpense:
		return "Expense"
	case ledger.KindIncome:
		return "Income"
	case ledger.KindTransferOut:
		return "Transfer out"
	case ledger.KindTransferIn:
		return "Transfer in"
	default:
		return string(kind)
	}
}
