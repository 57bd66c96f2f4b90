package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var historyCmd = &cobra.Command{
	Use:   "history ACCOUNT",
	Short: "List an account's movements, newest first",
	Args:  cobra.ExactArgs(1),
	Run:   runHistory,
}

func runHistory(cmd *cobra.Command, args []string) {
	service, conn := openService()
	defer conn.Close()

	history, err := service.ListMovements(owner, args[0])
	if err != nil {
		fail(err)
	}

	fmt.Printf("Movements of %q (balance %s):\n",
		history.Account.Name, money.Format(history.Account.Balance))
	if len(history.Movements) == 0 {
		fmt.Println("  no movements yet")
		return
	}

	for _, m := range history.Movements {
		line := fmt.Sprintf("  #%-5d %s  %-12s %s",
			m.ID,
			m.CreatedAt.Format("2006-01-02 15:04"),
			movementLabel(m.Kind),
			money.Format(m.Amount),
		)
		if m.Kind.IsTransfer() && m.RelatedAccount != "" {
			line += fmt.Sprintf("  with %q", m.RelatedAccount)
		} else if m.Category != "" {
			line += fmt.Sprintf("  [%s]", m.Category)
		}
		fmt.Println(line)
	}
}
