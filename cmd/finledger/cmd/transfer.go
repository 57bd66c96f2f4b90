package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var transferCmd = &cobra.Command{
	Use:   "transfer SOURCE DEST AMOUNT",
	Short: "Transfer between two accounts",
	Long: `Transfer money from one account to another.

Both halves of the transfer are recorded as linked movements. Debit
source accounts must cover the amount; credit sources may overdraw.

Example:
  finledger transfer cash savings 200`,
	Args: cobra.ExactArgs(3),
	Run:  runTransfer,
}

func runTransfer(cmd *cobra.Command, args []string) {
	amount, err := money.Parse(args[2])
	if err != nil {
		fail(&ledger.Error{Kind: ledger.ErrInvalidAmount})
	}

	service, conn := openService()
	defer conn.Close()

	result, err := service.Transfer(owner, args[0], args[1], amount)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Transferred %s from %q to %q.\n",
		money.Format(amount), result.Source.Name, result.Dest.Name)
	fmt.Printf("  %-20s %s\n", result.Source.Name, money.Format(result.Source.Balance))
	fmt.Printf("  %-20s %s\n", result.Dest.Name, money.Format(result.Dest.Balance))
}
