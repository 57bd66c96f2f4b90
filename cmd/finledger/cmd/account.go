package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
	"github.com/pigeonworks-llc/finledger/pkg/money"
)

// accountCmd groups account management commands.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create NAME KIND",
	Short: "Create an account (KIND is 'debit' or 'credit')",
	Args:  cobra.ExactArgs(2),
	Run:   runAccountCreate,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with balances",
	Args:  cobra.NoArgs,
	Run:   runAccountList,
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
}

func runAccountCreate(cmd *cobra.Command, args []string) {
	service, conn := openService()
	defer conn.Close()

	account, err := service.CreateAccount(owner, args[0], ledger.AccountKind(args[1]))
	if err != nil {
		fail(err)
	}

	fmt.Printf("Account %q (%s) created.\n", account.Name, account.Kind)
}

func runAccountList(cmd *cobra.Command, args []string) {
	service, conn := openService()
	defer conn.Close()

	accounts, err := service.ListAccounts(owner)
	if err != nil {
		fail(err)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts yet. Create one with 'finledger account create NAME KIND'.")
		return
	}

	for _, a := range accounts {
		fmt.Printf("%-20s %-7s %s\n", a.Name, a.Kind, money.Format(a.Balance))
	}
}
