package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
	"github.com/pigeonworks-llc/finledger/pkg/money"
)

var (
	editAmount   string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a past expense or income",
	Long: `Edit the amount and/or category of a recorded expense or income.
The account balance is adjusted to match. Transfers cannot be edited;
delete and recreate them instead.

Example:
  finledger edit 42 --amount 200
  finledger edit 42 --category restaurants`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editAmount, "amount", "", "new amount")
	editCmd.Flags().StringVar(&editCategory, "category", "", "new category")
}

func runEdit(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail(&ledger.Error{Kind: ledger.ErrMovementNotFound})
	}

	var newAmount *decimal.Decimal
	if editAmount != "" && !money.IsSkip(editAmount) {
		amount, err := money.Parse(editAmount)
		if err != nil {
			fail(&ledger.Error{Kind: ledger.ErrInvalidAmount})
		}
		newAmount = &amount
	}

	var newCategory *string
	if editCategory != "" && !money.IsSkip(editCategory) {
		newCategory = &editCategory
	}

	service, conn := openService()
	defer conn.Close()

	result, err := service.EditMovement(owner, id, newAmount, newCategory)
	if err != nil {
		fail(err)
	}

	var changes []string
	if newAmount != nil {
		changes = append(changes, "amount "+money.Format(result.Movement.Amount))
	}
	if newCategory != nil {
		changes = append(changes, fmt.Sprintf("category %q", result.Movement.Category))
	}
	fmt.Printf("Movement #%d updated: %s. New balance of %q: %s\n",
		result.Movement.ID,
		strings.Join(changes, ", "),
		result.Account.Name,
		money.Format(result.Account.Balance),
	)
}
