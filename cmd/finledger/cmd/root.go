// Package cmd provides CLI commands for finledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/finledger/pkg/config"
	"github.com/pigeonworks-llc/finledger/pkg/db"
	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

var (
	cfgFile string
	dbPath  string
	owner   int64
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "finledger",
	Short: "Personal-finance ledger",
	Long: `finledger keeps per-user accounts and a transaction log in SQLite.

It supports:
- Creating debit and credit accounts
- Recording expenses and income with categories
- Double-entry transfers between accounts
- Editing and deleting past entries with exact balance reversal
- Totals, by-category and by-month summaries

Example:
  finledger account create cash debit
  finledger expense cash 1.250,50 groceries
  finledger transfer cash savings 200
  finledger summary`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides configuration)")
	rootCmd.PersistentFlags().Int64Var(&owner, "owner", defaultOwner(), "owner id partitioning the ledger")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(monthsCmd)
}

// defaultOwner reads FINLEDGER_OWNER so a single-user install doesn't
// need the flag on every call.
func defaultOwner() int64 {
	if raw := os.Getenv("FINLEDGER_OWNER"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id
		}
	}
	return 1
}

// openService opens the configured store and returns the ledger service.
// The caller must Close the returned connection.
func openService() (*ledger.Service, *db.Connection) {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	path := cfg.Database.Path
	if dbPath != "" {
		path = dbPath
	}

	slog.Debug("Opening ledger store", "path", path)
	conn, err := db.Open(path)
	exitOnError(err, "failed to open ledger store")

	return ledger.NewService(conn), conn
}

// fail reports an operation error and exits. Expected domain conditions
// print as plain messages; anything else is a store fault.
func fail(err error) {
	if _, ok := ledger.KindOf(err); ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exitOnError(err, "operation failed")
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
