// Package cmd provides the CLI commands for the bonus comparison engine.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/bonus-engine/config"
	"github.com/warp/bonus-engine/currency"
)

var (
	localeFlag   string
	currencyFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bonus-engine",
	Short: "Compare monthly and quarterly bonus accrual schemes",
	Long: `bonus-engine calculates progressive sales bonuses and answers one
question: for a given quarter, does accruing the bonus monthly or
quarterly pay more?

Examples:
  bonus-engine compare 100000 150000 200000
  bonus-engine compare --salary 50000 100000 200000 300000
  bonus-engine tiers --salary 50000`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "output locale (default $LOCALE or zh-Hans)")
	rootCmd.PersistentFlags().StringVar(&currencyFlag, "currency", "", "ISO 4217 currency for amounts (default $CURRENCY or CNY)")

	// Add subcommands
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig fills flag gaps from the environment configuration.
func initConfig() {
	cfg := config.Get()
	if localeFlag == "" {
		localeFlag = cfg.Locale
	}
	if currencyFlag == "" {
		currencyFlag = cfg.Currency
	}
}

// newFormatter builds the output formatter from the resolved flags.
func newFormatter() *currency.Formatter {
	return currency.NewFormatter(localeFlag, currencyFlag)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bonus-engine version 0.1.0")
	},
}
