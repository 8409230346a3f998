// Package cmd - tiers command
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/tier"
)

// tiersCmd represents the tiers command
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the tier tables the comparison runs against",
	Long: `Print the monthly and quarterly tier tables with their band
boundaries and rates, resolved from the same flags the compare command
takes.

Examples:
  bonus-engine tiers
  bonus-engine tiers --salary 50000
  bonus-engine tiers --plan tables.json`,
	RunE: runTiers,
}

func init() {
	tiersCmd.Flags().StringVarP(&salaryFlag, "salary", "s", "", "monthly salary the thresholds derive from")
	tiersCmd.Flags().StringVarP(&ratesFlag, "rates", "r", "", "comma-separated tier rates (fractions, e.g. 0.03,0.05,0.10,0.15)")
	tiersCmd.Flags().StringVarP(&thresholdsFlag, "thresholds", "t", "", "comma-separated monthly thresholds, overrides --salary")
	tiersCmd.Flags().StringVarP(&planFile, "plan", "p", "", "JSON plan file with explicit monthly/quarterly tables")
}

func runTiers(cmd *cobra.Command, args []string) error {
	plan, err := resolvePlan()
	if err != nil {
		return err
	}

	f := newFormatter()
	printSchedule(f, "Monthly", plan.Monthly)
	fmt.Println("")
	printSchedule(f, "Quarterly", plan.Quarterly)
	return nil
}

// printSchedule renders one table as numbered bands.
func printSchedule(f *currency.Formatter, name string, s tier.Schedule) {
	fmt.Printf("%s\n", name)
	lower := decimal.Zero
	for i, upper := range s.Thresholds {
		fmt.Printf("  Tier %d: %s to %s at %s\n",
			i+1, f.FormatNumber(lower), f.FormatNumber(upper), f.FormatRate(s.Rates[i]))
		lower = upper
	}
	if len(s.Rates) > len(s.Thresholds) {
		fmt.Printf("  Tier %d: above %s at %s\n",
			len(s.Thresholds)+1, f.FormatNumber(lower), f.FormatRate(s.Rates[len(s.Rates)-1]))
	}
}
