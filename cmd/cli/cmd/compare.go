// Package cmd - compare command
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/factory"
	"github.com/warp/bonus-engine/salary"
	"github.com/warp/bonus-engine/scheme"
	"github.com/warp/bonus-engine/tier"
)

var (
	salaryFlag     string
	ratesFlag      string
	thresholdsFlag string
	planFile       string
	showBands      bool
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare [month1 month2 month3]",
	Short: "Compare one quarter's bonuses under both accrual schemes",
	Long: `Run three months of performance through the monthly and quarterly
tier tables and report which scheme pays more.

Months are positional; omitted months count as zero. Malformed or
negative figures also count as zero.

The tier tables come from, in order of precedence:
  --plan        a JSON plan file with explicit tables
  --thresholds  an explicit monthly table (quarterly thresholds tripled)
  --salary      thresholds derived as salary x3 / x5 / x10
  (none)        the built-in defaults (salary 40000)

Examples:
  bonus-engine compare 100000 150000 200000
  bonus-engine compare --salary 50000 100000 200000 300000
  bonus-engine compare --thresholds 120000,200000,400000 --rates 0.03,0.05,0.10,0.15 150000
  bonus-engine compare --plan tables.json 150000 150000 150000`,
	Args: cobra.MaximumNArgs(scheme.MonthsPerQuarter),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&salaryFlag, "salary", "s", "", "monthly salary the thresholds derive from")
	compareCmd.Flags().StringVarP(&ratesFlag, "rates", "r", "", "comma-separated tier rates (fractions, e.g. 0.03,0.05,0.10,0.15)")
	compareCmd.Flags().StringVarP(&thresholdsFlag, "thresholds", "t", "", "comma-separated monthly thresholds, overrides --salary")
	compareCmd.Flags().StringVarP(&planFile, "plan", "p", "", "JSON plan file with explicit monthly/quarterly tables")
	compareCmd.Flags().BoolVarP(&showBands, "details", "d", false, "show the per-band breakdown of every walk")
}

func runCompare(cmd *cobra.Command, args []string) error {
	plan, err := resolvePlan()
	if err != nil {
		return err
	}

	var input scheme.Input
	for i, arg := range args {
		input.Months[i] = tier.ParsePerformance(arg)
	}

	result := scheme.Compare(input, plan)
	printComparison(newFormatter(), result)
	return nil
}

// resolvePlan builds the table pair the comparison runs against, honoring
// the flag precedence documented on the compare command.
func resolvePlan() (scheme.Plan, error) {
	if planFile != "" {
		data, err := os.ReadFile(planFile)
		if err != nil {
			return scheme.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
		}
		plan, err := factory.NewScheduleFactory().ParsePlan(string(data))
		if err != nil {
			return scheme.Plan{}, fmt.Errorf("invalid plan file %s: %w", planFile, err)
		}
		return plan, nil
	}

	if thresholdsFlag != "" {
		return explicitPlan()
	}

	cfg := salary.DefaultConfig()
	cfg.Unit = tier.Unit(strings.ToUpper(currencyFlag))
	if salaryFlag != "" {
		s, err := decimal.NewFromString(salaryFlag)
		if err != nil {
			return scheme.Plan{}, fmt.Errorf("invalid salary %q: %w", salaryFlag, err)
		}
		cfg, err = cfg.WithSalary(s)
		if err != nil {
			return scheme.Plan{}, err
		}
	}
	if ratesFlag != "" {
		rates, err := parseDecimalList(ratesFlag)
		if err != nil {
			return scheme.Plan{}, err
		}
		if len(rates) != salary.TierCount {
			return scheme.Plan{}, fmt.Errorf("expected %d rates, got %d", salary.TierCount, len(rates))
		}
		for i, r := range rates {
			cfg, err = cfg.WithRate(i, r)
			if err != nil {
				return scheme.Plan{}, err
			}
		}
	}
	return cfg.Plan(), nil
}

// explicitPlan builds the monthly table straight from the threshold and
// rate flags; the quarterly table is the monthly one with tripled
// thresholds. Three rates make a reduced table that pays nothing above
// the last threshold.
func explicitPlan() (scheme.Plan, error) {
	thresholds, err := parseDecimalList(thresholdsFlag)
	if err != nil {
		return scheme.Plan{}, err
	}
	defaults := salary.DefaultConfig()
	rates := defaults.Rates[:]
	if ratesFlag != "" {
		rates, err = parseDecimalList(ratesFlag)
		if err != nil {
			return scheme.Plan{}, err
		}
	}
	monthly := tier.Schedule{
		Thresholds: thresholds,
		Rates:      rates,
		Unit:       tier.Unit(strings.ToUpper(currencyFlag)),
	}
	plan := scheme.Plan{Monthly: monthly, Quarterly: monthly.Scale(scheme.QuarterlyFactor)}
	return plan.Normalized()
}

func parseDecimalList(s string) ([]decimal.Decimal, error) {
	parts := strings.Split(s, ",")
	out := make([]decimal.Decimal, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		d, err := decimal.NewFromString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid figure %q: %w", p, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func printComparison(f *currency.Formatter, result scheme.Result) {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                   BONUS SCHEME COMPARISON")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("")

	fmt.Println("Monthly accrual:")
	for i, bonus := range result.MonthlyBonuses {
		fmt.Printf("  Month %d: %s performance, %s bonus\n",
			i+1, f.Format(bonus.Performance), f.Format(bonus.Total))
		if showBands {
			printBands(f, bonus.Bands)
		}
	}
	fmt.Printf("  Total:   %s\n", f.Format(result.MonthlyTotal))
	fmt.Println("")

	fmt.Println("Quarterly accrual:")
	fmt.Printf("  Quarter: %s performance, %s bonus\n",
		f.Format(result.QuarterlyPerformance), f.Format(result.QuarterlyBonus.Total))
	if showBands {
		printBands(f, result.QuarterlyBonus.Bands)
	}
	fmt.Println("")

	fmt.Println("═══════════════════════════════════════════════════════════════")
	switch result.Outcome {
	case scheme.MonthlyBetter:
		fmt.Printf("Monthly accrual pays %s more\n", f.Format(result.Difference))
	case scheme.QuarterlyBetter:
		fmt.Printf("Quarterly accrual pays %s more\n", f.Format(result.Difference))
	default:
		fmt.Println("Both schemes pay exactly the same")
	}
}

// printBands renders the walk's allocation, one line per band that
// received performance.
func printBands(f *currency.Formatter, bands []tier.Band) {
	for _, band := range bands {
		span := "above " + f.FormatNumber(band.Lower)
		if band.Bounded() {
			span = f.FormatNumber(band.Lower) + " to " + f.FormatNumber(*band.Upper)
		}
		fmt.Printf("    %s at %s: %s\n", span, f.FormatRate(band.Rate), f.Format(band.Bonus))
	}
}
