/*
Package currency renders amounts and rates as localized display text.

The API and CLI show every amount twice: a raw decimal string for machines
and a localized string for people. This package owns the second form, built
on golang.org/x/text so CLDR data decides symbols and separators instead of
hand-written tables.
*/
package currency

import (
	"math"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/warp/bonus-engine/tier"
)

// NotAvailable is returned when a value cannot be rendered as a number.
const NotAvailable = "N/A"

// Formatter renders amounts for one locale and default currency.
type Formatter struct {
	printer *message.Printer
	unit    xcurrency.Unit
}

// NewFormatter builds a formatter for the given BCP 47 locale and ISO 4217
// currency code. Unrecognized values fall back to zh-Hans and CNY.
func NewFormatter(locale, code string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.SimplifiedChinese
	}
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		unit = xcurrency.CNY
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Format renders a money amount as localized whole-figure currency text.
// The amount's own unit wins over the formatter default when it names a
// known currency.
func (f *Formatter) Format(a tier.Amount) string {
	value, ok := finite(a.Value)
	if !ok {
		return NotAvailable
	}
	unit := f.unit
	if parsed, err := xcurrency.ParseISO(string(a.Unit)); err == nil {
		unit = parsed
	}
	symbol := f.printer.Sprintf("%v", xcurrency.Symbol(unit))
	return symbol + f.printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// FormatNumber renders a plain number with locale separators.
func (f *Formatter) FormatNumber(d decimal.Decimal) string {
	value, ok := finite(d)
	if !ok {
		return NotAvailable
	}
	return f.printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(2)))
}

// FormatRate renders a fractional rate as a percentage, e.g. 0.03 as 3%.
func (f *Formatter) FormatRate(rate decimal.Decimal) string {
	value, ok := finite(rate)
	if !ok {
		return NotAvailable
	}
	return f.printer.Sprintf("%v", number.Percent(value, number.MaxFractionDigits(2)))
}

func finite(d decimal.Decimal) (float64, bool) {
	value, _ := d.Float64()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
