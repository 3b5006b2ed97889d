// Package report renders listings for the CLI: plain-text tables on
// stdout and table-shaped xlsx artifacts on disk.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is the currency code used when none is configured.
const DefaultCurrency = "IRR"

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an integer amount with digit grouping behind
// the currency code, e.g. "IRR 1,234,568".
func FormatCurrency(code string, amount int64) string {
	if code == "" {
		code = DefaultCurrency
	}
	return code + " " + printer.Sprint(number.Decimal(amount))
}
