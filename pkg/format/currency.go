// Package format renders decimal amounts as Brazilian real strings.
package format

import (
	"strings"

	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Amount returns the amount with two decimals and a comma separator and no
// thousands grouping (e.g., "1234,56"). This is the form pasted into notes.
func Amount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(constants.DecimalPlaces), ".", ",", 1)
}

// Currency returns Amount prefixed with the real sign and no space (e.g., "R$164,20").
func Currency(amount decimal.Decimal) string {
	return "R$" + Amount(amount)
}

// Display returns a grouped amount for tables (e.g., "R$ 1.234,56").
func Display(amount decimal.Decimal) string {
	rounded := mathutil.Round(amount).InexactFloat64()
	return printer.Sprintf("R$ %.2f", rounded)
}
