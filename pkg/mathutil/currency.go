// Package mathutil provides common currency arithmetic on decimal amounts.
package mathutil

import (
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	// LateFeeRate is the flat late fee as a fraction of the principal.
	LateFeeRate = decimal.RequireFromString(constants.LateFeeRate)

	// MonthlyInterestRate is the simple interest per billing month.
	MonthlyInterestRate = decimal.RequireFromString(constants.MonthlyInterestRate)

	billingMonthDays = decimal.NewFromInt(constants.DaysPerBillingMonth)
)

// Truncate discards every digit past the second decimal place, toward zero.
// 2.999 becomes 2.99, never 3.00.
func Truncate(val decimal.Decimal) decimal.Decimal {
	return val.Truncate(constants.DecimalPlaces)
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for display and logical comparisons only.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// LateFee returns the truncated 2% fine on a principal.
func LateFee(principal decimal.Decimal) decimal.Decimal {
	return Truncate(principal.Mul(LateFeeRate))
}

// SimpleInterest accrues MonthlyInterestRate per 30 days for the given number
// of days. The divisor is fixed at 30 regardless of the calendar month.
func SimpleInterest(principal decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return principal.Mul(MonthlyInterestRate).Mul(decimal.NewFromInt(int64(days))).Div(billingMonthDays)
}

// Prorate returns the share of a monthly amount covering the given days.
// Multiplication happens before division so whole results stay exact.
func Prorate(monthly decimal.Decimal, days int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(days))).Div(billingMonthDays)
}

// IsPositive checks if a value is strictly greater than zero
func IsPositive(val decimal.Decimal) bool {
	return val.Sign() > 0
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
