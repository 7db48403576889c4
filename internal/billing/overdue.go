// Package billing implements the two back-office calculations: overdue
// installment cleanup and early-termination penalties. Both are pure
// functions of their inputs; the evaluation time and every reference table
// are passed in by the caller.
package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/datetime"
	"github.com/iwvelando/billing-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// OverdueBillingRequest describes two open installments of the same plan.
// DueDate1 and DueDate2 use the YYYY-MM-DD layout. OverridePrincipal1 replaces
// the plan price on the first installment when positive.
type OverdueBillingRequest struct {
	PlanName           string          `json:"planName"`
	DueDate1           string          `json:"dueDate1"`
	OverridePrincipal1 decimal.Decimal `json:"overridePrincipal1"`
	DueDate2           string          `json:"dueDate2"`
	ProrationDays2     int             `json:"prorationDays2"`
}

// Installment is one overdue bill with its charges.
type Installment struct {
	DueDate     time.Time
	OverdueDays int
	Principal   decimal.Decimal
	Fine        decimal.Decimal
	Interest    decimal.Decimal
	Total       decimal.Decimal
}

// OverdueBillingResult carries both installments and the note for the
// service order.
type OverdueBillingResult struct {
	Installment1   Installment
	Installment2   Installment
	ProrationDays2 int
	GrandTotal     decimal.Decimal
	PrincipalTotal decimal.Decimal
	SummaryNote    string
}

// ComputeOverdueBilling prices the two installments as of evaluation.
func ComputeOverdueBilling(req OverdueBillingRequest, plans catalog.Plans, evaluation time.Time) (OverdueBillingResult, error) {
	planName := strings.TrimSpace(req.PlanName)
	switch {
	case planName == "":
		return OverdueBillingResult{}, missingField("planName")
	case strings.TrimSpace(req.DueDate1) == "":
		return OverdueBillingResult{}, missingField("dueDate1")
	case strings.TrimSpace(req.DueDate2) == "":
		return OverdueBillingResult{}, missingField("dueDate2")
	case req.ProrationDays2 == 0:
		return OverdueBillingResult{}, missingField("prorationDays2")
	}

	due1, err := datetime.ParseDueDate(strings.TrimSpace(req.DueDate1))
	if err != nil {
		return OverdueBillingResult{}, invalidField("dueDate1", req.DueDate1, "expected YYYY-MM-DD")
	}
	due2, err := datetime.ParseDueDate(strings.TrimSpace(req.DueDate2))
	if err != nil {
		return OverdueBillingResult{}, invalidField("dueDate2", req.DueDate2, "expected YYYY-MM-DD")
	}
	if req.ProrationDays2 < constants.MinProrationDays || req.ProrationDays2 > constants.MaxProrationDays {
		return OverdueBillingResult{}, invalidField("prorationDays2", fmt.Sprintf("%d", req.ProrationDays2),
			fmt.Sprintf("must be between %d and %d", constants.MinProrationDays, constants.MaxProrationDays))
	}

	plan, ok := plans.Lookup(planName)
	if !ok {
		return OverdueBillingResult{}, unresolvedLookup("planName", planName, fmt.Sprintf("plan %q not found", planName))
	}

	principal1 := plan.Price
	if mathutil.IsPositive(req.OverridePrincipal1) {
		principal1 = req.OverridePrincipal1
	}
	principal2 := mathutil.Prorate(plan.Price, req.ProrationDays2)

	result := OverdueBillingResult{
		Installment1:   priceInstallment(principal1, due1, evaluation),
		Installment2:   priceInstallment(principal2, due2, evaluation),
		ProrationDays2: req.ProrationDays2,
	}
	result.GrandTotal = result.Installment1.Total.Add(result.Installment2.Total)
	result.PrincipalTotal = principal1.Add(principal2)
	result.SummaryNote = overdueSummaryNote(result)

	return result, nil
}

func priceInstallment(principal decimal.Decimal, due, evaluation time.Time) Installment {
	days := datetime.OverdueDays(due, evaluation)
	fine := mathutil.LateFee(principal)
	interest := mathutil.SimpleInterest(principal, days)
	return Installment{
		DueDate:     due,
		OverdueDays: days,
		Principal:   principal,
		Fine:        fine,
		Interest:    interest,
		Total:       mathutil.Sum(principal, fine, interest),
	}
}
