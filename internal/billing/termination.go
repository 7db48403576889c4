package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/datetime"
	"github.com/iwvelando/billing-calc/pkg/validation"
	"github.com/shopspring/decimal"
)

// TerminationRequest describes an early contract termination.
// InstallmentsPaidCount is required unless ExemptFromFine is set.
// ReferenceMonth1 and ReferenceMonth2 use the YYYY-MM layout and only feed
// the alert note.
type TerminationRequest struct {
	ExemptFromFine             bool            `json:"exemptFromFine"`
	LookupMethod               string          `json:"lookupMethod"`
	InstallmentsPaidCount      *int            `json:"installmentsPaidCount"`
	IsPostPolicyChangeContract bool            `json:"isPostPolicyChangeContract"`
	RouterCost                 decimal.Decimal `json:"routerCost"`
	RouterName                 string          `json:"routerName"`
	OnuCost                    decimal.Decimal `json:"onuCost"`
	OnuName                    string          `json:"onuName"`
	ReferenceMonth1            string          `json:"referenceMonth1"`
	ReferenceMonth2            string          `json:"referenceMonth2"`
}

// TerminationResult is the debt owed on termination.
type TerminationResult struct {
	LookupMethod   string
	ExemptFromFine bool
	BaseFine       decimal.Decimal
	Surcharge      decimal.Decimal
	TotalFine      decimal.Decimal
	RouterCost     decimal.Decimal
	RouterName     string
	OnuCost        decimal.Decimal
	OnuName        string
	EquipmentTotal decimal.Decimal
	GrandTotal     decimal.Decimal
	AlertNote      string
}

// ComputeTerminationPenalty prices the fine and equipment debt. The schedule
// lookup is exact; equipment names are resolved against the catalog by price
// when the request does not carry them.
func ComputeTerminationPenalty(req TerminationRequest, schedule catalog.FineSchedule, equipment catalog.EquipmentCatalog) (TerminationResult, error) {
	if strings.TrimSpace(req.LookupMethod) == "" {
		return TerminationResult{}, missingField("lookupMethod")
	}
	method, err := validation.NormalizeLookupMethod(req.LookupMethod)
	if err != nil {
		return TerminationResult{}, invalidField("lookupMethod", req.LookupMethod, "expected count or reference")
	}
	if req.RouterCost.IsNegative() {
		return TerminationResult{}, invalidField("routerCost", req.RouterCost.String(), "must not be negative")
	}
	if req.OnuCost.IsNegative() {
		return TerminationResult{}, invalidField("onuCost", req.OnuCost.String(), "must not be negative")
	}

	ref1, ref2, err := parseReferenceMonths(req)
	if err != nil {
		return TerminationResult{}, err
	}

	result := TerminationResult{
		LookupMethod:   method,
		ExemptFromFine: req.ExemptFromFine,
		BaseFine:       decimal.Zero,
		Surcharge:      decimal.Zero,
		RouterCost:     req.RouterCost,
		OnuCost:        req.OnuCost,
	}

	if !req.ExemptFromFine {
		if req.InstallmentsPaidCount == nil {
			return TerminationResult{}, missingField("installmentsPaidCount")
		}
		count := *req.InstallmentsPaidCount
		entry, ok := schedule.Lookup(count)
		if !ok {
			return TerminationResult{}, unresolvedLookup("installmentsPaidCount", fmt.Sprintf("%d", count),
				fmt.Sprintf("no fine schedule entry for %d installments paid", count))
		}
		result.BaseFine = entry.BaseFine
		if req.IsPostPolicyChangeContract {
			result.Surcharge = entry.NewPlanSurcharge
		}
	}

	result.TotalFine = result.BaseFine.Add(result.Surcharge)
	result.EquipmentTotal = req.RouterCost.Add(req.OnuCost)
	result.GrandTotal = result.TotalFine.Add(result.EquipmentTotal)
	result.RouterName = equipmentName(req.RouterName, req.RouterCost, equipment.RouterNameByPrice)
	result.OnuName = equipmentName(req.OnuName, req.OnuCost, equipment.OnuNameByPrice)

	var reference string
	if method == constants.LookupMethodReference && !ref1.IsZero() && !ref2.IsZero() {
		reference = fmt.Sprintf("%s e %s", datetime.MonthReference(ref1), datetime.MonthReference(ref2))
	}
	result.AlertNote = terminationAlertNote(result, reference)

	return result, nil
}

func parseReferenceMonths(req TerminationRequest) (time.Time, time.Time, error) {
	first, err := parseReferenceMonth("referenceMonth1", req.ReferenceMonth1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	second, err := parseReferenceMonth("referenceMonth2", req.ReferenceMonth2)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return first, second, nil
}

// parseReferenceMonth returns the zero time for an empty value.
func parseReferenceMonth(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := datetime.ParseReferenceMonth(value)
	if err != nil {
		return time.Time{}, invalidField(field, value, "expected YYYY-MM")
	}
	return t, nil
}

func equipmentName(requested string, cost decimal.Decimal, byPrice func(decimal.Decimal) (string, bool)) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	if !cost.IsPositive() {
		return constants.NoEquipmentName
	}
	if name, ok := byPrice(cost); ok {
		return name
	}
	return constants.NoEquipmentName
}
