// Package validation provides configuration validation utilities.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/billing-calc/pkg/constants"
)

// PriceEntry is a named price, used for plans and equipment.
type PriceEntry struct {
	Name  string
	Price float64
}

// FineEntry is one fine schedule bucket.
type FineEntry struct {
	InstallmentsPaid int
	BaseFine         float64
	NewPlanSurcharge float64
}

// CatalogValidator checks the reference tables loaded from configuration.
type CatalogValidator struct {
	Plans        []PriceEntry
	FineSchedule []FineEntry
	Routers      []PriceEntry
	Onus         []PriceEntry
}

// Validate returns every structural problem that makes the catalog unusable,
// joined into one error.
func (v CatalogValidator) Validate() error {
	var errs []error

	if len(v.Plans) == 0 {
		errs = append(errs, errors.New("catalog has no plans"))
	}
	seenPlans := make(map[string]struct{}, len(v.Plans))
	for i, plan := range v.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("plan at index %d has no name", i))
			continue
		}
		if _, dup := seenPlans[name]; dup {
			errs = append(errs, fmt.Errorf("plan '%s' is defined more than once", name))
		}
		seenPlans[name] = struct{}{}
		if plan.Price < 0 {
			errs = append(errs, fmt.Errorf("plan '%s' has negative price %.2f", name, plan.Price))
		}
	}

	seenBuckets := make(map[int]struct{}, len(v.FineSchedule))
	for _, entry := range v.FineSchedule {
		if entry.InstallmentsPaid < constants.MinInstallmentsPaid || entry.InstallmentsPaid > constants.MaxInstallmentsPaid {
			errs = append(errs, fmt.Errorf("fine schedule bucket %d is outside %d-%d",
				entry.InstallmentsPaid, constants.MinInstallmentsPaid, constants.MaxInstallmentsPaid))
		}
		if _, dup := seenBuckets[entry.InstallmentsPaid]; dup {
			errs = append(errs, fmt.Errorf("fine schedule bucket %d is defined more than once", entry.InstallmentsPaid))
		}
		seenBuckets[entry.InstallmentsPaid] = struct{}{}
		if entry.BaseFine < 0 || entry.NewPlanSurcharge < 0 {
			errs = append(errs, fmt.Errorf("fine schedule bucket %d has a negative amount", entry.InstallmentsPaid))
		}
	}

	errs = append(errs, validateEquipment("router", v.Routers)...)
	errs = append(errs, validateEquipment("onu", v.Onus)...)

	return errors.Join(errs...)
}

// Warnings reports gaps that do not block startup but will surface as
// request-time lookup failures or ambiguous names.
func (v CatalogValidator) Warnings() []string {
	var warnings []string

	present := make(map[int]struct{}, len(v.FineSchedule))
	for _, entry := range v.FineSchedule {
		present[entry.InstallmentsPaid] = struct{}{}
	}
	var missing []string
	for bucket := constants.MinInstallmentsPaid; bucket <= constants.MaxInstallmentsPaid; bucket++ {
		if _, ok := present[bucket]; !ok {
			missing = append(missing, fmt.Sprintf("%d", bucket))
		}
	}
	if len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("fine schedule has no entry for installments paid: %s",
			strings.Join(missing, ", ")))
	}

	warnings = append(warnings, duplicatePriceWarnings("router", v.Routers)...)
	warnings = append(warnings, duplicatePriceWarnings("onu", v.Onus)...)

	return warnings
}

func validateEquipment(kind string, items []PriceEntry) []error {
	var errs []error
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Errorf("%s at index %d has no name", kind, i))
		}
		if item.Price < 0 {
			errs = append(errs, fmt.Errorf("%s '%s' has negative price %.2f", kind, item.Name, item.Price))
		}
	}
	return errs
}

func duplicatePriceWarnings(kind string, items []PriceEntry) []string {
	var warnings []string
	byPrice := make(map[string]string, len(items))
	for _, item := range items {
		key := fmt.Sprintf("%.2f", item.Price)
		if first, ok := byPrice[key]; ok {
			warnings = append(warnings, fmt.Sprintf("%s '%s' shares price %s with '%s'; names resolved by price will use '%s'",
				kind, item.Name, key, first, first))
			continue
		}
		byPrice[key] = item.Name
	}
	return warnings
}
