// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/shopspring/decimal"
)

// Reference values used by Catalog.
const (
	PlanFibra100          = "Fibra 100"
	PlanFibra300          = "Fibra 300MB"
	RouterAC1200          = "Roteador AC1200"
	OnuGPON               = "ONU GPON"
	ScenarioInstallments  = 6
	ScenarioBaseFine      = "40"
	ScenarioNewPlanCharge = "10"
)

// Decimal parses value and panics on error. Intended for literals in tests.
func Decimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Catalog returns a small complete catalog: two plans, a fine schedule for
// 0..11 installments paid and one router and one ONU.
func Catalog() catalog.Catalog {
	entries := make([]catalog.FineScheduleEntry, 0, 12)
	for i := 0; i <= 11; i++ {
		entries = append(entries, catalog.FineScheduleEntry{
			InstallmentsPaid: i,
			BaseFine:         decimal.NewFromInt(int64(12-i) * 10),
			NewPlanSurcharge: decimal.NewFromInt(int64(12-i) * 2),
		})
	}
	entries[ScenarioInstallments] = catalog.FineScheduleEntry{
		InstallmentsPaid: ScenarioInstallments,
		BaseFine:         Decimal(ScenarioBaseFine),
		NewPlanSurcharge: Decimal(ScenarioNewPlanCharge),
	}

	return catalog.Catalog{
		Plans: catalog.NewPlans([]catalog.Plan{
			{Name: PlanFibra100, Price: decimal.NewFromInt(100)},
			{Name: PlanFibra300, Price: Decimal("89.90")},
		}),
		FineSchedule: catalog.NewFineSchedule(entries),
		Equipment: catalog.EquipmentCatalog{
			Routers: []catalog.Equipment{{Name: RouterAC1200, Price: decimal.NewFromInt(50)}},
			Onus:    []catalog.Equipment{{Name: OnuGPON, Price: decimal.NewFromInt(200)}},
		},
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
