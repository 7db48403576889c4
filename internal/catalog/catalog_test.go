package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPlansLookupAndOrder(t *testing.T) {
	plans := NewPlans([]Plan{
		{Name: "Fibra 300MB", Price: decimal.RequireFromString("89.90")},
		{Name: "Fibra 500MB", Price: decimal.RequireFromString("99.90")},
		{Name: "Fibra 300MB", Price: decimal.RequireFromString("79.90")},
	})

	if plans.Len() != 2 {
		t.Fatalf("expected 2 plans, got %d", plans.Len())
	}

	plan, ok := plans.Lookup("Fibra 300MB")
	if !ok {
		t.Fatal("expected Fibra 300MB to resolve")
	}
	if !plan.Price.Equal(decimal.RequireFromString("79.90")) {
		t.Errorf("expected later duplicate to win, got %s", plan.Price)
	}

	if _, ok := plans.Lookup("fibra 300mb"); ok {
		t.Error("lookup must be exact and case sensitive")
	}

	all := plans.All()
	if all[0].Name != "Fibra 300MB" || all[1].Name != "Fibra 500MB" {
		t.Errorf("unexpected order %+v", all)
	}
}

func TestFineScheduleExactLookup(t *testing.T) {
	schedule := NewFineSchedule([]FineScheduleEntry{
		{InstallmentsPaid: 6, BaseFine: decimal.NewFromInt(40), NewPlanSurcharge: decimal.NewFromInt(10)},
		{InstallmentsPaid: 0, BaseFine: decimal.NewFromInt(100)},
		{InstallmentsPaid: 11, BaseFine: decimal.NewFromInt(5)},
	})

	if _, ok := schedule.Lookup(6); !ok {
		t.Fatal("expected entry for 6 installments")
	}
	for _, missing := range []int{-1, 5, 7, 12} {
		if _, ok := schedule.Lookup(missing); ok {
			t.Errorf("expected no entry for %d installments", missing)
		}
	}

	all := schedule.All()
	if len(all) != 3 || all[0].InstallmentsPaid != 0 || all[2].InstallmentsPaid != 11 {
		t.Errorf("expected entries sorted by installments, got %+v", all)
	}
}

func TestEquipmentNameByPrice(t *testing.T) {
	equipment := EquipmentCatalog{
		Routers: []Equipment{
			{Name: "Roteador AC1200", Price: decimal.RequireFromString("150")},
			{Name: "Roteador AX3000", Price: decimal.RequireFromString("280.00")},
		},
		Onus: []Equipment{
			{Name: "ONU GPON", Price: decimal.RequireFromString("200")},
		},
	}

	name, ok := equipment.RouterNameByPrice(decimal.RequireFromString("280"))
	if !ok || name != "Roteador AX3000" {
		t.Errorf("RouterNameByPrice(280) = %q, %v", name, ok)
	}
	if _, ok := equipment.RouterNameByPrice(decimal.NewFromInt(1)); ok {
		t.Error("expected no router priced at 1")
	}
	name, ok = equipment.OnuNameByPrice(decimal.NewFromInt(200))
	if !ok || name != "ONU GPON" {
		t.Errorf("OnuNameByPrice(200) = %q, %v", name, ok)
	}
}
