// Package catalog holds the read-only reference tables the calculations
// consume: plan prices, the early-termination fine schedule and the two
// equipment price lists.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Plan is a service plan and its monthly price.
type Plan struct {
	Name  string
	Price decimal.Decimal
}

// FineScheduleEntry is the penalty owed when a contract is terminated after
// InstallmentsPaid installments.
type FineScheduleEntry struct {
	InstallmentsPaid int
	BaseFine         decimal.Decimal
	NewPlanSurcharge decimal.Decimal
}

// Equipment is a router or ONT/ONU unit and its replacement price.
type Equipment struct {
	Name  string
	Price decimal.Decimal
}

// Plans is the plan price list keyed by name.
type Plans struct {
	byName map[string]Plan
	order  []string
}

// FineSchedule is the fine table keyed by installments paid.
type FineSchedule struct {
	byCount map[int]FineScheduleEntry
}

// EquipmentCatalog holds both equipment price lists.
type EquipmentCatalog struct {
	Routers []Equipment
	Onus    []Equipment
}

// Catalog bundles every reference table.
type Catalog struct {
	Plans        Plans
	FineSchedule FineSchedule
	Equipment    EquipmentCatalog
}

// NewPlans indexes plans by name, keeping their original order for listing.
// Later duplicates replace earlier ones.
func NewPlans(plans []Plan) Plans {
	p := Plans{byName: make(map[string]Plan, len(plans))}
	for _, plan := range plans {
		if _, exists := p.byName[plan.Name]; !exists {
			p.order = append(p.order, plan.Name)
		}
		p.byName[plan.Name] = plan
	}
	return p
}

// Lookup returns the plan with exactly the given name.
func (p Plans) Lookup(name string) (Plan, bool) {
	plan, ok := p.byName[name]
	return plan, ok
}

// All returns the plans in catalog order.
func (p Plans) All() []Plan {
	out := make([]Plan, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.byName[name])
	}
	return out
}

// Len returns the number of plans.
func (p Plans) Len() int {
	return len(p.order)
}

// NewFineSchedule indexes entries by installments paid.
func NewFineSchedule(entries []FineScheduleEntry) FineSchedule {
	s := FineSchedule{byCount: make(map[int]FineScheduleEntry, len(entries))}
	for _, entry := range entries {
		s.byCount[entry.InstallmentsPaid] = entry
	}
	return s
}

// Lookup returns the entry for exactly count installments. There is no
// nearest-bucket fallback.
func (s FineSchedule) Lookup(count int) (FineScheduleEntry, bool) {
	entry, ok := s.byCount[count]
	return entry, ok
}

// All returns the entries sorted by installments paid.
func (s FineSchedule) All() []FineScheduleEntry {
	out := make([]FineScheduleEntry, 0, len(s.byCount))
	for _, entry := range s.byCount {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstallmentsPaid < out[j].InstallmentsPaid
	})
	return out
}

// Len returns the number of entries.
func (s FineSchedule) Len() int {
	return len(s.byCount)
}

// RouterNameByPrice returns the first router priced at cost.
func (c EquipmentCatalog) RouterNameByPrice(cost decimal.Decimal) (string, bool) {
	return nameByPrice(c.Routers, cost)
}

// OnuNameByPrice returns the first ONT/ONU unit priced at cost.
func (c EquipmentCatalog) OnuNameByPrice(cost decimal.Decimal) (string, bool) {
	return nameByPrice(c.Onus, cost)
}

func nameByPrice(items []Equipment, cost decimal.Decimal) (string, bool) {
	for _, item := range items {
		if item.Price.Equal(cost) {
			return item.Name, true
		}
	}
	return "", false
}
