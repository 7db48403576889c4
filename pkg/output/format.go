// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/billing-calc/internal/billing"
	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/format"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PrettyOverdue writes a human-readable rather than machine-readable table.
func PrettyOverdue(w io.Writer, result billing.OverdueBillingResult) {
	fmt.Fprintf(w, "--- Mensalidades em atraso ---\n")
	fmt.Fprintf(w, "Parcela | Vencimento | Dias | Valor | Multa | Juros | Total\n")
	fmt.Fprintf(w, "_______ | __________ | ____ | _____ | _____ | _____ | _____\n")
	for i, in := range []billing.Installment{result.Installment1, result.Installment2} {
		fmt.Fprintf(w, "%d | %s | %d | %s | %s | %s | %s\n",
			i+1,
			in.DueDate.Format(constants.DateLayout),
			in.OverdueDays,
			format.Display(in.Principal),
			format.Display(in.Fine),
			format.Display(in.Interest),
			format.Display(in.Total),
		)
	}
	fmt.Fprintf(w, "\nProporcional: %d dias\n", result.ProrationDays2)
	fmt.Fprintf(w, "Total com juros: %s\n", format.Display(result.GrandTotal))
	fmt.Fprintf(w, "Total sem juros: %s\n", format.Display(result.PrincipalTotal))
	fmt.Fprintf(w, "\n%s\n", result.SummaryNote)
}

// CsvOverdue writes one row per installment plus a totals row.
func CsvOverdue(w io.Writer, result billing.OverdueBillingResult) {
	fmt.Fprintf(w, `"installment","due_date","overdue_days","principal","fine","interest","total"`+"\n")
	for i, in := range []billing.Installment{result.Installment1, result.Installment2} {
		fmt.Fprintf(w, `"%d","%s","%d","%s","%s","%s","%s"`+"\n",
			i+1,
			in.DueDate.Format(constants.DateLayout),
			in.OverdueDays,
			fixed(in.Principal),
			fixed(in.Fine),
			fixed(in.Interest),
			fixed(in.Total),
		)
	}
	fmt.Fprintf(w, `"total","","","%s","%s","%s","%s"`+"\n",
		fixed(result.PrincipalTotal),
		fixed(result.Installment1.Fine.Add(result.Installment2.Fine)),
		fixed(result.Installment1.Interest.Add(result.Installment2.Interest)),
		fixed(result.GrandTotal),
	)
}

// PrettyTermination writes the fine breakdown followed by the alert note.
func PrettyTermination(w io.Writer, result billing.TerminationResult) {
	fmt.Fprintf(w, "--- Multa rescisória ---\n")
	fmt.Fprintf(w, "Item | Descrição | Valor\n")
	fmt.Fprintf(w, "____ | _________ | _____\n")

	fineLabel := "Multa (" + result.LookupMethod + ")"
	if result.ExemptFromFine {
		fineLabel = "Multa (isento)"
	}
	fmt.Fprintf(w, "%s | %s | %s\n", "Multa", fineLabel, format.Display(result.BaseFine))
	fmt.Fprintf(w, "%s | %s | %s\n", "Multa novos planos", "Acréscimo", format.Display(result.Surcharge))
	fmt.Fprintf(w, "%s | %s | %s\n", "Roteador", result.RouterName, format.Display(result.RouterCost))
	fmt.Fprintf(w, "%s | %s | %s\n", "ONU", result.OnuName, format.Display(result.OnuCost))

	fmt.Fprintf(w, "\nTotal multa: %s\n", format.Display(result.TotalFine))
	fmt.Fprintf(w, "Total equipamentos: %s\n", format.Display(result.EquipmentTotal))
	fmt.Fprintf(w, "Total geral: %s\n", format.Display(result.GrandTotal))
	fmt.Fprintf(w, "\n%s\n", result.AlertNote)
}

// CsvTermination writes a single header row and a single value row.
func CsvTermination(w io.Writer, result billing.TerminationResult) {
	fmt.Fprintf(w, `"lookup_method","exempt","base_fine","surcharge","total_fine","router","router_cost","onu","onu_cost","equipment_total","grand_total","alert"`+"\n")
	fmt.Fprintf(w, `"%s","%t","%s","%s","%s","%s","%s","%s","%s","%s","%s","%s"`+"\n",
		result.LookupMethod,
		result.ExemptFromFine,
		fixed(result.BaseFine),
		fixed(result.Surcharge),
		fixed(result.TotalFine),
		csvEscape(result.RouterName),
		fixed(result.RouterCost),
		csvEscape(result.OnuName),
		fixed(result.OnuCost),
		fixed(result.EquipmentTotal),
		fixed(result.GrandTotal),
		csvEscape(strings.ReplaceAll(result.AlertNote, "\n", " ")),
	)
}

type catalogDocument struct {
	Plans        []priceDocument        `yaml:"plans"`
	FineSchedule []fineScheduleDocument `yaml:"fineSchedule"`
	Equipment    equipmentDocument      `yaml:"equipment"`
}

type priceDocument struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

type fineScheduleDocument struct {
	InstallmentsPaid int     `yaml:"installmentsPaid"`
	BaseFine         float64 `yaml:"baseFine"`
	NewPlanSurcharge float64 `yaml:"newPlanSurcharge"`
}

type equipmentDocument struct {
	Routers []priceDocument `yaml:"routers"`
	Onus    []priceDocument `yaml:"onus"`
}

// CatalogYAML writes the catalog in the layout the configuration file uses,
// with the fine schedule ordered by installments paid.
func CatalogYAML(w io.Writer, cat catalog.Catalog) error {
	doc := catalogDocument{
		Equipment: equipmentDocument{
			Routers: priceDocuments(cat.Equipment.Routers),
			Onus:    priceDocuments(cat.Equipment.Onus),
		},
	}
	for _, plan := range cat.Plans.All() {
		doc.Plans = append(doc.Plans, priceDocument{Name: plan.Name, Price: plan.Price.InexactFloat64()})
	}
	for _, entry := range cat.FineSchedule.All() {
		doc.FineSchedule = append(doc.FineSchedule, fineScheduleDocument{
			InstallmentsPaid: entry.InstallmentsPaid,
			BaseFine:         entry.BaseFine.InexactFloat64(),
			NewPlanSurcharge: entry.NewPlanSurcharge.InexactFloat64(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}

func priceDocuments(items []catalog.Equipment) []priceDocument {
	out := make([]priceDocument, 0, len(items))
	for _, item := range items {
		out = append(out, priceDocument{Name: item.Name, Price: item.Price.InexactFloat64()})
	}
	return out
}

func fixed(amount decimal.Decimal) string {
	return amount.StringFixed(constants.DecimalPlaces)
}

func csvEscape(value string) string {
	return strings.ReplaceAll(value, `"`, `""`)
}
