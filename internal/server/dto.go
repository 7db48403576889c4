package server

import (
	"github.com/iwvelando/billing-calc/internal/billing"
	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/constants"
)

type errorResponse struct {
	Error string `json:"error"`
}

type installmentResponse struct {
	DueDate     string  `json:"dueDate"`
	OverdueDays int     `json:"overdueDays"`
	Principal   float64 `json:"principal"`
	Fine        float64 `json:"fine"`
	Interest    float64 `json:"interest"`
	Total       float64 `json:"total"`
}

type overdueBillingResponse struct {
	Installment1   installmentResponse `json:"installment1"`
	Installment2   installmentResponse `json:"installment2"`
	ProrationDays2 int                 `json:"prorationDays2"`
	GrandTotal     float64             `json:"grandTotal"`
	PrincipalTotal float64             `json:"principalTotal"`
	SummaryNote    string              `json:"summaryNote"`
}

func newInstallmentResponse(in billing.Installment) installmentResponse {
	return installmentResponse{
		DueDate:     in.DueDate.Format(constants.DateLayout),
		OverdueDays: in.OverdueDays,
		Principal:   in.Principal.InexactFloat64(),
		Fine:        in.Fine.InexactFloat64(),
		Interest:    in.Interest.InexactFloat64(),
		Total:       in.Total.InexactFloat64(),
	}
}

func newOverdueBillingResponse(result billing.OverdueBillingResult) overdueBillingResponse {
	return overdueBillingResponse{
		Installment1:   newInstallmentResponse(result.Installment1),
		Installment2:   newInstallmentResponse(result.Installment2),
		ProrationDays2: result.ProrationDays2,
		GrandTotal:     result.GrandTotal.InexactFloat64(),
		PrincipalTotal: result.PrincipalTotal.InexactFloat64(),
		SummaryNote:    result.SummaryNote,
	}
}

type terminationResponse struct {
	LookupMethod   string  `json:"lookupMethod"`
	ExemptFromFine bool    `json:"exemptFromFine"`
	BaseFine       float64 `json:"baseFine"`
	Surcharge      float64 `json:"surcharge"`
	TotalFine      float64 `json:"totalFine"`
	RouterCost     float64 `json:"routerCost"`
	RouterName     string  `json:"routerName"`
	OnuCost        float64 `json:"onuCost"`
	OnuName        string  `json:"onuName"`
	EquipmentTotal float64 `json:"equipmentTotal"`
	GrandTotal     float64 `json:"grandTotal"`
	AlertNote      string  `json:"alertNote"`
}

func newTerminationResponse(result billing.TerminationResult) terminationResponse {
	return terminationResponse{
		LookupMethod:   result.LookupMethod,
		ExemptFromFine: result.ExemptFromFine,
		BaseFine:       result.BaseFine.InexactFloat64(),
		Surcharge:      result.Surcharge.InexactFloat64(),
		TotalFine:      result.TotalFine.InexactFloat64(),
		RouterCost:     result.RouterCost.InexactFloat64(),
		RouterName:     result.RouterName,
		OnuCost:        result.OnuCost.InexactFloat64(),
		OnuName:        result.OnuName,
		EquipmentTotal: result.EquipmentTotal.InexactFloat64(),
		GrandTotal:     result.GrandTotal.InexactFloat64(),
		AlertNote:      result.AlertNote,
	}
}

type priceItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type fineScheduleItem struct {
	InstallmentsPaid int     `json:"installmentsPaid"`
	BaseFine         float64 `json:"baseFine"`
	NewPlanSurcharge float64 `json:"newPlanSurcharge"`
}

type equipmentResponse struct {
	Routers []priceItem `json:"routers"`
	Onus    []priceItem `json:"onus"`
}

type catalogResponse struct {
	Plans        []priceItem        `json:"plans"`
	FineSchedule []fineScheduleItem `json:"fineSchedule"`
	Equipment    equipmentResponse  `json:"equipment"`
}

func newCatalogResponse(cat catalog.Catalog) catalogResponse {
	resp := catalogResponse{
		Plans:        make([]priceItem, 0, cat.Plans.Len()),
		FineSchedule: make([]fineScheduleItem, 0, cat.FineSchedule.Len()),
		Equipment: equipmentResponse{
			Routers: equipmentItems(cat.Equipment.Routers),
			Onus:    equipmentItems(cat.Equipment.Onus),
		},
	}
	for _, plan := range cat.Plans.All() {
		resp.Plans = append(resp.Plans, priceItem{Name: plan.Name, Price: plan.Price.InexactFloat64()})
	}
	for _, entry := range cat.FineSchedule.All() {
		resp.FineSchedule = append(resp.FineSchedule, fineScheduleItem{
			InstallmentsPaid: entry.InstallmentsPaid,
			BaseFine:         entry.BaseFine.InexactFloat64(),
			NewPlanSurcharge: entry.NewPlanSurcharge.InexactFloat64(),
		})
	}
	return resp
}

func equipmentItems(items []catalog.Equipment) []priceItem {
	out := make([]priceItem, 0, len(items))
	for _, item := range items {
		out = append(out, priceItem{Name: item.Name, Price: item.Price.InexactFloat64()})
	}
	return out
}
