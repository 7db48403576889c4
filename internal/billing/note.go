package billing

import (
	"fmt"
	"strings"

	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/datetime"
	"github.com/iwvelando/billing-calc/pkg/format"
	"github.com/shopspring/decimal"
)

var singleInstallmentThreshold = decimal.NewFromInt(constants.SingleInstallmentThreshold)

// overdueSummaryNote renders the three-line service order description.
func overdueSummaryNote(result OverdueBillingResult) string {
	installments := "em até 2x no cartão de crédito"
	if result.GrandTotal.LessThan(singleInstallmentThreshold) {
		installments = "em até 1x no cartão de crédito"
	}

	lines := []string{
		fmt.Sprintf("Mensalidade e proporcional com juros: %s %s",
			format.Currency(result.GrandTotal), installments),
		fmt.Sprintf("Mensalidade e proporcional sem juros: %s no cartão débito, ou em dinheiro.",
			format.Currency(result.PrincipalTotal)),
		fmt.Sprintf("Referente aos meses %s e proporcional de %d dias do mês %s.",
			datetime.MonthReference(result.Installment1.DueDate),
			result.ProrationDays2,
			datetime.MonthReference(result.Installment2.DueDate)),
	}
	return strings.Join(lines, "\n")
}

// terminationAlertNote joins the non-empty parts of the alert and closes it
// with the collection notice. reference is "MM/YYYY e MM/YYYY" or empty.
func terminationAlertNote(result TerminationResult, reference string) string {
	var parts []string

	if reference != "" {
		parts = append(parts, "Pendência ref. "+reference)
	}

	if result.ExemptFromFine {
		parts = append(parts, "Sem Multa")
	} else {
		if result.BaseFine.IsPositive() {
			parts = append(parts, "Multa "+format.Currency(result.BaseFine))
		}
		if result.Surcharge.IsPositive() {
			parts = append(parts, "Multa novos planos "+format.Currency(result.Surcharge))
		}
	}

	if result.OnuCost.IsPositive() {
		parts = append(parts, "ONU "+format.Currency(result.OnuCost))
	}
	if result.RouterCost.IsPositive() {
		parts = append(parts, "ROTEADOR "+format.Currency(result.RouterCost))
	}

	if len(parts) == 0 {
		return constants.NoPendingItemsNote
	}
	return strings.Join(parts, constants.AlertSeparator) + "\n" + constants.CollectionNoticeLine
}
