// Package constants provides shared constants for the billing-calc application.
package constants

// DateLayout is the format of due dates in requests, e.g. 2025-03-10.
const DateLayout = "2006-01-02"

// MonthLayout is the format of reference months in requests, e.g. 2025-03.
const MonthLayout = "2006-01"

// ReferenceLayout is the month/year format used inside notes, e.g. 03/2025.
const ReferenceLayout = "01/2006"

// Financial constants
const (
	// DecimalPlaces is the precision for currency amounts (2 decimal places)
	DecimalPlaces = 2

	// LateFeeRate is the flat fine applied to an overdue installment (2%)
	LateFeeRate = "0.02"

	// MonthlyInterestRate is the simple interest charged per 30 days overdue (1%)
	MonthlyInterestRate = "0.01"

	// DaysPerBillingMonth is the fixed month length used for interest and proration
	DaysPerBillingMonth = 30

	// MinProrationDays and MaxProrationDays bound the prorated installment
	MinProrationDays = 1
	MaxProrationDays = 30

	// MinInstallmentsPaid and MaxInstallmentsPaid bound the fine schedule keys
	MinInstallmentsPaid = 0
	MaxInstallmentsPaid = 11

	// SingleInstallmentThreshold is the grand total below which only one credit
	// card installment is offered
	SingleInstallmentThreshold = 100
)

// Fine lookup methods
const (
	// LookupMethodCount resolves the fine by the number of paid installments
	LookupMethodCount = "count"

	// LookupMethodReference resolves the fine from the reference months of the
	// first open installments
	LookupMethodReference = "reference"
)

// Note fragments
const (
	// NoPendingItemsNote is the alert note when nothing is owed
	NoPendingItemsNote = "Nenhuma pendência para alerta."

	// CollectionNoticeLine closes every non-empty alert note
	CollectionNoticeLine = "PASSADO PARA A NEGATIVAÇÃO."

	// AlertSeparator joins the parts of an alert note
	AlertSeparator = " - "

	// NoEquipmentName names an equipment slot with nothing selected
	NoEquipmentName = "Nenhum"

	// GenericFailureMessage is returned to clients on unexpected failures
	GenericFailureMessage = "Erro ao processar o cálculo."
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Calculation kinds accepted by the CLI
const (
	CalculationOverdue     = "overdue"
	CalculationTermination = "termination"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default catalog configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultReadTimeoutSeconds and friends configure the http.Server
	DefaultReadTimeoutSeconds     = 15
	DefaultWriteTimeoutSeconds    = 15
	DefaultIdleTimeoutSeconds     = 60
	DefaultShutdownTimeoutSeconds = 10
)
