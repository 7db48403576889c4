package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/billing-calc/internal/billing"
	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/internal/config"
	"github.com/iwvelando/billing-calc/internal/logging"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/iwvelando/billing-calc/pkg/datetime"
	"github.com/iwvelando/billing-calc/pkg/output"
	"github.com/iwvelando/billing-calc/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to catalog configuration file")
	calculation := flag.String("calc", "", "calculation to run: overdue, termination")
	requestLocation := flag.String("request", "", "path to JSON request file, or - for stdin")
	evaluationDate := flag.String("date", "", "evaluation date (YYYY-MM-DD) for overdue billing, defaults to today")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	printCatalog := flag.Bool("print-catalog", false, "print the loaded catalog as YAML and exit")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Fatal("catalog rejected",
			zap.String("op", "main"),
			zap.String("config", *configLocation),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	cat := conf.Catalog()

	if *printCatalog {
		if err := output.CatalogYAML(os.Stdout, cat); err != nil {
			logger.Fatal("failed to print catalog",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := validation.ValidateCalculation(*calculation); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	evaluation, err := resolveEvaluation(*evaluationDate, time.Now)
	if err != nil {
		logger.Fatal("invalid evaluation date",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	body, err := readRequest(*requestLocation, os.Stdin)
	if err != nil {
		logger.Fatal("failed to read request",
			zap.String("op", "main"),
			zap.String("request", *requestLocation),
			zap.Error(err),
		)
	}

	if err := run(os.Stdout, *calculation, outputFormat, body, cat, evaluation); err != nil {
		if billing.IsValidationError(err) {
			logger.Fatal("request rejected",
				zap.String("op", "main"),
				zap.String("calculation", *calculation),
				zap.Error(err),
			)
		}
		logger.Fatal(constants.GenericFailureMessage,
			zap.String("op", "main"),
			zap.String("calculation", *calculation),
			zap.Error(err),
		)
	}
}

// run decodes body for the given calculation and writes the result to w.
func run(w io.Writer, calculation, outputFormat string, body []byte, cat catalog.Catalog, evaluation time.Time) error {
	switch calculation {
	case constants.CalculationOverdue:
		var req billing.OverdueBillingRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return fmt.Errorf("failed to decode overdue billing request: %w", err)
		}
		result, err := billing.ComputeOverdueBilling(req, cat.Plans, evaluation)
		if err != nil {
			return err
		}
		if outputFormat == constants.OutputFormatCSV {
			output.CsvOverdue(w, result)
		} else {
			output.PrettyOverdue(w, result)
		}
	case constants.CalculationTermination:
		var req billing.TerminationRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return fmt.Errorf("failed to decode termination request: %w", err)
		}
		result, err := billing.ComputeTerminationPenalty(req, cat.FineSchedule, cat.Equipment)
		if err != nil {
			return err
		}
		if outputFormat == constants.OutputFormatCSV {
			output.CsvTermination(w, result)
		} else {
			output.PrettyTermination(w, result)
		}
	default:
		return validation.ValidateCalculation(calculation)
	}
	return nil
}

// resolveEvaluation returns the instant overdue days are counted against.
func resolveEvaluation(date string, now func() time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return now(), nil
	}
	return datetime.ParseDueDate(date)
}

func readRequest(path string, stdin io.Reader) ([]byte, error) {
	switch strings.TrimSpace(path) {
	case "":
		return nil, fmt.Errorf("no request file given, use -request")
	case "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(path)
	}
}
