// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/billing-calc/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateCalculation checks the CLI calculation kind.
func ValidateCalculation(kind string) error {
	if kind != constants.CalculationOverdue && kind != constants.CalculationTermination {
		return fmt.Errorf("expected calculation of %s or %s, got %s",
			constants.CalculationOverdue, constants.CalculationTermination, kind)
	}
	return nil
}

// NormalizeLookupMethod maps a fine lookup method, including the short
// "num"/"ref" forms the web form posts, onto its canonical name.
func NormalizeLookupMethod(method string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case constants.LookupMethodCount, "num":
		return constants.LookupMethodCount, nil
	case constants.LookupMethodReference, "ref":
		return constants.LookupMethodReference, nil
	default:
		return "", fmt.Errorf("expected lookup method of %s or %s, got %s",
			constants.LookupMethodCount, constants.LookupMethodReference, method)
	}
}
