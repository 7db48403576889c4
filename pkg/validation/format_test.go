package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Invalid format",
			format:    "json",
			expectErr: true,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)

			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateOutputFormat(%s) expected error but got none", tt.format)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateOutputFormat(%s) unexpected error = %v", tt.format, err)
				}
			}
		})
	}
}

func TestValidateCalculation(t *testing.T) {
	for _, kind := range []string{"overdue", "termination"} {
		if err := ValidateCalculation(kind); err != nil {
			t.Errorf("ValidateCalculation(%s) unexpected error = %v", kind, err)
		}
	}
	for _, kind := range []string{"", "limpeza", "Overdue"} {
		if err := ValidateCalculation(kind); err == nil {
			t.Errorf("ValidateCalculation(%s) expected error but got none", kind)
		}
	}
}

func TestNormalizeLookupMethod(t *testing.T) {
	tests := []struct {
		input     string
		expected  string
		expectErr bool
	}{
		{"count", "count", false},
		{"num", "count", false},
		{" COUNT ", "count", false},
		{"reference", "reference", false},
		{"ref", "reference", false},
		{"", "", true},
		{"bucket", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLookupMethod(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("NormalizeLookupMethod(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
			}
			if got != tt.expected {
				t.Errorf("NormalizeLookupMethod(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
