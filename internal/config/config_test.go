package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/billing-calc/pkg/constants"
	"github.com/shopspring/decimal"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: filepath.Join("..", "..", constants.ExampleConfigFile),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestExampleConfigurationIsComplete(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("ValidateConfiguration() warnings = %v", warnings)
	}

	if len(conf.Plans) == 0 {
		t.Fatal("expected plans in example config")
	}
	if len(conf.FineSchedule) != 12 {
		t.Fatalf("expected 12 fine schedule entries, got %d", len(conf.FineSchedule))
	}
	if len(conf.Equipment.Routers) == 0 || len(conf.Equipment.Onus) == 0 {
		t.Fatalf("expected both equipment lists, got %+v", conf.Equipment)
	}
	if conf.Logging.Level != "info" || conf.Output.Format != "pretty" {
		t.Fatalf("unexpected logging/output config %+v %+v", conf.Logging, conf.Output)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	data := `
plans:
  - name: Fibra 300MB
    price: 89.90
fineSchedule:
  - installmentsPaid: 6
    baseFine: 40
    newPlanSurcharge: 10
equipment:
  routers:
    - name: Roteador AC1200
      price: 150
logging:
  level: debug
  outputFile: /tmp/billing.log
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if len(conf.Plans) != 1 || conf.Plans[0].Name != "Fibra 300MB" || conf.Plans[0].Price != 89.90 {
		t.Fatalf("unexpected plans %+v", conf.Plans)
	}
	if len(conf.FineSchedule) != 1 || conf.FineSchedule[0].InstallmentsPaid != 6 || conf.FineSchedule[0].NewPlanSurcharge != 10 {
		t.Fatalf("unexpected fine schedule %+v", conf.FineSchedule)
	}
	if conf.Logging.Level != "debug" || conf.Logging.OutputFile != "/tmp/billing.log" {
		t.Fatalf("unexpected logging %+v", conf.Logging)
	}

	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "0, 1, 2, 3, 4, 5, 7") {
		t.Fatalf("expected missing bucket warning, got %v", warnings)
	}
}

func TestLoadConfigurationFromReaderInvalidYaml(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("plans: [unterminated")); err == nil {
		t.Fatal("expected error for invalid YAML but got nil")
	}
}

func TestValidateRejectsBrokenCatalog(t *testing.T) {
	conf := &Configuration{
		Plans: []Plan{{Name: "Fibra", Price: 10}, {Name: "Fibra", Price: 20}},
		FineSchedule: []FineScheduleEntry{
			{InstallmentsPaid: 12, BaseFine: 5},
		},
	}

	err := conf.Validate()
	if err == nil {
		t.Fatal("Validate() expected error but got none")
	}
	if !strings.Contains(err.Error(), "invalid catalog") {
		t.Errorf("expected wrapped catalog error, got %v", err)
	}
	if !strings.Contains(err.Error(), "more than once") || !strings.Contains(err.Error(), "outside 0-11") {
		t.Errorf("expected every problem reported, got %v", err)
	}
}

func TestCatalogConversion(t *testing.T) {
	conf := &Configuration{
		Plans: []Plan{{Name: "Fibra 300MB", Price: 89.90}},
		FineSchedule: []FineScheduleEntry{
			{InstallmentsPaid: 6, BaseFine: 40, NewPlanSurcharge: 10},
		},
		Equipment: Equipment{
			Routers: []EquipmentItem{{Name: "Roteador AC1200", Price: 150}},
			Onus:    []EquipmentItem{{Name: "ONU GPON", Price: 199.99}},
		},
	}

	cat := conf.Catalog()

	plan, ok := cat.Plans.Lookup("Fibra 300MB")
	if !ok {
		t.Fatal("expected plan to resolve")
	}
	if !plan.Price.Equal(decimal.RequireFromString("89.90")) {
		t.Errorf("expected exact plan price 89.90, got %s", plan.Price)
	}

	entry, ok := cat.FineSchedule.Lookup(6)
	if !ok || !entry.BaseFine.Equal(decimal.NewFromInt(40)) || !entry.NewPlanSurcharge.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected fine entry %+v", entry)
	}

	name, ok := cat.Equipment.OnuNameByPrice(decimal.RequireFromString("199.99"))
	if !ok || name != "ONU GPON" {
		t.Errorf("OnuNameByPrice() = %q, %v", name, ok)
	}
}

func TestCatalogTrimsPlanNames(t *testing.T) {
	conf := &Configuration{
		Plans: []Plan{{Name: "Fibra 500 ", Price: 99.90}, {Name: "  Fibra 1GB", Price: 149.90}},
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cat := conf.Catalog()
	for _, name := range []string{"Fibra 500", "Fibra 1GB"} {
		if _, ok := cat.Plans.Lookup(name); !ok {
			t.Errorf("expected plan %q to resolve", name)
		}
	}
	if cat.Plans.All()[0].Name != "Fibra 500" {
		t.Errorf("expected trimmed name in listing, got %q", cat.Plans.All()[0].Name)
	}
}
