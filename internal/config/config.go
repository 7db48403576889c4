// Package config defines the data structures related to configuration and
// includes functions for loading the reference catalog and turning it into
// the immutable tables the calculations consume.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/billing-calc/internal/catalog"
	"github.com/iwvelando/billing-calc/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for billing-calc.
type Configuration struct {
	Plans        []Plan
	FineSchedule []FineScheduleEntry
	Equipment    Equipment
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Plan is a plan price list entry.
type Plan struct {
	Name  string
	Price float64
}

// FineScheduleEntry is the fine owed after InstallmentsPaid installments.
type FineScheduleEntry struct {
	InstallmentsPaid int
	BaseFine         float64
	NewPlanSurcharge float64
}

// Equipment holds the two equipment price lists.
type Equipment struct {
	Routers []EquipmentItem
	Onus    []EquipmentItem
}

// EquipmentItem is a router or ONT/ONU unit and its replacement price.
type EquipmentItem struct {
	Name  string
	Price float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate returns an error when the catalog cannot serve requests.
func (c *Configuration) Validate() error {
	if err := c.validator().Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return c.validator().Warnings()
}

func (c *Configuration) validator() validation.CatalogValidator {
	v := validation.CatalogValidator{
		Plans:   make([]validation.PriceEntry, 0, len(c.Plans)),
		Routers: priceEntries(c.Equipment.Routers),
		Onus:    priceEntries(c.Equipment.Onus),
	}
	for _, plan := range c.Plans {
		v.Plans = append(v.Plans, validation.PriceEntry{Name: plan.Name, Price: plan.Price})
	}
	for _, entry := range c.FineSchedule {
		v.FineSchedule = append(v.FineSchedule, validation.FineEntry{
			InstallmentsPaid: entry.InstallmentsPaid,
			BaseFine:         entry.BaseFine,
			NewPlanSurcharge: entry.NewPlanSurcharge,
		})
	}
	return v
}

func priceEntries(items []EquipmentItem) []validation.PriceEntry {
	entries := make([]validation.PriceEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, validation.PriceEntry{Name: item.Name, Price: item.Price})
	}
	return entries
}

// Catalog converts the configured tables into decimal-valued lookups. Plan
// names are trimmed the same way request names are.
func (c *Configuration) Catalog() catalog.Catalog {
	plans := make([]catalog.Plan, 0, len(c.Plans))
	for _, plan := range c.Plans {
		plans = append(plans, catalog.Plan{Name: strings.TrimSpace(plan.Name), Price: decimal.NewFromFloat(plan.Price)})
	}

	entries := make([]catalog.FineScheduleEntry, 0, len(c.FineSchedule))
	for _, entry := range c.FineSchedule {
		entries = append(entries, catalog.FineScheduleEntry{
			InstallmentsPaid: entry.InstallmentsPaid,
			BaseFine:         decimal.NewFromFloat(entry.BaseFine),
			NewPlanSurcharge: decimal.NewFromFloat(entry.NewPlanSurcharge),
		})
	}

	return catalog.Catalog{
		Plans:        catalog.NewPlans(plans),
		FineSchedule: catalog.NewFineSchedule(entries),
		Equipment: catalog.EquipmentCatalog{
			Routers: equipmentItems(c.Equipment.Routers),
			Onus:    equipmentItems(c.Equipment.Onus),
		},
	}
}

func equipmentItems(items []EquipmentItem) []catalog.Equipment {
	out := make([]catalog.Equipment, 0, len(items))
	for _, item := range items {
		out = append(out, catalog.Equipment{Name: item.Name, Price: decimal.NewFromFloat(item.Price)})
	}
	return out
}
