package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
)

// LoadTaxConfig reads and validates the tax-table bundle from a YAML file.
// Every rate, bracket, cap and threshold the engine uses comes from here;
// nothing is hard-coded.
func LoadTaxConfig(path string) (payroll.TaxConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return payroll.TaxConfig{}, fmt.Errorf("reading tax config %s: %w", path, err)
	}

	var cfg payroll.TaxConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return payroll.TaxConfig{}, fmt.Errorf("parsing tax config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return payroll.TaxConfig{}, err
	}
	return cfg, nil
}
