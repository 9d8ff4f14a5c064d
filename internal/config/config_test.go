package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/roi-calculator/pkg/constants"
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
			name:       "Test configuration",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
		{
			name:       "Example configuration",
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

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Company.Name != "Acme Industrial Supply" {
		t.Errorf("Expected company name Acme Industrial Supply, got %q", config.Company.Name)
	}
	if config.Company.Revenue != 1e9 {
		t.Errorf("Expected Revenue = 1e9, got %v", config.Company.Revenue)
	}
	if config.Company.Industry != "industrial_distribution" {
		t.Errorf("Expected industrial_distribution, got %q", config.Company.Industry)
	}
	if len(config.Company.Expenses) != 7 {
		t.Errorf("Expected 7 expense categories, got %d", len(config.Company.Expenses))
	}
	if config.Company.Expenses["it_costs"] != 0.015 {
		t.Errorf("Expected it_costs = 0.015, got %v", config.Company.Expenses["it_costs"])
	}

	expectedAssessments := []string{"forecasting pilot", "planning suite", "full transformation", "warehouse only"}
	if len(config.Assessments) != len(expectedAssessments) {
		t.Fatalf("Expected %d assessments, got %d", len(expectedAssessments), len(config.Assessments))
	}
	for i, expectedName := range expectedAssessments {
		if config.Assessments[i].Name != expectedName {
			t.Errorf("Expected assessment name %s, got %s", expectedName, config.Assessments[i].Name)
		}
	}

	planning := config.Assessments[1]
	if planning.RiskTolerance != "moderate" {
		t.Errorf("Expected moderate risk tolerance, got %q", planning.RiskTolerance)
	}
	if len(planning.Solutions) != 3 {
		t.Errorf("Expected 3 solutions, got %d", len(planning.Solutions))
	}
	if len(config.Assessments[2].Solutions) != 9 {
		t.Errorf("Expected 9 solutions, got %d", len(config.Assessments[2].Solutions))
	}

	if len(config.ActiveAssessments()) != 3 {
		t.Errorf("Expected 3 active assessments, got %d", len(config.ActiveAssessments()))
	}

	if config.Logging.Level != "warn" || config.Logging.Format != "console" {
		t.Errorf("Unexpected logging config: %+v", config.Logging)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected pretty output, got %q", config.Output.Format)
	}
	if config.Report.Variation != 1 {
		t.Errorf("Expected report variation 1, got %d", config.Report.Variation)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `
company:
  name: Reader Co
  revenue: 75000000
  industry: cpg
calibration:
  file: custom.yaml
report:
  blocksFile: blocks.json
  outputDir: out
assessments:
  - name: one
    active: true
    riskTolerance: aggressive
    solutions: [cycle_counting]
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Company.Expenses != nil {
		t.Errorf("Expected no expenses, got %v", config.Company.Expenses)
	}
	if config.Calibration.File != "custom.yaml" {
		t.Errorf("Expected calibration file custom.yaml, got %q", config.Calibration.File)
	}
	if config.Report.BlocksFile != "blocks.json" || config.Report.OutputDir != "out" {
		t.Errorf("Unexpected report config: %+v", config.Report)
	}
	if len(config.Assessments) != 1 || config.Assessments[0].Solutions[0] != "cycle_counting" {
		t.Errorf("Unexpected assessments: %+v", config.Assessments)
	}
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("company: [unterminated"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	// Sales at 10% and returns at 2% sit inside their benchmarks, so the test
	// configuration is clean.
	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	conf := Configuration{
		Company: Company{
			Expenses: map[string]float64{"inventory_carrying": 0.20},
		},
		Assessments: []Assessment{
			{Name: "nothing", Active: true},
		},
	}
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}
