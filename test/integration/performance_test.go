package integration

import (
	"reflect"
	"testing"
	"time"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	engine, err := assessment.NewEngine(logger, *conf)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	var results []assessment.Assessment
	for i := 0; i < 1000; i++ {
		results, err = assessment.GetAssessments(logger, engine, *conf)
		if err != nil {
			t.Fatalf("GetAssessments failed: %v", err)
		}
	}
	assessTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  1000 assessment runs: %v", assessTime)

	if assessTime > 10*time.Second {
		t.Errorf("Assessment time %v exceeds 10 second threshold", assessTime)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
}

// TestDataConsistency validates that multiple runs produce identical results
func TestDataConsistency(t *testing.T) {
	var firstResults []assessment.Assessment

	for run := 0; run < 3; run++ {
		_, results := loadAssessments(t)

		if run == 0 {
			firstResults = results
			continue
		}

		if len(results) != len(firstResults) {
			t.Fatalf("Run %d: got %d results, expected %d", run, len(results), len(firstResults))
		}
		for i := range results {
			if !reflect.DeepEqual(results[i], firstResults[i]) {
				t.Errorf("Run %d, assessment %s: result differs from first run", run, results[i].Name)
			}
		}
	}
}

// TestConfigurationVariations tests different configuration variations
func TestConfigurationVariations(t *testing.T) {
	logger := zap.NewNop()

	variations := []struct {
		name              string
		modifyConfig      func(*config.Configuration)
		expectError       bool
		expectAssessments int
		check             func(t *testing.T, results []assessment.Assessment)
	}{
		{
			name:              "Baseline config",
			modifyConfig:      func(c *config.Configuration) {},
			expectAssessments: 3,
		},
		{
			name: "Mid-market revenue",
			modifyConfig: func(c *config.Configuration) {
				c.Company.Revenue = 200_000_000
			},
			expectAssessments: 3,
			check: func(t *testing.T, results []assessment.Assessment) {
				if results[0].Result.CompanySize != savings.MidMarket {
					t.Errorf("Expected mid-market, got %s", results[0].Result.CompanySize)
				}
			},
		},
		{
			name: "Default expense profile",
			modifyConfig: func(c *config.Configuration) {
				c.Company.Expenses = nil
			},
			expectAssessments: 3,
			check: func(t *testing.T, results []assessment.Assessment) {
				if len(results[0].Notes) == 0 {
					t.Error("Expected a note about the default expense profile")
				}
			},
		},
		{
			name: "Inactive assessment enabled",
			modifyConfig: func(c *config.Configuration) {
				c.Assessments[3].Active = true
			},
			expectAssessments: 4,
		},
		{
			name: "Display name industry",
			modifyConfig: func(c *config.Configuration) {
				c.Company.Industry = "Food & Beverage"
			},
			expectAssessments: 3,
			check: func(t *testing.T, results []assessment.Assessment) {
				if results[0].Input.Industry != savings.FoodBeverage {
					t.Errorf("Expected food_beverage, got %s", results[0].Input.Industry)
				}
			},
		},
		{
			name: "Unknown industry",
			modifyConfig: func(c *config.Configuration) {
				c.Company.Industry = "mining"
			},
			expectError: true,
		},
		{
			name: "Unknown solution",
			modifyConfig: func(c *config.Configuration) {
				c.Assessments[0].Solutions = append(c.Assessments[0].Solutions, "blockchain")
			},
			expectError: true,
		},
		{
			name: "Zero revenue",
			modifyConfig: func(c *config.Configuration) {
				c.Company.Revenue = 0
			},
			expectError: true,
		},
	}

	for _, variation := range variations {
		t.Run(variation.name, func(t *testing.T) {
			conf, err := config.LoadConfiguration(testConfigPath)
			if err != nil {
				t.Fatalf("LoadConfiguration failed: %v", err)
			}
			variation.modifyConfig(conf)

			results, err := assessment.GetAssessments(logger, nil, *conf)
			if variation.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAssessments failed: %v", err)
			}
			if len(results) != variation.expectAssessments {
				t.Fatalf("Expected %d assessments, got %d", variation.expectAssessments, len(results))
			}
			if variation.check != nil {
				variation.check(t, results)
			}
		})
	}
}
