// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"

	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/constants"
)

// ValidateExpenseBenchmark checks a category's share of revenue against the
// industry benchmark range. Unknown categories are left to the engine.
func ValidateExpenseBenchmark(categoryKey string, fraction float64) string {
	category, err := savings.ParseCategory(categoryKey)
	if err != nil {
		return ""
	}
	info := savings.CategoryDetails(category)

	if fraction < info.BenchmarkLow || fraction > info.BenchmarkHigh {
		return fmt.Sprintf("Expense '%s' is %.1f%% of revenue, outside the typical %.1f%%-%.1f%% range",
			info.Name,
			fraction*constants.PercentageMultiplier,
			info.BenchmarkLow*constants.PercentageMultiplier,
			info.BenchmarkHigh*constants.PercentageMultiplier)
	}
	return ""
}

// ConfigValidator collects the parts of a configuration that warnings are
// derived from.
type ConfigValidator struct {
	Company     CompanyConfig
	Assessments []AssessmentConfig
}

// CompanyConfig is the company profile as written in the configuration file.
type CompanyConfig struct {
	Name     string
	Expenses map[string]float64
}

// AssessmentConfig is one assessment entry as written in the configuration file.
type AssessmentConfig struct {
	Name      string
	Active    bool
	Solutions []string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	// Check expenses in a stable order
	keys := make([]string, 0, len(cv.Company.Expenses))
	for key := range cv.Company.Expenses {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if warning := ValidateExpenseBenchmark(key, cv.Company.Expenses[key]); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	active := 0
	seen := make(map[string]bool)
	for _, assessment := range cv.Assessments {
		if seen[assessment.Name] {
			warnings = append(warnings, fmt.Sprintf("Assessment '%s' is defined more than once", assessment.Name))
		}
		seen[assessment.Name] = true

		if !assessment.Active {
			continue
		}
		active++
		if len(assessment.Solutions) == 0 {
			warnings = append(warnings, fmt.Sprintf("Assessment '%s' selects no solutions and will project zero savings", assessment.Name))
		}
	}

	if len(cv.Assessments) > 0 && active == 0 {
		warnings = append(warnings, "No assessments are active")
	}

	return warnings
}
