// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"errors"
	"fmt"

	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/savings"
)

// DefaultRiskTolerance is used when a record leaves the risk tolerance empty.
const DefaultRiskTolerance = savings.Moderate

// ExpensesToAllocation converts string-keyed expense fractions to an engine
// allocation. A nil map yields the default distributor profile.
func ExpensesToAllocation(expenses map[string]float64) (savings.ExpenseAllocation, error) {
	if expenses == nil {
		return savings.DefaultExpenseAllocation(), nil
	}

	var errs []error
	allocation := make(savings.ExpenseAllocation, len(expenses))
	for key, fraction := range expenses {
		category, err := savings.ParseCategory(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", savings.ErrInvalidInput, err))
			continue
		}
		allocation[category] += fraction
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return allocation, nil
}

// SolutionsToSelection converts solution keys to an engine selection.
// Duplicate keys are harmless.
func SolutionsToSelection(solutions []string) (savings.SolutionSelection, error) {
	var errs []error
	selection := make(savings.SolutionSelection, len(solutions))
	for _, key := range solutions {
		solution, err := savings.ParseSolution(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", savings.ErrInvalidInput, err))
			continue
		}
		selection[solution] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return selection, nil
}

// NewInput builds an engine input from loosely typed values such as those
// found in configuration files and API requests.
func NewInput(revenue float64, industry, riskTolerance string, expenses map[string]float64, solutions []string) (savings.Input, error) {
	var errs []error

	allocation, err := ExpensesToAllocation(expenses)
	if err != nil {
		errs = append(errs, err)
	}

	selection, err := SolutionsToSelection(solutions)
	if err != nil {
		errs = append(errs, err)
	}

	ind, err := savings.ParseIndustry(industry)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", savings.ErrInvalidInput, err))
	}

	risk := DefaultRiskTolerance
	if riskTolerance != "" {
		if risk, err = savings.ParseRiskTolerance(riskTolerance); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", savings.ErrInvalidInput, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return savings.Input{}, err
	}

	return savings.Input{
		Revenue:       revenue,
		Expenses:      allocation,
		Solutions:     selection,
		RiskTolerance: risk,
		Industry:      ind,
	}, nil
}

// AssessmentToInput combines the shared company profile with one assessment.
func AssessmentToInput(company config.Company, assessment config.Assessment) (savings.Input, error) {
	in, err := NewInput(company.Revenue, company.Industry, assessment.RiskTolerance, company.Expenses, assessment.Solutions)
	if err != nil {
		return savings.Input{}, fmt.Errorf("assessment %q: %w", assessment.Name, err)
	}
	return in, nil
}
