// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/roi-calculator/internal/assessment"
)

// FindAssessment finds an assessment by name in the results slice.
// Returns a pointer to the assessment if found, nil otherwise.
func FindAssessment(results []assessment.Assessment, name string) *assessment.Assessment {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// AlmostEqual reports whether two dollar amounts agree to within tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
