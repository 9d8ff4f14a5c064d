package savings

import (
	"math"

	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/mathutil"
)

// ScenarioImpacts computes the net impact fraction of every category for one
// risk scenario. multiplier is the combined size x industry multiplier.
//
// The steps are:
//  1. direct impact: sum of the scenario column over active solutions
//  2. compound discount when two or more solutions are active
//  3. uniform multiplier
//  4. spillover from every category with |direct| > 0.001 to its correlated
//     categories, scaled against a 10% reference improvement
//  5. spillover floored at zero and capped at half the target's positive
//     direct impact
//  6. direct + spillover clamped to the scenario band
//
// Negative results are cost increases.
func (t *Tables) ScenarioImpacts(scenario RiskTolerance, solutions SolutionSelection, multiplier float64) map[Category]float64 {
	params := t.Scenarios[scenario]
	active := solutions.Active()

	direct := make(map[Category]float64, len(AllCategories))
	for _, category := range AllCategories {
		var sum float64
		for _, solution := range active {
			sum += t.Impact(solution, category, scenario)
		}
		direct[category] = sum
	}

	discount := 1.0
	if len(active) >= constants.CompoundMinSolutions {
		discount = params.CompoundDiscount
	}
	for _, category := range AllCategories {
		direct[category] = direct[category] * discount * multiplier
	}

	spillover := make(map[Category]float64, len(AllCategories))
	for _, source := range AllCategories {
		impact := direct[source]
		if math.Abs(impact) <= constants.SpilloverThreshold {
			continue
		}
		for target, coef := range t.Correlations[source] {
			spillover[target] += impact / constants.ReferenceImpact * coef
		}
	}

	impacts := make(map[Category]float64, len(AllCategories))
	for _, category := range AllCategories {
		spill := math.Max(0, spillover[category])
		ceiling := math.Max(0, direct[category]) * constants.SpilloverCapRatio
		spill = math.Min(spill, ceiling)

		impacts[category] = mathutil.Clamp(direct[category]+spill, params.MinImpact, params.MaxImpact)
	}
	return impacts
}
