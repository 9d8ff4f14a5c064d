package savings

import (
	"fmt"
	"math"

	"github.com/iwvelando/roi-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Input is everything a calculation depends on besides the calibration.
type Input struct {
	Revenue       float64           `json:"revenue"`
	Expenses      ExpenseAllocation `json:"expenses"`
	Solutions     SolutionSelection `json:"solutions"`
	RiskTolerance RiskTolerance     `json:"riskTolerance"`
	Industry      Industry          `json:"industry"`
}

// CategoryResult is the projection for one expense category. Efficiencies are
// fractions of current spend; AllocationPercent is the category's fraction of
// revenue as supplied (0.04 for 4%).
type CategoryResult struct {
	CategoryKey       Category `json:"categoryKey"`
	Name              string   `json:"name"`
	CurrentDollars    float64  `json:"currentDollars"`
	AllocationPercent float64  `json:"allocationPercent"`
	SavingsLow        float64  `json:"savingsLow"`
	SavingsHigh       float64  `json:"savingsHigh"`
	SavingsTarget     float64  `json:"savingsTarget"`
	EfficiencyLow     float64  `json:"efficiencyLow"`
	EfficiencyHigh    float64  `json:"efficiencyHigh"`
	EfficiencyTarget  float64  `json:"efficiencyTarget"`
}

// Result is the bounded savings projection. Low and high are the min and max
// of the conservative and aggressive runs; target is the run at the caller's
// risk tolerance and is not clamped into [low, high].
type Result struct {
	TotalSavingsLow          float64          `json:"totalSavingsLow"`
	TotalSavingsHigh         float64          `json:"totalSavingsHigh"`
	TotalSavingsTarget       float64          `json:"totalSavingsTarget"`
	TotalCostReductionLow    float64          `json:"totalCostReductionLow"`
	TotalCostReductionHigh   float64          `json:"totalCostReductionHigh"`
	TotalCostReductionTarget float64          `json:"totalCostReductionTarget"`
	TotalCurrentOpex         float64          `json:"totalCurrentOpex"`
	CompanySize              CompanySize      `json:"companySize"`
	Multiplier               float64          `json:"multiplier"`
	Categories               []CategoryResult `json:"categories"`
}

// Category returns the result row for key, or nil.
func (r *Result) Category(key Category) *CategoryResult {
	for i := range r.Categories {
		if r.Categories[i].CategoryKey == key {
			return &r.Categories[i]
		}
	}
	return nil
}

// Engine runs the three-scenario sweep against a fixed calibration.
type Engine struct {
	logger *zap.Logger
	tables *Tables
}

// NewEngine constructs an Engine. A nil logger is replaced with a no-op
// logger and nil tables with DefaultTables.
func NewEngine(logger *zap.Logger, tables *Tables) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{logger: logger, tables: tables}
}

// Tables returns the calibration the engine was built with.
func (e *Engine) Tables() *Tables {
	return e.tables
}

// Calculate validates the input and produces the savings projection.
func (e *Engine) Calculate(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	size := CompanySizeFor(in.Revenue)
	multiplier := e.tables.CombinedMultiplier(in.Revenue, in.Industry)

	conservative := e.tables.ScenarioImpacts(Conservative, in.Solutions, multiplier)
	aggressive := e.tables.ScenarioImpacts(Aggressive, in.Solutions, multiplier)
	target := e.tables.ScenarioImpacts(in.RiskTolerance, in.Solutions, multiplier)

	result := &Result{
		CompanySize: size,
		Multiplier:  multiplier,
		Categories:  make([]CategoryResult, 0, len(AllCategories)),
	}

	for _, category := range AllCategories {
		fraction := in.Expenses[category]
		current := in.Revenue * fraction

		row := CategoryResult{
			CategoryKey:       category,
			Name:              CategoryName(category),
			CurrentDollars:    current,
			AllocationPercent: fraction,
			EfficiencyLow:     math.Min(conservative[category], aggressive[category]),
			EfficiencyHigh:    math.Max(conservative[category], aggressive[category]),
			EfficiencyTarget:  target[category],
		}
		row.SavingsLow = current * row.EfficiencyLow
		row.SavingsHigh = current * row.EfficiencyHigh
		row.SavingsTarget = current * row.EfficiencyTarget

		result.TotalCurrentOpex += current
		result.TotalSavingsLow += row.SavingsLow
		result.TotalSavingsHigh += row.SavingsHigh
		result.TotalSavingsTarget += row.SavingsTarget
		result.Categories = append(result.Categories, row)
	}

	result.TotalCostReductionLow = mathutil.SafeDivide(result.TotalSavingsLow, result.TotalCurrentOpex)
	result.TotalCostReductionHigh = mathutil.SafeDivide(result.TotalSavingsHigh, result.TotalCurrentOpex)
	result.TotalCostReductionTarget = mathutil.SafeDivide(result.TotalSavingsTarget, result.TotalCurrentOpex)

	e.logger.Debug("savings calculated",
		zap.String("op", "savings.Calculate"),
		zap.String("riskTolerance", string(in.RiskTolerance)),
		zap.String("industry", string(in.Industry)),
		zap.String("companySize", string(size)),
		zap.Float64("multiplier", multiplier),
		zap.Int("solutions", in.Solutions.Count()),
		zap.Float64("totalSavingsTarget", result.TotalSavingsTarget),
	)

	return result, nil
}

var defaultEngine = NewEngine(nil, nil)

// Calculate runs the projection with the default calibration.
func Calculate(in Input) (*Result, error) {
	r, err := defaultEngine.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("savings calculation failed: %w", err)
	}
	return r, nil
}
