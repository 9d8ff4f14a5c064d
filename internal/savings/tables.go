package savings

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/mathutil"
	"gopkg.in/yaml.v3"
)

//go:embed calibration.yaml
var defaultCalibration []byte

// ErrInvalidTables is wrapped by every calibration validation error.
var ErrInvalidTables = errors.New("invalid calibration tables")

// ImpactRange holds the signed impact of one solution on one category for
// each risk tolerance. Positive values reduce cost.
type ImpactRange struct {
	Type         ImpactType `yaml:"type" json:"type"`
	Conservative float64    `yaml:"conservative" json:"conservative"`
	Moderate     float64    `yaml:"moderate" json:"moderate"`
	Aggressive   float64    `yaml:"aggressive" json:"aggressive"`
}

// For returns the impact column selected by risk.
func (r ImpactRange) For(risk RiskTolerance) float64 {
	switch risk {
	case Conservative:
		return r.Conservative
	case Moderate:
		return r.Moderate
	case Aggressive:
		return r.Aggressive
	}
	return 0
}

// ScenarioParams are the scenario-wide constants of a risk tolerance.
type ScenarioParams struct {
	CompoundDiscount float64 `yaml:"compoundDiscount" json:"compoundDiscount"`
	MaxImpact        float64 `yaml:"maxImpact" json:"maxImpact"`
	MinImpact        float64 `yaml:"minImpact" json:"minImpact"`
}

// Tables is the calibration of the savings model. Tables must not be
// modified once handed to an Engine.
type Tables struct {
	Scenarios    map[RiskTolerance]ScenarioParams      `yaml:"scenarios" json:"scenarios"`
	CompanySizes map[CompanySize]float64               `yaml:"companySizes" json:"companySizes"`
	Industries   map[Industry]float64                  `yaml:"industries" json:"industries"`
	Impacts      map[Solution]map[Category]ImpactRange `yaml:"impacts" json:"impacts"`
	Correlations map[Category]map[Category]float64     `yaml:"correlations" json:"correlations"`
}

// DefaultTables returns a fresh copy of the embedded calibration.
func DefaultTables() *Tables {
	t, err := decodeTables(defaultCalibration)
	if err != nil {
		panic(fmt.Sprintf("embedded calibration is invalid: %v", err))
	}
	return t
}

// LoadTables reads a calibration file. Sections the file omits fall back to
// the embedded defaults.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes and validates a YAML calibration document. Sections the
// document omits fall back to the embedded defaults.
func ParseTables(data []byte) (*Tables, error) {
	t, err := decodeTables(data)
	if err != nil {
		return nil, err
	}

	defaults := DefaultTables()
	if t.Scenarios == nil {
		t.Scenarios = defaults.Scenarios
	}
	if t.CompanySizes == nil {
		t.CompanySizes = defaults.CompanySizes
	}
	if t.Industries == nil {
		t.Industries = defaults.Industries
	}
	if t.Impacts == nil {
		t.Impacts = defaults.Impacts
	}
	if t.Correlations == nil {
		t.Correlations = defaults.Correlations
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeTables(data []byte) (*Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse calibration: %w", err)
	}
	return &t, nil
}

// Validate checks that every key is known and every constant is usable.
func (t *Tables) Validate() error {
	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTables, fmt.Sprintf(format, args...)))
	}

	for _, risk := range AllRiskTolerances {
		params, ok := t.Scenarios[risk]
		if !ok {
			invalid("missing scenario %q", risk)
			continue
		}
		if params.CompoundDiscount <= 0 || params.CompoundDiscount > 1 {
			invalid("scenario %q compound discount %v outside (0, 1]", risk, params.CompoundDiscount)
		}
		if params.MinImpact > 0 || params.MaxImpact < 0 {
			invalid("scenario %q band [%v, %v] must contain 0", risk, params.MinImpact, params.MaxImpact)
		}
	}
	for risk := range t.Scenarios {
		if !risk.valid() {
			invalid("unknown scenario %q", risk)
		}
	}

	for _, size := range AllCompanySizes {
		if m, ok := t.CompanySizes[size]; !ok || m <= 0 || !mathutil.IsFinite(m) {
			invalid("company size %q needs a positive multiplier", size)
		}
	}

	for industry, m := range t.Industries {
		if !industry.valid() {
			invalid("unknown industry %q", industry)
		}
		if m <= 0 || !mathutil.IsFinite(m) {
			invalid("industry %q needs a positive multiplier", industry)
		}
	}

	for solution, row := range t.Impacts {
		if !solution.valid() {
			invalid("unknown solution %q in impacts", solution)
		}
		for category, cell := range row {
			if !category.valid() {
				invalid("unknown category %q in impacts for %q", category, solution)
			}
			for _, v := range []float64{cell.Conservative, cell.Moderate, cell.Aggressive} {
				if !mathutil.IsFinite(v) {
					invalid("impact %s/%s is not finite", solution, category)
				}
			}
		}
	}

	for source, targets := range t.Correlations {
		if !source.valid() {
			invalid("unknown correlation source %q", source)
		}
		for target, coef := range targets {
			if !target.valid() {
				invalid("unknown correlation target %q", target)
			}
			if !mathutil.IsFinite(coef) {
				invalid("correlation %s->%s is not finite", source, target)
			}
		}
	}

	return errors.Join(errs...)
}

// Impact returns the impact of solution on category for risk.
func (t *Tables) Impact(solution Solution, category Category, risk RiskTolerance) float64 {
	return t.Impacts[solution][category].For(risk)
}

// IndustryMultiplier returns the clamped multiplier for industry. Industries
// missing from the tables use 1.0.
func (t *Tables) IndustryMultiplier(industry Industry) float64 {
	m, ok := t.Industries[industry]
	if !ok {
		m = 1.0
	}
	return mathutil.Clamp(m, constants.IndustryMultiplierMin, constants.IndustryMultiplierMax)
}

// SizeMultiplier returns the multiplier for a company size bracket.
func (t *Tables) SizeMultiplier(size CompanySize) float64 {
	return t.CompanySizes[size]
}

// CombinedMultiplier returns size x industry for a company.
func (t *Tables) CombinedMultiplier(revenue float64, industry Industry) float64 {
	return t.SizeMultiplier(CompanySizeFor(revenue)) * t.IndustryMultiplier(industry)
}
