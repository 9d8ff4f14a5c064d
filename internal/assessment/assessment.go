// Package assessment defines the data structures related to a given
// assessment and includes functions for computing the assessments of a
// configuration.
package assessment

import (
	"fmt"

	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/adapters"
	"go.uber.org/zap"
)

// Assessment holds all information related to a specific assessment.
type Assessment struct {
	Name       string
	Input      savings.Input
	Result     *savings.Result
	Complexity savings.Complexity
	Synergies  []savings.Synergy
	Notes      []string
}

// NewEngine builds the engine a configuration asks for, loading the
// calibration override when one is configured.
func NewEngine(logger *zap.Logger, conf config.Configuration) (*savings.Engine, error) {
	if conf.Calibration.File == "" {
		return savings.NewEngine(logger, nil), nil
	}

	tables, err := savings.LoadTables(conf.Calibration.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load calibration %s: %w", conf.Calibration.File, err)
	}
	if logger != nil {
		logger.Info("loaded calibration override",
			zap.String("op", "assessment.NewEngine"),
			zap.String("file", conf.Calibration.File),
		)
	}
	return savings.NewEngine(logger, tables), nil
}

// GetAssessments processes the savings projection for all active assessments.
func GetAssessments(logger *zap.Logger, engine *savings.Engine, conf config.Configuration) ([]Assessment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = savings.NewEngine(logger, nil)
	}

	var results []Assessment
	for _, a := range conf.Assessments {
		if !a.Active {
			logger.Debug(fmt.Sprintf("skipping assessment %s because it is inactive", a.Name),
				zap.String("op", "assessment.GetAssessments"),
			)
			continue
		}

		in, err := adapters.AssessmentToInput(conf.Company, a)
		if err != nil {
			return results, err
		}

		res, err := engine.Calculate(in)
		if err != nil {
			return results, fmt.Errorf("assessment %q: %w", a.Name, err)
		}

		result := Assessment{
			Name:       a.Name,
			Input:      in,
			Result:     res,
			Complexity: savings.ComplexityFor(in.Solutions),
			Synergies:  savings.SynergiesFor(in.Solutions),
		}
		if a.RiskTolerance == "" {
			result.Notes = append(result.Notes,
				fmt.Sprintf("risk tolerance not set, assessed as %s", savings.RiskToleranceName(in.RiskTolerance)))
		}
		if conf.Company.Expenses == nil {
			result.Notes = append(result.Notes, "expense profile not set, typical distributor profile used")
		}
		for _, category := range res.Categories {
			if category.SavingsTarget < 0 {
				result.Notes = append(result.Notes,
					fmt.Sprintf("%s shows a cost increase from strategic reinvestment", category.Name))
			}
		}

		logger.Debug("assessment computed",
			zap.String("op", "assessment.GetAssessments"),
			zap.String("assessment", a.Name),
			zap.Float64("totalSavingsTarget", res.TotalSavingsTarget),
		)
		results = append(results, result)
	}

	return results, nil
}
