// Package output provides utilities for formatting and displaying assessment results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []assessment.Assessment) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []assessment.Assessment) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		res := result.Result
		in := result.Input

		_, _ = fmt.Fprintf(w, "--- Results for assessment %s ---\n", result.Name)
		_, _ = p.Fprintf(w, "Revenue: $%.0f | Industry: %s | Size: %s | Risk tolerance: %s | Complexity: %s\n",
			in.Revenue,
			savings.IndustryName(in.Industry),
			savings.CompanySizeName(res.CompanySize),
			savings.RiskToleranceName(in.RiskTolerance),
			result.Complexity)
		_, _ = fmt.Fprintf(w, "Solutions: %s\n", solutionNames(in.Solutions))
		_, _ = fmt.Fprintf(w, "%-34s | %16s | %14s | %14s | %14s | %s\n",
			"Category", "Current OPEX", "Low", "Target", "High", "Efficiency")
		_, _ = fmt.Fprintf(w, "%-34s | %16s | %14s | %14s | %14s | %s\n",
			strings.Repeat("_", 8), strings.Repeat("_", 12), "___", "______", "____", "__________")

		for _, row := range res.Categories {
			_, _ = p.Fprintf(w, "%-34s | %16s | %14s | %14s | %14s | %s\n",
				row.Name,
				format.Currency(row.CurrentDollars),
				format.Currency(row.SavingsLow),
				format.Currency(row.SavingsTarget),
				format.Currency(row.SavingsHigh),
				format.Percent(row.EfficiencyTarget))
		}
		_, _ = p.Fprintf(w, "%-34s | %16s | %14s | %14s | %14s | %s\n",
			"Total",
			format.Currency(res.TotalCurrentOpex),
			format.Currency(res.TotalSavingsLow),
			format.Currency(res.TotalSavingsTarget),
			format.Currency(res.TotalSavingsHigh),
			format.Percent(res.TotalCostReductionTarget))

		_, _ = fmt.Fprintf(w, "Projected savings: %s (range %s to %s), %s of OPEX\n",
			format.Compact(res.TotalSavingsTarget),
			format.Compact(res.TotalSavingsLow),
			format.Compact(res.TotalSavingsHigh),
			format.Percent(res.TotalCostReductionTarget))

		for _, syn := range result.Synergies {
			_, _ = fmt.Fprintf(w, "Synergy (%s): %s + %s\n",
				syn.Interaction, savings.SolutionName(syn.A), savings.SolutionName(syn.B))
		}
		for _, note := range result.Notes {
			_, _ = fmt.Fprintf(w, "Note: %s\n", note)
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// CsvFormat outputs one row per assessment and category, plus a total row per
// assessment.
func CsvFormat(w io.Writer, results []assessment.Assessment) error {
	cw := csv.NewWriter(w)
	header := []string{
		"assessment", "category", "current",
		"savings low", "savings target", "savings high",
		"efficiency low", "efficiency target", "efficiency high",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		res := result.Result
		for _, row := range res.Categories {
			record := []string{
				result.Name,
				string(row.CategoryKey),
				format.Cents(row.CurrentDollars),
				format.Cents(row.SavingsLow),
				format.Cents(row.SavingsTarget),
				format.Cents(row.SavingsHigh),
				fraction(row.EfficiencyLow),
				fraction(row.EfficiencyTarget),
				fraction(row.EfficiencyHigh),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		total := []string{
			result.Name,
			"total",
			format.Cents(res.TotalCurrentOpex),
			format.Cents(res.TotalSavingsLow),
			format.Cents(res.TotalSavingsTarget),
			format.Cents(res.TotalSavingsHigh),
			fraction(res.TotalCostReductionLow),
			fraction(res.TotalCostReductionTarget),
			fraction(res.TotalCostReductionHigh),
		}
		if err := cw.Write(total); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonAssessment is the machine-readable view of an assessment.
type jsonAssessment struct {
	Name          string                `json:"name"`
	Industry      savings.Industry      `json:"industry"`
	RiskTolerance savings.RiskTolerance `json:"riskTolerance"`
	Solutions     []savings.Solution    `json:"solutions"`
	Complexity    savings.Complexity    `json:"complexity"`
	Synergies     []savings.Synergy     `json:"synergies,omitempty"`
	Notes         []string              `json:"notes,omitempty"`
	Result        *savings.Result       `json:"result"`
}

// JSONFormat outputs the assessments as an indented JSON array.
func JSONFormat(w io.Writer, results []assessment.Assessment) error {
	out := make([]jsonAssessment, 0, len(results))
	for _, result := range results {
		out = append(out, jsonAssessment{
			Name:          result.Name,
			Industry:      result.Input.Industry,
			RiskTolerance: result.Input.RiskTolerance,
			Solutions:     result.Input.Solutions.Active(),
			Complexity:    result.Complexity,
			Synergies:     result.Synergies,
			Notes:         result.Notes,
			Result:        result.Result,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func solutionNames(sel savings.SolutionSelection) string {
	active := sel.Active()
	if len(active) == 0 {
		return "none"
	}
	names := make([]string, len(active))
	for i, s := range active {
		names[i] = savings.SolutionName(s)
	}
	return strings.Join(names, ", ")
}

func fraction(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
