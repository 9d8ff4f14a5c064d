package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/savings"
)

func testResults(t *testing.T) []assessment.Assessment {
	t.Helper()

	in := savings.Input{
		Revenue:       1e9,
		Expenses:      savings.DefaultExpenseAllocation(),
		Solutions:     savings.NewSolutionSelection(savings.DemandForecasting, savings.InventoryPlanning),
		RiskTolerance: savings.Conservative,
		Industry:      savings.CPG,
	}
	res, err := savings.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	single := in
	single.Solutions = savings.NewSolutionSelection(savings.DemandForecasting)
	singleRes, err := savings.Calculate(single)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	return []assessment.Assessment{
		{
			Name:       "Pair",
			Input:      in,
			Result:     res,
			Complexity: savings.ComplexityFor(in.Solutions),
			Synergies:  savings.SynergiesFor(in.Solutions),
			Notes:      []string{"Test note"},
		},
		{
			Name:       "Single",
			Input:      single,
			Result:     singleRes,
			Complexity: savings.ComplexityFor(single.Solutions),
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testResults(t)); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Results for assessment Pair ---",
		"--- Results for assessment Single ---",
		"Revenue: $1,000,000,000 | Industry: CPG | Size: Enterprise | Risk tolerance: Conservative | Complexity: Low",
		"Solutions: Demand Forecasting AI, Inventory Planning & Replenishment",
		"Inventory Carrying Cost",
		"$40,000,000.00",
		"$1,200,000.00",
		"Synergy (amplifying): Demand Forecasting AI + Inventory Planning & Replenishment",
		"Note: Test note",
		"Projected savings: $",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
	if strings.Count(output, "Total ") != 2 {
		t.Errorf("expected a total row per assessment")
	}
}

func TestPrettyFormatNoSolutions(t *testing.T) {
	in := savings.Input{
		Revenue:       20e6,
		Expenses:      savings.DefaultExpenseAllocation(),
		Solutions:     savings.SolutionSelection{},
		RiskTolerance: savings.Moderate,
		Industry:      savings.FoodBeverage,
	}
	res, err := savings.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	results := []assessment.Assessment{{Name: "Nothing", Input: in, Result: res, Complexity: savings.ComplexityLow}}
	if err := PrettyFormat(&buf, results); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Solutions: none") {
		t.Errorf("expected no solutions, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Projected savings: $0 (range $0 to $0), 0.0% of OPEX") {
		t.Errorf("expected zero savings summary, got:\n%s", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testResults(t)); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	// header + 2 x (7 categories + total)
	if len(records) != 17 {
		t.Fatalf("expected 17 records, got %d", len(records))
	}
	if records[0][0] != "assessment" || len(records[0]) != 9 {
		t.Errorf("unexpected header %v", records[0])
	}

	single := records[9]
	if single[0] != "Single" || single[1] != "inventory_carrying" {
		t.Fatalf("unexpected record %v", single)
	}
	if single[2] != "40000000.00" || single[4] != "1200000.00" || single[7] != "0.0300" {
		t.Errorf("unexpected carrying values %v", single)
	}
	if records[16][1] != "total" {
		t.Errorf("expected a total row, got %v", records[16])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testResults(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []struct {
		Name       string   `json:"name"`
		Solutions  []string `json:"solutions"`
		Complexity string   `json:"complexity"`
		Result     struct {
			TotalSavingsTarget float64 `json:"totalSavingsTarget"`
			Categories         []struct {
				CategoryKey string `json:"categoryKey"`
			} `json:"categories"`
		} `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(decoded))
	}
	if decoded[0].Name != "Pair" || len(decoded[0].Solutions) != 2 || decoded[0].Complexity != "Low" {
		t.Errorf("unexpected first assessment %+v", decoded[0])
	}
	if len(decoded[1].Result.Categories) != 7 || decoded[1].Result.TotalSavingsTarget <= 0 {
		t.Errorf("unexpected result %+v", decoded[1].Result)
	}
}

func TestWrite(t *testing.T) {
	for _, f := range []string{"pretty", "csv", "json"} {
		var buf bytes.Buffer
		if err := Write(&buf, f, testResults(t)); err != nil {
			t.Errorf("Write(%s) error = %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", f)
		}
	}

	if err := Write(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
