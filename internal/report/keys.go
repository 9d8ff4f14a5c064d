package report

import (
	"fmt"
	"strings"

	"github.com/iwvelando/roi-calculator/internal/savings"
)

// Number of variations the generator writes per block family.
const (
	executiveSummaryVariations = 4
	industryVariations         = 3
	categoryVariations         = 2
	synergyNameLength          = 15
)

// strategicKeys are the single blocks closing a report, in report order.
var strategicKeys = []struct {
	key     string
	heading string
}{
	{"why_now", "Why Now"},
	{"readiness_assessment", "Readiness Assessment"},
	{"diy_vs_partner", "Build or Partner"},
	{"risk_factors", "Risk Factors"},
	{"report_limitations", "Report Limitations"},
	{"next_steps", "Next Steps"},
	{"partner_acknowledgment", "Acknowledgments"},
}

// nameSlug lowercases a display name and replaces slashes and spaces with
// underscores: "Retail/E-commerce" -> "retail_e-commerce".
func nameSlug(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(strings.ToLower(name))
}

// variation maps a 1-based variation onto the n available, wrapping around.
func variation(v, n int) int {
	if v < 1 {
		v = 1
	}
	return (v-1)%n + 1
}

func executiveSummaryKey(risk savings.RiskTolerance, v int) string {
	return fmt.Sprintf("executive_summary_%s_v%d",
		strings.ToLower(savings.RiskToleranceName(risk)), variation(v, executiveSummaryVariations))
}

func industryKey(industry savings.Industry, v int) string {
	return fmt.Sprintf("industry_%s_v%d",
		nameSlug(savings.IndustryName(industry)), variation(v, industryVariations))
}

func solutionKey(solution savings.Solution) string {
	name := strings.ToLower(savings.SolutionName(solution))
	return "solution_" + strings.NewReplacer(" ", "_", "&", "and").Replace(name)
}

func categoryKey(category savings.Category, v int) string {
	return fmt.Sprintf("category_%s_v%d",
		nameSlug(savings.CategoryName(category)), variation(v, categoryVariations))
}

func impactKey(solution savings.Solution, category savings.Category) string {
	sol := strings.ReplaceAll(strings.ToLower(savings.SolutionName(solution)), " ", "_")
	return fmt.Sprintf("impact_%s_%s", sol, nameSlug(savings.CategoryName(category)))
}

func synergyKey(a, b savings.Solution) string {
	return fmt.Sprintf("synergy_%s_%s", synergyPart(a), synergyPart(b))
}

func synergyPart(s savings.Solution) string {
	part := strings.ReplaceAll(strings.ToLower(savings.SolutionName(s)), " ", "_")
	if len(part) > synergyNameLength {
		part = part[:synergyNameLength]
	}
	return part
}

func methodologyKey(risk savings.RiskTolerance) string {
	return "methodology_" + strings.ToLower(savings.RiskToleranceName(risk))
}

func roadmapKey(c savings.Complexity) string {
	return "roadmap_" + strings.ToLower(string(c))
}
