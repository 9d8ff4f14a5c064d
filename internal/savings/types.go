// Package savings implements the multi-factor savings model: it turns a
// company's expense profile and a selection of process-improvement solutions
// into a bounded, scenario-ranged cost-savings projection.
//
// The model is a pure function of its inputs and the calibration Tables it is
// constructed with. An Engine may be shared by any number of goroutines.
package savings

import (
	"fmt"
	"strings"
)

// Category is one of the seven OPEX line items the model works on.
type Category string

// Expense categories.
const (
	InventoryCarrying    Category = "inventory_carrying"
	WarehousingLogistics Category = "warehousing_logistics"
	SalesMarketingCX     Category = "sales_marketing_cx"
	OrderProcessing      Category = "order_processing"
	ReturnsObsolescence  Category = "returns_obsolescence"
	ITCosts              Category = "it_costs"
	RiskCompliance       Category = "risk_compliance"
)

// AllCategories lists the categories in report order.
var AllCategories = []Category{
	InventoryCarrying,
	WarehousingLogistics,
	SalesMarketingCX,
	OrderProcessing,
	ReturnsObsolescence,
	ITCosts,
	RiskCompliance,
}

// Solution is one of the nine improvement levers a company may adopt.
type Solution string

// Improvement levers.
const (
	DemandForecasting   Solution = "demand_forecasting"
	InventoryPlanning   Solution = "inventory_planning"
	SupplierLeadTime    Solution = "supplier_lead_time"
	SKURationalization  Solution = "sku_rationalization"
	WarehouseSlotting   Solution = "warehouse_slotting"
	CycleCounting       Solution = "cycle_counting"
	OrderOptimization   Solution = "order_optimization"
	InventoryVisibility Solution = "inventory_visibility"
	ObsolescenceControl Solution = "obsolescence_control"
)

// AllSolutions lists the solutions in catalog order. Direct impacts are
// summed in this order.
var AllSolutions = []Solution{
	DemandForecasting,
	InventoryPlanning,
	SupplierLeadTime,
	SKURationalization,
	WarehouseSlotting,
	CycleCounting,
	OrderOptimization,
	InventoryVisibility,
	ObsolescenceControl,
}

// RiskTolerance selects the impact column, compound discount and caps of a
// scenario run.
type RiskTolerance string

// Risk tolerances.
const (
	Conservative RiskTolerance = "conservative"
	Moderate     RiskTolerance = "moderate"
	Aggressive   RiskTolerance = "aggressive"
)

// AllRiskTolerances lists the risk tolerances from least to most severe.
var AllRiskTolerances = []RiskTolerance{Conservative, Moderate, Aggressive}

// Industry is the sector of the company being assessed.
type Industry string

// Industry sectors.
const (
	FoodBeverage           Industry = "food_beverage"
	IndustrialDistribution Industry = "industrial_distribution"
	RetailEcommerce        Industry = "retail_ecommerce"
	Pharmaceutical         Industry = "pharmaceutical"
	TechnologyElectronics  Industry = "technology_electronics"
	FashionApparel         Industry = "fashion_apparel"
	CPG                    Industry = "cpg"
)

// AllIndustries lists the supported sectors.
var AllIndustries = []Industry{
	FoodBeverage,
	IndustrialDistribution,
	RetailEcommerce,
	Pharmaceutical,
	TechnologyElectronics,
	FashionApparel,
	CPG,
}

// CompanySize is the revenue bracket of the company.
type CompanySize string

// Company size brackets.
const (
	Small      CompanySize = "small"
	MidMarket  CompanySize = "mid_market"
	Enterprise CompanySize = "enterprise"
)

// AllCompanySizes lists the brackets from smallest to largest.
var AllCompanySizes = []CompanySize{Small, MidMarket, Enterprise}

// ImpactType grades how directly a solution affects a category.
type ImpactType string

// Impact grades.
const (
	ImpactPrimary   ImpactType = "PRIMARY"
	ImpactSecondary ImpactType = "SECONDARY"
	ImpactTertiary  ImpactType = "TERTIARY"
	ImpactMinimal   ImpactType = "MINIMAL"
)

// ExpenseAllocation maps each category to its share of revenue (0.0-1.0).
// Categories missing from the map count as zero.
type ExpenseAllocation map[Category]float64

// Total returns the total OPEX fraction.
func (e ExpenseAllocation) Total() float64 {
	var total float64
	for _, c := range AllCategories {
		total += e[c]
	}
	return total
}

// SolutionSelection records which solutions are active. Order is irrelevant.
type SolutionSelection map[Solution]bool

// NewSolutionSelection builds a selection with the given solutions active.
func NewSolutionSelection(solutions ...Solution) SolutionSelection {
	sel := make(SolutionSelection, len(solutions))
	for _, s := range solutions {
		sel[s] = true
	}
	return sel
}

// Count returns the number of active solutions.
func (s SolutionSelection) Count() int {
	n := 0
	for _, active := range s {
		if active {
			n++
		}
	}
	return n
}

// Active returns the active solutions in catalog order.
func (s SolutionSelection) Active() []Solution {
	var active []Solution
	for _, sol := range AllSolutions {
		if s[sol] {
			active = append(active, sol)
		}
	}
	return active
}

func normalizeKey(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	return key
}

// ParseCategory resolves a category key such as "inventory_carrying".
func ParseCategory(value string) (Category, error) {
	key := Category(normalizeKey(value))
	for _, c := range AllCategories {
		if c == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", value)
}

// ParseSolution resolves a solution key such as "demand_forecasting".
func ParseSolution(value string) (Solution, error) {
	key := Solution(normalizeKey(value))
	for _, s := range AllSolutions {
		if s == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown solution %q", value)
}

// ParseRiskTolerance resolves "Conservative", "moderate", etc.
func ParseRiskTolerance(value string) (RiskTolerance, error) {
	key := RiskTolerance(normalizeKey(value))
	for _, r := range AllRiskTolerances {
		if r == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown risk tolerance %q", value)
}

// ParseIndustry resolves an industry key or display name.
func ParseIndustry(value string) (Industry, error) {
	key := Industry(normalizeKey(value))
	for _, ind := range AllIndustries {
		if ind == key || normalizeKey(IndustryName(ind)) == string(key) {
			return ind, nil
		}
	}
	return "", fmt.Errorf("unknown industry %q", value)
}

func (c Category) valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (s Solution) valid() bool {
	for _, known := range AllSolutions {
		if s == known {
			return true
		}
	}
	return false
}

func (r RiskTolerance) valid() bool {
	for _, known := range AllRiskTolerances {
		if r == known {
			return true
		}
	}
	return false
}

func (i Industry) valid() bool {
	for _, known := range AllIndustries {
		if i == known {
			return true
		}
	}
	return false
}
