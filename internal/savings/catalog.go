package savings

import (
	"github.com/iwvelando/roi-calculator/pkg/constants"
)

// CategoryInfo describes an expense category.
type CategoryInfo struct {
	Key            Category `json:"key"`
	Name           string   `json:"name"`
	BenchmarkLow   float64  `json:"benchmarkLow"`
	BenchmarkHigh  float64  `json:"benchmarkHigh"`
	CostComponents string   `json:"costComponents"`
}

// SolutionInfo describes an improvement lever.
type SolutionInfo struct {
	Key            Solution   `json:"key"`
	Name           string     `json:"name"`
	ROITimeline    string     `json:"roiTimeline"`
	PrimaryImpacts []Category `json:"primaryImpacts"`
}

// IndustryInfo describes an industry sector.
type IndustryInfo struct {
	Key  Industry `json:"key"`
	Name string   `json:"name"`
}

var categoryCatalog = map[Category]CategoryInfo{
	InventoryCarrying: {
		Key: InventoryCarrying, Name: "Inventory Carrying Cost",
		BenchmarkLow: 0.025, BenchmarkHigh: 0.04,
		CostComponents: "Cost of capital, storage costs, insurance, shrinkage, obsolescence risk, handling",
	},
	WarehousingLogistics: {
		Key: WarehousingLogistics, Name: "Warehousing & Logistics",
		BenchmarkLow: 0.05, BenchmarkHigh: 0.10,
		CostComponents: "Facility costs, labor (picking/packing/shipping), equipment, transportation, 3PL fees",
	},
	SalesMarketingCX: {
		Key: SalesMarketingCX, Name: "Sales/Marketing/Customer Service",
		BenchmarkLow: 0.06, BenchmarkHigh: 0.12,
		CostComponents: "Customer acquisition, retention programs, service center operations, returns processing",
	},
	OrderProcessing: {
		Key: OrderProcessing, Name: "Order Processing & Back-Office",
		BenchmarkLow: 0.03, BenchmarkHigh: 0.06,
		CostComponents: "Order entry, invoicing, exception handling, EDI/integration, customer communication",
	},
	ReturnsObsolescence: {
		Key: ReturnsObsolescence, Name: "Returns/Obsolescence/Shrinkage",
		BenchmarkLow: 0.01, BenchmarkHigh: 0.04,
		CostComponents: "Returned goods processing, markdown losses, write-offs, disposal, shrinkage/theft",
	},
	ITCosts: {
		Key: ITCosts, Name: "IT Costs (Supply Chain)",
		BenchmarkLow: 0.015, BenchmarkHigh: 0.04,
		CostComponents: "ERP/WMS licenses, integration costs, maintenance, development, cloud infrastructure",
	},
	RiskCompliance: {
		Key: RiskCompliance, Name: "Risk & Compliance",
		BenchmarkLow: 0.005, BenchmarkHigh: 0.02,
		CostComponents: "Audit costs, regulatory compliance, insurance, quality control, traceability systems",
	},
}

var solutionCatalog = map[Solution]SolutionInfo{
	DemandForecasting: {
		Key: DemandForecasting, Name: "Demand Forecasting AI", ROITimeline: "12-18 months",
		PrimaryImpacts: []Category{ReturnsObsolescence, InventoryCarrying},
	},
	InventoryPlanning: {
		Key: InventoryPlanning, Name: "Inventory Planning & Replenishment", ROITimeline: "12-18 months",
		PrimaryImpacts: []Category{ReturnsObsolescence, InventoryCarrying, OrderProcessing},
	},
	SupplierLeadTime: {
		Key: SupplierLeadTime, Name: "Supplier Lead Time & Reliability", ROITimeline: "12-18 months",
		PrimaryImpacts: []Category{WarehousingLogistics, InventoryCarrying, RiskCompliance},
	},
	SKURationalization: {
		Key: SKURationalization, Name: "SKU Rationalization Analytics", ROITimeline: "90 days - 18 months",
		PrimaryImpacts: []Category{ReturnsObsolescence, InventoryCarrying, WarehousingLogistics},
	},
	WarehouseSlotting: {
		Key: WarehouseSlotting, Name: "Warehouse Layout & Slotting", ROITimeline: "4-6 weeks",
		PrimaryImpacts: []Category{WarehousingLogistics, OrderProcessing},
	},
	CycleCounting: {
		Key: CycleCounting, Name: "Cycle Counting & Inventory Accuracy", ROITimeline: "2-3 months",
		PrimaryImpacts: []Category{WarehousingLogistics, OrderProcessing, ReturnsObsolescence},
	},
	OrderOptimization: {
		Key: OrderOptimization, Name: "Order Pattern Optimization", ROITimeline: "6-12 months",
		PrimaryImpacts: []Category{OrderProcessing, WarehousingLogistics, SalesMarketingCX},
	},
	InventoryVisibility: {
		Key: InventoryVisibility, Name: "Inventory Visibility & Real-Time Data", ROITimeline: "12-18 months",
		PrimaryImpacts: []Category{OrderProcessing, WarehousingLogistics, RiskCompliance},
	},
	ObsolescenceControl: {
		Key: ObsolescenceControl, Name: "Obsolescence & Aging Control", ROITimeline: "6-12 months",
		PrimaryImpacts: []Category{ReturnsObsolescence, InventoryCarrying},
	},
}

var industryNames = map[Industry]string{
	FoodBeverage:           "Food & Beverage",
	IndustrialDistribution: "Industrial Distribution",
	RetailEcommerce:        "Retail/E-commerce",
	Pharmaceutical:         "Pharmaceutical",
	TechnologyElectronics:  "Technology/Electronics",
	FashionApparel:         "Fashion/Apparel",
	CPG:                    "CPG",
}

var riskNames = map[RiskTolerance]string{
	Conservative: "Conservative",
	Moderate:     "Moderate",
	Aggressive:   "Aggressive",
}

var sizeNames = map[CompanySize]string{
	Small:      "Small",
	MidMarket:  "Mid-Market",
	Enterprise: "Enterprise",
}

// CategoryDetails returns the catalog entry for c.
func CategoryDetails(c Category) CategoryInfo {
	if info, ok := categoryCatalog[c]; ok {
		return info
	}
	return CategoryInfo{Key: c, Name: string(c)}
}

// CategoryName returns the display name of c.
func CategoryName(c Category) string {
	return CategoryDetails(c).Name
}

// SolutionDetails returns the catalog entry for s.
func SolutionDetails(s Solution) SolutionInfo {
	if info, ok := solutionCatalog[s]; ok {
		return info
	}
	return SolutionInfo{Key: s, Name: string(s)}
}

// SolutionName returns the display name of s.
func SolutionName(s Solution) string {
	return SolutionDetails(s).Name
}

// IndustryName returns the display name of i.
func IndustryName(i Industry) string {
	if name, ok := industryNames[i]; ok {
		return name
	}
	return string(i)
}

// RiskToleranceName returns the display name of r.
func RiskToleranceName(r RiskTolerance) string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return string(r)
}

// CompanySizeName returns the display name of s.
func CompanySizeName(s CompanySize) string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return string(s)
}

// Categories returns catalog entries for all categories in report order.
func Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(AllCategories))
	for _, c := range AllCategories {
		infos = append(infos, CategoryDetails(c))
	}
	return infos
}

// Solutions returns catalog entries for all solutions in catalog order.
func Solutions() []SolutionInfo {
	infos := make([]SolutionInfo, 0, len(AllSolutions))
	for _, s := range AllSolutions {
		infos = append(infos, SolutionDetails(s))
	}
	return infos
}

// Industries returns catalog entries for all industries.
func Industries() []IndustryInfo {
	infos := make([]IndustryInfo, 0, len(AllIndustries))
	for _, i := range AllIndustries {
		infos = append(infos, IndustryInfo{Key: i, Name: IndustryName(i)})
	}
	return infos
}

// DefaultExpenseAllocation returns a typical distributor expense profile.
func DefaultExpenseAllocation() ExpenseAllocation {
	return ExpenseAllocation{
		InventoryCarrying:    0.04,
		WarehousingLogistics: 0.08,
		SalesMarketingCX:     0.10,
		OrderProcessing:      0.05,
		ReturnsObsolescence:  0.02,
		ITCosts:              0.015,
		RiskCompliance:       0.01,
	}
}

// CompanySizeFor buckets revenue into a size bracket.
func CompanySizeFor(revenue float64) CompanySize {
	switch {
	case revenue < constants.MidMarketRevenueThreshold:
		return Small
	case revenue < constants.EnterpriseRevenueThreshold:
		return MidMarket
	default:
		return Enterprise
	}
}

// Complexity is the implementation complexity of a solution set.
type Complexity string

// Complexity levels.
const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// ComplexityFor grades a selection by how many solutions it activates.
func ComplexityFor(sel SolutionSelection) Complexity {
	switch n := sel.Count(); {
	case n <= 2:
		return ComplexityLow
	case n <= 5:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// InteractionType describes how two solutions combine.
type InteractionType string

// Interaction types.
const (
	Amplifying  InteractionType = "amplifying"
	Overlapping InteractionType = "overlapping"
	Sequential  InteractionType = "sequential"
)

// Synergy is a known interaction between two solutions. Synergies are
// descriptive only; the compound discount is what the numbers use.
type Synergy struct {
	A           Solution        `json:"a"`
	B           Solution        `json:"b"`
	Interaction InteractionType `json:"interaction"`
	Description string          `json:"description"`
}

var synergies = []Synergy{
	{DemandForecasting, InventoryPlanning, Amplifying,
		"Forecasting provides the demand signal that Planning uses to optimize. Better forecasts allow more aggressive inventory policies without service risk."},
	{WarehouseSlotting, CycleCounting, Amplifying,
		"Accurate inventory data enables optimal slotting. Slotting improvements increase count efficiency."},
	{SKURationalization, ObsolescenceControl, Overlapping,
		"Both target inventory quality. Rationalization prevents future obsolescence; Aging Control manages current exposure."},
	{InventoryVisibility, OrderOptimization, Sequential,
		"Visibility provides the data foundation. Order optimization uses that data to improve fulfillment."},
	{DemandForecasting, ObsolescenceControl, Sequential,
		"Forecasting prevents over-ordering. Aging Control manages existing excess."},
	{InventoryPlanning, SupplierLeadTime, Amplifying,
		"Better supplier data enables tighter planning parameters. Reliable suppliers allow lower safety stock."},
	{WarehouseSlotting, OrderOptimization, Amplifying,
		"Slotting optimizes physical layout. Order optimization improves logical fulfillment."},
	{CycleCounting, InventoryVisibility, Sequential,
		"Counting establishes an accuracy baseline. Visibility maintains it in real time."},
	{SKURationalization, DemandForecasting, Amplifying,
		"Fewer SKUs are easier to forecast. Better forecasts inform rationalization decisions."},
	{SupplierLeadTime, InventoryVisibility, Amplifying,
		"Supplier visibility enables proactive exception management."},
}

// SynergiesFor returns the known synergies whose solutions are both active.
func SynergiesFor(sel SolutionSelection) []Synergy {
	var matched []Synergy
	for _, syn := range synergies {
		if sel[syn.A] && sel[syn.B] {
			matched = append(matched, syn)
		}
	}
	return matched
}
