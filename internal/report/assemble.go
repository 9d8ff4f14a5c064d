package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"go.uber.org/zap"
)

// Options tune a single report.
type Options struct {
	CompanyName string
	// Variation selects which written variation of each block family to use,
	// starting at 1. Families with fewer variations wrap around.
	Variation int
	// Values adds or overrides placeholder values, keyed without braces.
	Values map[string]string
}

// Section is one headed part of a report.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Report is an assembled markdown report.
type Report struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
	// Missing lists block keys the library did not have.
	Missing []string `json:"missing,omitempty"`
}

// Markdown renders the report as a single markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", r.Title)
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Heading, strings.TrimSpace(s.Body))
	}
	return b.String()
}

// Assembler selects and fills blocks from a library.
type Assembler struct {
	logger  *zap.Logger
	library *Library
	tables  *savings.Tables
}

// NewAssembler constructs an Assembler. Nil arguments are replaced with a
// no-op logger, DefaultLibrary and DefaultTables. tables decides which
// solutions materially affect a category.
func NewAssembler(logger *zap.Logger, library *Library, tables *savings.Tables) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if library == nil {
		library = DefaultLibrary()
	}
	if tables == nil {
		tables = savings.DefaultTables()
	}
	return &Assembler{logger: logger, library: library, tables: tables}
}

// Library returns the block library in use.
func (a *Assembler) Library() *Library {
	return a.library
}

// Assemble builds the report for one calculation. Missing blocks are skipped
// and recorded in Report.Missing.
func (a *Assembler) Assemble(in savings.Input, result *savings.Result, opts Options) *Report {
	b := &builder{
		library: a.library,
		tables:  a.tables,
		values:  placeholderValues(in, result, opts),
	}
	active := in.Solutions.Active()
	complexity := savings.ComplexityFor(in.Solutions)

	title := "Supply Chain Savings Assessment"
	if opts.CompanyName != "" {
		title += ": " + opts.CompanyName
	}
	rep := &Report{ID: uuid.NewString(), Title: title}
	add := func(heading, body string) {
		if strings.TrimSpace(body) != "" {
			rep.Sections = append(rep.Sections, Section{Heading: heading, Body: body})
		}
	}

	add("Executive Summary", b.block(executiveSummaryKey(in.RiskTolerance, opts.Variation)))
	add(savings.IndustryName(in.Industry)+" Context", b.block(industryKey(in.Industry, opts.Variation)))
	add("Savings Breakdown", breakdownTable(result))

	var solutions []string
	for _, s := range active {
		if body := b.block(solutionKey(s)); body != "" {
			solutions = append(solutions, fmt.Sprintf("### %s\n\n%s", savings.SolutionName(s), body))
		}
	}
	add("Selected Solutions", strings.Join(solutions, "\n\n"))

	var categories []string
	for _, row := range result.Categories {
		if body := b.categoryAnalysis(row, active, opts.Variation); body != "" {
			categories = append(categories, fmt.Sprintf("### %s\n\n%s", row.Name, body))
		}
	}
	add("Category Analysis", strings.Join(categories, "\n\n"))

	var synergies []string
	for _, syn := range savings.SynergiesFor(in.Solutions) {
		if body := b.block(synergyKey(syn.A, syn.B)); body != "" {
			synergies = append(synergies, fmt.Sprintf("### %s + %s\n\n%s",
				savings.SolutionName(syn.A), savings.SolutionName(syn.B), body))
		}
	}
	add("Solution Synergies", strings.Join(synergies, "\n\n"))

	add("Methodology", b.block(methodologyKey(in.RiskTolerance)))
	add("Implementation Roadmap", b.block(roadmapKey(complexity)))
	for _, s := range strategicKeys {
		add(s.heading, b.block(s.key))
	}

	rep.Missing = b.missing

	a.logger.Debug("report assembled",
		zap.String("op", "report.Assemble"),
		zap.String("id", rep.ID),
		zap.Int("sections", len(rep.Sections)),
		zap.Int("missing", len(rep.Missing)),
	)
	return rep
}

// builder looks up blocks, fills placeholders and records misses.
type builder struct {
	library *Library
	tables  *savings.Tables
	values  map[string]string
	missing []string
}

func (b *builder) block(key string) string {
	content, ok := b.library.Block(key)
	if !ok {
		b.missing = append(b.missing, key)
		return ""
	}
	return substitute(content, b.values)
}

// categoryAnalysis combines a category's anchor with the impact explanations
// of every selected solution that materially affects it.
func (b *builder) categoryAnalysis(row savings.CategoryResult, active []savings.Solution, v int) string {
	var impacts []savings.Solution
	for _, s := range active {
		if b.impactType(s, row.CategoryKey) != savings.ImpactMinimal {
			impacts = append(impacts, s)
		}
	}
	if len(impacts) == 0 {
		return ""
	}

	local := make(map[string]string, len(b.values)+3)
	for k, val := range b.values {
		local[k] = val
	}
	info := savings.CategoryDetails(row.CategoryKey)
	local["category_current_spend"] = format.Compact(row.CurrentDollars)
	local["category_pct_revenue"] = format.Percent(row.AllocationPercent)
	local["category_vs_benchmark"] = benchmarkPosition(row.AllocationPercent, info)

	parts := []string{}
	if anchor, ok := b.library.Block(categoryKey(row.CategoryKey, v)); ok {
		parts = append(parts, substitute(anchor, local))
	} else {
		b.missing = append(b.missing, categoryKey(row.CategoryKey, v))
	}
	for _, s := range impacts {
		key := impactKey(s, row.CategoryKey)
		if body, ok := b.library.Block(key); ok {
			parts = append(parts, substitute(body, local))
		} else {
			b.missing = append(b.missing, key)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (b *builder) impactType(s savings.Solution, c savings.Category) savings.ImpactType {
	t := b.tables.Impacts[s][c].Type
	if t == "" {
		return savings.ImpactMinimal
	}
	return t
}

func benchmarkPosition(fraction float64, info savings.CategoryInfo) string {
	switch {
	case fraction < info.BenchmarkLow:
		return "below typical range"
	case fraction > info.BenchmarkHigh:
		return "above typical range"
	default:
		return "within typical range"
	}
}

func placeholderValues(in savings.Input, result *savings.Result, opts Options) map[string]string {
	active := in.Solutions.Active()
	names := make([]string, len(active))
	for i, s := range active {
		names[i] = savings.SolutionName(s)
	}

	values := map[string]string{
		"total_savings":      format.Compact(result.TotalSavingsTarget),
		"savings_range_low":  format.Compact(result.TotalSavingsLow),
		"savings_range_high": format.Compact(result.TotalSavingsHigh),
		"opex_reduction_pct": format.Percent(result.TotalCostReductionTarget),
		"num_solutions":      strconv.Itoa(len(active)),
		"selected_solutions": strings.Join(names, ", "),
		"industry":           savings.IndustryName(in.Industry),
		"company_size":       savings.CompanySizeName(result.CompanySize),
		"annual_revenue":     format.Compact(in.Revenue),
		"complexity_level":   string(savings.ComplexityFor(in.Solutions)),
		"risk_tolerance":     savings.RiskToleranceName(in.RiskTolerance),
		"company_name":       opts.CompanyName,
	}
	if opts.CompanyName == "" {
		values["company_name"] = "your organization"
	}
	for k, v := range opts.Values {
		values[k] = v
	}
	return values
}

// substitute replaces {{name}} placeholders. Unknown placeholders are left
// in place.
func substitute(content string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

func breakdownTable(result *savings.Result) string {
	var b strings.Builder
	b.WriteString("| Category | Current Spend | Low | Target | High |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, row := range result.Categories {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Name,
			format.Compact(row.CurrentDollars),
			format.Compact(row.SavingsLow),
			format.Compact(row.SavingsTarget),
			format.Compact(row.SavingsHigh))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** | **%s** |\n",
		format.Compact(result.TotalCurrentOpex),
		format.Compact(result.TotalSavingsLow),
		format.Compact(result.TotalSavingsTarget),
		format.Compact(result.TotalSavingsHigh))
	fmt.Fprintf(&b, "\nProjected OPEX reduction: %s (range %s to %s).",
		format.Percent(result.TotalCostReductionTarget),
		format.Percent(result.TotalCostReductionLow),
		format.Percent(result.TotalCostReductionHigh))
	return b.String()
}
