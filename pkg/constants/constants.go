// Package constants provides shared constants for the roi-calculator application.
package constants

// Savings model constants
const (
	// ReferenceImpact is the "typical 10% improvement" that correlation
	// coefficients are expressed against when computing spillover.
	ReferenceImpact = 0.10

	// SpilloverThreshold is the minimum absolute direct impact a category needs
	// before it propagates spillover to correlated categories.
	SpilloverThreshold = 0.001

	// SpilloverCapRatio caps spillover into a category at this share of the
	// category's own positive direct impact.
	SpilloverCapRatio = 0.5

	// CompoundMinSolutions is the number of active solutions at which the
	// compound discount starts to apply.
	CompoundMinSolutions = 2

	// IndustryMultiplierMin is the lower clamp for industry multipliers
	IndustryMultiplierMin = 0.85

	// IndustryMultiplierMax is the upper clamp for industry multipliers
	IndustryMultiplierMax = 1.15
)

// Company size revenue thresholds in dollars.
const (
	// MidMarketRevenueThreshold is the revenue at which a company stops being Small
	MidMarketRevenueThreshold = 50_000_000.0

	// EnterpriseRevenueThreshold is the revenue at which a company becomes Enterprise
	EnterpriseRevenueThreshold = 500_000_000.0
)

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)

// Report defaults
const (
	// DefaultReportVariation is the block variation used when none is requested
	DefaultReportVariation = 1
)
