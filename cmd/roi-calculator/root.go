package main

import (
	"fmt"
	"strings"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix namespaces environment overrides of the persistent flags, e.g.
// ROI_CALCULATOR_LOG_LEVEL.
const envPrefix = "ROI_CALCULATOR"

// rootOptions resolves persistent flags through viper so each one can also be
// set from the environment.
type rootOptions struct {
	v *viper.Viper
}

func (o *rootOptions) configPath() string { return o.v.GetString("config") }
func (o *rootOptions) logLevel() string { return o.v.GetString("log-level") }
func (o *rootOptions) outputFormat() string { return o.v.GetString("output-format") }

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	opts.v.SetEnvPrefix(envPrefix)
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "roi-calculator",
		Short: "Project supply chain savings from operational improvements",
		Long: `roi-calculator projects the operating expense savings a distributor can
expect from a selection of supply chain solutions. Each assessment in the
configuration file is evaluated at conservative, moderate and aggressive
calibrations, producing a savings range and a target for the chosen risk
tolerance.

Without a subcommand the calculate command runs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.String("output-format", "", "output format override: pretty, csv, json")
	for _, name := range []string{"config", "log-level", "output-format"} {
		if err := opts.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(newCalculateCmd(opts), newReportCmd(opts), newServeCmd(opts))
	return root
}

// load reads the configuration file, builds the logger it describes and logs
// any configuration warnings.
func (o *rootOptions) load() (*config.Configuration, *zap.Logger, error) {
	path := o.configPath()
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}

	logger, err := initializeLogger(conf.Logging, o.logLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.load"),
		)
	}
	return conf, logger, nil
}

// computeAssessments runs every active assessment of conf.
func computeAssessments(logger *zap.Logger, conf *config.Configuration) (*savings.Engine, []assessment.Assessment, error) {
	engine, err := assessment.NewEngine(logger, *conf)
	if err != nil {
		return nil, nil, err
	}

	results, err := assessment.GetAssessments(logger, engine, *conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute assessments: %w", err)
	}
	return engine, results, nil
}
