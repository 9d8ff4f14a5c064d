package main

import (
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/output"
	"github.com/iwvelando/roi-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCalculateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate",
		Short: "Print the savings projection of every active assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, opts)
		},
	}
}

func runCalculate(cmd *cobra.Command, opts *rootOptions) error {
	conf, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if override := opts.outputFormat(); override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	_, results, err := computeAssessments(logger, conf)
	if err != nil {
		return err
	}

	logger.Debug("writing results",
		zap.String("op", "main.runCalculate"),
		zap.String("format", outputFormat),
		zap.Int("assessments", len(results)),
	)
	return output.Write(cmd.OutOrStdout(), outputFormat, results)
}
