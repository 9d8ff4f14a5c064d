package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/iwvelando/roi-calculator/internal/report"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stdoutDir asks the report command to print instead of writing files.
const stdoutDir = "-"

func newReportCmd(opts *rootOptions) *cobra.Command {
	var outDir string
	var variation int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble a markdown report for every active assessment",
		Long: `Assemble a markdown report for every active assessment. Reports are written
to <dir>/<assessment-name>.md when an output directory is given with --out or
report.outputDir, and printed to stdout otherwise. Pass --out - to print even
when report.outputDir is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, outDir, variation)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default report.outputDir, else stdout)")
	cmd.Flags().IntVar(&variation, "variation", 0, "content variation starting at 1 (default report.variation)")
	return cmd
}

func runReport(cmd *cobra.Command, opts *rootOptions, outDir string, variation int) error {
	if variation < 0 {
		return errors.New("variation must not be negative")
	}

	conf, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	engine, results, err := computeAssessments(logger, conf)
	if err != nil {
		return err
	}

	var library *report.Library
	if conf.Report.BlocksFile != "" {
		if library, err = report.LoadLibrary(conf.Report.BlocksFile); err != nil {
			return err
		}
	}
	assembler := report.NewAssembler(logger, library, engine.Tables())

	if variation == 0 {
		variation = conf.Report.Variation
	}
	if variation <= 0 {
		variation = constants.DefaultReportVariation
	}

	if outDir == "" {
		outDir = conf.Report.OutputDir
	}
	toStdout := outDir == "" || outDir == stdoutDir
	if !toStdout {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", outDir, err)
		}
	}

	names := make([]string, len(results))
	for i, a := range results {
		names[i] = a.Name
	}
	files := reportFileNames(names)

	w := cmd.OutOrStdout()
	for i, a := range results {
		rep := assembler.Assemble(a.Input, a.Result, report.Options{
			CompanyName: conf.Company.Name,
			Variation:   variation,
		})
		if len(rep.Missing) > 0 {
			logger.Warn("report is missing content blocks",
				zap.String("op", "main.runReport"),
				zap.String("assessment", a.Name),
				zap.Strings("missing", rep.Missing),
			)
		}

		if toStdout {
			if i > 0 {
				fmt.Fprint(w, "\n---\n\n")
			}
			fmt.Fprint(w, rep.Markdown())
			continue
		}

		if files[i] != reportFileName(a.Name) {
			logger.Warn("report file name already used by another assessment",
				zap.String("op", "main.runReport"),
				zap.String("assessment", a.Name),
				zap.String("file", files[i]),
			)
		}
		path := filepath.Join(outDir, files[i])
		if err := os.WriteFile(path, []byte(rep.Markdown()), 0644); err != nil {
			return fmt.Errorf("failed to write report for assessment %q: %w", a.Name, err)
		}
		logger.Info("report written",
			zap.String("op", "main.runReport"),
			zap.String("assessment", a.Name),
			zap.String("path", path),
			zap.String("id", rep.ID),
		)
		fmt.Fprintln(w, path)
	}
	return nil
}

// reportFileName turns an assessment name into a file name such as
// "planning-suite.md".
func reportFileName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "assessment"
	}
	return slug + ".md"
}

// reportFileNames maps assessment names to distinct file names. Names that
// slug to a file already taken are numbered, e.g. "pilot-a-2.md".
func reportFileNames(names []string) []string {
	taken := make(map[string]bool, len(names))
	files := make([]string, len(names))
	for i, name := range names {
		file := reportFileName(name)
		base := strings.TrimSuffix(file, ".md")
		for n := 2; taken[file]; n++ {
			file = fmt.Sprintf("%s-%d.md", base, n)
		}
		taken[file] = true
		files[i] = file
	}
	return files
}
