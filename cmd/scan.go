package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"glint/internal/analyzer"
	"glint/internal/config"
	"glint/internal/finding"
	"glint/internal/importer"
	"glint/internal/log"
	"glint/internal/presentation"
	"glint/internal/store"
	"glint/internal/syntax"
)

var (
	scanLanguage string
	scanJSON     bool
	scanNoSave   bool
	scanFailOn   string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Analyze a file and print the findings",
	Long: `Analyze a source file without the TUI and print the findings as a
table or JSON. Without a file argument the default embedded sample is
scanned.

The exit code reflects the worst finding: scan fails when a finding at
or above the --fail-on grade is reported, so it can gate CI pipelines.

Examples:
  # Scan a file with the configured analyzers
  glint scan handler.js

  # Machine-readable output
  glint scan handler.js --json | jq '.findings[].line'

  # Fail the pipeline on anything Medium or worse
  glint scan handler.js --fail-on medium

  # Report only, never fail
  glint scan handler.js --fail-on none`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanLanguage, "language", "l", "",
		"force a language profile instead of detecting one")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false,
		"print the report as JSON")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false,
		"do not record the cycle in the review history")
	scanCmd.Flags().StringVar(&scanFailOn, "fail-on", "high",
		"exit non-zero at this risk grade or above: high, medium, low, none")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	failRank, err := parseFailOn(scanFailOn)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	snip, err := loadScanSource(args)
	if err != nil {
		return err
	}
	language := scanResolveLanguage(registry, snip.Source, snip.Language)

	provider, err := buildTracing(cfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	az, err := buildAnalyzer(cfg, provider.Tracer())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	report, err := az.Analyze(ctx, analyzer.Request{Source: snip.Source, Language: language})
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", snip.Name, err)
	}

	if !scanNoSave {
		saveScanCycle(report, snip.Source, language)
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dto := presentation.FromReport(snip.Name, language, report)
	if scanJSON {
		err = formatter.FormatReportJSON(dto)
	} else {
		err = formatter.FormatReport(dto)
	}
	if err != nil {
		return err
	}

	if failRank > 0 && report.MaxRisk().Rank() >= failRank {
		cmd.SilenceUsage = true
		return fmt.Errorf("findings at or above %s risk", strings.ToLower(scanFailOn))
	}
	return nil
}

// loadScanSource reads the file argument, or the default embedded sample
// when none is given.
func loadScanSource(args []string) (importer.Snippet, error) {
	ctx := context.Background()
	if len(args) == 0 {
		samples := importer.SampleImporter{}
		return samples.Import(ctx, importer.DefaultSample)
	}
	files := importer.FileImporter{MaxBytes: importer.DefaultMaxBytes}
	return files.Import(ctx, args[0])
}

// scanResolveLanguage picks the profile id: the scan flag, then the
// configured language, then the importer's file-name hint, then content
// detection.
func scanResolveLanguage(registry *syntax.Registry, source, hint string) string {
	for _, candidate := range []string{scanLanguage, cfg.Language, hint} {
		if candidate == "" {
			continue
		}
		if _, ok := registry.Get(candidate); ok {
			return candidate
		}
		log.Warn(log.CatConfig, "Requested language has no profile", "language", candidate)
	}
	return syntax.NewHeuristicDetector(registry).Detect(source)
}

// saveScanCycle records the cycle in the history store unless the digest
// is already present. Store trouble only logs; the scan output and exit
// code are unaffected.
func saveScanCycle(report *analyzer.Report, source, language string) {
	db, repo := openStore(cfg)
	if repo == nil {
		return
	}
	defer func() { _ = db.Close() }()

	digest := analyzer.Digest(language + "\x00" + source)
	if _, err := repo.FindByDigest(digest); err == nil {
		return
	} else if !errors.Is(err, store.ErrCycleNotFound) {
		log.ErrorErr(log.CatStore, "Failed to check for existing cycle", err)
		return
	}

	cycle := &store.Cycle{
		Digest:   digest,
		Language: language,
		Analyzer: report.Analyzer,
		Summary:  report.Summary,
		Source:   source,
		Findings: report.Findings,
		MaxRisk:  report.MaxRisk(),
	}
	if err := repo.Save(cycle); err != nil {
		log.ErrorErr(log.CatStore, "Failed to save review cycle", err)
	}
}

// parseFailOn maps the --fail-on flag to a minimum failing rank. Zero
// means never fail.
func parseFailOn(s string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return 0, nil
	}
	risk, ok := finding.ParseRisk(s)
	if !ok {
		return 0, fmt.Errorf("--fail-on must be high, medium, low, or none, got %q", s)
	}
	return risk.Rank(), nil
}
