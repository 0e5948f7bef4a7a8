package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/TFMV/salesgen/metrics"
	"github.com/TFMV/salesgen/pkg/audit"
	"github.com/TFMV/salesgen/pkg/core"
	"github.com/TFMV/salesgen/pkg/readers"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrAuditFailed is returned by verify when the dataset breaks an invariant.
var ErrAuditFailed = errors.New("dataset failed audit")

// VerifyOptions represents the options for the verify command.
type VerifyOptions struct {
	Path         string
	Format       string
	ReportPath   string
	SummaryPath  string
	BaselinePath string
	Expect       int
	BatchSize    int64
}

func newVerifyCommand(a *app) *cobra.Command {
	options := &VerifyOptions{
		Format:    "text",
		Expect:    -1,
		BatchSize: 4096,
	}

	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Audit a generated dataset",
		Long: `The verify command reads a generated CSV file back with the fixed
column schema and checks every row against the dataset invariants: totals,
locations, categories, returns, transaction IDs, ages, quantities, years and
price tiers. It prints a summary and exits non-zero on any violation.

With --baseline it also compares the dataset summary against the summary of
a JSON report saved earlier with --format json --report, and fails on any
difference. --summary writes the dataset summary alone as JSON.

FILE defaults to the configured output path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Path = a.cfg.Output.Path
			if len(args) == 1 {
				options.Path = args[0]
			}

			gen, err := report.NewGenerator(options.Format)
			if err != nil {
				return err
			}

			r, err := runVerify(cmd, a, options)
			if err != nil {
				return err
			}

			if options.SummaryPath != "" {
				var store metrics.Store = &metrics.JSONStore{FilePath: options.SummaryPath}
				if err := store.SaveWithContext(cmd.Context(), r.Summary); err != nil {
					return fmt.Errorf("failed to save summary: %w", err)
				}
			}

			if options.ReportPath != "" {
				if err := gen.SaveReportToFile(r, options.ReportPath); err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
			} else {
				data, err := gen.GenerateReport(r)
				if err != nil {
					return fmt.Errorf("failed to render report: %w", err)
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}

			if !r.Passed() {
				return fmt.Errorf("%w: %d violation(s) in %s", ErrAuditFailed, r.Audit.TotalViolations(), options.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&options.Format, "format", "f", options.Format, "Report format (text, json, html)")
	cmd.Flags().StringVar(&options.ReportPath, "report", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&options.SummaryPath, "summary", "", "Write the dataset summary as JSON to this file")
	cmd.Flags().StringVar(&options.BaselinePath, "baseline", "", "Compare against the summary of a saved JSON report")
	cmd.Flags().IntVar(&options.Expect, "expect", options.Expect, "Expected number of rows (-1 skips the check)")
	cmd.Flags().Int64VarP(&options.BatchSize, "batch-size", "b", options.BatchSize, "Rows read per batch")

	return cmd
}

func runVerify(cmd *cobra.Command, a *app, options *VerifyOptions) (report.Report, error) {
	ctx := cmd.Context()
	start := time.Now()

	reader, err := readers.NewCSVReader(core.ReaderConfig{
		Type:      "csv",
		Path:      options.Path,
		Schema:    sales.Schema,
		BatchSize: options.BatchSize,
	})
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer reader.Close()

	rec, err := reader.ReadAll(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	defer rec.Release()

	txs, err := sales.FromRecord(rec)
	if err != nil {
		return report.Report{}, err
	}

	result := audit.NewDatasetAuditor(a.cfg.Generator.PricingMode()).Audit(txs)
	if options.Expect >= 0 && len(txs) != options.Expect {
		result.AddDatasetViolation("RowCountRule",
			fmt.Sprintf("%d rows, want %d", len(txs), options.Expect))
	}

	summary := metrics.Summarize(txs)
	if options.BaselinePath != "" {
		baseline, err := report.ReportFromFilePath(options.BaselinePath)
		if err != nil {
			return report.Report{}, fmt.Errorf("failed to load baseline report: %w", err)
		}
		for _, diff := range summary.Diff(baseline.Summary) {
			result.AddDatasetViolation("BaselineRule", diff)
		}
	}

	a.log.Info("Verified dataset",
		zap.String("path", options.Path),
		zap.Int("rows", len(txs)),
		zap.Bool("valid", result.Valid),
		zap.Int("violations", result.TotalViolations()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return report.Report{
		Source:      options.Path,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Audit:       result,
	}, nil
}
