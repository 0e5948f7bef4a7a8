package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/TFMV/salesgen/config"
	"github.com/TFMV/salesgen/pkg/core"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/pkg/writers"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// runGenerate writes the dataset to the configured path, then prints the
// confirmation line and a preview table to out.
func runGenerate(ctx context.Context, a *app, out, errOut io.Writer) error {
	cfg := a.cfg.Generator
	path := a.cfg.Output.Path
	runID := uuid.NewString()
	start := time.Now()

	log := a.log.With(zap.String("run_id", runID))
	log.Info("Generating dataset",
		zap.Int("records", cfg.Records),
		zap.Uint64("seed", cfg.Seed),
		zap.String("pricing", cfg.Pricing),
		zap.String("output", path),
	)

	stop := startSpinner(errOut, fmt.Sprintf(" Generating %d transactions...", cfg.Records))
	txs, err := sales.NewGenerator(sales.Options{
		Seed:    cfg.Seed,
		Pricing: cfg.PricingMode(),
	}).Generate(ctx, cfg.Records)
	if err != nil {
		stop()
		return fmt.Errorf("failed to generate dataset: %w", err)
	}

	rec := sales.NewRecord(memory.DefaultAllocator, txs)
	defer rec.Release()

	err = writeDataset(ctx, core.WriterConfig{Type: "csv", Path: path}, rec)
	stop()
	if err != nil {
		log.Error("Failed to save dataset", zap.Error(err))
		return err
	}

	fields := []zap.Field{
		zap.String("output", path),
		zap.Int64("rows", rec.NumRows()),
		zap.Duration("elapsed", time.Since(start)),
	}
	if fi, err := os.Stat(path); err == nil {
		fields = append(fields, zap.String("size", humanize.Bytes(uint64(fi.Size()))))
	}
	log.Info("Dataset saved", fields...)

	fmt.Fprintf(out, "Dataset generated and saved as '%s'.\n", path)

	return writeDataset(ctx, core.WriterConfig{
		Type:    "table",
		Output:  out,
		MaxRows: a.cfg.Output.Preview,
	}, rec)
}

func writeDataset(ctx context.Context, wc core.WriterConfig, rec arrow.Record) error {
	w, err := writers.DefaultFactory.Create(wc)
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", wc.Type, err)
	}
	if err := w.Write(ctx, rec); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", wc.Type, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s writer: %w", wc.Type, err)
	}
	return nil
}

// startSpinner shows progress on w when it is a terminal. The returned
// function stops it.
func startSpinner(w io.Writer, suffix string) func() {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func printConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Fprintln(w, "Configuration is valid")
	_, err = w.Write(data)
	return err
}
