package writers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TFMV/salesgen/pkg/core"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
)

// CSVWriter implements a writer for comma-separated files with a header row.
type CSVWriter struct {
	writer *csv.Writer
	out    io.Writer
	file   *os.File
	schema *arrow.Schema
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(config core.WriterConfig) (core.DatasetWriter, error) {
	if config.Output != nil {
		return &CSVWriter{out: config.Output}, nil
	}
	if config.Path == "" {
		return nil, errors.New("path is required for CSV writer")
	}

	// Create (or truncate) file
	file, err := os.Create(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	// We will create the writer when we receive the first record
	// because we need the schema
	return &CSVWriter{
		out:  file,
		file: file,
	}, nil
}

// Write writes a record to the destination. The header is written with the
// first record, so writing an empty record yields a header-only file.
func (w *CSVWriter) Write(ctx context.Context, record arrow.Record) error {
	// Check if context is canceled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// If this is the first record, initialize the writer
	if w.writer == nil {
		w.schema = record.Schema()
		w.writer = csv.NewWriter(w.out, w.schema,
			csv.WithComma(','),
			csv.WithHeader(true),
			csv.WithNullWriter(""),
		)
	}

	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}

// Close flushes buffered rows and closes the file if the writer opened it.
func (w *CSVWriter) Close() error {
	var err error

	// Flush the writer
	if w.writer != nil {
		if flushErr := w.writer.Flush(); flushErr != nil {
			err = fmt.Errorf("failed to flush CSV: %w", flushErr)
		}
	}

	// Close the file
	if w.file != nil {
		if closeErr := w.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		w.file = nil
	}

	return err
}
