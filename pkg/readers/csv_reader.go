// Package readers provides dataset readers used to load generated files back as Arrow records.
package readers

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/TFMV/salesgen/pkg/core"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ErrHeaderMismatch is returned when a file's header row differs from the
// expected schema's field names.
var ErrHeaderMismatch = errors.New("CSV header does not match schema")

// CSVReader implements a reader for CSV files, converting to Arrow.
type CSVReader struct {
	schema *arrow.Schema
	file   *os.File
	reader *csv.Reader
	alloc  memory.Allocator
}

// NewCSVReader creates a new CSV reader. When config.Schema is set the
// header row is checked against it and columns are parsed with its types;
// otherwise types are inferred.
func NewCSVReader(config core.ReaderConfig) (core.DatasetReader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for CSV reader")
	}

	// Open the file
	file, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	// Set default chunk size if not specified
	chunkSize := config.BatchSize
	if chunkSize <= 0 {
		chunkSize = 10000 // Default chunk size
	}

	alloc := memory.NewGoAllocator()
	r := &CSVReader{
		schema: config.Schema,
		file:   file,
		alloc:  alloc,
	}

	if config.Schema == nil {
		r.reader = csv.NewInferringReader(
			file,
			csv.WithChunk(int(chunkSize)),
			csv.WithHeader(true),
			csv.WithNullReader(true, ""), // Empty string is treated as null
			csv.WithAllocator(alloc),
		)
		return r, nil
	}

	br := bufio.NewReader(file)
	if err := checkHeader(br, config.Schema); err != nil {
		file.Close()
		return nil, err
	}
	r.reader = csv.NewReader(
		br,
		config.Schema,
		csv.WithChunk(int(chunkSize)),
		csv.WithHeader(false),
		csv.WithAllocator(alloc),
	)

	return r, nil
}

// checkHeader consumes the header line and compares it with the schema.
func checkHeader(br *bufio.Reader, schema *arrow.Schema) error {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	got, err := stdcsv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return fmt.Errorf("failed to parse CSV header: %w", err)
	}

	want := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		want[i] = f.Name
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: got %d columns %q", ErrHeaderMismatch, len(got), got)
	}
	return nil
}

// Read returns the next batch of records. The caller must Release it.
func (r *CSVReader) Read(ctx context.Context) (arrow.Record, error) {
	// Check if context is canceled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !r.reader.Next() {
		if err := r.reader.Err(); err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		return nil, io.EOF
	}
	// a parse failure still yields a batch, with nulls in the failed cells
	if err := r.reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	// Get the schema (only on first read)
	if r.schema == nil {
		r.schema = r.reader.Schema()
	}

	record := r.reader.Record()
	record.Retain()
	return record, nil
}

// ReadAll loads the remaining rows into a single record.
// A header-only file with a known schema yields an empty record.
func (r *CSVReader) ReadAll(ctx context.Context) (arrow.Record, error) {
	var batches []arrow.Record
	defer func() {
		for _, rec := range batches {
			rec.Release()
		}
	}()

	for {
		rec, err := r.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		batches = append(batches, rec)
	}

	switch {
	case len(batches) == 0 && r.schema == nil:
		return nil, io.EOF
	case len(batches) == 0:
		b := array.NewRecordBuilder(r.alloc, r.schema)
		defer b.Release()
		return b.NewRecord(), nil
	case len(batches) == 1:
		batches[0].Retain()
		return batches[0], nil
	}

	// Combine the batches column by column
	cols := make([]arrow.Array, r.schema.NumFields())
	defer func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}()

	var rows int64
	for _, rec := range batches {
		rows += rec.NumRows()
	}
	for j := range cols {
		chunks := make([]arrow.Array, len(batches))
		for i, rec := range batches {
			chunks[i] = rec.Column(j)
		}
		col, err := array.Concatenate(chunks, r.alloc)
		if err != nil {
			return nil, fmt.Errorf("failed to combine column %q: %w", r.schema.Field(j).Name, err)
		}
		cols[j] = col
	}

	return array.NewRecord(r.schema, cols, rows), nil
}

// Schema returns the schema of the dataset. For inferring readers it is
// nil until the first batch has been read.
func (r *CSVReader) Schema() *arrow.Schema {
	return r.schema
}

// Close closes the reader and releases resources.
func (r *CSVReader) Close() error {
	// Release the reader
	if r.reader != nil {
		r.reader.Release()
		r.reader = nil
	}

	// Close the file
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}

	return nil
}
