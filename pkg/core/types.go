// Package core provides the core types and interfaces shared by the dataset readers and writers.
package core

import (
	"context"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
)

// DatasetReader defines an interface for reading a dataset back as Arrow records.
type DatasetReader interface {
	// Read returns a record batch and an error if any.
	// Returns io.EOF when there are no more batches.
	Read(ctx context.Context) (arrow.Record, error)

	// ReadAll loads the remaining batches into a single record.
	ReadAll(ctx context.Context) (arrow.Record, error)

	// Schema returns the schema of the dataset.
	Schema() *arrow.Schema

	// Close closes the reader and releases resources.
	Close() error
}

// DatasetWriter defines an interface for writing data to various destinations.
type DatasetWriter interface {
	// Write writes a record to the destination.
	Write(ctx context.Context, record arrow.Record) error

	// Close closes the writer and flushes any pending data.
	Close() error
}

// ReaderConfig provides configuration for creating a reader.
type ReaderConfig struct {
	// Type is the type of the reader.
	Type string

	// Path is the path to the file.
	Path string

	// Schema, when set, is enforced instead of inferring column types.
	Schema *arrow.Schema

	// BatchSize is the size of batches to read.
	BatchSize int64
}

// WriterConfig provides configuration for creating a writer.
type WriterConfig struct {
	// Type is the type of the writer.
	Type string

	// Path is the path to the output file. Existing files are overwritten.
	Path string

	// Output is used instead of Path when set. The writer does not close it.
	Output io.Writer

	// MaxRows limits how many rows a display writer prints before
	// truncating. Zero means the writer's default.
	MaxRows int
}
