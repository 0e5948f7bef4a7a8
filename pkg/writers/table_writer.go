package writers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TFMV/salesgen/pkg/core"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/mattn/go-runewidth"
)

const (
	// DefaultMaxRows is the row count above which the table is truncated.
	DefaultMaxRows = 60

	// rows kept at each end of a truncated table
	edgeRows = 5

	columnGap = "  "
	ellipsis  = "..."
)

// TableWriter renders records as an aligned text table with a row index.
// Tables longer than MaxRows show only their first and last rows.
type TableWriter struct {
	out     io.Writer
	file    *os.File
	maxRows int
	columns []string
	rows    [][]string
}

// NewTableWriter creates a new table writer. Without an Output or Path it
// writes to stdout.
func NewTableWriter(config core.WriterConfig) (core.DatasetWriter, error) {
	w := &TableWriter{
		out:     config.Output,
		maxRows: config.MaxRows,
	}
	if w.maxRows <= 0 {
		w.maxRows = DefaultMaxRows
	}

	switch {
	case w.out != nil:
	case config.Path != "":
		file, err := os.Create(config.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create table file: %w", err)
		}
		w.out = file
		w.file = file
	default:
		w.out = os.Stdout
	}

	return w, nil
}

// Write buffers the formatted cells of a record. Rendering happens on Close,
// once the total row count is known.
func (w *TableWriter) Write(ctx context.Context, record arrow.Record) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.columns == nil {
		for _, f := range record.Schema().Fields() {
			w.columns = append(w.columns, f.Name)
		}
	} else if len(w.columns) != int(record.NumCols()) {
		return errors.New("record column count differs from previous records")
	}

	numRows := int(record.NumRows())
	numCols := int(record.NumCols())
	for i := 0; i < numRows; i++ {
		row := make([]string, numCols)
		for j := 0; j < numCols; j++ {
			row[j] = formatCell(record.Column(j), i)
		}
		w.rows = append(w.rows, row)
	}

	return nil
}

// formatCell renders one value the way it appears in the CSV output.
func formatCell(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return "NaN"
	}

	switch col := col.(type) {
	case *array.String:
		return col.Value(i)
	case *array.Int64:
		return strconv.FormatInt(col.Value(i), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(col.Value(i)), 10)
	case *array.Float64:
		return strconv.FormatFloat(col.Value(i), 'f', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(col.Value(i))
	case *array.Date32:
		return col.Value(i).FormattedString()
	default:
		return col.ValueStr(i)
	}
}

// Close renders the buffered table and closes the file if the writer opened it.
func (w *TableWriter) Close() error {
	err := w.render()

	if w.file != nil {
		if closeErr := w.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		w.file = nil
	}

	return err
}

func (w *TableWriter) render() error {
	if w.columns == nil {
		return nil
	}
	if len(w.rows) == 0 {
		_, err := fmt.Fprintf(w.out, "Empty table\nColumns: [%s]\nIndex: []\n", strings.Join(w.columns, ", "))
		return err
	}

	truncated := len(w.rows) > w.maxRows

	// index labels and the row slice that is actually shown
	type line struct {
		index string
		cells []string
	}
	var lines []line
	appendRows := func(from, to int) {
		for i := from; i < to; i++ {
			lines = append(lines, line{index: strconv.Itoa(i), cells: w.rows[i]})
		}
	}
	if truncated {
		appendRows(0, edgeRows)
		dots := make([]string, len(w.columns))
		for j := range dots {
			dots[j] = ellipsis
		}
		lines = append(lines, line{index: ellipsis, cells: dots})
		appendRows(len(w.rows)-edgeRows, len(w.rows))
	} else {
		appendRows(0, len(w.rows))
	}

	indexWidth := 0
	widths := make([]int, len(w.columns))
	for j, name := range w.columns {
		widths[j] = runewidth.StringWidth(name)
	}
	for _, l := range lines {
		indexWidth = max(indexWidth, runewidth.StringWidth(l.index))
		for j, cell := range l.cells {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	bw := bufio.NewWriter(w.out)
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", indexWidth))
	for j, name := range w.columns {
		sb.WriteString(columnGap)
		sb.WriteString(runewidth.FillLeft(name, widths[j]))
	}
	fmt.Fprintln(bw, sb.String())

	for _, l := range lines {
		sb.Reset()
		sb.WriteString(runewidth.FillRight(l.index, indexWidth))
		for j, cell := range l.cells {
			sb.WriteString(columnGap)
			sb.WriteString(runewidth.FillLeft(cell, widths[j]))
		}
		fmt.Fprintln(bw, sb.String())
	}

	if truncated {
		fmt.Fprintf(bw, "\n[%d rows x %d columns]\n", len(w.rows), len(w.columns))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
