package sales

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ErrSchemaMismatch is returned when a record does not carry the dataset schema.
var ErrSchemaMismatch = errors.New("record schema does not match the sales schema")

// NewRecord builds a single Arrow record holding txs in order.
// The caller must Release the record.
func NewRecord(mem memory.Allocator, txs []Transaction) arrow.Record {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	b := array.NewRecordBuilder(mem, Schema)
	defer b.Release()
	b.Reserve(len(txs))

	str := func(i int) *array.StringBuilder { return b.Field(i).(*array.StringBuilder) }
	i64 := func(i int) *array.Int64Builder { return b.Field(i).(*array.Int64Builder) }
	dates := b.Field(1).(*array.Date32Builder)

	for _, tx := range txs {
		str(0).Append(tx.ID)
		dates.Append(arrow.Date32FromTime(tx.Date))
		str(2).Append(tx.FirstName)
		str(3).Append(tx.LastName)
		str(4).Append(tx.Gender)
		i64(5).Append(int64(tx.Age))
		str(6).Append(tx.Province)
		str(7).Append(tx.City)
		str(8).Append(tx.Brand)
		str(9).Append(tx.Segment)
		str(10).Append(tx.Category)
		i64(11).Append(int64(tx.Price))
		i64(12).Append(int64(tx.Quantity))
		i64(13).Append(int64(tx.Total))
		str(14).Append(tx.Rating)
		str(15).Append(tx.Returned)
	}

	return b.NewRecord()
}

// FromRecord converts an Arrow record with the dataset schema back into
// transactions. Null cells are reported as errors.
func FromRecord(rec arrow.Record) ([]Transaction, error) {
	if !rec.Schema().Equal(Schema) {
		return nil, ErrSchemaMismatch
	}

	for j := 0; j < int(rec.NumCols()); j++ {
		if n := rec.Column(j).NullN(); n > 0 {
			return nil, fmt.Errorf("column %q has %d null values", rec.ColumnName(j), n)
		}
	}

	str := func(j int) *array.String { return rec.Column(j).(*array.String) }
	i64 := func(j int) *array.Int64 { return rec.Column(j).(*array.Int64) }
	dates := rec.Column(1).(*array.Date32)

	txs := make([]Transaction, rec.NumRows())
	for i := range txs {
		txs[i] = Transaction{
			ID:        str(0).Value(i),
			Date:      dates.Value(i).ToTime(),
			FirstName: str(2).Value(i),
			LastName:  str(3).Value(i),
			Gender:    str(4).Value(i),
			Age:       int(i64(5).Value(i)),
			Province:  str(6).Value(i),
			City:      str(7).Value(i),
			Brand:     str(8).Value(i),
			Segment:   str(9).Value(i),
			Category:  str(10).Value(i),
			Price:     int(i64(11).Value(i)),
			Quantity:  int(i64(12).Value(i)),
			Total:     int(i64(13).Value(i)),
			Rating:    str(14).Value(i),
			Returned:  str(15).Value(i),
		}
	}

	return txs, nil
}
