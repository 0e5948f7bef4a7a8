// Package sales synthesizes retail clothing-sales transactions.
package sales

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// Returned flag values.
const (
	Yes = "Yes"
	No  = "No"
)

// DateLayout is the calendar-date layout used in the dataset.
const DateLayout = "2006-01-02"

// Column names, in output order.
const (
	ColTransactionID = "Transaction ID"
	ColDate          = "Transaction Date"
	ColFirstName     = "Customer First Name"
	ColLastName      = "Customer Last Name"
	ColGender        = "Gender"
	ColAge           = "Age"
	ColProvince      = "Province"
	ColCity          = "City"
	ColBrand         = "Brand"
	ColSegment       = "Segment"
	ColCategory      = "Brand Category"
	ColPrice         = "Price"
	ColQuantity      = "Qty Item"
	ColTotal         = "Total Amount"
	ColRating        = "Rating"
	ColReturned      = "Returned"
)

// Transaction is one purchase row.
type Transaction struct {
	ID        string
	Date      time.Time
	FirstName string
	LastName  string
	Gender    string
	Age       int
	Province  string
	City      string
	Brand     string
	Segment   string
	Category  string
	Price     int
	Quantity  int
	Total     int
	Rating    string
	Returned  string
}

// Schema is the Arrow schema of the dataset. Field order is the column order
// of every serialized form.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: ColTransactionID, Type: arrow.BinaryTypes.String},
	{Name: ColDate, Type: arrow.FixedWidthTypes.Date32},
	{Name: ColFirstName, Type: arrow.BinaryTypes.String},
	{Name: ColLastName, Type: arrow.BinaryTypes.String},
	{Name: ColGender, Type: arrow.BinaryTypes.String},
	{Name: ColAge, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColProvince, Type: arrow.BinaryTypes.String},
	{Name: ColCity, Type: arrow.BinaryTypes.String},
	{Name: ColBrand, Type: arrow.BinaryTypes.String},
	{Name: ColSegment, Type: arrow.BinaryTypes.String},
	{Name: ColCategory, Type: arrow.BinaryTypes.String},
	{Name: ColPrice, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColQuantity, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColTotal, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColRating, Type: arrow.BinaryTypes.String},
	{Name: ColReturned, Type: arrow.BinaryTypes.String},
}, nil)

// Columns returns the column names in output order.
func Columns() []string {
	cols := make([]string, Schema.NumFields())
	for i, f := range Schema.Fields() {
		cols[i] = f.Name
	}
	return cols
}
