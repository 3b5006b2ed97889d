package batch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/wman/internal/model"
)

// ProductColumns maps product-field roles to 1-based sheet columns.
// Zero means the role is not mapped and the projected field stays
// unset.
type ProductColumns struct {
	Code          int
	Description   int
	Brand         int
	Price         int
	CountInCarton int
	Count         int
}

// LineColumns maps order-line roles to 1-based sheet columns. Zero
// means the role is not mapped.
type LineColumns struct {
	Code  int
	Count int
}

// LineInput is a projected order-line row. Count is nil when the count
// role was unmapped or the cell was empty.
type LineInput struct {
	Code  string
	Count *int
}

// ProjectProduct projects a sheet row into a product input using the
// configured column roles. Unmapped roles and empty cells yield unset
// fields.
func ProjectProduct(row []string, cols ProductColumns) (model.ProductInput, error) {
	var in model.ProductInput
	if v, ok := cell(row, cols.Code); ok {
		in.Code = v
	}
	if v, ok := cell(row, cols.Description); ok {
		in.Description = &v
	}
	if v, ok := cell(row, cols.Brand); ok {
		in.Brand = &v
	}
	if v, ok := cell(row, cols.Price); ok {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("column %d: price %q is not a number", cols.Price, v)
		}
		in.Price = &price
	}
	if v, ok := cell(row, cols.CountInCarton); ok {
		cic, err := strconv.Atoi(v)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("column %d: count in carton %q is not a number", cols.CountInCarton, v)
		}
		in.CountInCarton = &cic
	}
	if v, ok := cell(row, cols.Count); ok {
		count, err := strconv.Atoi(v)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("column %d: count %q is not a number", cols.Count, v)
		}
		in.Count = &count
	}
	return in, nil
}

// ProjectLine projects a sheet row into an order-line input using the
// configured column roles.
func ProjectLine(row []string, cols LineColumns) (LineInput, error) {
	var in LineInput
	if v, ok := cell(row, cols.Code); ok {
		in.Code = v
	}
	if v, ok := cell(row, cols.Count); ok {
		count, err := strconv.Atoi(v)
		if err != nil {
			return LineInput{}, fmt.Errorf("column %d: count %q is not a number", cols.Count, v)
		}
		in.Count = &count
	}
	return in, nil
}

// cell returns the trimmed value of the 1-based column, or ok=false
// when the role is unmapped, the row is short, or the cell is empty.
func cell(row []string, col int) (string, bool) {
	if col <= 0 || col > len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[col-1])
	if v == "" {
		return "", false
	}
	return v, true
}
