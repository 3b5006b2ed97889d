package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// currencyNumFmt renders integer amounts with digit grouping and the
// rial currency symbol, matching the warehouse's pricing sheets.
const currencyNumFmt = "#,##0_-[$ريال-fa-IR]"

const sheetName = "Sheet1"

// Writer assembles a table-shaped xlsx artifact: data rows, a header
// row, an optional leading 1-based row-index column, a named banner
// table and per-column currency formatting. Mutators buffer; the file
// is built at Save.
type Writer struct {
	headers      []string
	data         [][]any
	rowIndex     bool
	tableName    string
	currencyCols []int
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddData appends data rows. Rows keep their order in the output.
func (w *Writer) AddData(rows [][]any) {
	w.data = append(w.data, rows...)
}

// AddHeaders sets the header row written above the data.
func (w *Writer) AddHeaders(headers []string) {
	w.headers = headers
}

// AddRowIndexColumn prepends a "Row index" column numbering the data
// rows from 1.
func (w *Writer) AddRowIndexColumn() {
	w.rowIndex = true
}

// MakeTable styles the output as a named banner table with row stripes
// and centered cells.
func (w *Writer) MakeTable(name string) {
	w.tableName = name
}

// SetColumnCurrencyFormat applies the currency number format to the
// given 1-based output column (counting the row-index column when
// present). Header cells are left unformatted.
func (w *Writer) SetColumnCurrencyFormat(col int) {
	w.currencyCols = append(w.currencyCols, col)
}

// Save builds the workbook and writes it to path.
func (w *Writer) Save(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	grid := w.grid()
	for i, row := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("save sheet: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("save sheet: %w", err)
		}
	}

	if err := w.applyTable(f, grid); err != nil {
		return err
	}
	if err := w.applyCurrencyFormats(f, len(grid)); err != nil {
		return err
	}
	if err := w.applyColumnWidths(f, grid); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save sheet %s: %w", path, err)
	}
	return nil
}

// grid materializes headers, row index and data into output rows.
func (w *Writer) grid() [][]any {
	var grid [][]any

	if len(w.headers) > 0 {
		header := make([]any, 0, len(w.headers)+1)
		if w.rowIndex {
			header = append(header, "Row index")
		}
		for _, h := range w.headers {
			header = append(header, h)
		}
		grid = append(grid, header)
	}

	for i, row := range w.data {
		out := make([]any, 0, len(row)+1)
		if w.rowIndex {
			out = append(out, i+1)
		}
		out = append(out, row...)
		grid = append(grid, out)
	}
	return grid
}

func (w *Writer) applyTable(f *excelize.File, grid [][]any) error {
	if w.tableName == "" || len(grid) < 2 {
		return nil
	}
	ref, err := gridRange(grid)
	if err != nil {
		return err
	}

	stripes := true
	if err := f.AddTable(sheetName, &excelize.Table{
		Range:           ref,
		Name:            w.tableName,
		StyleName:       "TableStyleMedium9",
		ShowRowStripes:  &stripes,
		ShowFirstColumn: false,
		ShowLastColumn:  false,
	}); err != nil {
		return fmt.Errorf("add table %s: %w", w.tableName, err)
	}

	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("table style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(maxCols(grid), len(grid))
	if err != nil {
		return fmt.Errorf("table style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, centered); err != nil {
		return fmt.Errorf("table style: %w", err)
	}
	return nil
}

func (w *Writer) applyCurrencyFormats(f *excelize.File, rows int) error {
	if len(w.currencyCols) == 0 || rows < 2 {
		return nil
	}
	numFmt := currencyNumFmt
	style, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("currency style: %w", err)
	}
	for _, col := range w.currencyCols {
		top, err := excelize.CoordinatesToCellName(col, 2)
		if err != nil {
			return fmt.Errorf("currency style: %w", err)
		}
		bottom, err := excelize.CoordinatesToCellName(col, rows)
		if err != nil {
			return fmt.Errorf("currency style: %w", err)
		}
		if err := f.SetCellStyle(sheetName, top, bottom, style); err != nil {
			return fmt.Errorf("currency style: %w", err)
		}
	}
	return nil
}

// applyColumnWidths sizes each column to its longest rendered cell.
func (w *Writer) applyColumnWidths(f *excelize.File, grid [][]any) error {
	for col := 1; col <= maxCols(grid); col++ {
		maxLen := 0
		for _, row := range grid {
			if col-1 >= len(row) {
				continue
			}
			if n := len(fmt.Sprint(row[col-1])); n > maxLen {
				maxLen = n
			}
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("column widths: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(maxLen+2)); err != nil {
			return fmt.Errorf("column widths: %w", err)
		}
	}
	return nil
}

func gridRange(grid [][]any) (string, error) {
	last, err := excelize.CoordinatesToCellName(maxCols(grid), len(grid))
	if err != nil {
		return "", fmt.Errorf("table range: %w", err)
	}
	return "A1:" + last, nil
}

func maxCols(grid [][]any) int {
	maxLen := 0
	for _, row := range grid {
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}
	return maxLen
}
