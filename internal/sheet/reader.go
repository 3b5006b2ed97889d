// Package sheet is the tabular I/O boundary: xlsx files in and out.
// Row 0 of any input sheet is a header and is never handed to callers.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Read loads the first worksheet of the xlsx file at path and returns
// its data rows in file order, header row stripped. Cells come back as
// strings; numeric parsing belongs to the caller projecting the rows.
func Read(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("sheet %s has no worksheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}
