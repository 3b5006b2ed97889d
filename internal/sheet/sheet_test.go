package sheet

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := NewWriter()
	w.AddData([][]any{
		{"P001", "Product 1", "BrandA", 10, 1000},
		{"P002", "Product 2", "BrandB", 20, 2500},
	})
	w.AddHeaders([]string{"Code", "Description", "Brand", "CIC", "Price"})
	w.AddRowIndexColumn()
	w.MakeTable("Pricelist")
	w.SetColumnCurrencyFormat(6)
	require.NoError(t, w.Save(path))

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header row must be stripped")

	// Leading synthetic row index, then the original fields, in order
	assert.Equal(t, []string{"1", "P001", "Product 1", "BrandA", "10", "1000"}, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "P002", rows[1][1])
}

func TestWriter_TableAndHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := NewWriter()
	w.AddData([][]any{{"P001", 1000}})
	w.AddHeaders([]string{"Code", "Price"})
	w.MakeTable("Pricelist")
	require.NoError(t, w.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Code", "Price"}, rows[0])

	tables, err := f.GetTables(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Pricelist", tables[0].Name)
	assert.Equal(t, "A1:B2", tables[0].Range)
}

func TestWriter_NoDataNoTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := NewWriter()
	w.AddHeaders([]string{"Code", "Price"})
	w.MakeTable("Pricelist")
	require.NoError(t, w.Save(path))

	rows, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestRead_PreservesRowOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := NewWriter()
	data := make([][]any, 0, 20)
	for i := 1; i <= 20; i++ {
		data = append(data, []any{i})
	}
	w.AddData(data)
	w.AddHeaders([]string{"N"})
	require.NoError(t, w.Save(path))

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 20)
	for i, row := range rows {
		assert.Equal(t, []string{strconv.Itoa(i + 1)}, row)
	}
}
