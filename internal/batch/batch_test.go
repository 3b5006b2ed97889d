package batch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wman/internal/model"
)

func TestApply_OneInvocationPerRowInOrder(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	var seen []string

	a := &Applier{}
	res, err := a.Apply(rows, func(row []string) error {
		seen = append(seen, row[0])
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, 3, res.Applied)
	assert.Empty(t, res.Failed)
}

func TestApply_FailFastAbortsRemainingRows(t *testing.T) {
	rows := [][]string{{"ok"}, {"boom"}, {"never"}}
	var seen []string

	a := &Applier{}
	_, err := a.Apply(rows, func(row []string) error {
		seen = append(seen, row[0])
		if row[0] == "boom" {
			return model.NewNotFound("product", "boom")
		}
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, []string{"ok", "boom"}, seen, "rows after the failure must not run")

	var rowErr RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Row, "row numbers count the skipped header")
	assert.True(t, model.IsNotFound(err), "domain error must survive wrapping")
}

func TestApply_ContinueOnErrorCollects(t *testing.T) {
	rows := [][]string{{"ok"}, {"boom"}, {"ok"}}

	a := &Applier{ContinueOnError: true}
	res, err := a.Apply(rows, func(row []string) error {
		if row[0] == "boom" {
			return fmt.Errorf("bad row")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Applied)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].Row)
}

func TestApply_EmptyInput(t *testing.T) {
	a := &Applier{}
	res, err := a.Apply(nil, func([]string) error {
		t.Fatal("callback must not run for an empty batch")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Applied)
}

func TestProjectProduct_MappedRoles(t *testing.T) {
	row := []string{"P001", "12", "Product 1", "1000", "", "", "BrandA"}
	in, err := ProjectProduct(row, ProductColumns{
		Code:          1,
		CountInCarton: 2,
		Description:   3,
		Price:         4,
		Brand:         7,
	})
	require.NoError(t, err)

	assert.Equal(t, "P001", in.Code)
	require.NotNil(t, in.Description)
	assert.Equal(t, "Product 1", *in.Description)
	require.NotNil(t, in.Brand)
	assert.Equal(t, "BrandA", *in.Brand)
	require.NotNil(t, in.Price)
	assert.Equal(t, int64(1000), *in.Price)
	require.NotNil(t, in.CountInCarton)
	assert.Equal(t, 12, *in.CountInCarton)
	assert.Nil(t, in.Count, "unmapped role yields an unset field")
}

func TestProjectProduct_UnmappedAndEmptyCells(t *testing.T) {
	in, err := ProjectProduct([]string{"P001", "  "}, ProductColumns{Code: 1, Brand: 2, Price: 9})
	require.NoError(t, err)

	assert.Equal(t, "P001", in.Code)
	assert.Nil(t, in.Brand, "blank cell yields an unset field")
	assert.Nil(t, in.Price, "column beyond the row yields an unset field")
}

func TestProjectProduct_BadNumber(t *testing.T) {
	_, err := ProjectProduct([]string{"P001", "cheap"}, ProductColumns{Code: 1, Price: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cheap")
}

func TestProjectLine(t *testing.T) {
	in, err := ProjectLine([]string{"P001", "4"}, LineColumns{Code: 1, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "P001", in.Code)
	require.NotNil(t, in.Count)
	assert.Equal(t, 4, *in.Count)

	// Remove-style mapping: only the code role is configured
	in, err = ProjectLine([]string{"P001", "4"}, LineColumns{Code: 1})
	require.NoError(t, err)
	assert.Nil(t, in.Count)
}
