package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/store"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func strptr(s string) *string { return &s }
func i64ptr(n int64) *int64   { return &n }
func intptr(n int) *int       { return &n }

func TestAdd_IgnoresInputCount(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	err := l.Add(ctx, model.ProductInput{
		Code:        "P001",
		Description: strptr("Widget"),
		Brand:       strptr("BrandA"),
		Price:       i64ptr(1000),
		Count:       intptr(50),
	})
	require.NoError(t, err)

	p, err := l.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Count, "new product must start with zero stock")
	assert.Equal(t, "Widget", p.Description)
}

func TestAddCount_ThenReduce_RoundTrips(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, model.ProductInput{Code: "P001"}))

	require.NoError(t, l.AddCount(ctx, "P001", 10))
	p, err := l.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Count)

	require.NoError(t, l.ReduceCount(ctx, "P001", 10))
	p, err = l.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Count)
}

func TestAddCount_RejectsNonPositive(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, model.ProductInput{Code: "P001"}))

	assert.True(t, model.IsInvalidAmount(l.AddCount(ctx, "P001", 0)))
	assert.True(t, model.IsInvalidAmount(l.AddCount(ctx, "P001", -5)))
	assert.True(t, model.IsInvalidAmount(l.ReduceCount(ctx, "P001", -5)))
}

func TestAddCount_UnknownProduct(t *testing.T) {
	l := testLedger(t)

	err := l.AddCount(context.Background(), "missing", 5)
	assert.True(t, model.IsNotFound(err))
}

func TestReduceCount_InsufficientStock(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, model.ProductInput{Code: "P001"}))
	require.NoError(t, l.AddCount(ctx, "P001", 3))

	err := l.ReduceCount(ctx, "P001", 4)
	assert.True(t, model.IsInsufficientStock(err))

	p, err := l.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Count, "failed reduction must not partially apply")
}

func TestRemove_MissingProduct(t *testing.T) {
	l := testLedger(t)

	err := l.Remove(context.Background(), "missing")
	assert.True(t, model.IsNotFound(err), "removal of a missing product is rejected, never a silent no-op")
}

func TestGetMany_FailsOnAnyMiss(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, model.ProductInput{Code: "P001"}))

	_, err := l.GetMany(ctx, []string{"P001", "P404"})
	assert.True(t, model.IsNotFound(err))

	products, err := l.GetMany(ctx, []string{"P001"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "P001", products[0].Code)
}

func TestGetFiltered_CombinesWithAnd(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	add := func(code, brand string, price int64) {
		require.NoError(t, l.Add(ctx, model.ProductInput{
			Code:  code,
			Brand: strptr(brand),
			Price: i64ptr(price),
		}))
	}
	add("P001", "BrandA", 1500)
	add("P002", "BrandA", 500)
	add("P003", "BrandB", 2000)

	products, err := l.GetFiltered(ctx, model.ProductFilter{
		MinPrice: i64ptr(1000),
		Brand:    strptr("BrandA"),
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "P001", products[0].Code)

	// Absent filters are no-ops
	all, err := l.GetFiltered(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
