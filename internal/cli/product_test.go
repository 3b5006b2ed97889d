package cli

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wman/internal/model"
)

func TestProductAddAndList(t *testing.T) {
	db := testDB(t)

	out, err := runCLI(t, "--db", db, "product", "add",
		"--code", "P1", "--description", "Blue paint", "--brand", "Acme",
		"--price", "1000", "--count-in-carton", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Product P1 was added")

	_, err = runCLI(t, "--db", db, "product", "add", "--code", "P2", "--price", "2500")
	require.NoError(t, err)

	out, err = runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "Blue paint")
	assert.Contains(t, out, "P2")
}

func TestProductListJSON(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "product", "add",
		"--code", "P1", "--description", "Blue paint", "--brand", "Acme",
		"--price", "1000", "--count-in-carton", "12")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "product", "add", "--code", "P2", "--price", "2500")
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "--format", "json", "product", "list")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "product_list", []byte(out))
}

func TestProductAddRequiresCode(t *testing.T) {
	_, err := runCLI(t, "--db", testDB(t), "product", "add", "--price", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code")
}

func TestProductAddDuplicate(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P1")
	require.NoError(t, err)

	_, err = runCLI(t, "--db", db, "product", "add", "--code", "P1")
	require.Error(t, err)
	assert.True(t, model.IsDuplicateKey(err))
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestProductUpdatePartial(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "product", "add",
		"--code", "P1", "--description", "Blue paint", "--brand", "Acme", "--price", "1000")
	require.NoError(t, err)

	_, err = runCLI(t, "--db", db, "product", "update", "--code", "P1", "--price", "1200")
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue paint", "untouched fields survive a partial update")
	assert.Contains(t, out, "1,200")
}

func TestProductUpdateMissing(t *testing.T) {
	_, err := runCLI(t, "--db", testDB(t), "product", "update", "--code", "NOPE", "--price", "5")
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))
}

func TestProductRemove(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P1")
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "product", "remove", "P1")
	require.NoError(t, err)
	assert.Contains(t, out, "Product P1 was removed")

	_, err = runCLI(t, "--db", db, "product", "remove", "P1")
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))
}

func TestProductRemoveIdempotent(t *testing.T) {
	db := testDB(t)

	out, err := runCLI(t, "--db", db, "product", "remove", "--idempotent", "GHOST")
	require.NoError(t, err)
	assert.Contains(t, out, "already absent")
}

func TestProductRemoveInUse(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P1")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "availability", "add", "P1", "5")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "customer", "create", "Acme Retail")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "order", "create", "Acme Retail")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "order", "add", "1", "P1", "2")
	require.NoError(t, err)

	_, err = runCLI(t, "--db", db, "product", "remove", "P1")
	require.Error(t, err)
	assert.True(t, model.IsProductInUse(err))

	// Releasing the line unblocks removal.
	_, err = runCLI(t, "--db", db, "order", "remove", "1", "P1")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "product", "remove", "P1")
	require.NoError(t, err)
}

func TestProductAddBatch(t *testing.T) {
	db := testDB(t)
	file := filepath.Join(t.TempDir(), "products.xlsx")
	writeSheet(t, file, [][]any{
		{"Code", "Description", "Brand", "CIC", "Price"},
		{"P1", "Blue paint", "Acme", 12, 1000},
		{"P2", "Red paint", "Acme", 6, 2500},
	})

	out, err := runCLI(t, "--db", db, "product", "add-batch", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 of 2 rows")

	out, err = runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue paint")
	assert.Contains(t, out, "Red paint")
}

func TestProductAddBatchFailFast(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P2")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "products.xlsx")
	writeSheet(t, file, [][]any{
		{"Code"},
		{"P1"},
		{"P2"}, // duplicate, aborts the batch
		{"P3"},
	})

	_, err = runCLI(t, "--db", db, "product", "add-batch", file)
	require.Error(t, err)
	assert.True(t, model.IsDuplicateKey(err))
	assert.Contains(t, err.Error(), "row 3")

	out, err := runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "P3", "rows after the failure are not applied")
}

func TestProductAddBatchContinueOnError(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P2")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "products.xlsx")
	writeSheet(t, file, [][]any{
		{"Code"},
		{"P1"},
		{"P2"},
		{"P3"},
	})

	out, err := runCLI(t, "--db", db, "product", "add-batch", "--continue-on-error", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 of 3 rows")

	out, err = runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "P3")
}

func TestProductUpdateBatch(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P1", "--price", "100")
	require.NoError(t, err)
	_, err = runCLI(t, "--db", db, "product", "add", "--code", "P2", "--price", "200")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "prices.xlsx")
	writeSheet(t, file, [][]any{
		{"Code", "", "", "", "Price"},
		{"P1", "", "", "", 150},
		{"P2", "", "", "", 250},
	})

	_, err = runCLI(t, "--db", db, "product", "update-batch", file)
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "150")
	assert.Contains(t, out, "250")
}

func TestProductSaveXlsx(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "--db", db, "product", "add", "--code", "P1", "--price", "100")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "pricelist.xlsx")
	msg, err := runCLI(t, "--db", db, "product", "list", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, msg, "Saved 1 products")
	assert.FileExists(t, out)
}
