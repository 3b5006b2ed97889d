package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wman/internal/model"
)

func TestCustomerCreateAndList(t *testing.T) {
	db := testDB(t)

	out, err := runCLI(t, "--db", db, "customer", "create", "Acme Retail")
	require.NoError(t, err)
	assert.Contains(t, out, "Customer Acme Retail was created with ID 1")

	_, err = runCLI(t, "--db", db, "customer", "create", "Zenith Stores")
	require.NoError(t, err)

	out, err = runCLI(t, "--db", db, "customer", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Retail")
	assert.Contains(t, out, "Zenith Stores")
}

func TestCustomerCreateDuplicateName(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "customer", "create", "Acme Retail")
	require.NoError(t, err)

	_, err = runCLI(t, "--db", db, "customer", "create", "Acme Retail")
	require.Error(t, err)
	assert.True(t, model.IsDuplicateName(err))
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCustomerListJSON(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "--db", db, "customer", "create", "Acme Retail")
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "--format", "json", "customer", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[{"id":1,"name":"Acme Retail"}]}`, out)
}
