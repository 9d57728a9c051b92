package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSourceConfiguredTokenWins(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VAULT_TOKEN", "env-token")

	src := NewSource("config-token")

	got, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "config-token", got)
}

func TestSourceEnvFallback(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VAULT_TOKEN", "env-token")

	got, err := NewSource("").Token()
	require.NoError(t, err)
	assert.Equal(t, "env-token", got)
}

func TestSourceKeyringFallback(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VAULT_TOKEN", "")

	require.NoError(t, Store("keyring-token"))

	got, err := NewSource("").Token()
	require.NoError(t, err)
	assert.Equal(t, "keyring-token", got)
}

func TestSourceNoTokenAnywhere(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VAULT_TOKEN", "")

	_, err := NewSource("").Token()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSourceServesSealedCopy(t *testing.T) {
	keyring.MockInit()

	src := NewSource("config-token")

	first, err := src.Token()
	require.NoError(t, err)
	second, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, Store(""))
}

func TestClearAbsentEntry(t *testing.T) {
	keyring.MockInit()

	assert.NoError(t, Clear())
}

func TestStoreAndClear(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VAULT_TOKEN", "")

	require.NoError(t, Store("stored-token"))
	require.NoError(t, Clear())

	_, err := NewSource("").Token()
	assert.ErrorIs(t, err, ErrNoToken)
}
