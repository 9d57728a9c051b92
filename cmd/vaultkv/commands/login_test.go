package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/vaultkv/internal/config"
	"github.com/systmms/vaultkv/internal/logging"
	"github.com/systmms/vaultkv/internal/token"
	"github.com/zalando/go-keyring"
)

func newLoginConfig(t *testing.T) *config.Config {
	t.Helper()

	keyring.MockInit()
	return &config.Config{
		Path:   filepath.Join(t.TempDir(), "vaultkv.yaml"),
		Logger: logging.New(false, true),
	}
}

func TestLoginCommand_StoresTokenFlag(t *testing.T) {
	cfg := newLoginConfig(t)
	t.Setenv("VAULT_TOKEN", "")

	cmd := NewLoginCommand(cfg)
	cmd.SetArgs([]string{"--token", "hvs.from-flag"})
	require.NoError(t, cmd.Execute())

	got, err := token.NewSource("").Token()
	require.NoError(t, err)
	assert.Equal(t, "hvs.from-flag", got)
}

func TestLoginCommand_StoresTokenFromEnv(t *testing.T) {
	cfg := newLoginConfig(t)
	t.Setenv("VAULT_TOKEN", "hvs.from-env")

	cmd := NewLoginCommand(cfg)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	t.Setenv("VAULT_TOKEN", "")
	got, err := token.NewSource("").Token()
	require.NoError(t, err)
	assert.Equal(t, "hvs.from-env", got)
}

func TestLoginCommand_NoToken(t *testing.T) {
	cfg := newLoginConfig(t)
	t.Setenv("VAULT_TOKEN", "")

	cmd := NewLoginCommand(cfg)
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No token to store")
}

func TestLoginCommand_Clear(t *testing.T) {
	cfg := newLoginConfig(t)
	t.Setenv("VAULT_TOKEN", "")

	require.NoError(t, token.Store("hvs.stale"))

	cmd := NewLoginCommand(cfg)
	cmd.SetArgs([]string{"--clear"})
	require.NoError(t, cmd.Execute())

	_, err := token.NewSource("").Token()
	assert.ErrorIs(t, err, token.ErrNoToken)
}
