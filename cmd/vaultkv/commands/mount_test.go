package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMountCommand_VersionedMount(t *testing.T) {
	cfg := newTestConfig(t, newVaultServer(t))

	output := captureOutput(t, NewMountCommand(cfg), []string{"secret/myapp"})
	assert.Contains(t, output, "Mount:     secret/")
	assert.Contains(t, output, "Versioned: true")
	assert.Contains(t, output, "version: 2")
}

func TestMountCommand_UnversionedMount(t *testing.T) {
	cfg := newTestConfig(t, newVaultServer(t))

	output := captureOutput(t, NewMountCommand(cfg), []string{"kv/legacy"})
	assert.Contains(t, output, "Mount:     kv/")
	assert.Contains(t, output, "Versioned: false")
}

func TestMountCommand_JSON(t *testing.T) {
	cfg := newTestConfig(t, newVaultServer(t))

	output := captureOutput(t, NewMountCommand(cfg), []string{"secret/myapp", "--json"})

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, "secret/myapp", parsed["path"])
	assert.Equal(t, "secret/", parsed["mount"])
	assert.Equal(t, true, parsed["versioned"])
	assert.Equal(t, true, parsed["available"])
}

func TestMountCommand_ForbiddenIntrospection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
	}))
	t.Cleanup(server.Close)

	cfg := newTestConfig(t, server)

	output := captureOutput(t, NewMountCommand(cfg), []string{"secret/myapp"})
	assert.Contains(t, output, "unavailable")
}
