package commands

import (
	"github.com/systmms/vaultkv/internal/config"
	"github.com/systmms/vaultkv/internal/token"
	"github.com/systmms/vaultkv/internal/vault"
	"github.com/systmms/vaultkv/pkg/kv"
)

// newKVClient loads the configuration and assembles the read stack:
// token source -> HTTP client -> version-aware KV client.
func newKVClient(cfg *config.Config) (*kv.Client, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	tokens := token.NewSource(cfg.Definition.Token)

	reader, err := vault.New(cfg.Definition.Vault, tokens, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return kv.New(reader, cfg.Logger), nil
}
