package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/vaultkv/internal/errors"
	"github.com/systmms/vaultkv/internal/logging"
	"github.com/systmms/vaultkv/internal/vault"
)

// DefaultPath is where Load looks for configuration when no --config flag is
// given.
const DefaultPath = "vaultkv.yaml"

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the vaultkv.yaml structure.
type Definition struct {
	Version int          `yaml:"version"`
	Vault   vault.Config `yaml:"vault"`
	Token   string       `yaml:"token,omitempty"` // discouraged, prefer VAULT_TOKEN or the keyring
}

// schema validates the structure of vaultkv.yaml before it is bound, so typo'd
// keys fail loudly instead of being silently ignored.
const schema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version"],
	"additionalProperties": false,
	"properties": {
		"version": {"type": "integer", "enum": [1]},
		"token": {"type": "string"},
		"vault": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"address": {"type": "string"},
				"namespace": {"type": "string"},
				"ca_cert": {"type": "string"},
				"client_cert": {"type": "string"},
				"client_key": {"type": "string"},
				"tls_skip": {"type": "boolean"},
				"timeout_ms": {"type": "integer", "minimum": 0}
			}
		}
	}
}`

// Load reads, validates, and binds the configuration file, then applies
// VAULT_* environment overrides. A missing file is not an error: the
// environment alone can carry a complete configuration.
func (c *Config) Load() error {
	if c.Path == "" {
		c.Path = DefaultPath
	}

	definition := &Definition{Version: 1}

	raw, err := os.ReadFile(c.Path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env-only configuration.
	case err != nil:
		return dserrors.UserError{
			Message:    fmt.Sprintf("Cannot read config file '%s'", c.Path),
			Details:    err.Error(),
			Suggestion: "Check the file permissions, or pass --config with another path",
		}
	default:
		if err := validate(c.Path, raw); err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, definition); err != nil {
			return dserrors.ConfigError{
				Field:      c.Path,
				Message:    "invalid YAML: " + err.Error(),
				Suggestion: "Check for indentation errors and missing quotes",
			}
		}
	}

	definition.Vault.ApplyEnv()
	c.Definition = definition

	return nil
}

// validate checks the raw YAML document against the embedded JSON schema.
func validate(path string, raw []byte) error {
	var document map[string]interface{}
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return dserrors.ConfigError{
			Field:      path,
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	asJSON, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to convert config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(asJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return dserrors.ConfigError{
			Field:      path,
			Message:    strings.Join(problems, "; "),
			Suggestion: "Compare your config against the documented vaultkv.yaml format",
		}
	}

	return nil
}
