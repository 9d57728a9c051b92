package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkv/internal/config"
	dserrors "github.com/systmms/vaultkv/internal/errors"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		fieldName  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Read a secret, adapting to the KV engine version",
		Long: `Read the secret at a path and print it to stdout.

The owning mount is resolved automatically: versioned (KV v2) paths are
read through the data/ endpoint and unwrapped, unversioned paths are read
as-is, so the output shape is the same either way.

Examples:
  # Print the whole secret as JSON
  vaultkv get secret/myapp/config

  # Print a single field's raw value, suitable for scripting
  vaultkv get secret/myapp/config --field password

  # Works identically against a KV v1 mount
  vaultkv get kv-legacy/myapp/config --field password`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			client, err := newKVClient(cfg)
			if err != nil {
				return err
			}

			response, err := client.GetSecret(cmd.Context(), path)
			if err != nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Failed to read secret at '%s'", path),
					Details:    err.Error(),
					Suggestion: dserrors.VaultSuggestion(err),
				}
			}

			if response == nil || response.Data == nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("No secret found at '%s'", path),
					Suggestion: fmt.Sprintf("Check the path, or inspect the mount with 'vaultkv mount %s'", path),
				}
			}

			if fieldName == "" {
				encoder := json.NewEncoder(os.Stdout)
				if !jsonOutput {
					encoder.SetIndent("", "  ")
				}
				return encoder.Encode(response.Data)
			}

			value, exists := response.Data[fieldName]
			if !exists {
				available := make([]string, 0, len(response.Data))
				for name := range response.Data {
					available = append(available, name)
				}
				sort.Strings(available)

				return dserrors.UserError{
					Message:    fmt.Sprintf("Field '%s' not found in secret", fieldName),
					Suggestion: fmt.Sprintf("Available fields: %v", available),
				}
			}

			fmt.Println(formatValue(value))
			return nil
		},
	}

	cmd.Flags().StringVar(&fieldName, "field", "", "Print only this field's value")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print compact JSON")

	return cmd
}

// formatValue renders a secret field for plain output: strings print bare,
// anything else as JSON.
func formatValue(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(raw)
}
