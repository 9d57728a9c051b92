package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkv/internal/config"
	dserrors "github.com/systmms/vaultkv/internal/errors"
	"github.com/systmms/vaultkv/pkg/kv"
)

func NewMountCommand(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "mount <path>",
		Short: "Show the mount owning a path and its KV engine version",
		Long: `Resolve and display mount information for a secret path.

This is the same resolution 'get' performs internally: Vault's
sys/internal/ui/mounts endpoint is asked which mount owns the path and
which engine options (notably the KV version) it advertises.

A token without permission to introspect mounts reports the mount as
unavailable; reads still work but treat the path as unversioned.

Examples:
  vaultkv mount secret/myapp/config
  vaultkv mount secret/myapp/config --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			client, err := newKVClient(cfg)
			if err != nil {
				return err
			}

			info, err := client.MountInfoFor(cmd.Context(), path)
			if err != nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Failed to resolve mount info for '%s'", path),
					Details:    err.Error(),
					Suggestion: dserrors.VaultSuggestion(err),
				}
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"path":      path,
					"mount":     info.Path,
					"options":   info.Options,
					"available": info.Available,
					"versioned": info.IsKeyValue(kv.BackendKV2),
				})
			}

			if !info.Available {
				fmt.Printf("Mount info for '%s' is unavailable.\n", path)
				fmt.Println("Your token may lack permission for sys/internal/ui/mounts; reads fall back to the unversioned dialect.")
				return nil
			}

			fmt.Printf("Path:      %s\n", path)
			fmt.Printf("Mount:     %s\n", info.Path)
			fmt.Printf("Versioned: %t\n", info.IsKeyValue(kv.BackendKV2))
			if len(info.Options) > 0 {
				fmt.Println("Options:")
				for key, value := range info.Options {
					fmt.Printf("  %s: %v\n", key, value)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
