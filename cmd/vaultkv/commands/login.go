package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkv/internal/config"
	dserrors "github.com/systmms/vaultkv/internal/errors"
	"github.com/systmms/vaultkv/internal/token"
)

func NewLoginCommand(cfg *config.Config) *cobra.Command {
	var (
		tokenValue string
		clear      bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Vault token in the OS keyring",
		Long: `Store a Vault token in the operating system keyring so later
invocations can authenticate without VAULT_TOKEN in the environment.

vaultkv does not perform auth-method logins itself; obtain a token with
the vault CLI (or your auth workflow of choice) and hand it over.

Examples:
  vaultkv login --token hvs.XXXX
  VAULT_TOKEN=hvs.XXXX vaultkv login
  vaultkv login --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				if err := token.Clear(); err != nil {
					return err
				}
				cfg.Logger.Info("Removed stored Vault token from the OS keyring")
				return nil
			}

			value := tokenValue
			if value == "" {
				value = os.Getenv("VAULT_TOKEN")
			}
			if value == "" {
				return dserrors.UserError{
					Message:    "No token to store",
					Suggestion: "Pass --token <token> or set VAULT_TOKEN",
				}
			}

			if err := token.Store(value); err != nil {
				return err
			}

			cfg.Logger.Info("Stored Vault token in the OS keyring")
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenValue, "token", "", "Vault token to store (defaults to VAULT_TOKEN)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the stored token instead")

	return cmd
}
