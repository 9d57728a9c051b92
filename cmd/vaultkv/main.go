package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkv/cmd/vaultkv/commands"
	"github.com/systmms/vaultkv/internal/config"
	"github.com/systmms/vaultkv/internal/logging"
	"github.com/systmms/vaultkv/pkg/kv"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "vaultkv",
		Short: "Read secrets from Vault KV engines, versioned or not",
		Long: `vaultkv reads secrets from HashiCorp Vault key-value engines without
you having to know whether a path is backed by the unversioned (v1) or
versioned (v2) engine. Mount information is resolved once per path via
sys/internal/ui/mounts and cached; versioned reads are rewritten to the
data/ form and unwrapped transparently.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger

			kv.InitMetrics()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(commands.NewGetCommand(cfg))
	rootCmd.AddCommand(commands.NewMountCommand(cfg))
	rootCmd.AddCommand(commands.NewLoginCommand(cfg))

	return rootCmd.Execute()
}
