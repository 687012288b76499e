// Server entry point for sebaran-penjualan.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rxprasetya/sebaran-penjualan/internal/config"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:     "sebaran-server",
		Short:   "sebaran-penjualan API server",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file when a path is given, otherwise builds the
// configuration from SEBARAN_* environment variables.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadFromEnv()
}
