package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projecttitan/titan/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "titan",
	Short: "titan — static indicator dashboard toolkit",
	Long:  "Applies monthly readings to the Titan Index page, validates its structure, packages releases, and previews the site locally.",
}

// loadConfig reads env-var configuration; flags override it per command.
func loadConfig() *config.Config {
	cfg, _ := config.Load()
	return cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(packCmd)
}
