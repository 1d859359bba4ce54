// Package cli defines the gtav-timer command tree.
package cli

import (
	"log"
	"os"

	"github.com/efritioff/gtav-timer/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "gtav-timer",
		Short:         "Business production tracker with a browser map",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "gtav-timer.yml", "path to the YAML config file")

	loadConfig := func() (config.Config, error) {
		_ = godotenv.Load()
		return config.Load(configPath)
	}

	cmd.AddCommand(
		newServeCommand(loadConfig),
		newTickCommand(loadConfig),
		newCatalogCommand(),
		newBackupCommand(loadConfig),
		newRestoreCommand(loadConfig),
	)
	return cmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
