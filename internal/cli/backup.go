package cli

import (
	"fmt"

	"github.com/efritioff/gtav-timer/internal/config"
	"github.com/efritioff/gtav-timer/internal/ops"

	"github.com/spf13/cobra"
)

func newBackupCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the data directory to a tar.gz archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := ops.Backup(cfg.DataDir, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "gtav-timer-backup.tar.gz", "archive path to write")
	return cmd
}

func newRestoreCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if from == "" {
				return fmt.Errorf("--from is required")
			}
			if err := ops.Restore(from, cfg.DataDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored into %s\n", cfg.DataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "archive path to read")
	return cmd
}
