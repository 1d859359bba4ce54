package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/efritioff/gtav-timer/internal/config"
	"github.com/efritioff/gtav-timer/internal/serverapp"

	"github.com/spf13/cobra"
)

func newTickCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the persisted state by N one-second ticks",
		Long: `Advance production offline. The server never catches up on elapsed
wall-clock time by itself; this command is the explicit way to apply
missed ticks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Sim.StartPaused = false

			app, err := serverapp.New(serverapp.Options{
				Config: &cfg,
				Logger: log.New(io.Discard, "", 0),
			})
			if err != nil {
				return err
			}
			defer app.Close()

			for i := 0; i < count; i++ {
				app.Loop.Step()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d tick(s)\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of ticks to apply")
	return cmd
}
