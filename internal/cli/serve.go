package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/efritioff/gtav-timer/internal/config"
	"github.com/efritioff/gtav-timer/internal/serverapp"

	"github.com/spf13/cobra"
)

func newServeCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the production loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := serverapp.New(serverapp.Options{
				Config:        &cfg,
				UseDiskStatic: serverapp.UseDiskStaticByEnv(),
				Logger:        log.Default(),
			})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go app.Loop.Run(ctx)

			srv := &http.Server{
				Addr:    cfg.Listen,
				Handler: app.Handler(),
			}
			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on http://localhost%s", cfg.Listen)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Print("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}
}
