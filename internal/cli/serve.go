package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramform/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, server.Options{
				Schema:          app.Schema,
				BasePath:        app.Config.BasePath,
				Title:           app.Config.Title,
				Logger:          app.Logger,
				ShutdownTimeout: app.Config.ShutdownTimeout,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := srv.Run(ctx, addr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "The address to listen on (default from PARAMFORM_ADDR)")
	return cmd
}
