package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"essential-notes/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes page over HTTP and health over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(a.cfg, a.logger)
			if err != nil {
				return err
			}
			if err := srv.Initialize(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errChan := srv.Start()

			// Ожидание сигнала или ошибки
			select {
			case err := <-errChan:
				a.logger.Error("server error", "error", err)
				_ = srv.Shutdown()
				return err
			case <-ctx.Done():
				a.logger.Info("received signal, shutting down")
			}

			if err := srv.Shutdown(); err != nil {
				return err
			}
			a.logger.Info("notes service stopped")
			return nil
		},
	}
}
