package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"beancatalog/app"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog web server",
		Example: `  # Serve on the configured port
  beancatalog serve

  # Serve on a custom address with a Badger snapshot store
  CACHE_BACKEND=badger beancatalog serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = g.cfg.Server.Addr()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, g, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default host:port from config)")
	return cmd
}

// serve runs the HTTP server until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, g *globals, addr string) error {
	application, err := app.Initialize(ctx, g.cfg, g.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			g.log.Warn().Err(err).Msg("⚠️  Snapshot store close failed")
		}
	}()

	server := &http.Server{
		Addr:              addr,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		g.log.Info().Str("addr", addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		g.log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(egCtx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
