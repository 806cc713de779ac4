package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/server"
	"github.com/kevinmichaelchen/repo-view/internal/session"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON session API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			logger := logging.FromContext(ctx)
			if addr == "" {
				addr = cfg.ListenAddr
			}

			var store session.Store = session.NewMemoryStore(cfg.SessionTTL)
			if cfg.RedisURL != "" {
				rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
				if err != nil {
					return err
				}
				defer func() { _ = rs.Close() }()
				store = rs
				logger.Info("Using Redis session store")
			}

			srv := server.New(session.NewLoader(newGitHubClient(cfg)), store, logger, server.Config{
				RequestTimeout: 15 * time.Second,
				ViewOptions:    viewOptions(cfg),
			})

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", addr)
				errCh <- srv.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			done := make(chan struct{})
			go func() {
				_ = srv.Shutdown()
				close(done)
			}()

			select {
			case <-done:
			case <-shutdownCtx.Done():
				logger.Warn("server shutdown timeout", "timeout", cfg.ShutdownTimeout)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from LISTEN_ADDR)")
	return cmd
}
