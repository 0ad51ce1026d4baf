package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(rt *runtime) *cobra.Command {
	var (
		host    string
		port    int
		withMCP bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("host") {
				rt.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				rt.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("mcp") {
				rt.cfg.MCP.HTTPEnabled = withMCP
			}

			a, err := rt.openApp()
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              rt.cfg.Server.Addr(),
				Handler:           a.Handler(rt.cfg.MCP.HTTPEnabled),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("server listening", "addr", httpServer.Addr, "mcp", rt.cfg.MCP.HTTPEnabled)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			rt.logger.Info("shutting down")
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host")
	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	cmd.Flags().BoolVar(&withMCP, "mcp", false, "mount the MCP endpoint at /mcp")
	return cmd
}
