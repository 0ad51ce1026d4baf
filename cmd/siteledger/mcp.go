package main

import (
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the read-only reconciliation tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.openApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt.logger.Info("starting stdio transport")
			// Run blocks until stdin closes or ctx is canceled.
			return a.MCPServer().Run(ctx, &sdkmcp.StdioTransport{})
		},
	}
}
