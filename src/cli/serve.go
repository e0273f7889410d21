package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/mcpserver"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the scanner as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, agg, err := a.components()
			if err != nil {
				return err
			}
			return mcpserver.New(engine, agg, Version, a.logger).Run(ctx)
		},
	}
}
