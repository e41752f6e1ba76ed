package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncforge/internal/mcpserver"
)

func newMCPCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve asyncforge tools to MCP clients over stdio",
		Long: "Start a Model Context Protocol server on stdin/stdout exposing the compile,\n" +
			"validate and bindings tools. Server defaults are read from ASYNCFORGE_MCP_*\n" +
			"environment variables.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.loadConfig(cmd, nil); err != nil {
				return err
			}
			app.logger.Info("starting MCP server")
			return mcpserver.Run(cmd.Context())
		},
	}
}
