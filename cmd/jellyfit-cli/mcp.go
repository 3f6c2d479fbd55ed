package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/jellyfit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the training log to an MCP client over stdio",
	Long: `Serve the training log to an MCP client over stdio.

With --remote the tools read from a running jellyfit server (for example over
Tailscale); otherwise they open the store named in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()
		ds, closeFn, err := openSource(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer closeFn()

		return server.ServeStdio(mcp.New(ds, Version, log))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
