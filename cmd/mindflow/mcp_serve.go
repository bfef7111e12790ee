package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	mcpserver "github.com/d3flow/mindflow/mcp"
)

// newMCPCmd creates the 'mcp' subcommand and its subcommands.
func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CmdMCP,
		Short: constants.DescMCP,
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var stdio bool
	var addr string
	cmd := &cobra.Command{
		Use:   constants.CmdServe,
		Short: "Serve MindFlow as an MCP server (HTTP or stdio)",
		Run: func(cmd *cobra.Command, args []string) {
			tools := buildMCPToolRegistrations()
			if err := mcpserver.Serve(configPath, debug, stdio, addr, tools); err != nil {
				log.Fatalf("MCP server failed: %v", err)
			}
		},
	}
	cmd.Flags().BoolVar(&stdio, "stdio", true, "serve over stdin/stdout instead of HTTP (default)")
	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address for HTTP mode")
	return cmd
}
