// Package mcp exposes diagram operations as MCP tools over stdio or HTTP,
// so editor assistants can render, validate and manage diagrams directly.
package mcp

import (
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mcp "github.com/metoro-io/mcp-golang"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	mcpstdio "github.com/metoro-io/mcp-golang/transport/stdio"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/utils"
)

// ToolRegistration holds a tool's registration info for the MCP server.
type ToolRegistration struct {
	Name        string
	Description string
	Handler     any // must be a func(ctx, args) (*mcp.ToolResponse, error)
}

// Serve starts the MindFlow MCP server with the given configuration and tool registrations.
func Serve(configPath string, debug bool, stdio bool, addr string, tools []ToolRegistration) error {
	// Stdio transport owns stdout for the protocol; user-facing logs would
	// corrupt the stream.
	if stdio && !debug {
		utils.SetUserOutput(io.Discard)
	}

	_, err := config.LoadConfig(configPath)
	if err != nil && !strings.Contains(err.Error(), "no such file") {
		return utils.Errorf("failed to load config %s: %w", configPath, err)
	}

	var server *mcp.Server
	if stdio {
		utils.Info("Starting MCP server on stdio...")
		transport := mcpstdio.NewStdioServerTransport()
		server = mcp.NewServer(transport)
	} else {
		utils.Info("Starting MCP server on HTTP at %s...", addr)
		transport := mcphttp.NewHTTPTransport("/mcp").WithAddr(addr)
		server = mcp.NewServer(transport)
	}
	RegisterAllTools(server, tools)
	if err := server.Serve(); err != nil {
		return err
	}
	// Stdio serves in the background; block until a termination signal.
	if stdio {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh
		utils.Info("Received signal %v, shutting down MCP stdio server", sig)
	}
	return nil
}

// RegisterAllTools registers all provided tools with the MCP server.
func RegisterAllTools(server *mcp.Server, tools []ToolRegistration) {
	for _, t := range tools {
		_ = server.RegisterTool(t.Name, t.Description, t.Handler)
	}
}

// Argument types for MCP handlers (shared with the CLI).

type EmptyArgs struct{}

type RenderArgs struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Title      string `json:"title,omitempty"`
	Standalone bool   `json:"standalone,omitempty"`
}

type ValidateArgs struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

type SaveDiagramArgs struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Source      string `json:"source"`
}

type ListDiagramsArgs struct {
	Type string `json:"type,omitempty"`
}

type GetDiagramArgs struct {
	ID string `json:"id"`
}

type SearchDiagramsArgs struct {
	Query string `json:"query"`
}

type ExportDiagramArgs struct {
	// ID of a stored diagram, or an inline Type+Source pair.
	ID     string `json:"id,omitempty"`
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format"`
}

type SampleArgs struct {
	Type string `json:"type"`
}

type GraphArgs struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Format string `json:"format,omitempty"` // mermaid or dot
}
