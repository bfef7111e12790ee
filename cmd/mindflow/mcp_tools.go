package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	mcp "github.com/metoro-io/mcp-golang"

	"github.com/d3flow/mindflow/blob"
	"github.com/d3flow/mindflow/export"
	"github.com/d3flow/mindflow/graph"
	mcpserver "github.com/d3flow/mindflow/mcp"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/samples"
	"github.com/d3flow/mindflow/storage"
)

func textResponse(v any) (*mcp.ToolResponse, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(string(jsonBytes))), nil
}

// buildMCPToolRegistrations returns all tool registrations for the MCP server.
func buildMCPToolRegistrations() []mcpserver.ToolRegistration {
	cfg := loadRuntimeConfig()
	renderer := render.NewRenderer()
	openStore := func() (storage.Storage, error) {
		return storage.NewStorageFromConfig(cfg)
	}
	return []mcpserver.ToolRegistration{
		{
			Name:        "renderDiagram",
			Description: "Render a diagram source (mindmap, gantt or flowchart) to HTML",
			Handler: func(ctx context.Context, args mcpserver.RenderArgs) (*mcp.ToolResponse, error) {
				html, err := renderer.Render(model.DiagramType(args.Type), args.Source, render.Options{
					Standalone: args.Standalone,
					Title:      args.Title,
				})
				if err != nil {
					return nil, err
				}
				return mcp.NewToolResponse(mcp.NewTextContent(html)), nil
			},
		},
		{
			Name:        "validateDiagram",
			Description: "Validate a diagram source and report node/edge counts and warnings",
			Handler: func(ctx context.Context, args mcpserver.ValidateArgs) (*mcp.ToolResponse, error) {
				res, _ := parser.ValidateSource(model.DiagramType(args.Type), args.Source)
				return textResponse(res)
			},
		},
		{
			Name:        "saveDiagram",
			Description: "Validate and save a diagram to the local store",
			Handler: func(ctx context.Context, args mcpserver.SaveDiagramArgs) (*mcp.ToolResponse, error) {
				d := &model.Diagram{
					Title:       args.Title,
					Description: args.Description,
					Type:        model.DiagramType(args.Type),
					Source:      args.Source,
				}
				if err := parser.ValidateDocument(d); err != nil {
					return nil, err
				}
				store, err := openStore()
				if err != nil {
					return nil, err
				}
				defer store.Close()
				if err := store.SaveDiagram(ctx, d); err != nil {
					return nil, err
				}
				return textResponse(d)
			},
		},
		{
			Name:        "listDiagrams",
			Description: "List stored diagrams, optionally filtered by type",
			Handler: func(ctx context.Context, args mcpserver.ListDiagramsArgs) (*mcp.ToolResponse, error) {
				store, err := openStore()
				if err != nil {
					return nil, err
				}
				defer store.Close()
				list, err := store.ListDiagrams(ctx, model.DiagramType(args.Type))
				if err != nil {
					return nil, err
				}
				return textResponse(map[string]any{"diagrams": list})
			},
		},
		{
			Name:        "getDiagram",
			Description: "Get a stored diagram by ID",
			Handler: func(ctx context.Context, args mcpserver.GetDiagramArgs) (*mcp.ToolResponse, error) {
				id, err := uuid.Parse(args.ID)
				if err != nil {
					return nil, err
				}
				store, err := openStore()
				if err != nil {
					return nil, err
				}
				defer store.Close()
				d, err := store.GetDiagram(ctx, id)
				if err != nil {
					return nil, err
				}
				return textResponse(d)
			},
		},
		{
			Name:        "searchDiagrams",
			Description: "Search stored diagrams by title, description or source",
			Handler: func(ctx context.Context, args mcpserver.SearchDiagramsArgs) (*mcp.ToolResponse, error) {
				store, err := openStore()
				if err != nil {
					return nil, err
				}
				defer store.Close()
				hits, err := store.SearchDiagrams(ctx, args.Query)
				if err != nil {
					return nil, err
				}
				return textResponse(map[string]any{"diagrams": hits})
			},
		},
		{
			Name:        "sampleSource",
			Description: "Get a built-in sample source for a diagram type",
			Handler: func(ctx context.Context, args mcpserver.SampleArgs) (*mcp.ToolResponse, error) {
				src := samples.Sample(model.DiagramType(args.Type))
				if src == "" {
					return nil, fmt.Errorf("unknown diagram type: %s", args.Type)
				}
				return mcp.NewToolResponse(mcp.NewTextContent(src)), nil
			},
		},
		{
			Name:        "graphDiagram",
			Description: "Convert a diagram source to a Mermaid or DOT graph",
			Handler: func(ctx context.Context, args mcpserver.GraphArgs) (*mcp.ToolResponse, error) {
				g, err := buildGraph(model.DiagramType(args.Type), args.Source)
				if err != nil {
					return nil, err
				}
				var text string
				if args.Format == "dot" {
					text, err = graph.ExportDOT(g)
				} else {
					text, err = graph.ExportMermaid(g)
				}
				if err != nil {
					return nil, err
				}
				return mcp.NewToolResponse(mcp.NewTextContent(text)), nil
			},
		},
		{
			Name:        "exportDiagram",
			Description: "Export a diagram to html, png, svg or pdf and return the artifact URL",
			Handler: func(ctx context.Context, args mcpserver.ExportDiagramArgs) (*mcp.ToolResponse, error) {
				var d *model.Diagram
				if args.ID != "" {
					id, err := uuid.Parse(args.ID)
					if err != nil {
						return nil, err
					}
					store, err := openStore()
					if err != nil {
						return nil, err
					}
					defer store.Close()
					if d, err = store.GetDiagram(ctx, id); err != nil {
						return nil, err
					}
				} else {
					d = &model.Diagram{
						Title:  args.Title,
						Type:   model.DiagramType(args.Type),
						Source: args.Source,
					}
				}
				exporter := export.NewExporter(cfg.Export, renderer)
				defer exporter.Close()
				data, err := exporter.Export(ctx, d, args.Format)
				if err != nil {
					return nil, err
				}
				blobs, err := blob.NewBlobStoreFromConfig(cfg)
				if err != nil {
					return nil, err
				}
				url, err := blobs.Put(ctx, data, mimeFor(args.Format), exportFileName(d, args.Format))
				if err != nil {
					return nil, err
				}
				return textResponse(map[string]any{"url": url, "bytes": len(data)})
			},
		},
		{
			Name:        "exportCapabilities",
			Description: "Report available export formats and whether the headless browser works",
			Handler: func(ctx context.Context, args mcpserver.EmptyArgs) (*mcp.ToolResponse, error) {
				exporter := export.NewExporter(cfg.Export, renderer)
				defer exporter.Close()
				return textResponse(exporter.Probe(ctx))
			},
		},
	}
}
