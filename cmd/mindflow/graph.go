package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/graph"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/utils"
)

// newGraphCmd creates the 'graph' subcommand.
func newGraphCmd() *cobra.Command {
	var (
		typ    string
		format string
	)
	cmd := &cobra.Command{
		Use:   constants.CmdGraph + " [file]",
		Short: constants.DescGraph,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			file := args[0]
			diagramType, err := resolveType(typ, file)
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			source, err := os.ReadFile(file)
			if err != nil {
				utils.Error("failed to read %s: %v", file, err)
				exit(1)
			}
			g, err := buildGraph(diagramType, string(source))
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			var text string
			switch format {
			case "mermaid":
				text, err = graph.ExportMermaid(g)
			case "dot":
				text, err = graph.ExportDOT(g)
			default:
				utils.Error("unknown graph format: %s (want mermaid or dot)", format)
				exit(1)
			}
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			fmt.Println(text)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type; detected from the file when omitted")
	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "output format: mermaid or dot")
	return cmd
}

func buildGraph(typ model.DiagramType, source string) (*graph.Graph, error) {
	switch typ {
	case model.Mindmap:
		root, err := parser.ParseMindmap(source)
		if err != nil {
			return nil, err
		}
		return graph.FromMindmap(root), nil
	case model.Gantt:
		chart, err := parser.ParseGantt(source)
		if err != nil {
			return nil, err
		}
		return graph.FromGantt(chart), nil
	case model.Flowchart:
		fc, err := parser.ParseFlowchart(source)
		if err != nil {
			return nil, err
		}
		return graph.FromFlowchart(fc), nil
	}
	return nil, fmt.Errorf("unknown diagram type: %s", typ)
}
