package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/utils"
)

// newRenderCmd creates the 'render' subcommand.
func newRenderCmd() *cobra.Command {
	var (
		typ        string
		out        string
		title      string
		standalone bool
	)
	cmd := &cobra.Command{
		Use:   constants.CmdRender + " [file]",
		Short: constants.DescRender,
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
			if title == "" {
				title = filepath.Base(file)
			}
			html, err := render.NewRenderer().Render(diagramType, string(source), render.Options{
				Standalone: standalone,
				Title:      title,
			})
			if err != nil {
				utils.Error(constants.ErrRenderFailed, err)
				exit(1)
			}
			if out == "" {
				fmt.Println(html)
				return
			}
			if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
				utils.Error("failed to write %s: %v", out, err)
				exit(1)
			}
			utils.User("Rendered %s -> %s", file, out)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type (mindmap, gantt, flowchart); detected from the file when omitted")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "page title (defaults to the file name)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "produce a self-contained export-ready page")
	return cmd
}
