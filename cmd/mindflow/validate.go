package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/utils"
)

// newValidateCmd creates the 'validate' subcommand. YAML documents validate
// against the diagram schema; raw sources validate by parsing.
func newValidateCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   constants.CmdValidate + " [file]",
		Short: constants.DescValidate,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			file := args[0]
			if isDocument(file) {
				d, err := parser.ParseDocument(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "YAML parse error: %v\n", err)
					exit(1)
				}
				if err := parser.ValidateDocument(d); err != nil {
					fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
					exit(2)
				}
				utils.User("Validation OK: %s is a valid %s document", file, d.Type)
				return
			}

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
			res, _ := parser.ValidateSource(diagramType, string(source))
			result := utils.MarshalJSONIndent(res, constants.JSONIndent)
			if result.Err != nil {
				utils.Error("failed to encode result: %v", result.Err)
				exit(1)
			}
			fmt.Println(string(result.Data))
			if !res.Valid {
				exit(2)
			}
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type for raw sources; detected from the file when omitted")
	return cmd
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
