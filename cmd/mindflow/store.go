package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/storage"
	"github.com/d3flow/mindflow/utils"
)

// withStorage opens the configured store, runs fn and closes it.
func withStorage(fn func(ctx context.Context, store storage.Storage) error) {
	cfg := loadRuntimeConfig()
	store, err := storage.NewStorageFromConfig(cfg)
	if err != nil {
		utils.Error(constants.ErrStorageCreateFailed, err)
		exit(1)
	}
	defer store.Close()
	if err := fn(context.Background(), store); err != nil {
		utils.Error("%v", err)
		exit(1)
	}
}

func printJSON(v any) error {
	result := utils.MarshalJSONIndent(v, constants.JSONIndent)
	if result.Err != nil {
		return result.Err
	}
	fmt.Println(string(result.Data))
	return nil
}

// newSaveCmd creates the 'save' subcommand: validate a YAML diagram document
// and store it.
func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdSave + " [file]",
		Short: constants.DescSave,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			d, err := parser.ParseDocument(args[0])
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			if err := parser.ValidateDocument(d); err != nil {
				utils.Error("%v", err)
				exit(2)
			}
			withStorage(func(ctx context.Context, store storage.Storage) error {
				if err := store.SaveDiagram(ctx, d); err != nil {
					return err
				}
				utils.User("Saved %s (%s)", d.Title, d.ID)
				return nil
			})
		},
	}
}

// newListCmd creates the 'list' subcommand.
func newListCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   constants.CmdList,
		Short: constants.DescList,
		Run: func(cmd *cobra.Command, args []string) {
			withStorage(func(ctx context.Context, store storage.Storage) error {
				list, err := store.ListDiagrams(ctx, model.DiagramType(typ))
				if err != nil {
					return err
				}
				return printJSON(list)
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "filter by diagram type")
	return cmd
}

// newGetCmd creates the 'get' subcommand.
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdGet + " [id]",
		Short: constants.DescGet,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(args[0])
			if err != nil {
				utils.Error("invalid diagram id %q", args[0])
				exit(1)
			}
			withStorage(func(ctx context.Context, store storage.Storage) error {
				d, err := store.GetDiagram(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(d)
			})
		},
	}
}

// newDeleteCmd creates the 'delete' subcommand.
func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdDelete + " [id]",
		Short: constants.DescDelete,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(args[0])
			if err != nil {
				utils.Error("invalid diagram id %q", args[0])
				exit(1)
			}
			withStorage(func(ctx context.Context, store storage.Storage) error {
				if err := store.DeleteDiagram(ctx, id); err != nil {
					return err
				}
				utils.User("Deleted %s", id)
				return nil
			})
		},
	}
}

// newSearchCmd creates the 'search' subcommand.
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdSearch + " [query]",
		Short: constants.DescSearch,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withStorage(func(ctx context.Context, store storage.Storage) error {
				hits, err := store.SearchDiagrams(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(hits)
			})
		},
	}
}

// newStatsCmd creates the 'stats' subcommand.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counts of stored diagrams by type",
		Run: func(cmd *cobra.Command, args []string) {
			withStorage(func(ctx context.Context, store storage.Storage) error {
				stats, err := store.Stats(ctx)
				if err != nil {
					return err
				}
				return printJSON(stats)
			})
		},
	}
}
