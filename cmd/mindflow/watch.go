package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/blob"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/event"
	"github.com/d3flow/mindflow/preview"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/utils"
)

// newWatchCmd creates the 'watch' subcommand.
func newWatchCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   constants.CmdWatch + " [file]",
		Short: constants.DescWatch,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			file := args[0]
			cfg := loadRuntimeConfig()
			diagramType, err := resolveType(typ, file)
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			blobs, err := blob.NewBlobStoreFromConfig(cfg)
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			bus, err := event.NewEventBusFromConfig(&cfg.Event)
			if err != nil {
				utils.Error("failed to create event bus: %v", err)
				exit(1)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := &preview.Watcher{
				Path:     file,
				Type:     diagramType,
				Renderer: render.NewRenderer(),
				Bus:      bus,
				Blobs:    blobs,
				Debounce: time.Duration(cfg.Preview.DebounceMs) * time.Millisecond,
			}
			utils.User("Watching %s (Ctrl-C to stop)", file)
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				utils.Error("watch failed: %v", err)
				exit(1)
			}
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type; detected from the file when omitted")
	return cmd
}
