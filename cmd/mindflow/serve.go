package main

import (
	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/event"
	"github.com/d3flow/mindflow/preview"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/storage"
	"github.com/d3flow/mindflow/telemetry"
	"github.com/d3flow/mindflow/utils"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   constants.CmdServe,
		Short: constants.DescServe,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadRuntimeConfig()
			if addr != "" {
				cfg.Preview.Addr = addr
			}
			if err := telemetry.Init(cfg); err != nil {
				utils.Warn("tracing disabled: %v", err)
			}
			store, err := storage.NewStorageFromConfig(cfg)
			if err != nil {
				utils.Error(constants.ErrStorageCreateFailed, err)
				exit(1)
			}
			defer store.Close()
			bus, err := event.NewEventBusFromConfig(&cfg.Event)
			if err != nil {
				utils.Error("failed to create event bus: %v", err)
				exit(1)
			}
			srv := preview.NewServer(cfg, store, render.NewRenderer(), bus)
			if err := srv.ListenAndServe(); err != nil {
				utils.Error("preview server failed: %v", err)
				exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
