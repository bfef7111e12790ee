package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/preview"
	"github.com/d3flow/mindflow/utils"
)

var (
	exit       = os.Exit
	configPath string
	debug      bool
)

// NewRootCmd creates the root 'mindflow' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mindflow",
		Short: "Author, preview and export mindmaps, Gantt charts and flowcharts",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to mindflow config JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file, if present
		_ = godotenv.Load()
		if debug {
			utils.SetMode("debug")
		}
	}

	rootCmd.AddCommand(
		newRenderCmd(),
		newExportCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newSampleCmd(),
		newSaveCmd(),
		newListCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newServeCmd(),
		newWatchCmd(),
		newMCPCmd(),
	)
	return rootCmd
}

// loadRuntimeConfig reads the configured JSON config, falling back to the
// built-in defaults when the file does not exist.
func loadRuntimeConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Warn("failed to load config %s: %v", configPath, err)
		}
		return config.Default()
	}
	return cfg
}

// resolveType returns the explicit type if given, otherwise detects it from
// the file.
func resolveType(typ, path string) (model.DiagramType, error) {
	if typ != "" {
		return model.DiagramType(typ), nil
	}
	return preview.DetectType(path)
}
