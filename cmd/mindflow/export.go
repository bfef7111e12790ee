package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/blob"
	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/export"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/storage"
	"github.com/d3flow/mindflow/utils"
)

// newExportCmd creates the 'export' subcommand. The input is either a source
// file or, with --id, a stored diagram.
func newExportCmd() *cobra.Command {
	var (
		typ     string
		format  string
		out     string
		title   string
		id      string
		dpi     int
		paper   string
		quality string
	)
	cmd := &cobra.Command{
		Use:   constants.CmdExport + " [file]",
		Short: constants.DescExport,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadRuntimeConfig()
			if quality != "" {
				rec := export.RecommendedSettings(quality)
				cfg.Export.PNGDPI = rec.PNGDPI
				cfg.Export.PNGWidth = rec.PNGWidth
				cfg.Export.PNGHeight = rec.PNGHeight
				cfg.Export.PDFPaperSize = rec.PDFPaperSize
			}
			if dpi > 0 {
				cfg.Export.PNGDPI = dpi
			}
			if paper != "" {
				cfg.Export.PDFPaperSize = paper
			}

			ctx := context.Background()
			d, err := exportInput(ctx, cfg, args, id, typ, title)
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}

			exporter := export.NewExporter(cfg.Export, render.NewRenderer())
			defer exporter.Close()

			data, err := exporter.Export(ctx, d, format)
			if err != nil {
				if format != constants.FormatHTML && strings.Contains(err.Error(), "headless browser unavailable") {
					utils.User("Headless browser not available; only HTML export works in this environment.")
					utils.User("Install Chromium or re-run with --format html.")
				}
				utils.Error(constants.ErrExportFailed, err)
				exit(1)
			}

			if out != "" {
				if err := os.WriteFile(out, data, 0o644); err != nil {
					utils.Error("failed to write %s: %v", out, err)
					exit(1)
				}
				utils.User("Exported %s (%d bytes)", out, len(data))
				return
			}
			store, err := blob.NewBlobStoreFromConfig(cfg)
			if err != nil {
				utils.Error("%v", err)
				exit(1)
			}
			name := exportFileName(d, format)
			url, err := store.Put(ctx, data, mimeFor(format), name)
			if err != nil {
				utils.Error("failed to store export: %v", err)
				exit(1)
			}
			utils.User("Exported %s (%d bytes)", url, len(data))
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type; detected from the file when omitted")
	cmd.Flags().StringVarP(&format, "format", "f", constants.FormatPNG, "export format: html, png, svg or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to the configured export directory)")
	cmd.Flags().StringVar(&title, "title", "", "diagram title (defaults to the file name)")
	cmd.Flags().StringVar(&id, "id", "", "export a stored diagram by ID instead of a file")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "PNG density override")
	cmd.Flags().StringVar(&paper, "paper", "", "PDF paper size: A4, A3 or Letter")
	cmd.Flags().StringVar(&quality, "quality", "", "apply recommended settings: web, presentation or print")
	return cmd
}

// exportInput builds the diagram to export from either a file argument or a
// stored diagram ID.
func exportInput(ctx context.Context, cfg *config.Config, args []string, id, typ, title string) (*model.Diagram, error) {
	if id != "" {
		diagramID, err := uuid.Parse(id)
		if err != nil {
			return nil, utils.Errorf("invalid diagram id %q: %w", id, err)
		}
		store, err := storage.NewStorageFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.GetDiagram(ctx, diagramID)
	}
	if len(args) == 0 {
		return nil, utils.Errorf("pass a source file or --id")
	}
	file := args[0]
	diagramType, err := resolveType(typ, file)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, utils.Errorf("failed to read %s: %w", file, err)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return &model.Diagram{Title: title, Type: diagramType, Source: string(source)}, nil
}

func exportFileName(d *model.Diagram, format string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, d.Title)
	if base == "" {
		base = "diagram"
	}
	return fmt.Sprintf("%s.%s", base, format)
}

func mimeFor(format string) string {
	switch format {
	case constants.FormatHTML:
		return constants.ContentTypeHTML
	case constants.FormatPNG:
		return "image/png"
	case constants.FormatSVG:
		return "image/svg+xml"
	case constants.FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}
