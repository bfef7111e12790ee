// Package export produces HTML, PNG, SVG and PDF artifacts from rendered
// diagrams. Raster and vector formats drive a headless Chromium through
// go-rod; HTML export needs no browser, which keeps the tool usable when
// Chromium is missing.
package export

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/telemetry"
	"github.com/d3flow/mindflow/utils"
)

// screenDPI is the CSS reference density; PNG scale factor is dpi/screenDPI.
const screenDPI = 72.0

// exportReadyTimeout bounds the wait for the page's exportready signal.
const exportReadyTimeout = 10 * time.Second

// Formats lists the supported export formats.
func Formats() []string {
	return []string{constants.FormatHTML, constants.FormatPNG, constants.FormatSVG, constants.FormatPDF}
}

// Exporter renders diagrams and converts them with a shared headless
// browser. The browser launches lazily on first non-HTML export; a mutex
// serializes page work since exports are infrequent and Chromium is the
// expensive part.
type Exporter struct {
	cfg      config.ExportConfig
	renderer *render.Renderer

	mu      sync.Mutex
	browser *rod.Browser
}

func NewExporter(cfg config.ExportConfig, renderer *render.Renderer) *Exporter {
	return &Exporter{cfg: cfg, renderer: renderer}
}

// Export renders the diagram and converts it to the requested format.
func (e *Exporter) Export(ctx context.Context, d *model.Diagram, format string) (data []byte, err error) {
	start := time.Now()
	defer func() { telemetry.CountExport(format, time.Since(start), err) }()

	html, err := e.renderer.RenderDiagram(d, true)
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	switch format {
	case constants.FormatHTML:
		return []byte(html), nil
	case constants.FormatPNG:
		return e.exportPNG(ctx, html)
	case constants.FormatSVG:
		return e.exportSVG(ctx, html)
	case constants.FormatPDF:
		return e.exportPDF(ctx, html)
	default:
		return nil, utils.Errorf("unsupported export format: %s", format)
	}
}

// Capabilities describes what the exporter can currently produce.
type Capabilities struct {
	Formats []string `json:"formats"`
	Browser bool     `json:"browser"`
	Reason  string   `json:"reason,omitempty"`
}

// Probe checks whether the headless browser is available. Without it only
// HTML export works.
func (e *Exporter) Probe(ctx context.Context) Capabilities {
	page, err := e.page(ctx, "<!DOCTYPE html><html><body></body></html>")
	if err != nil {
		return Capabilities{
			Formats: []string{constants.FormatHTML},
			Browser: false,
			Reason:  err.Error(),
		}
	}
	page.Close()
	return Capabilities{Formats: Formats(), Browser: true}
}

// Close shuts down the shared browser, if one was launched.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}

func (e *Exporter) exportPNG(ctx context.Context, html string) ([]byte, error) {
	scale := float64(e.cfg.PNGDPI) / screenDPI
	if scale <= 0 {
		scale = 1
	}
	width := e.cfg.PNGWidth
	if width <= 0 {
		width = config.DefaultPNGWidth
	}
	height := e.cfg.PNGHeight
	if height <= 0 {
		height = config.DefaultPNGHeight
	}

	page, err := e.page(ctx, html)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: scale,
	})
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	e.waitExportReady(page)

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	if e.cfg.PNGDPI > 0 {
		if stamped, err := SetPNGDPI(data, e.cfg.PNGDPI); err == nil {
			data = stamped
		} else {
			utils.Warn("failed to set PNG DPI metadata: %v", err)
		}
	}
	return data, nil
}

func (e *Exporter) exportSVG(ctx context.Context, html string) ([]byte, error) {
	page, err := e.page(ctx, html)
	if err != nil {
		return nil, err
	}
	defer page.Close()
	e.waitExportReady(page)

	obj, err := page.Eval(`() => {
		const svg = document.querySelector('svg');
		return svg ? svg.outerHTML : null;
	}`)
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	svg := obj.Value.Str()
	if svg == "" {
		return nil, utils.Errorf("no SVG content found in rendered page")
	}
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" + svg), nil
}

func (e *Exporter) exportPDF(ctx context.Context, html string) ([]byte, error) {
	page, err := e.page(ctx, html)
	if err != nil {
		return nil, err
	}
	defer page.Close()
	e.waitExportReady(page)

	size := PaperSizeByName(e.cfg.PDFPaperSize)
	printBackground := true
	preferCSS := true
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        &size.Width,
		PaperHeight:       &size.Height,
		PrintBackground:   printBackground,
		PreferCSSPageSize: preferCSS,
	})
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	return data, nil
}

// page loads the HTML into a fresh tab of the shared browser.
func (e *Exporter) page(ctx context.Context, html string) (*rod.Page, error) {
	browser, err := e.ensureBrowser(ctx)
	if err != nil {
		return nil, err
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	page = page.Context(ctx)
	if err := page.SetDocumentContent(html); err != nil {
		page.Close()
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		return nil, utils.Errorf(constants.ErrExportFailed, err)
	}
	return page, nil
}

// waitExportReady polls for the exportready signal the standalone templates
// raise once rendering settles, giving up after a timeout so a broken page
// still exports something.
func (e *Exporter) waitExportReady(page *rod.Page) {
	deadline := time.Now().Add(exportReadyTimeout)
	for time.Now().Before(deadline) {
		obj, err := page.Eval(`() => window.exportReady === true`)
		if err == nil && obj.Value.Bool() {
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	utils.Debug("export readiness signal not seen, continuing")
}

func (e *Exporter) ensureBrowser(ctx context.Context) (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return e.browser, nil
	}
	url, err := launcher.New().Headless(headlessEnabled()).Launch()
	if err != nil {
		return nil, utils.Errorf("headless browser unavailable: %w", err)
	}
	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, utils.Errorf("headless browser unavailable: %w", err)
	}
	e.browser = browser
	return browser, nil
}

// headlessEnabled reports whether the browser should run headless; set
// MINDFLOW_HEADLESS=0 to watch exports in a visible window.
func headlessEnabled() bool {
	return os.Getenv(constants.EnvHeadless) != "0"
}
