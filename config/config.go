package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Storage StorageConfig  `json:"storage"`
	Blob    BlobConfig     `json:"blob"`
	Event   EventConfig    `json:"event"`
	Export  ExportConfig   `json:"export"`
	Preview PreviewConfig  `json:"preview"`
	Editor  EditorConfig   `json:"editor"`
	Log     LogConfig      `json:"log"`
	Tracing *TracingConfig `json:"tracing,omitempty"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type BlobConfig struct {
	Driver string `json:"driver"`
	// Directory for the filesystem driver, bucket name for s3.
	Directory string `json:"directory,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
}

type EventConfig struct {
	Driver string `json:"driver"`
	URL    string `json:"url,omitempty"`
}

// ExportConfig mirrors the export section of the original settings file:
// PNG raster geometry plus PDF paper handling.
type ExportConfig struct {
	PNGDPI        int    `json:"png_dpi"`
	PNGWidth      int    `json:"png_width"`
	PNGHeight     int    `json:"png_height"`
	PNGKeepAspect bool   `json:"png_keep_aspect"`
	PDFVector     bool   `json:"pdf_vector"`
	PDFPaperSize  string `json:"pdf_paper_size"`
	Directory     string `json:"directory,omitempty"`
}

type PreviewConfig struct {
	Addr string `json:"addr,omitempty"`
	// DebounceMs throttles watcher-triggered re-renders.
	DebounceMs int `json:"debounce_ms,omitempty"`
}

type EditorConfig struct {
	AutoSave         bool `json:"auto_save"`
	AutoSaveInterval int  `json:"auto_save_interval"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type TracingConfig struct {
	ServiceName string `json:"service_name,omitempty"`
	Exporter    string `json:"exporter,omitempty"` // "stdout" or "otlp"
	Endpoint    string `json:"endpoint,omitempty"`
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			PNGDPI:        DefaultPNGDPI,
			PNGWidth:      DefaultPNGWidth,
			PNGHeight:     DefaultPNGHeight,
			PNGKeepAspect: true,
			PDFVector:     true,
			PDFPaperSize:  DefaultPaperSize,
			Directory:     DefaultExportDir,
		},
		Preview: PreviewConfig{
			Addr:       DefaultPreviewAddr,
			DebounceMs: 250,
		},
		Editor: EditorConfig{
			AutoSave:         true,
			AutoSaveInterval: 30,
		},
	}
}

// LoadConfig reads the JSON config at path, layered over Default.
// A missing file is reported via os.IsNotExist on the returned error.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg := Default()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values the JSON layer left unset.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Export.PNGDPI == 0 {
		c.Export.PNGDPI = d.Export.PNGDPI
	}
	if c.Export.PNGWidth == 0 {
		c.Export.PNGWidth = d.Export.PNGWidth
	}
	if c.Export.PNGHeight == 0 {
		c.Export.PNGHeight = d.Export.PNGHeight
	}
	if c.Export.PDFPaperSize == "" {
		c.Export.PDFPaperSize = d.Export.PDFPaperSize
	}
	if c.Export.Directory == "" {
		c.Export.Directory = d.Export.Directory
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = d.Preview.Addr
	}
	if c.Preview.DebounceMs == 0 {
		c.Preview.DebounceMs = d.Preview.DebounceMs
	}
}

// Save writes the config back to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
