package config

// Default directories and file paths for mindflow.
const (
	// DefaultConfigDir is the base directory for storing mindflow artifacts.
	DefaultConfigDir = ".mindflow"
	// DefaultConfigPath is the default runtime config location.
	DefaultConfigPath = DefaultConfigDir + "/mindflow.config.json"
	// DefaultExportDir is the default directory for exported artifacts.
	DefaultExportDir = DefaultConfigDir + "/exports"
	// DefaultSQLiteDSN is the default data source name for SQLite storage.
	DefaultSQLiteDSN = DefaultConfigDir + "/diagrams.db"
)

// Export defaults, matching the documented recommendations for print-quality
// output (300 DPI PNG, vector A4 PDF).
const (
	DefaultPNGDPI    = 300
	DefaultPNGWidth  = 1920
	DefaultPNGHeight = 1080
	DefaultPaperSize = "A4"
)

// DefaultPreviewAddr is where the preview server listens when unset.
const DefaultPreviewAddr = "127.0.0.1:8422"
