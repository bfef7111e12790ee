package constants

// ============================================================================
// CONFIGURATION
// ============================================================================

// Configuration Files
const (
	ConfigFileName    = "mindflow.config.json"
	DiagramSchemaFile = "diagram.schema.json"
)

// Environment Variables
const (
	EnvDebug    = "MINDFLOW_DEBUG"
	EnvHeadless = "MINDFLOW_HEADLESS"
	EnvHome     = "MINDFLOW_HOME"
)

// Storage Drivers
const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Blob Drivers
const (
	BlobDriverFilesystem = "filesystem"
	BlobDriverS3         = "s3"
)

// Event Drivers
const (
	EventDriverMemory = "memory"
	EventDriverNATS   = "nats"
)

// ============================================================================
// DIAGRAMS
// ============================================================================

// Export Formats
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
)

// Event Topics
const (
	TopicDiagramChanged = "diagram.changed"
	TopicPreviewReload  = "preview.reload"
)

// Gantt CSV Columns
const (
	ColumnTask         = "task"
	ColumnStart        = "start"
	ColumnEnd          = "end"
	ColumnStartAlias   = "start_date"
	ColumnEndAlias     = "end_date"
	ColumnCategory     = "category"
	ColumnProgress     = "progress"
	ColumnDependencies = "dependencies"
)

// DependencySeparator splits the dependencies cell of a Gantt CSV row.
const DependencySeparator = ";"

// DefaultCategory is used when a Gantt row has no category cell.
const DefaultCategory = "Default"

// ============================================================================
// CLI COMMANDS & DESCRIPTIONS
// ============================================================================

// Command names
const (
	CmdRender   = "render"
	CmdExport   = "export"
	CmdValidate = "validate"
	CmdGraph    = "graph"
	CmdSample   = "sample"
	CmdSave     = "save"
	CmdList     = "list"
	CmdGet      = "get"
	CmdDelete   = "delete"
	CmdSearch   = "search"
	CmdServe    = "serve"
	CmdWatch    = "watch"
	CmdMCP      = "mcp"
)

// Command descriptions
const (
	DescRender   = "Render a diagram source to HTML"
	DescExport   = "Export a diagram to HTML, PNG, SVG, or PDF"
	DescValidate = "Validate a diagram source or document"
	DescGraph    = "Print the node/edge graph of a diagram (Mermaid or DOT)"
	DescSample   = "Print a built-in sample source for a diagram type"
	DescSave     = "Save a diagram document to the local store"
	DescList     = "List stored diagrams"
	DescGet      = "Show a stored diagram"
	DescDelete   = "Delete a stored diagram"
	DescSearch   = "Search stored diagrams by title or description"
	DescServe    = "Start the live preview HTTP server"
	DescWatch    = "Watch a source file and re-render on change"
	DescMCP      = "MCP server commands"
)

// ============================================================================
// MESSAGES
// ============================================================================

// Error message formats
const (
	ErrStorageCreateFailed = "failed to create storage: %v"
	ErrStorageUnsupported  = "unsupported storage driver: %s"
	ErrRenderFailed        = "render failed: %v"
	ErrExportFailed        = "export failed: %v"
)

// JSONIndent is the indentation used for human-readable JSON output.
const JSONIndent = "  "
