package constants

// Content Types
const (
	ContentTypeJSON           = "application/json"
	ContentTypeHTML           = "text/html; charset=utf-8"
	ContentTypeText           = "text/plain"
	ContentTypeEventStream    = "text/event-stream"
	ContentTypeSVG            = "image/svg+xml"
	ContentTypePNG            = "image/png"
	ContentTypePDF            = "application/pdf"
	ContentTypeTextVndMermaid = "text/vnd.mermaid"
)

// HTTP Headers
const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
)

// Preview Endpoints
const (
	EndpointRender   = "/render"
	EndpointValidate = "/validate"
	EndpointDiagrams = "/diagrams"
	EndpointPreview  = "/preview/"
	EndpointEvents   = "/events"
	EndpointMetrics  = "/metrics"
)
