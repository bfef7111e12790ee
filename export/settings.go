package export

// PaperSize is a named PDF paper geometry in inches.
type PaperSize struct {
	Width  float64
	Height float64
}

// paperSizes maps supported PDF paper names.
var paperSizes = map[string]PaperSize{
	"A4":     {Width: 8.27, Height: 11.69},
	"A3":     {Width: 11.69, Height: 16.54},
	"Letter": {Width: 8.5, Height: 11},
}

// PaperSizeByName resolves a paper size, falling back to A4 for unknown
// names.
func PaperSizeByName(name string) PaperSize {
	if size, ok := paperSizes[name]; ok {
		return size
	}
	return paperSizes["A4"]
}

// Recommended holds export settings suggested for a use case.
type Recommended struct {
	PNGDPI       int    `json:"png_dpi"`
	PNGWidth     int    `json:"png_width"`
	PNGHeight    int    `json:"png_height"`
	PDFPaperSize string `json:"pdf_paper_size"`
}

// RecommendedSettings returns suggested settings for "web", "presentation"
// or "print"; anything else gets the web profile.
func RecommendedSettings(useCase string) Recommended {
	switch useCase {
	case "presentation":
		return Recommended{PNGDPI: 150, PNGWidth: 1920, PNGHeight: 1080, PDFPaperSize: "A4"}
	case "print":
		return Recommended{PNGDPI: 300, PNGWidth: 3840, PNGHeight: 2160, PDFPaperSize: "A3"}
	default:
		return Recommended{PNGDPI: 72, PNGWidth: 1920, PNGHeight: 1080, PDFPaperSize: "A4"}
	}
}
