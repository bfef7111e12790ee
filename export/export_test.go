package export

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/render"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSetPNGDPI(t *testing.T) {
	data := encodePNG(t)
	require.Equal(t, 0, PNGDPI(data))

	stamped, err := SetPNGDPI(data, 300)
	require.NoError(t, err)
	require.Equal(t, 300, PNGDPI(stamped))

	// Still a decodable PNG.
	img, err := png.Decode(bytes.NewReader(stamped))
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
}

func TestSetPNGDPI_ReplacesExisting(t *testing.T) {
	data := encodePNG(t)
	first, err := SetPNGDPI(data, 72)
	require.NoError(t, err)
	second, err := SetPNGDPI(first, 300)
	require.NoError(t, err)
	require.Equal(t, 300, PNGDPI(second))
	require.Equal(t, 1, bytes.Count(second, []byte("pHYs")))
}

func TestSetPNGDPI_ChunkCRC(t *testing.T) {
	stamped, err := SetPNGDPI(encodePNG(t), 300)
	require.NoError(t, err)

	i := bytes.Index(stamped, []byte("pHYs"))
	require.Greater(t, i, 0)
	body := stamped[i : i+13] // type + 9 data bytes
	crc := binary.BigEndian.Uint32(stamped[i+13 : i+17])
	require.Equal(t, crc32.ChecksumIEEE(body), crc)

	ppm := binary.BigEndian.Uint32(stamped[i+4 : i+8])
	require.Equal(t, uint32(11811), ppm) // 300 dpi in pixels per meter
}

func TestSetPNGDPI_InvalidInput(t *testing.T) {
	_, err := SetPNGDPI([]byte("not a png"), 300)
	require.Error(t, err)

	_, err = SetPNGDPI(encodePNG(t), 0)
	require.Error(t, err)
}

func TestPaperSizeByName(t *testing.T) {
	require.Equal(t, 8.27, PaperSizeByName("A4").Width)
	require.Equal(t, 16.54, PaperSizeByName("A3").Height)
	require.Equal(t, 8.5, PaperSizeByName("Letter").Width)
	require.Equal(t, PaperSizeByName("A4"), PaperSizeByName("B5"))
}

func TestRecommendedSettings(t *testing.T) {
	require.Equal(t, 72, RecommendedSettings("web").PNGDPI)
	require.Equal(t, 150, RecommendedSettings("presentation").PNGDPI)

	rec := RecommendedSettings("print")
	require.Equal(t, 300, rec.PNGDPI)
	require.Equal(t, "A3", rec.PDFPaperSize)

	require.Equal(t, RecommendedSettings("web"), RecommendedSettings("unknown"))
}

func TestExport_HTMLWithoutBrowser(t *testing.T) {
	e := NewExporter(config.Default().Export, render.NewRenderer())
	d := &model.Diagram{Title: "Map", Type: model.Mindmap, Source: "Root,A\n"}

	data, err := e.Export(context.Background(), d, constants.FormatHTML)
	require.NoError(t, err)
	require.Contains(t, string(data), "exportready")
	require.Contains(t, string(data), "<title>Map</title>")
	require.NoError(t, e.Close())
}

func TestExport_UnsupportedFormat(t *testing.T) {
	e := NewExporter(config.Default().Export, render.NewRenderer())
	d := &model.Diagram{Title: "Map", Type: model.Mindmap, Source: "Root,A\n"}
	_, err := e.Export(context.Background(), d, "bmp")
	require.Error(t, err)
}

func TestExport_InvalidSource(t *testing.T) {
	e := NewExporter(config.Default().Export, render.NewRenderer())
	d := &model.Diagram{Title: "Bad", Type: model.Gantt, Source: "nope"}
	_, err := e.Export(context.Background(), d, constants.FormatHTML)
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	require.Equal(t, []string{"html", "png", "svg", "pdf"}, Formats())
}
