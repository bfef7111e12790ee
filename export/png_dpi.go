package export

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/d3flow/mindflow/utils"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// metersPerInch converts DPI to the pixels-per-meter unit pHYs requires.
const metersPerInch = 0.0254

// SetPNGDPI stamps a pHYs chunk with the given DPI into PNG data, replacing
// an existing one. Screenshot pipelines emit no density metadata, so print
// software would otherwise assume 72 DPI.
func SetPNGDPI(data []byte, dpi int) ([]byte, error) {
	if dpi <= 0 {
		return nil, utils.Errorf("dpi must be positive, got %d", dpi)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, utils.Errorf("not a PNG file")
	}

	phys := buildPhysChunk(dpi)
	var out bytes.Buffer
	out.Write(pngSignature)

	inserted := false
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		end := pos + 8 + length + 4
		if end > len(data) {
			return nil, utils.Errorf("truncated PNG chunk %q", chunkType)
		}
		switch chunkType {
		case "pHYs":
			// Drop the old density chunk; ours goes after IHDR.
		default:
			out.Write(data[pos:end])
		}
		if chunkType == "IHDR" && !inserted {
			out.Write(phys)
			inserted = true
		}
		pos = end
		if chunkType == "IEND" {
			break
		}
	}
	if !inserted {
		return nil, utils.Errorf("PNG has no IHDR chunk")
	}
	return out.Bytes(), nil
}

// PNGDPI reads the horizontal DPI recorded in a PNG's pHYs chunk, or 0 if
// none is present.
func PNGDPI(data []byte) int {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0
	}
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		end := pos + 8 + length + 4
		if end > len(data) {
			return 0
		}
		if chunkType == "pHYs" && length == 9 && data[pos+16] == 1 {
			ppm := binary.BigEndian.Uint32(data[pos+8 : pos+12])
			return int(float64(ppm)*metersPerInch + 0.5)
		}
		pos = end
	}
	return 0
}

func buildPhysChunk(dpi int) []byte {
	ppm := uint32(float64(dpi)/metersPerInch + 0.5)
	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: meters
	crc := crc32.ChecksumIEEE(chunk[4:])
	return binary.BigEndian.AppendUint32(chunk, crc)
}
