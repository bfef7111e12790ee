package parser

import "strings"

// normalizeSource strips a UTF-8 BOM, normalizes line endings to \n, and
// trims surrounding whitespace. Every parser runs its input through this
// first so clipboard and Windows-authored sources behave identically.
func normalizeSource(src string) string {
	src = strings.TrimPrefix(src, "\ufeff")
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.TrimSpace(src)
}
