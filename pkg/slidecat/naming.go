package slidecat

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const defaultExt = ".pptx"

// chunkFileName names the file holding the 1-indexed slides first..last.
func chunkFileName(input string, first, last int) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := norm.NFC.String(strings.TrimSuffix(base, ext))
	if ext == "" {
		ext = defaultExt
	}
	if first == last {
		return fmt.Sprintf("%s_slide_%03d%s", stem, first, ext)
	}
	return fmt.Sprintf("%s_slides_%03d-%03d%s", stem, first, last, ext)
}
