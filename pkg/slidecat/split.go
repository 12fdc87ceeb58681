package slidecat

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Split writes the slides of input into consecutive files of chunkSize
// slides each under outDir. The last file may hold fewer slides. It
// returns the created paths in slide order.
func Split(input, outDir string, chunkSize int, opts Options) ([]string, error) {
	log := opts.logger()

	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	if err := checkExists(input); err != nil {
		return nil, err
	}

	prs, err := openPresentation(input)
	if err != nil {
		return nil, err
	}
	total := prs.SlideCount()
	if total == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSlides, input)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []string
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)

		// Each chunk starts from a fresh copy of the source.
		chunk, err := openPresentation(input)
		if err != nil {
			return files, err
		}
		if err := RetainSlides(chunk, indexRange(start, end), log); err != nil {
			return files, err
		}

		out := filepath.Join(outDir, chunkFileName(input, start+1, end))
		if err := chunk.Save(out); err != nil {
			return files, NewDocumentError(out, "save", err)
		}
		log.Debug("wrote chunk",
			zap.String("file", out),
			zap.Int("first", start+1),
			zap.Int("last", end))
		files = append(files, out)
	}
	return files, nil
}
