package slidecat

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
)

// checkExists fails with ErrFileNotFound when path does not exist.
func checkExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return nil
}

func openPresentation(path string) (*pptx.Presentation, error) {
	prs, err := pptx.Open(path)
	if err != nil {
		return nil, NewDocumentError(path, "open", err)
	}
	return prs, nil
}

// savePresentation writes prs to path, creating parent directories.
func savePresentation(prs *pptx.Presentation, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := prs.Save(path); err != nil {
		return NewDocumentError(path, "save", err)
	}
	return nil
}
