package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

// Package open errors.
var (
	// ErrNotPackage indicates the file is not a zip-based OPC package.
	ErrNotPackage = errors.New("not an OOXML package")
	// ErrEncrypted indicates a password-protected package, which Office
	// stores inside an OLE compound file.
	ErrEncrypted = errors.New("presentation is password protected")
	// ErrLegacyFormat indicates a binary PowerPoint 97-2003 file.
	ErrLegacyFormat = errors.New("legacy binary .ppt format is not supported")
)

var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// inspectCompound explains why r, which failed to open as a zip, cannot be
// loaded. It returns nil when r is not an OLE compound file at all.
func inspectCompound(r io.ReaderAt) error {
	head := make([]byte, len(cfbSignature))
	if _, err := r.ReadAt(head, 0); err != nil || !bytes.Equal(head, cfbSignature) {
		return nil
	}

	doc, err := mscfb.New(r)
	if err != nil {
		return fmt.Errorf("%w: unreadable compound file: %v", ErrNotPackage, err)
	}

	var legacy bool
	var title string
	props := msoleps.New()
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			return ErrEncrypted
		case "PowerPoint Document":
			legacy = true
		}
		if msoleps.IsMSOLEPS(entry.Initial) {
			if perr := props.Reset(doc); perr != nil {
				continue
			}
			for _, p := range props.Property {
				if p.Name == "Title" {
					title = p.String()
				}
			}
		}
	}

	if legacy {
		if title != "" {
			return fmt.Errorf("%w (document %q)", ErrLegacyFormat, title)
		}
		return ErrLegacyFormat
	}
	return fmt.Errorf("%w: OLE compound file without a presentation", ErrNotPackage)
}
