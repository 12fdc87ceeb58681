package pptx_test

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/slidecat-go/internal/pptxtest"
	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, expected string
	}{
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/presentation.xml", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt/slides/slide1.xml", "/ppt/media/image2.png", "ppt/media/image2.png"},
	}

	for _, tt := range tests {
		result := pptx.ResolveTarget(tt.source, tt.target)
		if result != tt.expected {
			t.Errorf("ResolveTarget(%q, %q) = %q, expected %q", tt.source, tt.target, result, tt.expected)
		}
	}
}

func TestRelativeTarget(t *testing.T) {
	tests := []struct {
		source, target, expected string
	}{
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/presentation.xml", "ppt/slides/slide2.xml", "slides/slide2.xml"},
		{"ppt/slides/slide1.xml", "ppt/media/image1.png", "../media/image1.png"},
		{"ppt/slides/slide1.xml", "ppt/slideLayouts/slideLayout7.xml", "../slideLayouts/slideLayout7.xml"},
	}

	for _, tt := range tests {
		result := pptx.RelativeTarget(tt.source, tt.target)
		if result != tt.expected {
			t.Errorf("RelativeTarget(%q, %q) = %q, expected %q", tt.source, tt.target, result, tt.expected)
		}
		if back := pptx.ResolveTarget(tt.source, result); back != tt.target {
			t.Errorf("ResolveTarget(%q, %q) = %q, expected %q", tt.source, result, back, tt.target)
		}
	}
}

func TestReadPackageRejectsNonZip(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		write    func(filename string)
		expected error
	}{
		{
			name: "plain text",
			write: func(filename string) {
				if err := os.WriteFile(filename, []byte("not a presentation"), 0644); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
			expected: pptx.ErrNotPackage,
		},
		{
			name:     "encrypted",
			write:    func(filename string) { pptxtest.WriteCompound(t, filename, "EncryptedPackage") },
			expected: pptx.ErrEncrypted,
		},
		{
			name:     "legacy",
			write:    func(filename string) { pptxtest.WriteCompound(t, filename, "PowerPoint Document") },
			expected: pptx.ErrLegacyFormat,
		},
		{
			name:     "other compound file",
			write:    func(filename string) { pptxtest.WriteCompound(t, filename, "WordDocument") },
			expected: pptx.ErrNotPackage,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(tmpDir, fmt.Sprintf("case%d.pptx", i))
			tt.write(filename)

			_, err := pptx.Open(filename)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Open() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestReadPackageRequiresContentTypes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bare.pptx")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("ppt/presentation.xml")
	w.Write([]byte("<p:presentation/>"))
	zw.Close()
	f.Close()

	if _, err := pptx.OpenPackage(filename); !errors.Is(err, pptx.ErrNotPackage) {
		t.Errorf("OpenPackage() error = %v, expected ErrNotPackage", err)
	}
}

// zipEntries lists the entry names of a saved package.
func zipEntries(t *testing.T, filename string) []string {
	t.Helper()
	zr, err := zip.OpenReader(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func readEntry(t *testing.T, filename, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read entry %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("Entry %s not found in %s", name, filename)
	return ""
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.pptx")
	pptxtest.Write(t, src, pptxtest.Titled("Deck", 3))

	prs, err := pptx.Open(src)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	out := filepath.Join(tmpDir, "out.pptx")
	if err := prs.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	before := zipEntries(t, src)
	after := zipEntries(t, out)
	if after[0] != "[Content_Types].xml" {
		t.Errorf("First entry = %q, expected [Content_Types].xml", after[0])
	}
	sort.Strings(before)
	sort.Strings(after)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("Entries mismatch (-src +out):\n%s", diff)
	}
}

func TestSaveDropsOrphanedParts(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.pptx")
	deck := pptxtest.Titled("Deck", 2)
	deck.Slides[1].Picture = true
	pptxtest.Write(t, src, deck)

	prs, err := pptx.Open(src)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := prs.RemoveSlide(1); err != nil {
		t.Fatalf("RemoveSlide failed: %v", err)
	}
	out := filepath.Join(tmpDir, "out.pptx")
	if err := prs.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, name := range zipEntries(t, out) {
		switch name {
		case "ppt/slides/slide2.xml", "ppt/slides/_rels/slide2.xml.rels", "ppt/media/image2.png":
			t.Errorf("Orphaned entry %s was written", name)
		}
	}
	types := readEntry(t, out, "[Content_Types].xml")
	if strings.Contains(types, "/ppt/slides/slide2.xml") {
		t.Error("Content type override for removed slide was kept")
	}
	if !strings.Contains(types, "/ppt/slides/slide1.xml") {
		t.Error("Content type override for kept slide is missing")
	}
}
