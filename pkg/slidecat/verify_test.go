package slidecat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/slidecat-go/internal/pptxtest"
)

func TestVerify(t *testing.T) {
	tmpDir := t.TempDir()
	src := pptxtest.WriteTitled(t, tmpDir, "deck", 4)

	report := Verify(src, testOptions(t))
	if !report.Valid {
		t.Fatalf("Expected a valid report, got error %q", report.Error)
	}
	if report.File != "deck.pptx" {
		t.Errorf("File = %q, expected deck.pptx", report.File)
	}
	if report.Slides != 4 || report.Layouts != 7 || report.Masters != 1 {
		t.Errorf("Counts = %d slides, %d layouts, %d masters", report.Slides, report.Layouts, report.Masters)
	}
	if report.SlideWidth == nil || *report.SlideWidth != 960 || report.SlideHeight == nil || *report.SlideHeight != 720 {
		t.Errorf("Slide size = %v x %v, expected 960 x 720", report.SlideWidth, report.SlideHeight)
	}
	if len(report.SlideDetails) != 4 {
		t.Fatalf("Expected 4 slide details, got %d", len(report.SlideDetails))
	}
	for i, d := range report.SlideDetails {
		if d.Number != i+1 {
			t.Errorf("Detail %d number = %d", i, d.Number)
		}
		if d.Error != "" {
			t.Errorf("Slide %d error = %q", d.Number, d.Error)
		}
		if d.Shapes != 2 || !d.HasTitle {
			t.Errorf("Slide %d = %d shapes, has title %v", d.Number, d.Shapes, d.HasTitle)
		}
	}
	if report.SlideDetails[2].Title != "deck 3" {
		t.Errorf("Slide 3 title = %q", report.SlideDetails[2].Title)
	}
	if len(report.SlidesWithErrors()) != 0 {
		t.Errorf("SlidesWithErrors() = %v", report.SlidesWithErrors())
	}
}

func TestVerifyBrokenSlide(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "broken.pptx")
	pptxtest.Write(t, filename, pptxtest.Deck{Slides: []pptxtest.Slide{
		{Title: "Fine"},
		{Title: "Broken", Broken: true},
		{Body: []string{"untitled"}},
	}})

	report := Verify(filename, testOptions(t))
	if !report.Valid {
		t.Fatalf("A broken slide must not invalidate the file: %q", report.Error)
	}
	if len(report.SlideDetails) != 3 {
		t.Fatalf("Expected 3 slide details, got %d", len(report.SlideDetails))
	}
	if report.SlideDetails[0].Error != "" || !report.SlideDetails[0].HasTitle {
		t.Errorf("Slide 1 = %+v", report.SlideDetails[0])
	}
	if !strings.HasPrefix(report.SlideDetails[1].Error, "slide 2:") {
		t.Errorf("Slide 2 error = %q", report.SlideDetails[1].Error)
	}
	if report.SlideDetails[2].Error != "" || report.SlideDetails[2].HasTitle {
		t.Errorf("Slide 3 = %+v", report.SlideDetails[2])
	}
	if got := report.SlidesWithErrors(); len(got) != 1 || got[0] != 2 {
		t.Errorf("SlidesWithErrors() = %v, expected [2]", got)
	}
}

func TestVerifyInvalidFiles(t *testing.T) {
	tmpDir := t.TempDir()
	text := filepath.Join(tmpDir, "text.pptx")
	if err := os.WriteFile(text, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	encrypted := filepath.Join(tmpDir, "locked.pptx")
	pptxtest.WriteCompound(t, encrypted, "EncryptedPackage")
	legacy := filepath.Join(tmpDir, "old.ppt")
	pptxtest.WriteCompound(t, legacy, "PowerPoint Document")

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"missing", filepath.Join(tmpDir, "missing.pptx"), "input file not found"},
		{"not a package", text, "not an OOXML package"},
		{"encrypted", encrypted, "password protected"},
		{"legacy", legacy, "legacy binary .ppt format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Verify(tt.path, testOptions(t))
			if report.Valid {
				t.Fatal("Expected an invalid report")
			}
			if !strings.Contains(report.Error, tt.message) {
				t.Errorf("Error = %q, expected it to contain %q", report.Error, tt.message)
			}
			if report.Slides != 0 || len(report.SlideDetails) != 0 {
				t.Errorf("Invalid report carries partial counts: %+v", report)
			}
		})
	}
}
