package pptx_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/slidecat-go/internal/pptxtest"
	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
)

// transplant copies slide 0 of src onto a new blank slide of dst.
func transplant(t *testing.T, dst, src *pptx.Presentation) (*pptx.Slide, *pptx.Slide, *pptx.Importer) {
	t.Helper()
	layouts, err := dst.Layouts()
	if err != nil {
		t.Fatalf("Layouts failed: %v", err)
	}
	to, err := dst.AddSlide(layouts[len(layouts)-1])
	if err != nil {
		t.Fatalf("AddSlide failed: %v", err)
	}
	from, err := src.Slide(0)
	if err != nil {
		t.Fatalf("Slide(0) failed: %v", err)
	}
	im := pptx.NewImporter(dst, src)
	if err := im.CopyShapes(to, from); err != nil {
		t.Fatalf("CopyShapes failed: %v", err)
	}
	return to, from, im
}

func TestCopyShapes(t *testing.T) {
	dst := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{Title: "Base", Picture: true}}})
	src := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Title:   "Imported",
		Body:    []string{"first", "second"},
		Picture: true,
		Link:    "https://example.com/",
	}}})

	to, from, im := transplant(t, dst, src)

	fromShapes, _ := from.Shapes()
	toShapes, err := to.Shapes()
	if err != nil {
		t.Fatalf("Shapes failed: %v", err)
	}
	if len(toShapes) != len(fromShapes) {
		t.Fatalf("Copied %d shapes, expected %d", len(toShapes), len(fromShapes))
	}
	for i := range toShapes {
		if toShapes[i] == fromShapes[i] {
			t.Errorf("Shape %d is shared with the source slide", i)
		}
		if toShapes[i].Tag != fromShapes[i].Tag {
			t.Errorf("Shape %d tag = %q, expected %q", i, toShapes[i].Tag, fromShapes[i].Tag)
		}
	}
	if to.Title() != "Imported" {
		t.Errorf("Title() = %q, expected Imported", to.Title())
	}
	if im.ImportedParts() != 1 {
		t.Errorf("ImportedParts() = %d, expected 1", im.ImportedParts())
	}

	rels, err := dst.Package().Rels(to.Part)
	if err != nil {
		t.Fatalf("Rels failed: %v", err)
	}

	blip := toShapes[len(toShapes)-1].FindElement(".//a:blip")
	if blip == nil {
		t.Fatal("Copied picture has no a:blip")
	}
	embed, ok := rels.Get(blip.SelectAttrValue("r:embed", ""))
	if !ok {
		t.Fatalf("r:embed %q does not resolve", blip.SelectAttrValue("r:embed", ""))
	}
	media := pptx.ResolveTarget(to.Part, embed.Target)
	if media == "ppt/media/image1.png" {
		t.Error("Imported image overwrote the base deck's image")
	}
	if _, ok := dst.Package().Part(media); !ok {
		t.Errorf("Imported part %s is missing", media)
	}
	if ct := dst.Package().ContentType(media); ct != "image/png" {
		t.Errorf("ContentType(%s) = %q, expected image/png", media, ct)
	}

	click := toShapes[0].FindElement(".//a:hlinkClick")
	if click == nil {
		t.Fatal("Copied title has no a:hlinkClick")
	}
	link, ok := rels.Get(click.SelectAttrValue("r:id", ""))
	if !ok || !link.External || link.Target != "https://example.com/" {
		t.Errorf("Hyperlink relationship = %+v, %v", link, ok)
	}
}

func TestCopyShapesSurvivesSave(t *testing.T) {
	dst := openDeck(t, pptxtest.Titled("Base", 1))
	src := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{Title: "Pic", Picture: true}}})
	transplant(t, dst, src)

	out := filepath.Join(t.TempDir(), "merged.pptx")
	if err := dst.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reopened, err := pptx.Open(out)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	s, err := reopened.Slide(1)
	if err != nil {
		t.Fatalf("Slide(1) failed: %v", err)
	}
	shapes, err := s.Shapes()
	if err != nil || len(shapes) != 2 {
		t.Fatalf("Shapes() = %d, %v; expected 2", len(shapes), err)
	}
	rels, err := reopened.Package().Rels(s.Part)
	if err != nil {
		t.Fatalf("Rels failed: %v", err)
	}
	embed, ok := rels.Get(shapes[1].FindElement(".//a:blip").SelectAttrValue("r:embed", ""))
	if !ok {
		t.Fatal("Picture relationship lost on save")
	}
	if _, ok := reopened.Package().Part(pptx.ResolveTarget(s.Part, embed.Target)); !ok {
		t.Error("Imported image was not written")
	}
}

func TestImporterReusesParts(t *testing.T) {
	dst := openDeck(t, pptxtest.Titled("Base", 1))
	src := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{Title: "Pic", Picture: true}}})
	layouts, err := dst.Layouts()
	if err != nil {
		t.Fatalf("Layouts failed: %v", err)
	}
	from, err := src.Slide(0)
	if err != nil {
		t.Fatalf("Slide(0) failed: %v", err)
	}

	im := pptx.NewImporter(dst, src)
	for i := 0; i < 2; i++ {
		to, err := dst.AddSlide(layouts[0])
		if err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
		if err := im.CopyShapes(to, from); err != nil {
			t.Fatalf("CopyShapes failed: %v", err)
		}
	}
	if im.ImportedParts() != 1 {
		t.Errorf("ImportedParts() = %d, expected the image to be imported once", im.ImportedParts())
	}
}

func TestCopySolidBackground(t *testing.T) {
	tests := []struct {
		name     string
		source   pptxtest.Slide
		expected string
		err      error
	}{
		{"solid", pptxtest.Slide{Title: "A", Background: "1f4e79"}, "1F4E79", nil},
		{"theme", pptxtest.Slide{Title: "B", ThemeBackground: true}, "", pptx.ErrNoSolidBackground},
		{"none", pptxtest.Slide{Title: "C"}, "", pptx.ErrNoSolidBackground},
		{"invalid color", pptxtest.Slide{Title: "D", Background: "blue"}, "", pptx.ErrNoSolidBackground},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := openDeck(t, pptxtest.Titled("Base", 1))
			src := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{tt.source}})
			to, from, _ := transplant(t, dst, src)

			err := pptx.CopySolidBackground(to, from)
			if !errors.Is(err, tt.err) {
				t.Fatalf("CopySolidBackground() error = %v, expected %v", err, tt.err)
			}

			got, bgErr := to.BackgroundColor()
			if tt.err != nil {
				if bgErr == nil {
					t.Errorf("Destination background was written: %q", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("BackgroundColor() = %q, expected %q", got, tt.expected)
			}
			cSld := to.Root().ChildElements()[0]
			if cSld.ChildElements()[0].Tag != "bg" {
				t.Error("p:bg is not the first child of p:cSld")
			}
		})
	}
}
