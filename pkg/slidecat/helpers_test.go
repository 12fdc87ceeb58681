package slidecat

import (
	"fmt"
	"testing"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
	"go.uber.org/zap/zaptest"
)

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	return opts
}

// slideTitles opens filename and returns the title of every slide.
func slideTitles(t *testing.T, filename string) []string {
	t.Helper()
	prs, err := pptx.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", filename, err)
	}
	return presentationTitles(t, prs)
}

func presentationTitles(t *testing.T, prs *pptx.Presentation) []string {
	t.Helper()
	titles := []string{}
	for i := 0; i < prs.SlideCount(); i++ {
		s, err := prs.Slide(i)
		if err != nil {
			t.Fatalf("Slide(%d) failed: %v", i, err)
		}
		titles = append(titles, s.Title())
	}
	return titles
}

func titlesOf(prefix string, nums ...int) []string {
	titles := []string{}
	for _, n := range nums {
		titles = append(titles, fmt.Sprintf("%s %d", prefix, n))
	}
	return titles
}
