package slidecat

import (
	"sort"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
	"go.uber.org/zap"
)

// RetainSlides removes every slide of prs whose zero-based index is not in
// keep. Kept slides stay in their relative order. Slides are removed from
// the highest index down, since each removal shifts the indices after it.
//
// An empty keep set leaves zero slides. Indices outside the slide list are
// never matched and have no effect.
func RetainSlides(prs *pptx.Presentation, keep []int, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	kept := make(map[int]bool, len(keep))
	for _, i := range keep {
		kept[i] = true
	}

	var remove []int
	for i := 0; i < prs.SlideCount(); i++ {
		if !kept[i] {
			remove = append(remove, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(remove)))

	for _, i := range remove {
		if err := prs.RemoveSlide(i); err != nil {
			return err
		}
	}
	logger.Debug("retained slides",
		zap.Int("kept", prs.SlideCount()),
		zap.Int("removed", len(remove)))
	return nil
}

// indexRange returns the zero-based indices [start, end).
func indexRange(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}
