package slidecat

import (
	"strings"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
	"go.uber.org/zap"
)

// blankLayoutSlot is the position of the blank layout in the default
// Office theme.
const blankLayoutSlot = 6

// Merge concatenates the slides of inputs into output. The first input is
// the base: its slides, layouts and masters are kept as they are. Slides of
// the other inputs are rebuilt on a blank layout of the base by copying
// their shapes and, when it is a solid color, their background.
func Merge(inputs []string, output string, opts Options) (string, error) {
	log := opts.logger()

	if len(inputs) == 0 {
		return "", ErrNoInputs
	}
	for _, in := range inputs {
		if err := checkExists(in); err != nil {
			return "", err
		}
	}

	base, err := openPresentation(inputs[0])
	if err != nil {
		return "", err
	}

	var layout *pptx.Layout
	for _, in := range inputs[1:] {
		src, err := openPresentation(in)
		if err != nil {
			return "", err
		}
		if src.SlideCount() == 0 {
			continue
		}
		if layout == nil {
			if layout, err = selectBlankLayout(base, opts.BlankLayout); err != nil {
				return "", NewDocumentError(inputs[0], "merge", err)
			}
			log.Debug("selected layout",
				zap.String("name", layout.Name),
				zap.String("part", layout.Part))
		}

		im := pptx.NewImporter(base, src)
		for i := 0; i < src.SlideCount(); i++ {
			if err := appendSlide(base, src, im, layout, i); err != nil {
				return "", NewDocumentError(in, "merge", err)
			}
		}
		log.Debug("merged presentation",
			zap.String("file", in),
			zap.Int("slides", src.SlideCount()),
			zap.Int("importedParts", im.ImportedParts()))
	}

	if err := savePresentation(base, output); err != nil {
		return "", err
	}
	return output, nil
}

// appendSlide copies slide i of src onto a new slide of dst.
func appendSlide(dst, src *pptx.Presentation, im *pptx.Importer, layout *pptx.Layout, i int) error {
	from, err := src.Slide(i)
	if err != nil {
		return err
	}
	to, err := dst.AddSlide(layout)
	if err != nil {
		return err
	}
	if err := im.CopyShapes(to, from); err != nil {
		return err
	}
	// A slide without a readable solid RGB fill keeps the layout background.
	_ = pptx.CopySolidBackground(to, from)
	return nil
}

// selectBlankLayout picks the layout named name, else the layout of type
// "blank", else the conventional slot, else the first layout.
func selectBlankLayout(prs *pptx.Presentation, name string) (*pptx.Layout, error) {
	layouts, err := prs.Layouts()
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, ErrNoLayouts
	}
	if name != "" {
		for _, l := range layouts {
			if strings.EqualFold(l.Name, name) {
				return l, nil
			}
		}
	}
	for _, l := range layouts {
		if l.Type == "blank" {
			return l, nil
		}
	}
	if len(layouts) > blankLayoutSlot {
		return layouts[blankLayoutSlot], nil
	}
	return layouts[0], nil
}
