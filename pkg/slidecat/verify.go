package slidecat

import (
	"path/filepath"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/models"
	"github.com/ukaji3/slidecat-go/pkg/slidecat/pptx"
	"go.uber.org/zap"
)

// Verify inspects the presentation at path. It never fails: an unreadable
// file yields a report with Valid set to false, and a broken slide is
// recorded in its SlideDetail while the remaining slides are inspected.
func Verify(path string, opts Options) models.VerificationReport {
	log := opts.logger()
	report := models.VerificationReport{
		File:         filepath.Base(path),
		SlideDetails: []models.SlideDetail{},
	}

	if err := checkExists(path); err != nil {
		report.Error = err.Error()
		return report
	}
	prs, err := pptx.Open(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	layouts, err := prs.Layouts()
	if err != nil {
		report.Error = err.Error()
		return report
	}

	report.Valid = true
	report.Slides = prs.SlideCount()
	report.Layouts = len(layouts)
	report.Masters = prs.MasterCount()
	if cx, cy, ok := prs.SlideSize(); ok {
		w, h := pptx.EMUToPixels(cx), pptx.EMUToPixels(cy)
		report.SlideWidth = &w
		report.SlideHeight = &h
	}

	for i := 0; i < report.Slides; i++ {
		detail := inspectSlide(prs, i)
		if detail.Error != "" {
			log.Debug("slide inspection failed",
				zap.Int("slide", detail.Number),
				zap.String("error", detail.Error))
		}
		report.SlideDetails = append(report.SlideDetails, detail)
	}
	return report
}

func inspectSlide(prs *pptx.Presentation, i int) models.SlideDetail {
	detail := models.SlideDetail{Number: i + 1}
	slide, err := prs.Slide(i)
	if err != nil {
		detail.Error = err.Error()
		return detail
	}
	shapes, err := slide.Shapes()
	if err != nil {
		detail.Error = err.Error()
		return detail
	}
	detail.Shapes = len(shapes)
	if detail.HasTitle, err = slide.HasTitle(); err != nil {
		detail.Error = err.Error()
		return detail
	}
	detail.Title = slide.Title()
	return detail
}
