package slidecat

import (
	"fmt"

	"go.uber.org/zap"
)

// Extract writes the slides of input selected by r to output and returns
// output. Range violations are reported as *RangeError before anything is
// written.
func Extract(input, output string, r SlideRange, opts Options) (string, error) {
	log := opts.logger()

	if err := checkExists(input); err != nil {
		return "", err
	}
	prs, err := openPresentation(input)
	if err != nil {
		return "", err
	}
	total := prs.SlideCount()
	if total == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoSlides, input)
	}

	keep, err := r.resolve(total)
	if err != nil {
		return "", err
	}
	if err := RetainSlides(prs, keep, log); err != nil {
		return "", err
	}
	if err := savePresentation(prs, output); err != nil {
		return "", err
	}
	log.Debug("extracted slides",
		zap.String("range", r.String()),
		zap.Int("slides", len(keep)),
		zap.String("output", output))
	return output, nil
}
