package slidecat

import (
	"fmt"
	"strconv"
	"strings"
)

// SlideRange is an inclusive, 1-indexed slide range.
type SlideRange struct {
	Start int
	// End is ignored when OpenEnded is set.
	End int
	// OpenEnded extends the range to the last slide.
	OpenEnded bool
}

// ParseRange parses "N-M" (slides N through M) or "N-" (N to the end).
func ParseRange(s string) (SlideRange, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return SlideRange{}, fmt.Errorf("%w: %q: range must be in format 'start-end' or 'start-'", ErrInvalidRange, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return SlideRange{}, fmt.Errorf("%w: %q: start is not a number", ErrInvalidRange, s)
	}
	if strings.TrimSpace(endStr) == "" {
		return SlideRange{Start: start, OpenEnded: true}, nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return SlideRange{}, fmt.Errorf("%w: %q: end is not a number", ErrInvalidRange, s)
	}
	return SlideRange{Start: start, End: end}, nil
}

// String formats the range the way ParseRange accepts it.
func (r SlideRange) String() string {
	if r.OpenEnded {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// resolve validates r against total slides and returns the zero-based
// keep set [start-1, end).
func (r SlideRange) resolve(total int) ([]int, error) {
	if r.Start < 1 || r.Start > total {
		return nil, &RangeError{Bound: "start", Value: r.Start, Min: 1, Max: total}
	}
	end := total
	if !r.OpenEnded {
		end = r.End
	}
	if end < r.Start || end > total {
		return nil, &RangeError{Bound: "end", Value: end, Min: r.Start, Max: total}
	}
	return indexRange(r.Start-1, end), nil
}
