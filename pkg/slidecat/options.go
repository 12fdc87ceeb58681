// Package slidecat splits, merges, extracts and verifies PowerPoint decks.
package slidecat

import "go.uber.org/zap"

// DefaultChunkSize is the number of slides per file when splitting.
const DefaultChunkSize = 1

// Options configures the slide operations.
type Options struct {
	// Logger receives debug events. If nil, logging is disabled.
	Logger *zap.Logger
	// BlankLayout names the layout merged slides are placed on. If empty,
	// the layout of type "blank" is used, then slot 6, then the first one.
	BlankLayout string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
