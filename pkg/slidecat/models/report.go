// Package models defines the verification report data structures.
package models

// SlideDetail is the diagnostic record of one slide.
type SlideDetail struct {
	// Number is the slide number (1-based).
	Number int `json:"number"`
	// Shapes is the number of shapes in the slide's shape tree.
	Shapes int `json:"shapes"`
	// HasTitle reports whether the slide has a title placeholder.
	HasTitle bool `json:"has_title"`
	// Title is the title placeholder text (omitted when empty).
	Title string `json:"title,omitempty"`
	// Error is the inspection error, if the slide could not be read.
	Error string `json:"error,omitempty"`
}

// VerificationReport describes the structural health of a presentation.
type VerificationReport struct {
	// File is the verified file name.
	File string `json:"file"`
	// Valid is false when the presentation could not be opened.
	Valid bool `json:"valid"`
	// Error is the open failure message.
	Error string `json:"error,omitempty"`
	// Slides is the number of slides.
	Slides int `json:"slides"`
	// Layouts is the number of slide layouts across all masters.
	Layouts int `json:"layouts"`
	// Masters is the number of slide masters.
	Masters int `json:"masters"`
	// SlideWidth is the slide width in pixels (nil if not declared).
	SlideWidth *int `json:"slide_width,omitempty"`
	// SlideHeight is the slide height in pixels (nil if not declared).
	SlideHeight *int `json:"slide_height,omitempty"`
	// SlideDetails lists one record per slide in order.
	SlideDetails []SlideDetail `json:"slide_details"`
}

// SlidesWithErrors returns the numbers of the slides that failed inspection.
func (r *VerificationReport) SlidesWithErrors() []int {
	var nums []int
	for _, d := range r.SlideDetails {
		if d.Error != "" {
			nums = append(nums, d.Number)
		}
	}
	return nums
}
