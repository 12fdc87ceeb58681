package main

import (
	"github.com/spf13/pflag"
	"github.com/ukaji3/slidecat-go/pkg/slidecat"
)

// rangeValue is a pflag.Value parsing "N-M" and "N-".
type rangeValue struct {
	r *slidecat.SlideRange
}

var _ pflag.Value = (*rangeValue)(nil)

func newRangeValue(r *slidecat.SlideRange) *rangeValue {
	return &rangeValue{r: r}
}

func (v *rangeValue) Set(s string) error {
	r, err := slidecat.ParseRange(s)
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (v *rangeValue) String() string {
	if v.r == nil || v.r.Start == 0 {
		return ""
	}
	return v.r.String()
}

func (v *rangeValue) Type() string {
	return "range"
}
