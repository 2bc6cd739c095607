// Package media implements the compositing model: timed elements that
// sample a bitmap source and blend themselves onto video frames with
// time-varying position, scale and opacity.
package media

// Point is a position on the output frame in pixels. Fractional values are
// kept until the final blend rounds them to the pixel grid.
type Point struct {
	X float64
	Y float64
}

// Size is an intrinsic bitmap size in pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether the size has no visible area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Window is the half-open interval [Start, Start+Duration) on the master
// timeline during which an element is visible.
type Window struct {
	Start    float64
	Duration float64
}

// End returns the first moment past the window.
func (w Window) End() float64 {
	return w.Start + w.Duration
}

// Contains reports whether the window covers master time t.
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t < w.Start+w.Duration
}
