package config

// Specification of line overflow handling when segment text does not fit
// the allowed number of lines.
// ENUM(exceedLastLineWidth, exceedMaxLines)
type OverflowStrategy int

// Specification of vertical caption block placement.
// ENUM(bottom, center, top)
type VAlign int

// Specification of word render cache usage.
// ENUM(none, use, refresh)
type CachePolicy int

func (c CachePolicy) ReadEnabled() bool {
	return c == CachePolicyUse
}

func (c CachePolicy) WriteEnabled() bool {
	return c == CachePolicyUse || c == CachePolicyRefresh
}

// Specification of output encoding quality.
// ENUM(low, middle, high, veryHigh)
type Quality int

// Specification of the easing curve shaping animation progress.
// ENUM(linear, in, out, smooth, invert)
type Easing int

// Specification of a named animation composition.
// ENUM(none, fade, slide, pop, zoom)
type AnimationPreset int
