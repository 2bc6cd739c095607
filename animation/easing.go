// Package animation installs time-windowed position, scale and opacity
// curves on caption clips. Primitives wrap whatever transform functions a
// clip already carries and delegate to them outside their own activation
// window, so animations stack without knowing about each other.
package animation

import (
	"capc/config"
)

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

// Curve evaluates the easing at progress x. Callers clamp x to [0, 1].
func Curve(e config.Easing, x float64) float64 {
	switch e {
	case config.EasingIn:
		return x * x
	case config.EasingOut:
		return 1 - (1-x)*(1-x)
	case config.EasingSmooth:
		return x * x * (3 - 2*x)
	case config.EasingInvert:
		return 1 - x
	default:
		return x
	}
}

// Normalize maps master time to eased progress in [0, 1]. The activation
// window is [-offset, duration-offset) on the same timeline as t; inside it
// raw progress (t+offset)/duration runs from 0 to 1 before easing.
func Normalize(e config.Easing, t, offset, duration float64) float64 {
	return clamp01(Curve(e, clamp01((t+offset)/duration)))
}
