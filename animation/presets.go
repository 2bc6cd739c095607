package animation

import (
	"fmt"

	"capc/config"
	"capc/media"
)

// Preset defaults.
const (
	slideDistance      = 40.0
	popInitialScale    = 0.2
	popOvershootAmount = 0.08
	popOvershootAt     = 0.65
	zoomInitialScale   = 0.6
)

// Build assembles the entering primitives of a preset at the given
// duration. The none preset builds nothing.
func Build(p config.AnimationPreset, duration float64) ([]Animation, error) {
	return build(p, duration, func(e config.Easing) config.Easing { return e })
}

// BuildOut assembles the leaving variant: the same primitives as Build with
// the invert easing substituted, so every curve runs backwards.
func BuildOut(p config.AnimationPreset, duration float64) ([]Animation, error) {
	return build(p, duration, func(config.Easing) config.Easing { return config.EasingInvert })
}

func build(p config.AnimationPreset, duration float64, ease func(config.Easing) config.Easing) ([]Animation, error) {
	switch p {
	case config.AnimationPresetNone:
		return nil, nil
	case config.AnimationPresetFade:
		fade, err := NewFadeIn(duration, ease(config.EasingOut))
		if err != nil {
			return nil, err
		}
		return []Animation{fade}, nil
	case config.AnimationPresetSlide:
		slide, err := NewSlideIn(duration, ease(config.EasingOut), media.Point{Y: slideDistance}, 0, nil)
		if err != nil {
			return nil, err
		}
		fade, err := NewFadeIn(duration, ease(config.EasingLinear))
		if err != nil {
			return nil, err
		}
		return []Animation{slide, fade}, nil
	case config.AnimationPresetPop:
		zoom, err := NewZoomIn(duration, ease(config.EasingLinear), popInitialScale, 0,
			&Overshoot{Amount: popOvershootAmount, At: popOvershootAt})
		if err != nil {
			return nil, err
		}
		fade, err := NewFadeIn(duration, ease(config.EasingOut))
		if err != nil {
			return nil, err
		}
		return []Animation{zoom, fade}, nil
	case config.AnimationPresetZoom:
		zoom, err := NewZoomIn(duration, ease(config.EasingSmooth), zoomInitialScale, 0, nil)
		if err != nil {
			return nil, err
		}
		fade, err := NewFadeIn(duration, ease(config.EasingLinear))
		if err != nil {
			return nil, err
		}
		return []Animation{zoom, fade}, nil
	default:
		return nil, fmt.Errorf("%s is %w", p, config.ErrInvalidAnimationPreset)
	}
}
