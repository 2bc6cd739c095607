package animation

import (
	"fmt"

	"capc/caption"
	"capc/config"
	"capc/media"
)

// Kind orders primitives applied to one clip: size curves install first,
// then position, then opacity, so a position curve may read the scale
// installed just before it.
type Kind int

const (
	KindSize Kind = iota
	KindPosition
	KindOpacity
)

func (k Kind) String() string {
	switch k {
	case KindSize:
		return "size"
	case KindPosition:
		return "position"
	case KindOpacity:
		return "opacity"
	default:
		return "invalid"
	}
}

// Animation is a primitive curve that can be installed on a clip. Apply
// wraps the transform functions already present; outside the activation
// window [-offset, Duration()-offset) the installed functions delegate to
// the prior ones unchanged.
type Animation interface {
	Duration() float64
	Kind() Kind
	// Apply installs the curve shifted by offset seconds. center is the
	// geometric center of the anchoring scope, used by primitives that
	// re-position while scaling.
	Apply(clip *caption.WordClip, offset float64, center media.Point)
}

// Overshoot makes a curve swing past its resting value, peaking at the At
// share of progress before settling. At must lie strictly inside (0, 1).
type Overshoot struct {
	Amount float64
	At     float64
}

func (o *Overshoot) validate(hold float64) error {
	if o == nil {
		return nil
	}
	if o.At <= 0 || o.At >= 1 {
		return fmt.Errorf("overshoot peak %g is outside (0, 1)", o.At)
	}
	if o.Amount < 0 {
		return fmt.Errorf("overshoot amount %g is negative", o.Amount)
	}
	if hold >= o.At {
		return fmt.Errorf("hold point %g does not end before the overshoot peak %g", hold, o.At)
	}
	return nil
}

// base carries what every primitive shares.
type base struct {
	duration float64
	easing   config.Easing
}

func newBase(duration float64, easing config.Easing) (base, error) {
	if duration <= 0 {
		return base{}, fmt.Errorf("duration %g is not positive", duration)
	}
	return base{duration: duration, easing: easing}, nil
}

func (b base) Duration() float64 {
	return b.duration
}

// active reports whether master time t falls inside the activation window
// shifted by offset.
func (b base) active(t, offset float64) bool {
	u := t + offset
	return u >= 0 && u < b.duration
}

func (b base) progress(t, offset float64) float64 {
	return Normalize(b.easing, t, offset, b.duration)
}

// FadeIn ramps clip opacity from fully transparent to fully opaque over the
// activation window. The leaving variant is the same primitive built with
// the invert easing.
type FadeIn struct {
	base
}

func NewFadeIn(duration float64, easing config.Easing) (*FadeIn, error) {
	b, err := newBase(duration, easing)
	if err != nil {
		return nil, fmt.Errorf("unable to build fade: %w", err)
	}
	return &FadeIn{base: b}, nil
}

func (a *FadeIn) Kind() Kind {
	return KindOpacity
}

func (a *FadeIn) Apply(clip *caption.WordClip, offset float64, _ media.Point) {
	tr := clip.Element.Transform()
	prior := tr.Opacity()
	tr.SetOpacity(func(t float64) float64 {
		if !a.active(t, offset) {
			return prior(t)
		}
		return a.progress(t, offset)
	})
}

// SlideIn moves a clip from a fixed displacement back onto the position the
// prior transform resolves. Hold keeps the clip fully displaced for that
// share of progress; an overshoot lets it swing past rest by
// Amount times the displacement before settling. The curve between the
// breakpoints is linear, shaping comes from the easing.
type SlideIn struct {
	base
	offset    media.Point
	hold      float64
	overshoot *Overshoot
}

func NewSlideIn(duration float64, easing config.Easing, offset media.Point, hold float64, over *Overshoot) (*SlideIn, error) {
	b, err := newBase(duration, easing)
	if err != nil {
		return nil, fmt.Errorf("unable to build slide: %w", err)
	}
	if hold < 0 || hold >= 1 {
		return nil, fmt.Errorf("unable to build slide: hold point %g is outside [0, 1)", hold)
	}
	if err := over.validate(hold); err != nil {
		return nil, fmt.Errorf("unable to build slide: %w", err)
	}
	return &SlideIn{base: b, offset: offset, hold: hold, overshoot: over}, nil
}

func (a *SlideIn) Kind() Kind {
	return KindPosition
}

// displacement is the share of the starting offset still applied at
// progress p. It falls from 1 to 0, dipping to -Amount at the overshoot
// peak when one is configured.
func (a *SlideIn) displacement(p float64) float64 {
	switch {
	case p <= a.hold:
		return 1
	case a.overshoot != nil && p <= a.overshoot.At:
		return 1 - (1+a.overshoot.Amount)*(p-a.hold)/(a.overshoot.At-a.hold)
	case a.overshoot != nil:
		return -a.overshoot.Amount * (1 - p) / (1 - a.overshoot.At)
	default:
		return (1 - p) / (1 - a.hold)
	}
}

func (a *SlideIn) Apply(clip *caption.WordClip, offset float64, _ media.Point) {
	tr := clip.Element.Transform()
	prior := tr.Position()
	tr.SetPosition(func(t float64) media.Point {
		p := prior(t)
		if !a.active(t, offset) {
			return p
		}
		f := a.displacement(a.progress(t, offset))
		return media.Point{X: p.X + a.offset.X*f, Y: p.Y + a.offset.Y*f}
	})
}

// ZoomIn grows a clip from an initial scale factor to full size, held at
// the initial factor until MinScaleAt, optionally peaking above 1 at the
// overshoot point. Position follows the scale so the clip stays anchored
// to the scope center it grows out of.
type ZoomIn struct {
	base
	initial    float64
	minScaleAt float64
	overshoot  *Overshoot
}

func NewZoomIn(duration float64, easing config.Easing, initial, minScaleAt float64, over *Overshoot) (*ZoomIn, error) {
	b, err := newBase(duration, easing)
	if err != nil {
		return nil, fmt.Errorf("unable to build zoom: %w", err)
	}
	if initial < 0 {
		return nil, fmt.Errorf("unable to build zoom: initial scale %g is negative", initial)
	}
	if minScaleAt < 0 || minScaleAt >= 1 {
		return nil, fmt.Errorf("unable to build zoom: hold point %g is outside [0, 1)", minScaleAt)
	}
	if err := over.validate(minScaleAt); err != nil {
		return nil, fmt.Errorf("unable to build zoom: %w", err)
	}
	return &ZoomIn{base: b, initial: initial, minScaleAt: minScaleAt, overshoot: over}, nil
}

func (a *ZoomIn) Kind() Kind {
	return KindSize
}

// scaleAt maps progress to the scale factor, linear between breakpoints.
func (a *ZoomIn) scaleAt(p float64) float64 {
	switch {
	case p <= a.minScaleAt:
		return a.initial
	case a.overshoot != nil && p <= a.overshoot.At:
		return a.initial + (1+a.overshoot.Amount-a.initial)*(p-a.minScaleAt)/(a.overshoot.At-a.minScaleAt)
	case a.overshoot != nil:
		return 1 + a.overshoot.Amount*(1-p)/(1-a.overshoot.At)
	default:
		return a.initial + (1-a.initial)*(p-a.minScaleAt)/(1-a.minScaleAt)
	}
}

func (a *ZoomIn) Apply(clip *caption.WordClip, offset float64, center media.Point) {
	tr := clip.Element.Transform()
	priorScale := tr.Scale()
	priorPos := tr.Position()
	scale := func(t float64) float64 {
		if !a.active(t, offset) {
			return priorScale(t)
		}
		return a.scaleAt(a.progress(t, offset))
	}
	tr.SetScale(scale)
	tr.SetPosition(func(t float64) media.Point {
		p := priorPos(t)
		if !a.active(t, offset) {
			return p
		}
		s := scale(t)
		return media.Point{
			X: center.X + (p.X-center.X)*s,
			Y: center.Y + (p.Y-center.Y)*s,
		}
	})
}
