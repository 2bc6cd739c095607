package media

// PositionFunc resolves the top-left corner of an element at master time t.
type PositionFunc func(t float64) Point

// ScaleFunc resolves the scale factor applied to the element's bitmap at
// master time t. 1.0 renders at intrinsic size.
type ScaleFunc func(t float64) float64

// OpacityFunc resolves element opacity at master time t in [0, 1].
type OpacityFunc func(t float64) float64

// Transform carries the time-varying placement of an element. Animations
// never mutate values in place: they install a new function that wraps the
// previous one and delegates to it outside their own activation window.
type Transform struct {
	position PositionFunc
	scale    ScaleFunc
	opacity  OpacityFunc
}

func newTransform() Transform {
	return Transform{
		position: func(float64) Point { return Point{} },
		scale:    func(float64) float64 { return 1 },
		opacity:  func(float64) float64 { return 1 },
	}
}

// PositionAt samples the position at master time t.
func (tr *Transform) PositionAt(t float64) Point {
	return tr.position(t)
}

// ScaleAt samples the scale factor at master time t.
func (tr *Transform) ScaleAt(t float64) float64 {
	return tr.scale(t)
}

// OpacityAt samples the opacity at master time t.
func (tr *Transform) OpacityAt(t float64) float64 {
	return tr.opacity(t)
}

// Position returns the current position function so a wrapper can keep
// delegating to it.
func (tr *Transform) Position() PositionFunc {
	return tr.position
}

// Scale returns the current scale function.
func (tr *Transform) Scale() ScaleFunc {
	return tr.scale
}

// Opacity returns the current opacity function.
func (tr *Transform) Opacity() OpacityFunc {
	return tr.opacity
}

// SetPosition installs a new position function.
func (tr *Transform) SetPosition(fn PositionFunc) {
	if fn == nil {
		panic("media: nil position function")
	}
	tr.position = fn
}

// SetScale installs a new scale function.
func (tr *Transform) SetScale(fn ScaleFunc) {
	if fn == nil {
		panic("media: nil scale function")
	}
	tr.scale = fn
}

// SetOpacity installs a new opacity function.
func (tr *Transform) SetOpacity(fn OpacityFunc) {
	if fn == nil {
		panic("media: nil opacity function")
	}
	tr.opacity = fn
}

// MoveTo replaces the position function with a constant.
func (tr *Transform) MoveTo(p Point) {
	tr.position = func(float64) Point { return p }
}
