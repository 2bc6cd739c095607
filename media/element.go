package media

import (
	"errors"
	"fmt"
	"image"
)

// Source supplies the intrinsic bitmap of an element at a time local to the
// element (0 at the element's window start). A nil frame with a nil error
// means the source has nothing to show at that moment.
type Source interface {
	Size() Size
	Frame(local float64) (*image.NRGBA, error)
}

// Element is a single compositable item on the master timeline. Outside its
// window it contributes nothing to the frame.
type Element struct {
	src    Source
	window Window
	tr     Transform
}

// New wraps a source into a timed element with identity transforms.
func New(src Source, window Window) *Element {
	if src == nil {
		panic("media: nil element source")
	}
	return &Element{src: src, window: window, tr: newTransform()}
}

// Size returns the intrinsic pixel size of the element's source.
func (e *Element) Size() Size {
	return e.src.Size()
}

// Window returns the element's activation interval.
func (e *Element) Window() Window {
	return e.window
}

// SetWindow re-schedules the element on the master timeline.
func (e *Element) SetWindow(w Window) {
	e.window = w
}

// Transform exposes the mutable placement functions of the element.
func (e *Element) Transform() *Transform {
	return &e.tr
}

// Source returns the bitmap source backing the element.
func (e *Element) Source() Source {
	return e.src
}

// Clone returns an element sharing the same source but carrying independent
// window and transform state.
func (e *Element) Clone() *Element {
	return &Element{src: e.src, window: e.window, tr: e.tr}
}

// Render composites the element onto dst at master time t. Outside the
// element's window dst is left untouched and no error is reported.
func (e *Element) Render(dst *image.NRGBA, t float64) error {
	if dst == nil {
		return errors.New("media: nil destination frame")
	}
	if !e.window.Contains(t) {
		return nil
	}
	frame, err := e.src.Frame(t - e.window.Start)
	if err != nil {
		return fmt.Errorf("unable to sample element frame: %w", err)
	}
	if frame == nil {
		return nil
	}
	return drawOver(dst, frame, e.tr.PositionAt(t), e.tr.ScaleAt(t), e.tr.OpacityAt(t))
}
