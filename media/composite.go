package media

import (
	"fmt"
	"image"
)

// Composite is a source producing its frame by compositing child elements
// onto a fresh transparent canvas of fixed size. Child windows are relative
// to the composite's local time, so a composite assembles reveals such as a
// typewriter word out of ordinary elements.
type Composite struct {
	size     Size
	children []*Element
}

// NewComposite builds a composite source of the given canvas size.
func NewComposite(size Size, children ...*Element) (*Composite, error) {
	if size.Empty() {
		return nil, fmt.Errorf("unable to build composite source: invalid canvas %dx%d", size.Width, size.Height)
	}
	return &Composite{size: size, children: children}, nil
}

// Add appends a child element to the composite.
func (c *Composite) Add(e *Element) {
	c.children = append(c.children, e)
}

// Children returns the child elements in compositing order.
func (c *Composite) Children() []*Element {
	return c.children
}

// Size returns the canvas dimensions.
func (c *Composite) Size() Size {
	return c.size
}

// Frame composites every child active at the local time onto a transparent
// canvas.
func (c *Composite) Frame(local float64) (*image.NRGBA, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, c.size.Width, c.size.Height))
	for i, child := range c.children {
		if err := child.Render(canvas, local); err != nil {
			return nil, fmt.Errorf("unable to composite child %d: %w", i, err)
		}
	}
	return canvas, nil
}
