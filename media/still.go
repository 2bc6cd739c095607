package media

import (
	"errors"
	"image"
)

// Still is a source showing a single bitmap for the whole element window.
type Still struct {
	img *image.NRGBA
}

// NewStill wraps an image into a static source.
func NewStill(img image.Image) (*Still, error) {
	if img == nil {
		return nil, errors.New("unable to build still source: no image")
	}
	n := ToNRGBA(img)
	if n.Bounds().Empty() {
		return nil, errors.New("unable to build still source: empty image")
	}
	return &Still{img: n}, nil
}

// Size returns the bitmap dimensions.
func (s *Still) Size() Size {
	return Size{Width: s.img.Bounds().Dx(), Height: s.img.Bounds().Dy()}
}

// Frame returns the bitmap regardless of local time.
func (s *Still) Frame(float64) (*image.NRGBA, error) {
	return s.img, nil
}
