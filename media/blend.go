package media

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ToNRGBA returns img as a straight-alpha NRGBA bitmap, avoiding a copy
// when it already is one.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

// drawOver blends src onto dst with its top-left corner at the given point,
// scaled by scale and attenuated by opacity. Shrinking uses an
// area-averaging box filter, enlarging a Catmull-Rom cubic. Portions of the
// scaled bitmap falling outside dst are dropped silently.
func drawOver(dst, src *image.NRGBA, at Point, scale, opacity float64) error {
	if opacity <= 0 || scale <= 0 {
		return nil
	}
	if opacity > 1 {
		opacity = 1
	}

	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return nil
	}
	if scale != 1 {
		tw := int(math.Round(float64(sw) * scale))
		th := int(math.Round(float64(sh) * scale))
		if tw < 1 || th < 1 {
			return nil
		}
		filter := imaging.CatmullRom
		if scale < 1 {
			filter = imaging.Box
		}
		src = imaging.Resize(src, tw, th, filter)
		sw, sh = tw, th
	}

	x0 := int(math.Round(at.X))
	y0 := int(math.Round(at.Y))
	target := image.Rect(x0, y0, x0+sw, y0+sh).Intersect(dst.Bounds())
	if target.Empty() {
		return nil
	}

	srcMin := src.Bounds().Min
	for y := target.Min.Y; y < target.Max.Y; y++ {
		di := dst.PixOffset(target.Min.X, y)
		si := src.PixOffset(target.Min.X-x0+srcMin.X, y-y0+srcMin.Y)
		for x := target.Min.X; x < target.Max.X; x++ {
			blendPixel(dst.Pix[di:di+4:di+4], src.Pix[si:si+4:si+4], opacity)
			di += 4
			si += 4
		}
	}
	return nil
}

// blendPixel applies the straight-alpha "over" operator to one pixel,
// accumulating destination alpha as aNew = aSrc + aDst*(1-aSrc).
func blendPixel(dst, src []uint8, opacity float64) {
	as := float64(src[3]) / 255 * opacity
	if as <= 0 {
		return
	}
	ad := float64(dst[3]) / 255
	an := as + ad*(1-as)
	if an <= 0 {
		return
	}
	for i := range 3 {
		cs := float64(src[i])
		cd := float64(dst[i])
		dst[i] = uint8(math.Round((cs*as + cd*ad*(1-as)) / an))
	}
	dst[3] = uint8(math.Round(an * 255))
}
