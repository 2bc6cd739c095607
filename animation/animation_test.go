package animation

import (
	"image"
	"math"
	"testing"

	"capc/caption"
	"capc/config"
	"capc/media"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func animClip(t *testing.T, window media.Window) *caption.WordClip {
	t.Helper()
	still, err := media.NewStill(image.NewNRGBA(image.Rect(0, 0, 10, 10)))
	if err != nil {
		t.Fatalf("build still: %v", err)
	}
	return caption.NewWordClip(
		caption.StatePair{Line: caption.LineSpeaking, Word: caption.WordSpeaking},
		media.New(still, window))
}

func TestFadeIn(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 1})
	fade, err := NewFadeIn(0.2, config.EasingLinear)
	if err != nil {
		t.Fatalf("NewFadeIn: %v", err)
	}
	fade.Apply(clip, 0, media.Point{})

	tr := clip.Element.Transform()
	cases := []struct {
		at   float64
		want float64
	}{
		{0, 0},
		{0.1, 0.5},
		{0.2, 1},  // past the window, delegates to the prior constant
		{0.25, 1},
		{-0.1, 1}, // before the window, same delegation
	}
	for _, c := range cases {
		if got := tr.OpacityAt(c.at); !approx(got, c.want) {
			t.Errorf("opacity(%g) = %g, want %g", c.at, got, c.want)
		}
	}
}

func TestFadeInReplacesInsideWindow(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 1})
	tr := clip.Element.Transform()
	tr.SetOpacity(func(float64) float64 { return 0.5 })

	fade, err := NewFadeIn(0.2, config.EasingLinear)
	if err != nil {
		t.Fatalf("NewFadeIn: %v", err)
	}
	fade.Apply(clip, 0, media.Point{})

	// Inside the window the curve wins outright; outside, the prior
	// function shows through.
	if got := tr.OpacityAt(0.1); !approx(got, 0.5) {
		t.Errorf("opacity(0.1) = %g, want 0.5 from the curve", got)
	}
	if got := tr.OpacityAt(0.19); !approx(got, 0.95) {
		t.Errorf("opacity(0.19) = %g, want 0.95", got)
	}
	if got := tr.OpacityAt(0.3); !approx(got, 0.5) {
		t.Errorf("opacity(0.3) = %g, want the prior 0.5", got)
	}
}

func TestSlideIn(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 2})
	clip.MoveTo(10, 20)

	slide, err := NewSlideIn(1, config.EasingLinear, media.Point{Y: 40}, 0, nil)
	if err != nil {
		t.Fatalf("NewSlideIn: %v", err)
	}
	slide.Apply(clip, 0, media.Point{})

	tr := clip.Element.Transform()
	cases := []struct {
		at float64
		y  float64
	}{
		{0, 60},
		{0.25, 50},
		{0.5, 40},
		{1, 20}, // window over, back on the prior position
		{1.5, 20},
	}
	for _, c := range cases {
		got := tr.PositionAt(c.at)
		if !approx(got.X, 10) || !approx(got.Y, c.y) {
			t.Errorf("position(%g) = (%g,%g), want (10,%g)", c.at, got.X, got.Y, c.y)
		}
	}
}

func TestSlideInOvershoot(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 2})

	slide, err := NewSlideIn(1, config.EasingLinear, media.Point{Y: 40}, 0.2,
		&Overshoot{Amount: 0.5, At: 0.6})
	if err != nil {
		t.Fatalf("NewSlideIn: %v", err)
	}
	slide.Apply(clip, 0, media.Point{})

	tr := clip.Element.Transform()
	cases := []struct {
		at float64
		y  float64
	}{
		{0, 40},    // held fully displaced
		{0.2, 40},  // hold boundary
		{0.4, 10},  // halfway to the peak: f = 0.25
		{0.6, -20}, // swung past rest by half the offset
		{0.8, -10}, // easing back
	}
	for _, c := range cases {
		got := tr.PositionAt(c.at)
		if !approx(got.Y, c.y) {
			t.Errorf("position(%g).Y = %g, want %g", c.at, got.Y, c.y)
		}
	}
}

func TestZoomIn(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 2})
	clip.MoveTo(100, 100)

	zoom, err := NewZoomIn(1, config.EasingLinear, 0.5, 0, nil)
	if err != nil {
		t.Fatalf("NewZoomIn: %v", err)
	}
	zoom.Apply(clip, 0, media.Point{X: 150, Y: 150})

	tr := clip.Element.Transform()
	cases := []struct {
		at    float64
		scale float64
		pos   float64 // x == y by symmetry of the fixture
	}{
		{0, 0.5, 125},
		{0.5, 0.75, 112.5},
		{1, 1, 100}, // window over, prior scale and position
	}
	for _, c := range cases {
		if got := tr.ScaleAt(c.at); !approx(got, c.scale) {
			t.Errorf("scale(%g) = %g, want %g", c.at, got, c.scale)
		}
		got := tr.PositionAt(c.at)
		if !approx(got.X, c.pos) || !approx(got.Y, c.pos) {
			t.Errorf("position(%g) = (%g,%g), want (%g,%g)", c.at, got.X, got.Y, c.pos, c.pos)
		}
	}
}

func TestZoomInOvershoot(t *testing.T) {
	clip := animClip(t, media.Window{Start: 0, Duration: 2})

	zoom, err := NewZoomIn(1, config.EasingLinear, 0, 0.25, &Overshoot{Amount: 0.2, At: 0.5})
	if err != nil {
		t.Fatalf("NewZoomIn: %v", err)
	}
	zoom.Apply(clip, 0, media.Point{})

	tr := clip.Element.Transform()
	cases := []struct {
		at    float64
		scale float64
	}{
		{0.1, 0},      // held at the initial factor
		{0.25, 0},     // hold boundary
		{0.375, 0.6},  // halfway up to the peak
		{0.5, 1.2},    // the peak
		{0.75, 1.1},   // settling
		{0.999, 1.0004}, // nearly settled
	}
	for _, c := range cases {
		if got := tr.ScaleAt(c.at); !approx(got, c.scale) {
			t.Errorf("scale(%g) = %g, want %g", c.at, got, c.scale)
		}
	}
}

func TestPrimitiveValidation(t *testing.T) {
	cases := []struct {
		name string
		make func() error
	}{
		{"fade zero duration", func() error {
			_, err := NewFadeIn(0, config.EasingLinear)
			return err
		}},
		{"fade negative duration", func() error {
			_, err := NewFadeIn(-1, config.EasingLinear)
			return err
		}},
		{"slide hold at one", func() error {
			_, err := NewSlideIn(1, config.EasingLinear, media.Point{}, 1, nil)
			return err
		}},
		{"slide negative hold", func() error {
			_, err := NewSlideIn(1, config.EasingLinear, media.Point{}, -0.1, nil)
			return err
		}},
		{"slide hold past peak", func() error {
			_, err := NewSlideIn(1, config.EasingLinear, media.Point{}, 0.5, &Overshoot{Amount: 0.2, At: 0.5})
			return err
		}},
		{"slide peak at zero", func() error {
			_, err := NewSlideIn(1, config.EasingLinear, media.Point{}, 0, &Overshoot{Amount: 0.2, At: 0})
			return err
		}},
		{"slide negative amount", func() error {
			_, err := NewSlideIn(1, config.EasingLinear, media.Point{}, 0, &Overshoot{Amount: -0.2, At: 0.5})
			return err
		}},
		{"zoom negative initial", func() error {
			_, err := NewZoomIn(1, config.EasingLinear, -0.5, 0, nil)
			return err
		}},
		{"zoom hold at one", func() error {
			_, err := NewZoomIn(1, config.EasingLinear, 0.5, 1, nil)
			return err
		}},
		{"zoom hold past peak", func() error {
			_, err := NewZoomIn(1, config.EasingLinear, 0, 0.7, &Overshoot{Amount: 0.1, At: 0.7})
			return err
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.make() == nil {
				t.Error("expected a configuration error")
			}
		})
	}

	t.Run("hold before peak succeeds", func(t *testing.T) {
		if _, err := NewZoomIn(1, config.EasingLinear, 0, 0.69, &Overshoot{Amount: 0.1, At: 0.7}); err != nil {
			t.Errorf("NewZoomIn: %v", err)
		}
		if _, err := NewSlideIn(1, config.EasingLinear, media.Point{}, 0.49, &Overshoot{Amount: 0.2, At: 0.5}); err != nil {
			t.Errorf("NewSlideIn: %v", err)
		}
	})
}
