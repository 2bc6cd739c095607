package animation

import (
	"testing"

	"capc/config"
)

func TestCurve(t *testing.T) {
	cases := []struct {
		easing config.Easing
		x      float64
		want   float64
	}{
		{config.EasingLinear, 0.3, 0.3},
		{config.EasingIn, 0.5, 0.25},
		{config.EasingOut, 0.5, 0.75},
		{config.EasingSmooth, 0.5, 0.5},
		{config.EasingSmooth, 0.25, 0.15625},
		{config.EasingInvert, 0.3, 0.7},
	}
	for _, c := range cases {
		if got := Curve(c.easing, c.x); !approx(got, c.want) {
			t.Errorf("%s(%g) = %g, want %g", c.easing, c.x, got, c.want)
		}
	}

	t.Run("endpoints", func(t *testing.T) {
		for _, e := range []config.Easing{config.EasingLinear, config.EasingIn, config.EasingOut, config.EasingSmooth} {
			if got := Curve(e, 0); got != 0 {
				t.Errorf("%s(0) = %g, want 0", e, got)
			}
			if got := Curve(e, 1); got != 1 {
				t.Errorf("%s(1) = %g, want 1", e, got)
			}
		}
		if got := Curve(config.EasingInvert, 0); got != 1 {
			t.Errorf("invert(0) = %g, want 1", got)
		}
		if got := Curve(config.EasingInvert, 1); got != 0 {
			t.Errorf("invert(1) = %g, want 0", got)
		}
	})
}

func TestNormalizeBoundedAndMonotonic(t *testing.T) {
	const offset, duration = 0.2, 0.7

	rising := []config.Easing{config.EasingLinear, config.EasingIn, config.EasingOut, config.EasingSmooth}
	for _, e := range rising {
		t.Run(e.String(), func(t *testing.T) {
			prev := -1.0
			for i := range 201 {
				at := -0.5 + float64(i)*0.01
				got := Normalize(e, at, offset, duration)
				if got < 0 || got > 1 {
					t.Fatalf("normalize(%g) = %g, out of [0,1]", at, got)
				}
				if got < prev {
					t.Fatalf("normalize(%g) = %g, decreased from %g", at, got, prev)
				}
				prev = got
			}
		})
	}

	t.Run("invert", func(t *testing.T) {
		prev := 2.0
		for i := range 201 {
			at := -0.5 + float64(i)*0.01
			got := Normalize(config.EasingInvert, at, offset, duration)
			if got < 0 || got > 1 {
				t.Fatalf("normalize(%g) = %g, out of [0,1]", at, got)
			}
			if got > prev {
				t.Fatalf("normalize(%g) = %g, increased from %g", at, got, prev)
			}
			prev = got
		}
	})
}

func TestNormalizeSaturation(t *testing.T) {
	// Before the window raw progress clamps to 0, after it to 1.
	if got := Normalize(config.EasingLinear, -5, 0.2, 0.7); got != 0 {
		t.Errorf("early normalize = %g, want 0", got)
	}
	if got := Normalize(config.EasingLinear, 5, 0.2, 0.7); got != 1 {
		t.Errorf("late normalize = %g, want 1", got)
	}
	if got := Normalize(config.EasingLinear, 0.15, 0.2, 0.7); !approx(got, 0.5) {
		t.Errorf("mid normalize = %g, want 0.5", got)
	}
}
