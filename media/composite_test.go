package media

import (
	"image/color"
	"testing"
)

func TestCompositeLocalTimeline(t *testing.T) {
	first, err := NewStill(solid(2, 2, color.NRGBA{R: 1, A: 255}))
	if err != nil {
		t.Fatalf("NewStill: %v", err)
	}
	second, err := NewStill(solid(2, 2, color.NRGBA{R: 2, A: 255}))
	if err != nil {
		t.Fatalf("NewStill: %v", err)
	}

	comp, err := NewComposite(Size{Width: 4, Height: 4},
		New(first, Window{Start: 0, Duration: 0.1}),
		New(second, Window{Start: 0.1, Duration: 0.9}))
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}

	t.Run("first child active", func(t *testing.T) {
		frame, err := comp.Frame(0.05)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if got := frame.NRGBAAt(0, 0).R; got != 1 {
			t.Errorf("pixel = %d, want first child", got)
		}
	})

	t.Run("second child active", func(t *testing.T) {
		frame, err := comp.Frame(0.5)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if got := frame.NRGBAAt(0, 0).R; got != 2 {
			t.Errorf("pixel = %d, want second child", got)
		}
	})

	t.Run("uncovered canvas stays transparent", func(t *testing.T) {
		frame, err := comp.Frame(0.5)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if got := frame.NRGBAAt(3, 3); got.A != 0 {
			t.Errorf("uncovered pixel = %v, want transparent", got)
		}
	})

	t.Run("no child active yields transparent canvas", func(t *testing.T) {
		frame, err := comp.Frame(5)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		for i := 3; i < len(frame.Pix); i += 4 {
			if frame.Pix[i] != 0 {
				t.Fatal("canvas must be fully transparent with no active children")
			}
		}
	})
}

func TestCompositeValidation(t *testing.T) {
	if _, err := NewComposite(Size{}); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestCompositeAsElementSource(t *testing.T) {
	child, err := NewStill(solid(2, 2, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("NewStill: %v", err)
	}
	comp, err := NewComposite(Size{Width: 2, Height: 2},
		New(child, Window{Start: 0, Duration: 1}))
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}

	// Element starting at master time 2 samples the composite at local time.
	el := New(comp, Window{Start: 2, Duration: 1})
	bg := solid(2, 2, color.NRGBA{A: 255})
	if err := el.Render(bg, 2.5); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := bg.NRGBAAt(0, 0).R; got != 255 {
		t.Errorf("pixel = %d, want child visible through composite", got)
	}
}
