package media

import (
	"image"
	"image/color"
	"testing"
)

func numberedFrames(n int) []*image.NRGBA {
	frames := make([]*image.NRGBA, n)
	for i := range n {
		frames[i] = solid(2, 2, color.NRGBA{R: uint8(i), A: 255})
	}
	return frames
}

func frameIndex(t *testing.T, s *Sequence, local float64) int {
	t.Helper()
	f, err := s.Frame(local)
	if err != nil {
		t.Fatalf("Frame(%g): %v", local, err)
	}
	return int(f.NRGBAAt(0, 0).R)
}

func TestSequenceFrameSelection(t *testing.T) {
	seq, err := NewSequence(numberedFrames(10), 10)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	tests := []struct {
		local float64
		want  int
	}{
		{0, 0},
		{0.05, 0},
		{0.1, 1},
		{0.95, 9},
		{1.0, 0},  // wraps
		{1.25, 2}, // wraps
		{-0.5, 0}, // clamps to first
	}
	for _, tt := range tests {
		if got := frameIndex(t, seq, tt.local); got != tt.want {
			t.Errorf("Frame(%g) = frame %d, want %d", tt.local, got, tt.want)
		}
	}
}

func TestVideoClipClampsToLastFrame(t *testing.T) {
	clip, err := NewVideoClip(numberedFrames(5), 10)
	if err != nil {
		t.Fatalf("NewVideoClip: %v", err)
	}

	if got := frameIndex(t, clip, 0.2); got != 2 {
		t.Errorf("Frame(0.2) = frame %d, want 2", got)
	}
	if got := frameIndex(t, clip, 2.0); got != 4 {
		t.Errorf("Frame(2.0) = frame %d, want last frame 4", got)
	}
}

func TestSequenceValidation(t *testing.T) {
	t.Run("no frames", func(t *testing.T) {
		if _, err := NewSequence(nil, 10); err == nil {
			t.Error("expected error for empty sequence")
		}
	})

	t.Run("bad fps", func(t *testing.T) {
		if _, err := NewSequence(numberedFrames(2), 0); err == nil {
			t.Error("expected error for zero fps")
		}
	})

	t.Run("mismatched frame sizes", func(t *testing.T) {
		frames := []*image.NRGBA{
			solid(2, 2, color.NRGBA{A: 255}),
			solid(3, 2, color.NRGBA{A: 255}),
		}
		if _, err := NewSequence(frames, 10); err == nil {
			t.Error("expected error for mismatched frames")
		}
	})
}
