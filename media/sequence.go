package media

import (
	"errors"
	"fmt"
	"image"
)

// Sequence is a source playing a run of equally sized frames at a fixed
// rate. Looping sequences wrap around; a video clip cut plays once and
// holds its last frame.
type Sequence struct {
	frames []*image.NRGBA
	fps    float64
	loop   bool
	size   Size
}

// NewSequence builds a looping image-sequence source.
func NewSequence(frames []*image.NRGBA, fps float64) (*Sequence, error) {
	return newSequence(frames, fps, true)
}

// NewVideoClip builds a source over pre-decoded video frames. Playback is
// clamped to the last frame instead of wrapping.
func NewVideoClip(frames []*image.NRGBA, fps float64) (*Sequence, error) {
	return newSequence(frames, fps, false)
}

func newSequence(frames []*image.NRGBA, fps float64, loop bool) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, errors.New("unable to build sequence source: no frames")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("unable to build sequence source: invalid frame rate %g", fps)
	}
	size := Size{Width: frames[0].Bounds().Dx(), Height: frames[0].Bounds().Dy()}
	if size.Empty() {
		return nil, errors.New("unable to build sequence source: empty frames")
	}
	for i, f := range frames {
		if f.Bounds().Dx() != size.Width || f.Bounds().Dy() != size.Height {
			return nil, fmt.Errorf("unable to build sequence source: frame %d is %dx%d, want %dx%d",
				i, f.Bounds().Dx(), f.Bounds().Dy(), size.Width, size.Height)
		}
	}
	return &Sequence{frames: frames, fps: fps, loop: loop, size: size}, nil
}

// Size returns the shared frame dimensions.
func (s *Sequence) Size() Size {
	return s.size
}

// Frames returns the number of frames in the sequence.
func (s *Sequence) Frames() int {
	return len(s.frames)
}

// Frame picks frame floor(local*fps), wrapping when looping and clamping to
// the last frame otherwise. Negative local times show the first frame.
func (s *Sequence) Frame(local float64) (*image.NRGBA, error) {
	idx := int(local * s.fps)
	if idx < 0 {
		idx = 0
	}
	if s.loop {
		idx %= len(s.frames)
	}
	if idx >= len(s.frames) {
		idx = len(s.frames) - 1
	}
	return s.frames[idx], nil
}
