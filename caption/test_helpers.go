package caption

import (
	"fmt"
	"image"
	"testing"

	"capc/config"
	"capc/media"
)

// Helpers shared by tests in this package.

func testElement(t *testing.T, w, h int, window media.Window) *media.Element {
	t.Helper()
	still, err := media.NewStill(image.NewNRGBA(image.Rect(0, 0, w, h)))
	if err != nil {
		t.Fatalf("build still: %v", err)
	}
	return media.New(still, window)
}

func testClip(t *testing.T, sp StatePair, w, h int, window media.Window) *WordClip {
	t.Helper()
	return NewWordClip(sp, testElement(t, w, h, window))
}

// testSegment builds a one-line segment with words of the given slot widths,
// all slots 10 pixels tall, evenly timed across the segment window.
func testSegment(t *testing.T, timing TimeFragment, widths ...float64) *Segment {
	t.Helper()
	seg := NewSegment(timing)
	line := NewLine(timing)
	dt := timing.Duration() / float64(len(widths))
	for i, width := range widths {
		word := NewWord(fmt.Sprintf("w%d", i), TimeFragment{
			Start: timing.Start + float64(i)*dt,
			End:   timing.Start + float64(i+1)*dt,
		})
		word.Layout.Width = width
		word.Layout.Height = 10
		line.AddWord(word)
	}
	seg.AddLine(line)
	return seg
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// stubRenderer satisfies Renderer with canned responses so measurement and
// generation logic can be exercised without a real styling backend.
type stubRenderer struct {
	sizes func(w *Word, ls LineState, ws WordState) media.Size
	words func(index int, w *Word, ws WordState, letters int) *image.NRGBA
	err   error
}

func (r *stubRenderer) Open(width, height int, resources Resources, policy config.CachePolicy) error {
	return r.err
}

func (r *stubRenderer) OpenLine(line *Line, state LineState) error { return r.err }

func (r *stubRenderer) CloseLine() error { return r.err }

func (r *stubRenderer) RenderWord(index int, word *Word, state WordState, firstLetters int) (*image.NRGBA, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.words == nil {
		return nil, nil
	}
	return r.words(index, word, state, firstLetters), nil
}

func (r *stubRenderer) WordSize(word *Word, ls LineState, ws WordState) (media.Size, error) {
	if r.err != nil {
		return media.Size{}, r.err
	}
	if r.sizes == nil {
		return media.Size{}, nil
	}
	return r.sizes(word, ls, ws), nil
}

func (r *stubRenderer) Close() error { return r.err }
