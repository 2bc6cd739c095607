package caption

import (
	"testing"

	"capc/media"
)

func TestUpdateSizesFromSlots(t *testing.T) {
	d := NewDocument()
	seg := NewSegment(TimeFragment{End: 2})
	l1 := NewLine(TimeFragment{End: 1})
	l2 := NewLine(TimeFragment{Start: 1, End: 2})

	for _, s := range []struct {
		line *Line
		w, h float64
	}{
		{l1, 100, 20},
		{l1, 50, 30},
		{l2, 200, 25},
	} {
		w := NewWord("w", TimeFragment{End: 1})
		w.Layout.Width, w.Layout.Height = s.w, s.h
		s.line.AddWord(w)
	}
	seg.AddLine(l1)
	seg.AddLine(l2)
	d.AddSegment(seg)

	UpdateSizes(d, 10)

	if l1.Layout.Width != 170 { // (100+10)+(50+10)
		t.Errorf("line1 width = %g, want 170", l1.Layout.Width)
	}
	if l1.Layout.Height != 40 { // max(20+10, 30+10)
		t.Errorf("line1 height = %g, want 40", l1.Layout.Height)
	}
	if l2.Layout.Width != 210 || l2.Layout.Height != 35 {
		t.Errorf("line2 box = %gx%g, want 210x35", l2.Layout.Width, l2.Layout.Height)
	}
	if seg.Layout.Width != 210 { // widest line
		t.Errorf("segment width = %g, want 210", seg.Layout.Width)
	}
	if seg.Layout.Height != 75 { // 40+35
		t.Errorf("segment height = %g, want 75", seg.Layout.Height)
	}

	t.Run("idempotent", func(t *testing.T) {
		UpdateSizes(d, 10)
		if seg.Layout.Width != 210 || seg.Layout.Height != 75 {
			t.Errorf("second run changed the segment box to %gx%g", seg.Layout.Width, seg.Layout.Height)
		}
	})
}

func TestUpdateSizesFromClips(t *testing.T) {
	window := media.Window{Start: 0, Duration: 1}
	d := NewDocument()
	seg := NewSegment(TimeFragment{End: 1})
	line := NewLine(TimeFragment{End: 1})

	measured := NewWord("clips", TimeFragment{End: 0.5})
	measured.Layout.Width, measured.Layout.Height = 10, 10 // stale slot, clips win
	measured.AddClip(testClip(t, StatePair{Line: LineSpeaking, Word: WordSpeaking}, 40, 10, window))
	measured.AddClip(testClip(t, StatePair{Line: LineSpoken, Word: WordSpoken}, 60, 8, window))
	line.AddWord(measured)

	bare := NewWord("bare", TimeFragment{Start: 0.5, End: 1})
	bare.Layout.Width, bare.Layout.Height = 30, 12 // keeps its measured slot
	line.AddWord(bare)

	seg.AddLine(line)
	d.AddSegment(seg)

	UpdateSizes(d, 0)

	if measured.Layout.Width != 60 || measured.Layout.Height != 10 {
		t.Errorf("word with clips = %gx%g, want 60x10", measured.Layout.Width, measured.Layout.Height)
	}
	if bare.Layout.Width != 30 || bare.Layout.Height != 12 {
		t.Errorf("word without clips = %gx%g, want 30x12", bare.Layout.Width, bare.Layout.Height)
	}
	if line.Layout.Width != 90 || line.Layout.Height != 12 {
		t.Errorf("line box = %gx%g, want 90x12", line.Layout.Width, line.Layout.Height)
	}
}

func TestUpdatePositions(t *testing.T) {
	window := media.Window{Start: 0, Duration: 1}
	d := NewDocument()
	seg := NewSegment(TimeFragment{End: 1})
	line := NewLine(TimeFragment{End: 1})

	placed := NewWord("placed", TimeFragment{End: 0.5})
	c1 := testClip(t, StatePair{Line: LineSpeaking, Word: WordSpeaking}, 10, 10, window)
	c2 := testClip(t, StatePair{Line: LineSpoken, Word: WordSpoken}, 10, 10, window)
	placed.AddClip(c1)
	placed.AddClip(c2)
	line.AddWord(placed)

	empty := NewWord("empty", TimeFragment{Start: 0.5, End: 1})
	empty.Layout.X, empty.Layout.Y = 999, 999 // no clips, must stay untouched
	line.AddWord(empty)

	seg.AddLine(line)
	d.AddSegment(seg)

	c1.MoveTo(10, 7)
	c2.MoveTo(8, 9)

	UpdatePositions(d)

	if placed.Layout.X != 8 || placed.Layout.Y != 7 {
		t.Errorf("word origin = (%g,%g), want (8,7)", placed.Layout.X, placed.Layout.Y)
	}
	if empty.Layout.X != 999 || empty.Layout.Y != 999 {
		t.Errorf("clipless word moved to (%g,%g)", empty.Layout.X, empty.Layout.Y)
	}
	if line.Layout.X != 8 || line.Layout.Y != 7 {
		t.Errorf("line origin = (%g,%g), want (8,7)", line.Layout.X, line.Layout.Y)
	}
	if seg.Layout.X != 8 || seg.Layout.Y != 7 {
		t.Errorf("segment origin = (%g,%g), want (8,7)", seg.Layout.X, seg.Layout.Y)
	}
}
