package caption

import (
	"testing"

	"capc/media"
)

func indexDoc(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()

	s1 := NewSegment(TimeFragment{Start: 0, End: 2})
	l1 := NewLine(TimeFragment{Start: 0, End: 2})
	l1.AddWord(NewWord("one", TimeFragment{Start: 0, End: 1}))
	l1.AddWord(NewWord("two", TimeFragment{Start: 1, End: 2}))
	s1.AddLine(l1)

	s2 := NewSegment(TimeFragment{Start: 3, End: 4})
	l2 := NewLine(TimeFragment{Start: 3, End: 4})
	l2.AddWord(NewWord("three", TimeFragment{Start: 3, End: 4}))
	s2.AddLine(l2)

	d.AddSegment(s1)
	d.AddSegment(s2)
	return d
}

func TestSegmentAt(t *testing.T) {
	d := indexDoc(t)
	cases := []struct {
		at   float64
		want int // segment index, -1 for none
	}{
		{0, 0},
		{1.999, 0},
		{2, -1}, // half open
		{2.5, -1},
		{3, 1},
		{4, -1},
	}
	for _, c := range cases {
		seg := d.SegmentAt(c.at)
		switch {
		case c.want == -1 && seg != nil:
			t.Errorf("SegmentAt(%g) = segment %d, want none", c.at, seg.Index())
		case c.want >= 0 && seg == nil:
			t.Errorf("SegmentAt(%g) = none, want segment %d", c.at, c.want)
		case c.want >= 0 && seg.Index() != c.want:
			t.Errorf("SegmentAt(%g) = segment %d, want %d", c.at, seg.Index(), c.want)
		}
	}
}

func TestWordAt(t *testing.T) {
	d := indexDoc(t)
	if w := d.WordAt(0.5); w == nil || w.Text != "one" {
		t.Errorf("WordAt(0.5) = %v, want one", w)
	}
	if w := d.WordAt(1); w == nil || w.Text != "two" {
		t.Errorf("WordAt(1) = %v, want two", w)
	}
	if w := d.WordAt(2.5); w != nil {
		t.Errorf("WordAt(2.5) = %q, want none", w.Text)
	}
	if w := d.WordAt(3.5); w == nil || w.Text != "three" {
		t.Errorf("WordAt(3.5) = %v, want three", w)
	}
}

func TestClipsReadingOrder(t *testing.T) {
	d := indexDoc(t)
	window := media.Window{Start: 0, Duration: 1}
	var want []*WordClip
	for _, w := range append(d.Segments()[0].Words(), d.Segments()[1].Words()...) {
		c := testClip(t, StatePair{Line: LineSpeaking, Word: WordSpeaking}, 10, 10, window)
		w.AddClip(c)
		want = append(want, c)
	}

	clips := d.Clips()
	if len(clips) != len(want) {
		t.Fatalf("got %d clips, want %d", len(clips), len(want))
	}
	for i := range clips {
		if clips[i] != want[i] {
			t.Errorf("clip %d out of order", i)
		}
	}

	elements := d.Elements()
	if len(elements) != len(want) {
		t.Fatalf("got %d elements, want %d", len(elements), len(want))
	}
	for i := range elements {
		if elements[i] != want[i].Element {
			t.Errorf("element %d does not back clip %d", i, i)
		}
	}
}

func TestDocumentClone(t *testing.T) {
	d := indexDoc(t)
	window := media.Window{Start: 0, Duration: 2}
	clip := testClip(t, StatePair{Line: LineSpeaking, Word: WordSpeaking}, 10, 10, window)
	clip.MoveTo(5, 7)
	d.Segments()[0].Words()[0].AddClip(clip)
	d.Sounds = append(d.Sounds, ScheduledSound{Path: "ding.wav", At: 1, Gain: 0.5})

	clone := d.Clone()

	if len(clone.Segments()) != 2 {
		t.Fatalf("clone has %d segments, want 2", len(clone.Segments()))
	}
	cw := clone.Segments()[0].Words()[0]
	if cw.Text != "one" || len(cw.Clips()) != 1 {
		t.Fatalf("clone word lost its clip")
	}
	cc := cw.Clips()[0]
	if cc == clip {
		t.Error("clone shares clip instances with the original")
	}
	if cc.Element == clip.Element {
		t.Error("clone shares element instances with the original")
	}

	t.Run("transforms independent", func(t *testing.T) {
		cc.MoveTo(100, 100)
		if p := clip.Element.Transform().PositionAt(0.5); p.X != 5 || p.Y != 7 {
			t.Errorf("original transform changed to %v", p)
		}
	})

	t.Run("tree independent", func(t *testing.T) {
		clone.Segments()[0].Lines()[0].AddWord(NewWord("extra", TimeFragment{Start: 1.9, End: 2}))
		if got := len(d.Segments()[0].Words()); got != 2 {
			t.Errorf("original grew to %d words", got)
		}
	})

	t.Run("sounds copied", func(t *testing.T) {
		if len(clone.Sounds) != 1 || clone.Sounds[0].Path != "ding.wav" {
			t.Fatalf("clone sounds = %v", clone.Sounds)
		}
		clone.Sounds[0].Gain = 1
		if d.Sounds[0].Gain != 0.5 {
			t.Error("sound slice shared with the original")
		}
	})

	var nilDoc *Document
	if nilDoc.Clone() != nil {
		t.Error("nil clone should stay nil")
	}
}
