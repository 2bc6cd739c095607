package caption

import (
	"capc/media"
)

// Lookup helpers over the caption tree.

// SegmentAt returns the first segment whose timing contains t, nil when
// narration is silent at t.
func (d *Document) SegmentAt(t float64) *Segment {
	for _, s := range d.segments {
		if s.Timing.Contains(t) {
			return s
		}
	}
	return nil
}

// WordAt returns the word being narrated at t, nil if none.
func (d *Document) WordAt(t float64) *Word {
	seg := d.SegmentAt(t)
	if seg == nil {
		return nil
	}
	for _, l := range seg.lines {
		if !l.Timing.Contains(t) {
			continue
		}
		for _, w := range l.words {
			if w.Timing.Contains(t) {
				return w
			}
		}
	}
	return nil
}

// Clips returns every clip of the document in reading order.
func (d *Document) Clips() []*WordClip {
	var clips []*WordClip
	for _, s := range d.segments {
		for _, l := range s.lines {
			for _, w := range l.words {
				clips = append(clips, w.clips...)
			}
		}
	}
	return clips
}

// Elements returns the media elements backing every clip, in reading order.
// This is what the composer registers for frame rendering.
func (d *Document) Elements() []*media.Element {
	clips := d.Clips()
	elements := make([]*media.Element, 0, len(clips))
	for _, c := range clips {
		elements = append(elements, c.Element)
	}
	return elements
}
