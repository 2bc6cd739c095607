package caption

// Deep copy functions for the caption tree. Cloning lets passes mutate a
// working copy while the original document stays intact. Media sources are
// shared between the copies since pixel data is immutable, windows and
// transforms are duplicated.

// Clone creates a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	result := NewDocument()
	result.Sounds = cloneSounds(d.Sounds)
	for _, s := range d.segments {
		result.AddSegment(s.clone())
	}
	return result
}

func cloneSounds(sounds []ScheduledSound) []ScheduledSound {
	if sounds == nil {
		return nil
	}
	result := make([]ScheduledSound, len(sounds))
	copy(result, sounds)
	return result
}

func (s *Segment) clone() *Segment {
	result := &Segment{
		index:  -1,
		Tags:   s.Tags.clone(),
		Layout: s.Layout,
		Timing: s.Timing,
	}
	for _, l := range s.lines {
		result.AddLine(l.clone())
	}
	return result
}

func (l *Line) clone() *Line {
	result := &Line{
		index:  -1,
		Tags:   l.Tags.clone(),
		Layout: l.Layout,
		Timing: l.Timing,
	}
	for _, w := range l.words {
		result.AddWord(w.clone())
	}
	return result
}

func (w *Word) clone() *Word {
	result := &Word{
		index:        -1,
		Text:         w.Text,
		Tags:         w.Tags.clone(),
		SemanticTags: w.SemanticTags.clone(),
		Layout:       w.Layout,
		Timing:       w.Timing,
	}
	for _, c := range w.clips {
		result.AddClip(c.clone())
	}
	return result
}

func (c *WordClip) clone() *WordClip {
	return &WordClip{
		index:   -1,
		States:  c.States,
		Element: c.Element.Clone(),
		Layout:  c.Layout,
	}
}
