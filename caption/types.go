package caption

import (
	"sort"

	"capc/media"
)

// Type definitions for the caption document tree.
//
// Entities form a strict ownership hierarchy: Document -> Segment -> Line ->
// Word -> WordClip. Every level exposes its children through accessor and
// mutator methods which keep the child's upward back-link consistent; an
// entity can belong to at most one container at a time and attaching an
// already owned entity panics. Slices returned by accessors are owned by the
// container and must not be modified directly.

// TimeFragment is a half-open interval [Start, End) in seconds on the master
// timeline.
type TimeFragment struct {
	Start float64
	End   float64
}

func (tf TimeFragment) Duration() float64 {
	return tf.End - tf.Start
}

func (tf TimeFragment) Empty() bool {
	return tf.End <= tf.Start
}

func (tf TimeFragment) Contains(t float64) bool {
	return t >= tf.Start && t < tf.End
}

func (tf TimeFragment) Intersects(other TimeFragment) bool {
	return tf.Start < other.End && other.Start < tf.End
}

// ElementLayout is a pixel box on the video frame. Fractional coordinates
// are kept as is and only rounded when pixels are actually placed.
type ElementLayout struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (el ElementLayout) Center() media.Point {
	return media.Point{X: el.X + el.Width/2, Y: el.Y + el.Height/2}
}

func (el ElementLayout) Empty() bool {
	return el.Width <= 0 || el.Height <= 0
}

// ScheduledSound is an audio effect the composer overlays onto the source
// audio during the final mix.
type ScheduledSound struct {
	Path string  // audio file to overlay
	At   float64 // offset in seconds on the master timeline
	Gain float64 // linear volume multiplier, 1.0 leaves the effect as is
}

// TagSet holds classification markers attached to document entities.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	ts := make(TagSet, len(tags))
	ts.Add(tags...)
	return ts
}

func (ts TagSet) Has(tag string) bool {
	_, ok := ts[tag]
	return ok
}

func (ts TagSet) Add(tags ...string) {
	for _, tag := range tags {
		ts[tag] = struct{}{}
	}
}

// List returns the tags in sorted order.
func (ts TagSet) List() []string {
	result := make([]string, 0, len(ts))
	for tag := range ts {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

func (ts TagSet) clone() TagSet {
	if ts == nil {
		return nil
	}
	result := make(TagSet, len(ts))
	for tag := range ts {
		result[tag] = struct{}{}
	}
	return result
}

// Document is the root of the caption tree. It also carries sound effects
// scheduled on the master timeline, they have no positional anchor.
type Document struct {
	segments []*Segment

	Sounds []ScheduledSound
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Segments() []*Segment {
	return d.segments
}

func (d *Document) AddSegment(s *Segment) {
	s.attach(d, len(d.segments))
	d.segments = append(d.segments, s)
}

func (d *Document) SetSegments(segments []*Segment) {
	for _, s := range d.segments {
		s.detach()
	}
	d.segments = nil
	for _, s := range segments {
		d.AddSegment(s)
	}
}

func (d *Document) RemoveSegment(s *Segment) bool {
	if s.doc != d {
		return false
	}
	i := s.index
	d.segments = append(d.segments[:i], d.segments[i+1:]...)
	s.detach()
	for j := i; j < len(d.segments); j++ {
		d.segments[j].index = j
	}
	return true
}

// Timing returns the interval spanned by all segments.
func (d *Document) Timing() TimeFragment {
	if len(d.segments) == 0 {
		return TimeFragment{}
	}
	result := d.segments[0].Timing
	for _, s := range d.segments[1:] {
		if s.Timing.Start < result.Start {
			result.Start = s.Timing.Start
		}
		if s.Timing.End > result.End {
			result.End = s.Timing.End
		}
	}
	return result
}

// Segment is one narration unit displayed on screen as a block of lines,
// typically a sentence.
type Segment struct {
	doc   *Document
	index int
	lines []*Line

	Tags   TagSet
	Layout ElementLayout
	Timing TimeFragment
}

func NewSegment(timing TimeFragment, tags ...string) *Segment {
	return &Segment{index: -1, Tags: NewTagSet(tags...), Timing: timing}
}

func (s *Segment) Document() *Document {
	return s.doc
}

// Index returns the segment's position among its siblings, -1 when the
// segment is not attached to a document.
func (s *Segment) Index() int {
	return s.index
}

func (s *Segment) Lines() []*Line {
	return s.lines
}

func (s *Segment) AddLine(l *Line) {
	l.attach(s, len(s.lines))
	s.lines = append(s.lines, l)
}

func (s *Segment) SetLines(lines []*Line) {
	for _, l := range s.lines {
		l.detach()
	}
	s.lines = nil
	for _, l := range lines {
		s.AddLine(l)
	}
}

func (s *Segment) RemoveLine(l *Line) bool {
	if l.segment != s {
		return false
	}
	i := l.index
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	l.detach()
	for j := i; j < len(s.lines); j++ {
		s.lines[j].index = j
	}
	return true
}

// Words returns all words of the segment in reading order.
func (s *Segment) Words() []*Word {
	var words []*Word
	for _, l := range s.lines {
		words = append(words, l.words...)
	}
	return words
}

func (s *Segment) attach(d *Document, index int) {
	if s.doc != nil {
		panic("caption: segment already belongs to a document")
	}
	s.doc = d
	s.index = index
}

func (s *Segment) detach() {
	s.doc = nil
	s.index = -1
}

// Line is a single displayed row of words within a segment.
type Line struct {
	segment *Segment
	index   int
	words   []*Word

	Tags   TagSet
	Layout ElementLayout
	Timing TimeFragment
}

func NewLine(timing TimeFragment, tags ...string) *Line {
	return &Line{index: -1, Tags: NewTagSet(tags...), Timing: timing}
}

func (l *Line) Segment() *Segment {
	return l.segment
}

func (l *Line) Index() int {
	return l.index
}

func (l *Line) Words() []*Word {
	return l.words
}

func (l *Line) AddWord(w *Word) {
	w.attach(l, len(l.words))
	l.words = append(l.words, w)
}

func (l *Line) SetWords(words []*Word) {
	for _, w := range l.words {
		w.detach()
	}
	l.words = nil
	for _, w := range words {
		l.AddWord(w)
	}
}

func (l *Line) RemoveWord(w *Word) bool {
	if w.line != l {
		return false
	}
	i := w.index
	l.words = append(l.words[:i], l.words[i+1:]...)
	w.detach()
	for j := i; j < len(l.words); j++ {
		l.words[j].index = j
	}
	return true
}

func (l *Line) attach(s *Segment, index int) {
	if l.segment != nil {
		panic("caption: line already belongs to a segment")
	}
	l.segment = s
	l.index = index
}

func (l *Line) detach() {
	l.segment = nil
	l.index = -1
}

// Word is a single narrated token. Its Layout holds the slot box, the
// smallest box containing every clip of the word so that state switches do
// not shift neighbouring words.
type Word struct {
	line  *Line
	index int
	clips []*WordClip

	Text         string
	Tags         TagSet // structure markers inherited from the source text
	SemanticTags TagSet // classifier labels, drive animation matching
	Layout       ElementLayout
	Timing       TimeFragment
}

func NewWord(text string, timing TimeFragment, tags ...string) *Word {
	return &Word{
		index:        -1,
		Text:         text,
		Tags:         NewTagSet(tags...),
		SemanticTags: NewTagSet(),
		Timing:       timing,
	}
}

func (w *Word) Line() *Line {
	return w.line
}

func (w *Word) Index() int {
	return w.index
}

// HasTag checks both the structure and the semantic tag sets.
func (w *Word) HasTag(tag string) bool {
	return w.Tags.Has(tag) || w.SemanticTags.Has(tag)
}

func (w *Word) Clips() []*WordClip {
	return w.clips
}

// ClipByStates returns the word's clip for the given narration phase or nil.
func (w *Word) ClipByStates(sp StatePair) *WordClip {
	for _, c := range w.clips {
		if c.States == sp {
			return c
		}
	}
	return nil
}

func (w *Word) AddClip(c *WordClip) {
	if w.ClipByStates(c.States) != nil {
		panic("caption: word already has a clip for state " + c.States.String())
	}
	c.attach(w, len(w.clips))
	w.clips = append(w.clips, c)
}

func (w *Word) SetClips(clips []*WordClip) {
	for _, c := range w.clips {
		c.detach()
	}
	w.clips = nil
	for _, c := range clips {
		w.AddClip(c)
	}
}

func (w *Word) RemoveClip(c *WordClip) bool {
	if c.word != w {
		return false
	}
	i := c.index
	w.clips = append(w.clips[:i], w.clips[i+1:]...)
	c.detach()
	for j := i; j < len(w.clips); j++ {
		w.clips[j].index = j
	}
	return true
}

func (w *Word) attach(l *Line, index int) {
	if w.line != nil {
		panic("caption: word already belongs to a line")
	}
	w.line = l
	w.index = index
}

func (w *Word) detach() {
	w.line = nil
	w.index = -1
}

// WordClip is one renderable instance of a word, valid for exactly one
// narration phase. Its Layout tracks where the clip rests on the frame; the
// element's transform starts from the same point and animations wrap it.
type WordClip struct {
	word  *Word
	index int

	States  StatePair
	Element *media.Element
	Layout  ElementLayout
}

func NewWordClip(states StatePair, element *media.Element) *WordClip {
	if !states.Valid() {
		panic("caption: invalid state combination " + states.String())
	}
	if element == nil {
		panic("caption: clip needs a media element")
	}
	size := element.Size()
	return &WordClip{
		index:   -1,
		States:  states,
		Element: element,
		Layout:  ElementLayout{Width: float64(size.Width), Height: float64(size.Height)},
	}
}

func (c *WordClip) Word() *Word {
	return c.word
}

func (c *WordClip) Index() int {
	return c.index
}

// MoveTo places the clip at the given top left corner, updating both the
// layout box and the element's resting position.
func (c *WordClip) MoveTo(x, y float64) {
	c.Layout.X = x
	c.Layout.Y = y
	c.Element.Transform().MoveTo(media.Point{X: x, Y: y})
}

func (c *WordClip) attach(w *Word, index int) {
	if c.word != nil {
		panic("caption: clip already belongs to a word")
	}
	c.word = w
	c.index = index
}

func (c *WordClip) detach() {
	c.word = nil
	c.index = -1
}
