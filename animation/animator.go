package animation

import (
	"slices"

	"go.uber.org/zap"

	"capc/caption"
	"capc/media"
)

// Scope selects the container whose timing and geometric center anchor an
// animation rule.
type Scope int

const (
	ScopeWord Scope = iota
	ScopeLine
	ScopeSegment
)

func (s Scope) String() string {
	switch s {
	case ScopeWord:
		return "word"
	case ScopeLine:
		return "line"
	case ScopeSegment:
		return "segment"
	default:
		return "invalid"
	}
}

// Anchor ties the activation window to one end of the scope's narration.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	default:
		return "invalid"
	}
}

// Rule binds primitives to the clips they animate. A start-anchored rule
// opens its window when the scope's narration begins; an end-anchored rule
// closes it when the narration ends. Positive Delay shifts the window
// earlier for both anchors so leaving animations clear the narration
// boundary instead of running past it.
type Rule struct {
	Animations []Animation
	Scope      Scope
	Anchor     Anchor
	Delay      float64
	// Match filters candidate words. Nil matches every word.
	Match func(*caption.Word) bool
}

// anchorOf resolves the timing fragment and center of the rule's scope for
// a word.
func (r Rule) anchorOf(seg *caption.Segment, line *caption.Line, word *caption.Word) (caption.TimeFragment, media.Point) {
	switch r.Scope {
	case ScopeSegment:
		return seg.Timing, seg.Layout.Center()
	case ScopeLine:
		return line.Timing, line.Layout.Center()
	default:
		return word.Timing, word.Layout.Center()
	}
}

// window resolves the curve offset and the activation interval of anim on
// the master timeline.
func (r Rule) window(anim Animation, anchor caption.TimeFragment) (float64, caption.TimeFragment) {
	d := anim.Duration()
	var offset float64
	if r.Anchor == AnchorEnd {
		offset = d + r.Delay - anchor.End
	} else {
		offset = r.Delay - anchor.Start
	}
	return offset, caption.TimeFragment{Start: -offset, End: d - offset}
}

// Animator applies a fixed set of rules across all clips of a document.
type Animator struct {
	rules []Rule
	log   *zap.Logger
}

func NewAnimator(log *zap.Logger, rules ...Rule) *Animator {
	return &Animator{rules: rules, log: log.Named("animate")}
}

// Apply installs the transforms of every matching rule on every clip.
// Primitives touching one clip are applied size first, then position, then
// opacity, regardless of rule order.
func (a *Animator) Apply(d *caption.Document) {
	var applied int
	for _, seg := range d.Segments() {
		for _, line := range seg.Lines() {
			for _, word := range line.Words() {
				for _, clip := range word.Clips() {
					applied += a.applyClip(clip, seg, line, word)
				}
			}
		}
	}
	a.log.Debug("Animations applied", zap.Int("count", applied))
}

type placement struct {
	anim   Animation
	offset float64
	center media.Point
}

func (a *Animator) applyClip(clip *caption.WordClip, seg *caption.Segment, line *caption.Line, word *caption.Word) int {
	visible := clip.Element.Window()
	extent := caption.TimeFragment{Start: visible.Start, End: visible.End()}

	var todo []placement
	for _, rule := range a.rules {
		if rule.Match != nil && !rule.Match(word) {
			continue
		}
		anchor, center := rule.anchorOf(seg, line, word)
		for _, anim := range rule.Animations {
			offset, window := rule.window(anim, anchor)
			if !window.Intersects(extent) {
				continue
			}
			todo = append(todo, placement{anim: anim, offset: offset, center: center})
		}
	}
	slices.SortStableFunc(todo, func(x, y placement) int {
		return int(x.anim.Kind()) - int(y.anim.Kind())
	})
	for _, p := range todo {
		p.anim.Apply(clip, p.offset, p.center)
	}
	return len(todo)
}
