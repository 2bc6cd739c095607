package caption

import (
	"fmt"

	"capc/config"
)

// SplitOptions constrains how segment words are packed into lines.
type SplitOptions struct {
	MaxWidth float64 // horizontal budget for a line in pixels
	Spacing  float64 // gap between adjacent words in pixels
	MinLines int
	MaxLines int
	Overflow config.OverflowStrategy
}

func (o SplitOptions) validate() error {
	if o.MaxWidth <= 0 {
		return fmt.Errorf("split: max width must be positive, got %g", o.MaxWidth)
	}
	if o.Spacing < 0 {
		return fmt.Errorf("split: spacing cannot be negative, got %g", o.Spacing)
	}
	if o.MinLines < 1 {
		return fmt.Errorf("split: min lines must be at least 1, got %d", o.MinLines)
	}
	if o.MaxLines < o.MinLines {
		return fmt.Errorf("split: max lines %d below min lines %d", o.MaxLines, o.MinLines)
	}
	if !o.Overflow.IsValid() {
		return fmt.Errorf("split: unknown overflow strategy %d", o.Overflow)
	}
	return nil
}

// Split repacks the segment's words into lines under the given constraints.
// Words accumulate greedily into the current line while they fit MaxWidth;
// with the exceedLastLineWidth strategy, once the line budget is down to
// its final line all remaining words land on it regardless of width. If the
// greedy pass yields fewer than MinLines lines, the widest multi-word line
// is repeatedly bisected at its word count midpoint until the minimum is
// met or only single word lines remain. A lone word wider than MaxWidth
// still forms its own over-wide line, that is accepted rather than failed.
//
// New lines inherit the tags of the segment's first pre-split line and take
// their timing from the words they end up with. Words must already carry
// slot widths, see CalculateWordSizes.
func Split(seg *Segment, opts SplitOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(seg.Lines()) == 0 {
		return nil
	}

	words := seg.Words()
	tags := seg.Lines()[0].Tags.List()
	for _, l := range seg.Lines() {
		l.SetWords(nil)
	}
	if len(words) == 0 {
		seg.SetLines(nil)
		return nil
	}

	groups := splitGreedy(words, opts)
	for len(groups) < opts.MinLines {
		widest := widestSplittable(groups, opts.Spacing)
		if widest < 0 {
			break
		}
		groups = bisect(groups, widest)
	}

	lines := make([]*Line, 0, len(groups))
	for _, group := range groups {
		timing := TimeFragment{Start: group[0].Timing.Start, End: group[len(group)-1].Timing.End}
		line := NewLine(timing, tags...)
		for _, w := range group {
			line.AddWord(w)
		}
		lines = append(lines, line)
	}
	seg.SetLines(lines)
	return nil
}

func splitGreedy(words []*Word, opts SplitOptions) [][]*Word {
	var (
		groups  [][]*Word
		current []*Word
		width   float64
	)
	for _, w := range words {
		ww := w.Layout.Width
		switch {
		case len(current) == 0:
			current = append(current, w)
			width = ww
		case opts.Overflow == config.OverflowStrategyExceedLastLineWidth && len(groups) == opts.MaxLines-1:
			// Final allowed line, it takes everything that is left.
			current = append(current, w)
			width += opts.Spacing + ww
		case width+opts.Spacing+ww <= opts.MaxWidth:
			current = append(current, w)
			width += opts.Spacing + ww
		default:
			groups = append(groups, current)
			current = []*Word{w}
			width = ww
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// widestSplittable returns the index of the widest line holding at least
// two words, first encountered on ties, or -1 when every line is down to a
// single word.
func widestSplittable(groups [][]*Word, spacing float64) int {
	best, bestWidth := -1, 0.0
	for i, group := range groups {
		if len(group) < 2 {
			continue
		}
		w := groupWidth(group, spacing)
		if best < 0 || w > bestWidth {
			best, bestWidth = i, w
		}
	}
	return best
}

func groupWidth(group []*Word, spacing float64) float64 {
	var width float64
	for i, w := range group {
		if i > 0 {
			width += spacing
		}
		width += w.Layout.Width
	}
	return width
}

func bisect(groups [][]*Word, i int) [][]*Word {
	group := groups[i]
	mid := len(group) / 2
	result := make([][]*Word, 0, len(groups)+1)
	result = append(result, groups[:i]...)
	result = append(result, group[:mid], group[mid:])
	result = append(result, groups[i+1:]...)
	return result
}
