package caption

import (
	"fmt"

	"capc/config"
)

// Bottom alignment keeps this fraction of the frame height free below the
// caption block so that default placement never touches the edge.
const bottomGapRatio = 0.05

// PositionOptions drives where segment blocks land on the frame.
type PositionOptions struct {
	VideoWidth  int
	VideoHeight int
	Spacing     float64 // gap between adjacent word slots in pixels
	Align       config.VAlign
	Offset      float64 // normalized shift in [-1, 1] around the alignment anchor
}

func (o PositionOptions) validate() error {
	if o.VideoWidth <= 0 || o.VideoHeight <= 0 {
		return fmt.Errorf("positions: invalid video size %dx%d", o.VideoWidth, o.VideoHeight)
	}
	if o.Spacing < 0 {
		return fmt.Errorf("positions: spacing cannot be negative, got %g", o.Spacing)
	}
	if o.Offset < -1 || o.Offset > 1 {
		return fmt.Errorf("positions: offset must be in [-1, 1], got %g", o.Offset)
	}
	if !o.Align.IsValid() {
		return fmt.Errorf("positions: unknown vertical alignment %d", o.Align)
	}
	return nil
}

// PositionClips assigns a resting position to every clip of the document.
// Segments are placed vertically by the alignment policy; within a segment
// lines stack downwards, each line advancing the cursor by its height plus
// spacing. Requires aggregated sizes, see UpdateSizes.
func PositionClips(d *Document, opts PositionOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	for _, seg := range d.Segments() {
		y := verticalStart(seg, opts)
		for _, line := range seg.Lines() {
			positionLine(line, y, opts)
			y += line.Layout.Height + opts.Spacing
		}
	}
	return nil
}

// verticalStart picks the y coordinate of the segment's first line. Bottom
// alignment anchors above a safety gap and the offset moves the block
// within it, +1 touching the frame edge. Center alignment slides the block
// between frame center (offset 0) and either edge. Top alignment places
// the block at offset times the frame height measured from the top. The
// result is clamped so the block stays on the frame whenever it fits.
func verticalStart(seg *Segment, opts PositionOptions) float64 {
	h := float64(opts.VideoHeight)
	segH := seg.Layout.Height
	var y float64
	switch opts.Align {
	case config.VAlignBottom:
		gap := bottomGapRatio * h
		y = h - gap - segH + opts.Offset*gap
	case config.VAlignCenter:
		y = (h - segH) / 2 * (1 + opts.Offset)
	case config.VAlignTop:
		y = max(opts.Offset, 0) * h
	}
	return min(max(y, 0), max(h-segH, 0))
}

// positionLine lays the line's clips out horizontally. A stable line gets a
// separate width vector per line state so that every phase is individually
// centered on the frame; an unstable line shares the slot width vector
// across all its clips, trading per-phase centering for words that do not
// jump while the line is being narrated.
func positionLine(line *Line, y float64, opts PositionOptions) {
	words := line.Words()
	if len(words) == 0 {
		return
	}
	if lineStable(line) {
		for _, ls := range []LineState{LineUnspoken, LineSpeaking, LineSpoken} {
			widths, matched := stateWidths(words, ls)
			if !matched {
				continue
			}
			placeClips(words, widths, y, line.Layout.Height, opts, func(c *WordClip) bool {
				return c.States.Line == ls
			})
		}
		return
	}
	placeClips(words, slotWidths(words), y, line.Layout.Height, opts, func(*WordClip) bool {
		return true
	})
}

// lineStable reports whether per-state packing is safe. Only the speaking
// phase mixes word states on screen; if some word's clips for that phase
// disagree on width the packing would shift mid-line.
func lineStable(line *Line) bool {
	for _, w := range line.Words() {
		width := -1.0
		for _, c := range w.Clips() {
			if !c.States.Line.MixedWordStates() {
				continue
			}
			if width < 0 {
				width = c.Layout.Width
				continue
			}
			if c.Layout.Width != width {
				return false
			}
		}
	}
	return true
}

// stateWidths builds the per-word width vector for one line state. A word
// with no clip in that state keeps its slot width so that neighbours stay
// put. Reports whether any clip matched the state at all.
func stateWidths(words []*Word, ls LineState) ([]float64, bool) {
	widths := make([]float64, len(words))
	matched := false
	for i, w := range words {
		width, found := 0.0, false
		for _, c := range w.Clips() {
			if c.States.Line != ls {
				continue
			}
			width = max(width, c.Layout.Width)
			found = true
		}
		if !found {
			width = w.Layout.Width
		} else {
			matched = true
		}
		widths[i] = width
	}
	return widths, matched
}

func slotWidths(words []*Word) []float64 {
	widths := make([]float64, len(words))
	for i, w := range words {
		widths[i] = w.Layout.Width
	}
	return widths
}

// placeClips centers the width vector on the frame and drops every clip
// accepted by match into its word's slot, centered both within the slot
// and against the line's height.
func placeClips(words []*Word, widths []float64, y, lineHeight float64, opts PositionOptions, match func(*WordClip) bool) {
	var total float64
	for _, w := range widths {
		total += w
	}
	total += float64(len(widths)-1) * opts.Spacing

	x := (float64(opts.VideoWidth) - total) / 2
	for i, word := range words {
		for _, c := range word.Clips() {
			if !match(c) {
				continue
			}
			cx := x + (widths[i]-c.Layout.Width)/2
			cy := y + (lineHeight-c.Layout.Height)/2
			c.MoveTo(cx, cy)
		}
		x += widths[i] + opts.Spacing
	}
}
