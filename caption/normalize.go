package caption

import (
	"strings"

	"go.uber.org/zap"
)

// Normalization of transcribed documents before layout.

// Normalize returns a cleaned deep copy of the document. Word text is
// whitespace collapsed, words left with no text are dropped together with
// lines and segments that end up empty, reversed word timings are clamped,
// and container timings are expanded where children stick out so that every
// narration phase has a well formed window. The original document remains
// unchanged.
func (d *Document) Normalize(log *zap.Logger) *Document {
	result := d.Clone()

	var segments []*Segment
	for _, seg := range result.Segments() {
		var lines []*Line
		for _, line := range seg.Lines() {
			var words []*Word
			for _, w := range line.Words() {
				w.Text = collapseSpace(w.Text)
				if w.Text == "" {
					log.Warn("Dropping word with no text", zap.Float64("start", w.Timing.Start))
					continue
				}
				if w.Timing.End < w.Timing.Start {
					log.Warn("Word timing reversed, clamping",
						zap.String("text", w.Text),
						zap.Float64("start", w.Timing.Start),
						zap.Float64("end", w.Timing.End))
					w.Timing.End = w.Timing.Start
				}
				words = append(words, w)
			}
			line.SetWords(words)
			if len(words) == 0 {
				log.Debug("Dropping line without words", zap.Float64("start", line.Timing.Start))
				continue
			}
			expandLineTiming(line, log)
			lines = append(lines, line)
		}
		seg.SetLines(lines)
		if len(lines) == 0 {
			log.Debug("Dropping segment without lines", zap.Float64("start", seg.Timing.Start))
			continue
		}
		expandSegmentTiming(seg, log)
		segments = append(segments, seg)
	}
	result.SetSegments(segments)
	return result
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// expandLineTiming widens the line window to cover its words. A line may
// legitimately start before its first word, that gap is the lead-in phase,
// so timings are only ever expanded, never shrunk.
func expandLineTiming(line *Line, log *zap.Logger) {
	orig := line.Timing
	for _, w := range line.Words() {
		line.Timing.Start = min(line.Timing.Start, w.Timing.Start)
		line.Timing.End = max(line.Timing.End, w.Timing.End)
	}
	if line.Timing != orig {
		log.Debug("Expanded line timing to cover words",
			zap.Float64("start", line.Timing.Start),
			zap.Float64("end", line.Timing.End))
	}
}

func expandSegmentTiming(seg *Segment, log *zap.Logger) {
	orig := seg.Timing
	for _, l := range seg.Lines() {
		seg.Timing.Start = min(seg.Timing.Start, l.Timing.Start)
		seg.Timing.End = max(seg.Timing.End, l.Timing.End)
	}
	if seg.Timing != orig {
		log.Debug("Expanded segment timing to cover lines",
			zap.Float64("start", seg.Timing.Start),
			zap.Float64("end", seg.Timing.End))
	}
}
