package caption

import (
	"fmt"
	"strings"

	"capc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the caption document. It exists solely
// for manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(d *Document) treeWriter {
	tw.Line(0, "Document segments=%d", len(d.segments))
	for i, snd := range d.Sounds {
		tw.Line(1, "Sound[%d] path=%q at=%.3f gain=%.2f", i, snd.Path, snd.At, snd.Gain)
	}
	for i, s := range d.segments {
		tw.segment(1, s, i)
	}
	return tw
}

func (tw treeWriter) segment(depth int, s *Segment, index int) {
	tw.Line(depth, "Segment[%d] time=%s box=%s%s", index, formatTime(s.Timing), formatBox(s.Layout), formatTags(s.Tags))
	for i, l := range s.lines {
		tw.line(depth+1, l, i)
	}
}

func (tw treeWriter) line(depth int, l *Line, index int) {
	tw.Line(depth, "Line[%d] time=%s box=%s%s", index, formatTime(l.Timing), formatBox(l.Layout), formatTags(l.Tags))
	for i, w := range l.words {
		tw.word(depth+1, w, i)
	}
}

func (tw treeWriter) word(depth int, w *Word, index int) {
	tw.Line(depth, "Word[%d] text=%q time=%s slot=%s%s%s", index, w.Text, formatTime(w.Timing), formatBox(w.Layout), formatTags(w.Tags), formatSemantic(w.SemanticTags))
	for i, c := range w.clips {
		tw.clip(depth+1, c, i)
	}
}

func (tw treeWriter) clip(depth int, c *WordClip, index int) {
	window := c.Element.Window()
	tw.Line(depth, "Clip[%d] states=%s box=%s window=[%.3f..%.3f)", index, c.States, formatBox(c.Layout), window.Start, window.End())
}

func formatTime(tf TimeFragment) string {
	return fmt.Sprintf("[%.3f..%.3f)", tf.Start, tf.End)
}

func formatBox(el ElementLayout) string {
	return fmt.Sprintf("(%.1f,%.1f %.1fx%.1f)", el.X, el.Y, el.Width, el.Height)
}

func formatTags(ts TagSet) string {
	if len(ts) == 0 {
		return ""
	}
	return " tags=" + strings.Join(ts.List(), ",")
}

func formatSemantic(ts TagSet) string {
	if len(ts) == 0 {
		return ""
	}
	return " semantic=" + strings.Join(ts.List(), ",")
}
