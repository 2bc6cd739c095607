package transcript

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"capc/caption"
)

// BuildOptions control how a flat transcript gains segment structure.
type BuildOptions struct {
	// MaxGap starts a new segment when narration pauses longer than this
	// many seconds, even inside a sentence. Zero disables pause breaks.
	MaxGap float64
}

// BuildDocument converts a transcript into a caption document with one
// segment per sentence and a single line per segment holding that
// sentence's words. Repacking the line to fit the frame is a later,
// renderer-driven pass, as is normalization; word text and timings are
// carried over untouched.
//
// Sentence boundaries come from the language-specific tokenizer run over
// the joined word texts. A word belongs to the sentence its first
// whitespace-separated field falls into, so multi-field words never get
// torn apart.
func BuildDocument(tr *Transcript, opts BuildOptions, log *zap.Logger) (*caption.Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if tr == nil || len(tr.Words) == 0 {
		return nil, errors.New("transcript has no words")
	}
	if opts.MaxGap < 0 {
		return nil, fmt.Errorf("build: max gap cannot be negative, got %g", opts.MaxGap)
	}

	counts := make([]int, len(tr.Words))
	var fields []string
	for i, w := range tr.Words {
		f := strings.Fields(w.Text)
		counts[i] = len(f)
		fields = append(fields, f...)
	}

	splitter := NewSplitter(tr.Language, log)
	sents := splitter.Split(strings.Join(fields, " "))

	// limits[j] is the index of the first field past sentence j.
	limits := make([]int, len(sents))
	total := 0
	for j, s := range sents {
		total += len(strings.Fields(s))
		limits[j] = total
	}

	var (
		groups  [][]TimedWord
		current []TimedWord
		cur     = -1 // sentence of the current group
		j, f    int
		prevEnd float64
	)
	for i, w := range tr.Words {
		for j < len(limits)-1 && f >= limits[j] {
			j++
		}
		pause := opts.MaxGap > 0 && len(current) > 0 && w.Start-prevEnd > opts.MaxGap
		if len(current) > 0 && (j != cur || pause) {
			groups = append(groups, current)
			current = nil
		}
		cur = j
		current = append(current, w)
		prevEnd = max(prevEnd, w.End)
		f += counts[i]
	}
	groups = append(groups, current)

	doc := caption.NewDocument()
	for _, group := range groups {
		timing := caption.TimeFragment{Start: group[0].Start, End: group[len(group)-1].End}
		seg := caption.NewSegment(timing)
		line := caption.NewLine(timing)
		for _, w := range group {
			line.AddWord(caption.NewWord(w.Text, caption.TimeFragment{Start: w.Start, End: w.End}, w.Tags...))
		}
		seg.AddLine(line)
		doc.AddSegment(seg)
	}

	log.Debug("Document built from transcript",
		zap.Int("words", len(tr.Words)),
		zap.Int("sentences", len(sents)),
		zap.Int("segments", len(groups)))
	return doc, nil
}
