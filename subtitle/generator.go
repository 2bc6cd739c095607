// Package subtitle populates a laid-out caption document with word clips:
// one timed, renderable element per word and narration phase. It is the
// only place clips are created.
package subtitle

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"capc/caption"
	"capc/media"
)

// Options tune clip generation.
type Options struct {
	// Typewriter reveals the narrated word letter by letter instead of
	// showing it whole.
	Typewriter bool
}

// Generator asks the renderer for word bitmaps and schedules them on the
// master timeline. The renderer must already be open; the generator only
// drives line brackets and word renders.
type Generator struct {
	log      *zap.Logger
	renderer caption.Renderer
	opts     Options
}

func NewGenerator(renderer caption.Renderer, opts Options, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log.Named("subtitle"), renderer: renderer, opts: opts}
}

// Generate creates clips for every word of the document. A word that fails
// to render in some phase simply has no clip there, the render goes on.
func (g *Generator) Generate(doc *caption.Document) error {
	if doc == nil {
		return errors.New("generate: no document")
	}

	var lines, clips int
	for _, seg := range doc.Segments() {
		for _, line := range seg.Lines() {
			n, err := g.generateLine(seg, line)
			if err != nil {
				return err
			}
			lines++
			clips += n
		}
	}
	g.log.Debug("Clips generated",
		zap.Int("segments", len(doc.Segments())),
		zap.Int("lines", lines),
		zap.Int("clips", clips))
	return nil
}

// generateLine walks the five narration phases in temporal order and
// renders every word of the line inside a phase-scoped renderer bracket.
func (g *Generator) generateLine(seg *caption.Segment, line *caption.Line) (int, error) {
	clips := 0
	for _, pair := range caption.Phases {
		if err := g.renderer.OpenLine(line, pair.Line); err != nil {
			return clips, fmt.Errorf("unable to open line in state %s: %w", pair.Line, err)
		}
		for i, word := range line.Words() {
			win := pair.Window(seg.Timing, line.Timing, word.Timing)
			if win.Empty() {
				continue
			}
			elem, err := g.buildElement(i, word, pair, win)
			if err != nil {
				g.log.Warn("Unable to render word, no clip for this phase",
					zap.String("word", word.Text),
					zap.String("phase", pair.String()),
					zap.Error(err))
				continue
			}
			if elem == nil {
				continue
			}
			word.AddClip(caption.NewWordClip(pair, elem))
			clips++
		}
		if err := g.renderer.CloseLine(); err != nil {
			return clips, fmt.Errorf("unable to close line in state %s: %w", pair.Line, err)
		}
	}
	return clips, nil
}

// buildElement produces the timed element for one word and phase, or nil
// when the word has no visual there.
func (g *Generator) buildElement(index int, word *caption.Word, pair caption.StatePair, win caption.TimeFragment) (*media.Element, error) {
	if g.opts.Typewriter && pair.Word == caption.WordSpeaking && utf8.RuneCountInString(word.Text) > 1 {
		return g.typewriterElement(index, word, win)
	}

	img, err := g.renderer.RenderWord(index, word, pair.Word, 0)
	if err != nil || img == nil {
		return nil, err
	}
	still, err := media.NewStill(img)
	if err != nil {
		return nil, err
	}
	return media.New(still, media.Window{Start: win.Start, Duration: win.Duration()}), nil
}

// typewriterElement assembles the narrated word as a composite of letter
// prefixes, each shown for an equal slice of the narration window.
func (g *Generator) typewriterElement(index int, word *caption.Word, win caption.TimeFragment) (*media.Element, error) {
	letters := utf8.RuneCountInString(word.Text)

	full, err := g.renderer.RenderWord(index, word, caption.WordSpeaking, 0)
	if err != nil || full == nil {
		return nil, err
	}
	canvas := media.Size{Width: full.Bounds().Dx(), Height: full.Bounds().Dy()}
	comp, err := media.NewComposite(canvas)
	if err != nil {
		return nil, err
	}

	dt := win.Duration() / float64(letters)
	for k := 1; k <= letters; k++ {
		img := full
		if k < letters {
			img, err = g.renderer.RenderWord(index, word, caption.WordSpeaking, k)
			if err != nil {
				return nil, err
			}
			if img == nil {
				// A gap in the reveal, the next prefix picks up.
				continue
			}
		}
		still, err := media.NewStill(img)
		if err != nil {
			return nil, err
		}
		start := float64(k-1) * dt
		duration := dt
		if k == letters {
			// The last prefix absorbs accumulated rounding and holds to
			// the end of the window.
			duration = win.Duration() - start
		}
		comp.Add(media.New(still, media.Window{Start: start, Duration: duration}))
	}
	return media.New(comp, media.Window{Start: win.Start, Duration: win.Duration()}), nil
}
