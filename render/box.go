package render

import (
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"capc/caption"
	"capc/config"
	"capc/media"
	"capc/utils/images"
)

// Box is the built-in fallback Renderer. Each word becomes a solid rounded
// box sized by its rune count, colored by narration state. It needs no fonts
// and produces the same pixels on every platform, which makes it usable for
// smoke runs and layout debugging when no real text renderer is wired in.
type Box struct {
	log *zap.Logger

	em   int
	open bool

	line      *caption.Line
	lineState caption.LineState
}

func NewBox(log *zap.Logger) *Box {
	if log == nil {
		log = zap.NewNop()
	}
	return &Box{log: log.Named("box")}
}

func (b *Box) Open(width, height int, resources caption.Resources, policy config.CachePolicy) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("unable to open box renderer for %dx%d canvas", width, height)
	}
	b.em = max(height/15, 16)
	b.open = true
	b.log.Debug("Box renderer ready", zap.Int("em", b.em))
	return nil
}

func (b *Box) OpenLine(line *caption.Line, state caption.LineState) error {
	if !b.open {
		panic("render: OpenLine on a renderer that is not open")
	}
	if b.line != nil {
		panic("render: line bracket already open")
	}
	b.line = line
	b.lineState = state
	return nil
}

func (b *Box) CloseLine() error {
	if b.line == nil {
		panic("render: no open line bracket")
	}
	b.line = nil
	return nil
}

func (b *Box) RenderWord(index int, word *caption.Word, state caption.WordState, firstLetters int) (*image.NRGBA, error) {
	if b.line == nil {
		panic("render: RenderWord outside a line bracket")
	}

	size := b.boxSize(word.Text, firstLetters)
	if size.Empty() {
		return nil, nil
	}
	fill, opacity := boxFill(b.lineState, state)

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect x="1" y="1" width="%d" height="%d" rx="%d" fill="%s" fill-opacity="%.2f"/>`+
			`</svg>`,
		size.Width, size.Height, size.Width, size.Height,
		size.Width-2, size.Height-2, b.em/4, fill, opacity)

	img, err := images.RasterizeSVG([]byte(svg), size.Width, size.Height, 1)
	if err != nil {
		return nil, fmt.Errorf("unable to rasterize word box: %w", err)
	}
	return imaging.Clone(img), nil
}

func (b *Box) WordSize(word *caption.Word, ls caption.LineState, ws caption.WordState) (media.Size, error) {
	if !b.open {
		panic("render: WordSize on a renderer that is not open")
	}
	return b.boxSize(word.Text, 0), nil
}

func (b *Box) Close() error {
	b.open = false
	b.line = nil
	return nil
}

// boxSize derives box geometry from rune count alone. Every state shares the
// same metrics so layout does not shift between narration phases, and a
// prefix box always fits inside the full word's canvas.
func (b *Box) boxSize(text string, firstLetters int) media.Size {
	letters := utf8.RuneCountInString(text)
	if firstLetters > 0 && firstLetters < letters {
		letters = firstLetters
	}
	if letters == 0 {
		return media.Size{}
	}
	return media.Size{
		Width:  b.em/2 + letters*(b.em*3)/5,
		Height: b.em,
	}
}

// boxFill maps the narration state combination to fill color and opacity.
func boxFill(ls caption.LineState, ws caption.WordState) (string, float64) {
	fill, opacity := "#e8e8e8", 0.85
	switch ws {
	case caption.WordUnspoken:
		fill, opacity = "#5b6472", 0.45
	case caption.WordSpeaking:
		fill, opacity = "#ffd166", 1.0
	}
	switch ls {
	case caption.LineUnspoken:
		opacity *= 0.6
	case caption.LineSpoken:
		opacity *= 0.8
	}
	return fill, opacity
}
