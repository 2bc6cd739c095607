package caption

import (
	"image"

	"capc/config"
	"capc/media"
)

// Resources bundles the style assets a renderer needs to draw words.
type Resources struct {
	Stylesheet string   // theme stylesheet source
	FontPaths  []string // font files the stylesheet references
}

// Renderer rasterizes styled words into bitmaps. The caption package only
// defines the calling contract, the pixel pipeline itself lives outside.
//
// The protocol is strict: Open before anything else, then for every line an
// OpenLine / RenderWord... / CloseLine bracket, Close at the end. Breaking
// the bracket order is a programmer error and implementations are expected
// to panic rather than recover.
type Renderer interface {
	// Open prepares the renderer for a video of the given pixel dimensions.
	Open(width, height int, resources Resources, policy config.CachePolicy) error

	// OpenLine starts a rendering bracket for the line shown in the given
	// line state.
	OpenLine(line *Line, state LineState) error

	// CloseLine ends the current line bracket.
	CloseLine() error

	// RenderWord rasterizes the word at the given position of the open
	// line. When firstLetters is positive only that many leading letters
	// are drawn, used for typewriter style reveals. A nil image with a nil
	// error means the word has no visual in this state.
	RenderWord(index int, word *Word, state WordState, firstLetters int) (*image.NRGBA, error)

	// WordSize reports the pixel box the word would occupy in the given
	// state combination without rasterizing it. Non-positive dimensions
	// mean the word is not renderable in that combination.
	WordSize(word *Word, ls LineState, ws WordState) (media.Size, error)

	// Close releases renderer resources.
	Close() error
}
