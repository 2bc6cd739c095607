// Package transcript loads word-timed transcripts and turns them into
// caption documents. Loaders deliver a flat word sequence, the builder adds
// segment structure at sentence boundaries. Line packing needs a renderer
// and stays out of this package.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TimedWord is one transcript word with its narration interval in seconds
// on the master timeline.
type TimedWord struct {
	Text  string
	Start float64
	End   float64
	Tags  []string
}

// Transcript is a flat, ordered word sequence as delivered by a speech
// recognizer, before any segment or line structure exists.
type Transcript struct {
	Language string // BCP 47 tag, empty when the source carries none
	Words    []TimedWord
}

// Timing returns the interval from the first word start to the last word
// end, zero for an empty transcript.
func (t *Transcript) Timing() (start, end float64) {
	if t == nil || len(t.Words) == 0 {
		return 0, 0
	}
	start = t.Words[0].Start
	end = t.Words[0].End
	for _, w := range t.Words[1:] {
		start = min(start, w.Start)
		end = max(end, w.End)
	}
	return start, end
}

// Load reads a transcript file, selecting the format by extension: .json
// for JSON transcripts, .ttml or .xml for TTML ones.
func Load(path string, log *zap.Logger) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open transcript: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(f, log)
	case ".ttml", ".xml":
		return LoadTTML(f, log)
	default:
		return nil, fmt.Errorf("unable to detect transcript format of %s", path)
	}
}
