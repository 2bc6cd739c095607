package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// JSON transcript shape. Extra fields recognizers like to add are ignored.
type jsonTranscript struct {
	Language string     `json:"language,omitempty"`
	Words    []jsonWord `json:"words"`
}

type jsonWord struct {
	Text  string   `json:"text"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Tags  []string `json:"tags,omitempty"`
}

// LoadJSON reads a JSON transcript. Word timings are taken as is, repairing
// reversed or overlapping intervals is the document normalization's job.
func LoadJSON(r io.Reader, log *zap.Logger) (*Transcript, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var doc jsonTranscript
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to parse JSON transcript: %w", err)
	}
	if len(doc.Words) == 0 {
		return nil, errors.New("transcript has no words")
	}

	tr := &Transcript{
		Language: doc.Language,
		Words:    make([]TimedWord, 0, len(doc.Words)),
	}
	for _, w := range doc.Words {
		tr.Words = append(tr.Words, TimedWord{Text: w.Text, Start: w.Start, End: w.End, Tags: w.Tags})
	}

	log.Debug("Loaded JSON transcript",
		zap.Int("words", len(tr.Words)),
		zap.String("language", tr.Language))
	return tr, nil
}
