package transcript

import (
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns a sentence splitter for the given BCP 47 language
// tag. Only English training data is compiled in; everything else falls
// back to a nil splitter treating the whole text as one sentence, with a
// warning. An empty tag is taken as English.
func NewSplitter(lang string, log *zap.Logger) *Splitter {
	if lang == "" {
		log.Debug("Transcript carries no language, assuming English")
		lang = "en"
	}

	tag, err := language.Parse(lang)
	if err != nil {
		log.Warn("Unable to parse transcript language, treating text as one sentence",
			zap.String("language", lang), zap.Error(err))
		return nil
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base, treating text as one sentence",
			zap.Stringer("tag", tag))
		return nil
	}
	if base.String() != "en" {
		log.Warn("No sentence tokenizer data for language, treating text as one sentence",
			zap.Stringer("tag", tag), zap.String("language", display.English.Languages().Name(tag)))
		return nil
	}

	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentence tokenizer data", zap.Stringer("tag", tag), zap.Error(err))
		return nil
	}
	return &Splitter{tokenizer}
}

// Split returns the sentences of in. A nil splitter keeps the whole text
// as a single sentence.
func (s *Splitter) Split(in string) []string {
	if s == nil {
		// sentence tokenizer is off
		return []string{in}
	}

	var out []string
	for _, sentence := range s.Tokenize(in) {
		out = append(out, sentence.Text)
	}
	if len(out) == 0 {
		return []string{in}
	}
	return out
}
