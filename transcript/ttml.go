package transcript

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// LoadTTML reads a TTML transcript. Word timings are expected on span
// elements; paragraphs without timed spans have their interval divided
// evenly over their words so line-timed subtitle files stay usable.
// Elements with unusable timing are dropped with a warning.
func LoadTTML(r io.Reader, log *zap.Logger) (*Transcript, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read TTML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "tt" {
		return nil, errors.New("not a TTML document")
	}

	tr := &Transcript{Language: root.SelectAttrValue("xml:lang", "")}
	for _, p := range paragraphs(root) {
		loadParagraph(p, tr, log)
	}
	if len(tr.Words) == 0 {
		return nil, errors.New("transcript has no words")
	}

	log.Debug("Loaded TTML transcript",
		zap.Int("words", len(tr.Words)),
		zap.String("language", tr.Language))
	return tr, nil
}

func loadParagraph(p *etree.Element, tr *Transcript, log *zap.Logger) {
	var timed int
	for _, span := range spans(p) {
		start, end, ok := interval(span, log)
		if !ok {
			continue
		}
		text := textContent(span)
		if strings.TrimSpace(text) == "" {
			continue
		}
		tr.Words = append(tr.Words, TimedWord{Text: text, Start: start, End: end, Tags: styleTags(span)})
		timed++
	}
	if timed > 0 {
		return
	}

	start, end, ok := interval(p, log)
	if !ok {
		if text := textContent(p); strings.TrimSpace(text) != "" {
			log.Warn("TTML paragraph has no usable timing, dropped",
				zap.String("text", snippet(text)))
		}
		return
	}
	words := strings.Fields(textContent(p))
	if len(words) == 0 {
		return
	}

	dt := (end - start) / float64(len(words))
	for i, w := range words {
		tr.Words = append(tr.Words, TimedWord{
			Text:  w,
			Start: start + float64(i)*dt,
			End:   start + float64(i+1)*dt,
		})
	}
	log.Debug("Divided paragraph interval over words",
		zap.Int("words", len(words)),
		zap.Float64("start", start),
		zap.Float64("end", end))
}

// paragraphs returns every p element, matched by local tag so namespace
// prefixes do not matter. TTML forbids nesting them.
func paragraphs(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == "p" {
			out = append(out, e)
			return
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// spans returns the span elements below p, including ones nested in
// styling wrappers.
func spans(p *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.Tag == "span" {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(p)
	return out
}

// interval resolves the begin and end (or dur) attributes in seconds.
func interval(e *etree.Element, log *zap.Logger) (float64, float64, bool) {
	begin := e.SelectAttrValue("begin", "")
	if begin == "" {
		return 0, 0, false
	}
	start, err := parseClock(begin)
	if err != nil {
		log.Warn("Unable to parse TTML time", zap.String("begin", begin), zap.Error(err))
		return 0, 0, false
	}

	if v := e.SelectAttrValue("end", ""); v != "" {
		end, err := parseClock(v)
		if err != nil {
			log.Warn("Unable to parse TTML time", zap.String("end", v), zap.Error(err))
			return 0, 0, false
		}
		return start, end, true
	}
	if v := e.SelectAttrValue("dur", ""); v != "" {
		dur, err := parseClock(v)
		if err != nil {
			log.Warn("Unable to parse TTML time", zap.String("dur", v), zap.Error(err))
			return 0, 0, false
		}
		return start, start + dur, true
	}
	return 0, 0, false
}

// parseClock parses a TTML time expression. Supported forms are offset
// times with the s and ms metrics and hh:mm:ss[.fraction] clock times.
func parseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty time expression")
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return 0, fmt.Errorf("unsupported clock value %q", s)
		}
		var total float64
		for _, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return 0, fmt.Errorf("unsupported clock value %q", s)
			}
			total = total*60 + v
		}
		return total, nil
	}

	// The bare "s" suffix also matches "ms", order matters here.
	if v, ok := strings.CutSuffix(s, "ms"); ok {
		ms, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("unsupported time expression %q", s)
		}
		return ms / 1000, nil
	}
	if v, ok := strings.CutSuffix(s, "s"); ok {
		sec, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("unsupported time expression %q", s)
		}
		return sec, nil
	}
	return 0, fmt.Errorf("unsupported time expression %q", s)
}

// textContent returns the element's character data with nested markup
// stripped.
func textContent(e *etree.Element) string {
	var sb strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(textContent(t))
		}
	}
	return sb.String()
}

// styleTags turns the style attribute into word tags.
func styleTags(e *etree.Element) []string {
	return strings.Fields(e.SelectAttrValue("style", ""))
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return s[:min(40, len(s))]
}
