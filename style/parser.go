package style

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses caption theme stylesheets.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new theme parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("style")}
}

// Parse parses theme text. Constructs a theme cannot express are dropped
// with a warning, parsing itself never fails.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Theme {
	theme := &Theme{
		Source:   string(data),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing theme", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var selectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("Theme parse error", zap.Error(parser.Err()))
			}
			return theme

		case css.BeginAtRuleGrammar:
			name := string(data)
			if name == "@font-face" {
				ff := p.parseFontFace(parser)
				if ff.Family == "" {
					theme.Warnings = append(theme.Warnings, "font face without font-family")
					continue
				}
				theme.FontFaces = append(theme.FontFaces, ff)
				continue
			}
			// No conditional blocks in themes, skip whatever this is.
			p.skipAtRuleBlock(parser)
			theme.Warnings = append(theme.Warnings, "unsupported at-rule: "+name)
			p.log.Debug("Skipping at-rule", zap.String("rule", name))

		case css.AtRuleGrammar:
			// Block-less at-rule. Themes are single files, so @import among
			// the rest is dropped rather than followed.
			theme.Warnings = append(theme.Warnings, "unsupported at-rule: "+string(data))
			p.log.Debug("Skipping at-rule", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			// Selector followed by a comma, the ruleset body is still ahead.
			selectors = append(selectors, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors = append(selectors, p.parseSelectors(data, parser.Values())...)
			props := p.parseDeclarations(parser)
			for _, raw := range selectors {
				sel := p.parseSelector(raw, theme)
				if !sel.Known() {
					continue
				}
				propsCopy := make(map[string]Value, len(props))
				maps.Copy(propsCopy, props)
				theme.Rules = append(theme.Rules, Rule{Selector: sel, Properties: propsCopy})
			}
			selectors = selectors[:0]
		}
	}
}

// parseSelectors extracts selector strings from token data, splitting
// grouped selectors on commas.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseSelector splits a selector into the element kind and its narration
// state class. Selectors a theme cannot express only produce a warning.
func (p *Parser) parseSelector(raw string, theme *Theme) Selector {
	raw = strings.TrimSpace(raw)
	sel := Selector{Raw: raw}

	if strings.ContainsAny(raw, "+~>[]#:*") || strings.ContainsAny(raw, " \t\n") {
		theme.Warnings = append(theme.Warnings, "unsupported selector: "+raw)
		p.log.Debug("Skipping unsupported selector", zap.String("selector", raw))
		return sel
	}

	element, state, _ := strings.Cut(raw, ".")
	sel.Element = strings.ToLower(element)
	sel.State = strings.ToLower(state)

	switch {
	case !knownElements[sel.Element]:
		theme.Warnings = append(theme.Warnings, "unknown element in selector: "+raw)
		p.log.Debug("Skipping unknown element", zap.String("selector", raw))
	case sel.State != "" && !knownStates[sel.State]:
		theme.Warnings = append(theme.Warnings, "unknown state in selector: "+raw)
		p.log.Debug("Skipping unknown state", zap.String("selector", raw))
	}
	return sel
}

// parseDeclarations parses property declarations until the ruleset ends.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[string(data)] = parsePropertyValue(values)
			}
		}
	}
}

// parseFontFace consumes an @font-face block.
func (p *Parser) parseFontFace(parser *css.Parser) FontFace {
	var ff FontFace

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return ff

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			switch string(data) {
			case "font-family":
				ff.Family = unquote(joinTokens(values))
			case "src":
				ff.Src = joinTokens(values)
			case "font-style":
				ff.Style = joinTokens(values)
			case "font-weight":
				ff.Weight = joinTokens(values)
			}
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an at-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parsePropertyValue converts declaration tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	val := Value{Raw: joinTokens(tokens)}

	// A single meaningful token can be typed, everything longer keeps its
	// raw form as a keyword.
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		}
		return val
	}

	val.Keyword = val.Raw
	return val
}

// parseDimension extracts numeric value and unit from a dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// joinTokens renders value tokens back into a single string, collapsing
// whitespace runs to single spaces.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
