// Package style reads caption theme stylesheets. A theme addresses the
// caption element kinds word, line and segment, optionally narrowed to one
// narration state by a class, and declares the fonts it needs with
// @font-face. Property semantics are left to the renderer, the package only
// validates selectors and extracts font references.
package style

// Known caption element kinds and narration state classes. Everything else
// in a selector produces a warning and the rule is dropped.
var (
	knownElements = map[string]bool{"word": true, "line": true, "segment": true}
	knownStates   = map[string]bool{"unspoken": true, "speaking": true, "spoken": true}
)

// Value is a single parsed property value. Numeric values carry Value and
// Unit, identifiers and colors land in Keyword. Raw always holds the
// declaration text.
type Value struct {
	Raw     string
	Value   float64
	Unit    string
	Keyword string
}

// IsNumeric returns true if the value has a numeric component, including
// explicit zeros like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Keyword != "" || v.Raw == "" {
		return false
	}
	c := v.Raw[0]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// IsKeyword returns true if the value is an identifier or color.
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Selector addresses one caption element kind in one narration state.
// A selector without a state applies to every state of its element.
type Selector struct {
	Raw     string
	Element string // word, line or segment
	State   string // unspoken, speaking or spoken, empty for all
}

// Known reports whether the selector addresses a recognized element kind
// and, when a state class is present, a recognized narration state.
func (s Selector) Known() bool {
	if !knownElements[s.Element] {
		return false
	}
	return s.State == "" || knownStates[s.State]
}

// Matches reports whether the selector applies to the element kind shown in
// the given narration state.
func (s Selector) Matches(element, state string) bool {
	if s.Element != element {
		return false
	}
	return s.State == "" || s.State == state
}

// Rule pairs a selector with its property declarations.
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

// GetProperty returns a declared property value.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// FontFace is a parsed @font-face block.
type FontFace struct {
	Family string
	Src    string
	Style  string
	Weight string
}

// Theme is a parsed caption theme. Warnings collect every construct the
// parser dropped, the theme itself is always usable.
type Theme struct {
	Source    string // stylesheet text as read
	Rules     []Rule
	FontFaces []FontFace
	Warnings  []string
}

// RulesFor returns the rules applying to the element kind in the given
// narration state, in source order. Later rules override earlier ones,
// merging is the renderer's concern.
func (t *Theme) RulesFor(element, state string) []Rule {
	var rules []Rule
	for _, r := range t.Rules {
		if r.Selector.Matches(element, state) {
			rules = append(rules, r)
		}
	}
	return rules
}
