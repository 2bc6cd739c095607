package compose

import (
	"fmt"

	"capc/animation"
	"capc/caption"
	"capc/config"
)

// buildRules turns configured animation rules into animator rules. A rule
// anchored at the narration end gets the leaving variant of its preset, so
// its curves run backwards out of the frame.
func buildRules(specs []config.AnimationRule) ([]animation.Rule, error) {
	rules := make([]animation.Rule, 0, len(specs))
	for i, spec := range specs {
		if spec.Preset == config.AnimationPresetNone {
			continue
		}
		scope, err := parseScope(spec.Scope)
		if err != nil {
			return nil, fmt.Errorf("animation rule %d: %w", i, err)
		}
		anchor, err := parseAnchor(spec.Anchor)
		if err != nil {
			return nil, fmt.Errorf("animation rule %d: %w", i, err)
		}

		var anims []animation.Animation
		if anchor == animation.AnchorEnd {
			anims, err = animation.BuildOut(spec.Preset, spec.Duration)
		} else {
			anims, err = animation.Build(spec.Preset, spec.Duration)
		}
		if err != nil {
			return nil, fmt.Errorf("animation rule %d: %w", i, err)
		}

		rule := animation.Rule{
			Animations: anims,
			Scope:      scope,
			Anchor:     anchor,
			Delay:      spec.Delay,
		}
		if tag := spec.Tag; tag != "" {
			rule.Match = func(w *caption.Word) bool { return w.HasTag(tag) }
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseScope(s string) (animation.Scope, error) {
	switch s {
	case "", "word":
		return animation.ScopeWord, nil
	case "line":
		return animation.ScopeLine, nil
	case "segment":
		return animation.ScopeSegment, nil
	default:
		return 0, fmt.Errorf("unknown animation scope %q", s)
	}
}

func parseAnchor(s string) (animation.Anchor, error) {
	switch s {
	case "", "start":
		return animation.AnchorStart, nil
	case "end":
		return animation.AnchorEnd, nil
	default:
		return 0, fmt.Errorf("unknown animation anchor %q", s)
	}
}
