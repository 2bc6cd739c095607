package style

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"capc/caption"
)

// urlRefPattern extracts URLs from raw CSS value strings such as @font-face
// src. It matches url("path"), url('path'), and url(path).
var urlRefPattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// FontRefs returns the url() references of all @font-face src declarations,
// deduplicated in source order.
func (t *Theme) FontRefs() []string {
	var refs []string
	seen := make(map[string]bool)

	for _, ff := range t.FontFaces {
		for _, m := range urlRefPattern.FindAllStringSubmatch(ff.Src, -1) {
			// Group 1 is quoted URL, group 2 is unquoted
			u := m[1]
			if u == "" {
				u = m[2]
			}
			if u = strings.TrimSpace(u); u != "" && !seen[u] {
				refs = append(refs, u)
				seen[u] = true
			}
		}
	}
	return refs
}

// ResolveFonts locates the font files a theme references relative to
// baseDir and returns their paths. Embedded and remote references, missing
// files and files that fail the font sniff are skipped, each adding a
// warning to the theme.
func (p *Parser) ResolveFonts(theme *Theme, baseDir string) []string {
	refs := theme.FontRefs()
	if len(refs) == 0 {
		return nil
	}

	// os.DirFS roots the lookup at baseDir and refuses absolute paths or
	// ".." escapes, keeping url('../../etc/passwd') out of the theme.
	baseFS := os.DirFS(baseDir)

	var paths []string
	for _, ref := range refs {
		if strings.HasPrefix(ref, "data:") {
			p.log.Debug("Skipping data URL font", zap.String("url", ref[:min(50, len(ref))]))
			continue
		}
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			theme.Warnings = append(theme.Warnings, "remote font is not loaded: "+ref)
			p.log.Warn("Remote font in theme cannot be loaded", zap.String("url", ref))
			continue
		}

		rel := filepath.ToSlash(ref)
		data, err := fs.ReadFile(baseFS, rel)
		if err != nil {
			theme.Warnings = append(theme.Warnings, "unable to load font: "+ref)
			p.log.Warn("Unable to load theme font",
				zap.String("url", ref),
				zap.String("baseDir", baseDir),
				zap.Error(err))
			continue
		}
		if !filetype.IsFont(data) {
			theme.Warnings = append(theme.Warnings, "not a font file: "+ref)
			p.log.Warn("Theme font failed validation", zap.String("url", ref))
			continue
		}

		paths = append(paths, filepath.Join(baseDir, filepath.FromSlash(rel)))
		p.log.Debug("Resolved theme font", zap.String("url", ref), zap.Int("bytes", len(data)))
	}
	return paths
}

// LoadTheme reads and parses a theme file, resolves the fonts it references
// against the file's directory and bundles both for a renderer. Warnings
// are logged, only an unreadable theme file is an error.
func (p *Parser) LoadTheme(path string) (*Theme, caption.Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, caption.Resources{}, fmt.Errorf("unable to read theme: %w", err)
	}

	theme := p.Parse(data, path)
	for _, w := range theme.Warnings {
		p.log.Warn("Theme warning", zap.String("theme", path), zap.String("warning", w))
	}

	fonts := p.ResolveFonts(theme, filepath.Dir(path))
	return theme, caption.Resources{Stylesheet: theme.Source, FontPaths: fonts}, nil
}
