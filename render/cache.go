// Package render caches word bitmaps and measurements produced by a
// caption.Renderer so unchanged themes do not pay the rasterization cost
// on every run. The cache is a plain decorator, any renderer can sit
// behind it.
package render

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"os"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"capc/caption"
	"capc/config"
	"capc/media"
)

// Cache implements caption.Renderer on top of another renderer. Entries are
// keyed by a style digest (canvas size, stylesheet text, font file bytes)
// plus the word text, its tags and the narration state combination, so a
// theme edit invalidates everything at once without any bookkeeping.
//
// Cache failures degrade: a broken database or a corrupt entry logs a
// warning and falls back to the wrapped renderer.
type Cache struct {
	log   *zap.Logger
	inner caption.Renderer
	path  string // database file, empty for a run-local in-memory cache

	store  *store
	style  string
	policy config.CachePolicy

	line      *caption.Line
	lineState caption.LineState

	hits, misses, writes int
}

func NewCache(inner caption.Renderer, path string, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{log: log.Named("cache"), inner: inner, path: path}
}

func (c *Cache) Open(width, height int, resources caption.Resources, policy config.CachePolicy) error {
	if err := c.inner.Open(width, height, resources, policy); err != nil {
		return err
	}
	c.policy = policy
	if !policy.ReadEnabled() && !policy.WriteEnabled() {
		return nil
	}

	style, err := styleDigest(width, height, resources)
	if err != nil {
		c.log.Warn("Render cache disabled", zap.Error(err))
		c.policy = config.CachePolicyNone
		return nil
	}
	st, err := openStore(c.path)
	if err != nil {
		c.log.Warn("Render cache disabled", zap.Error(err))
		c.policy = config.CachePolicyNone
		return nil
	}
	c.style = style
	c.store = st

	if policy == config.CachePolicyRefresh {
		if err := st.deleteStyle(style); err != nil {
			c.log.Warn("Unable to clear stale cache entries", zap.Error(err))
		}
	}
	target := c.path
	if target == "" {
		target = ":memory:"
	}
	c.log.Debug("Render cache ready", zap.String("path", target), zap.String("style", style[:12]))
	return nil
}

func (c *Cache) OpenLine(line *caption.Line, state caption.LineState) error {
	if err := c.inner.OpenLine(line, state); err != nil {
		return err
	}
	c.line = line
	c.lineState = state
	return nil
}

func (c *Cache) CloseLine() error {
	c.line = nil
	return c.inner.CloseLine()
}

func (c *Cache) RenderWord(index int, word *caption.Word, state caption.WordState, firstLetters int) (*image.NRGBA, error) {
	if c.store == nil {
		return c.inner.RenderWord(index, word, state, firstLetters)
	}
	if c.line == nil {
		panic("render: RenderWord called outside a line bracket")
	}

	k := key{
		style:     c.style,
		word:      word.Text,
		tags:      tagKey(c.line.Tags, word.Tags, word.SemanticTags),
		lineState: int(c.lineState),
		wordState: int(state),
		letters:   firstLetters,
	}

	if c.policy.ReadEnabled() {
		if img, ok := c.lookupBitmap(k); ok {
			c.hits++
			return img, nil
		}
		c.misses++
	}

	img, err := c.inner.RenderWord(index, word, state, firstLetters)
	if err != nil {
		return nil, err
	}
	if c.policy.WriteEnabled() {
		c.storeBitmap(k, img)
	}
	return img, nil
}

func (c *Cache) WordSize(word *caption.Word, ls caption.LineState, ws caption.WordState) (media.Size, error) {
	if c.store == nil {
		return c.inner.WordSize(word, ls, ws)
	}

	k := key{
		style:     c.style,
		word:      word.Text,
		tags:      tagKey(word.Tags, word.SemanticTags),
		lineState: int(ls),
		wordState: int(ws),
	}

	if c.policy.ReadEnabled() {
		size, found, err := c.store.getSize(k)
		if err != nil {
			c.log.Warn("Render cache read failed", zap.String("word", k.word), zap.Error(err))
		} else if found {
			c.hits++
			return size, nil
		} else {
			c.misses++
		}
	}

	size, err := c.inner.WordSize(word, ls, ws)
	if err != nil {
		return media.Size{}, err
	}
	if c.policy.WriteEnabled() {
		if err := c.store.putSize(k, size); err != nil {
			c.log.Warn("Render cache write failed", zap.String("word", k.word), zap.Error(err))
		} else {
			c.writes++
		}
	}
	return size, nil
}

func (c *Cache) Close() error {
	var err error
	if c.store != nil {
		c.log.Debug("Render cache closing",
			zap.Int("hits", c.hits),
			zap.Int("misses", c.misses),
			zap.Int("writes", c.writes))
		err = multierr.Append(err, c.store.close())
		c.store = nil
	}
	return multierr.Append(err, c.inner.Close())
}

// lookupBitmap reads and decodes a cached word bitmap. A present entry with
// an empty payload means the word has no visual in this state.
func (c *Cache) lookupBitmap(k key) (*image.NRGBA, bool) {
	data, found, err := c.store.getBitmap(k)
	if err != nil {
		c.log.Warn("Render cache read failed", zap.String("word", k.word), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	if len(data) == 0 {
		return nil, true
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		c.log.Warn("Render cache entry is corrupt", zap.String("word", k.word), zap.Error(err))
		return nil, false
	}
	return imaging.Clone(img), true
}

func (c *Cache) storeBitmap(k key, img *image.NRGBA) {
	var data []byte
	if img != nil {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			c.log.Warn("Unable to encode cache entry", zap.String("word", k.word), zap.Error(err))
			return
		}
		data = buf.Bytes()
	}
	if err := c.store.putBitmap(k, data); err != nil {
		c.log.Warn("Render cache write failed", zap.String("word", k.word), zap.Error(err))
		return
	}
	c.writes++
}

// styleDigest fingerprints everything that affects word pixels: canvas
// dimensions, the stylesheet text and the font files it pulls in. Entries
// survive between runs only while the digest stays the same.
func styleDigest(width, height int, resources caption.Resources) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "%dx%d\n", width, height)
	h.Write([]byte(resources.Stylesheet))
	for _, path := range resources.FontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("unable to fingerprint font: %w", err)
		}
		h.Write(data)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func tagKey(sets ...caption.TagSet) string {
	var tags []string
	for _, ts := range sets {
		tags = append(tags, ts.List()...)
	}
	slices.Sort(tags)
	return strings.Join(tags, ",")
}
