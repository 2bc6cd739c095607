package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"capc/archive"
	"capc/utils/images"
)

// LoadStill reads a raster or SVG overlay asset from disk.
func LoadStill(path string, log *zap.Logger) (*Still, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read media asset: %w", err)
	}
	img, err := decodeAsset(path, data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode media asset %s: %w", path, err)
	}
	still, err := NewStill(img)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded still asset",
		zap.String("path", path),
		zap.Int("width", still.Size().Width),
		zap.Int("height", still.Size().Height))
	return still, nil
}

// LoadSequence reads a looping frame sequence from a directory of images or
// a zip archive of them. Frames play in natural name order, so "frame2"
// precedes "frame10".
func LoadSequence(path string, fps float64, log *zap.Logger) (*Sequence, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to access sequence: %w", err)
	}

	var entries []archive.Entry
	if info.IsDir() {
		entries, err = readSequenceDir(path)
	} else {
		entries, err = archive.ReadMatching(path, "")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to list sequence frames: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return natural.Less(entries[i].Name, entries[j].Name) })

	var frames []*image.NRGBA
	for _, e := range entries {
		if !filetype.IsImage(e.Data) && !isSVG(e.Name, e.Data) {
			log.Debug("Skipping non-image sequence entry", zap.String("name", e.Name))
			continue
		}
		img, err := decodeAsset(e.Name, e.Data)
		if err != nil {
			log.Warn("Unable to decode sequence frame", zap.String("name", e.Name), zap.Error(err))
			continue
		}
		frames = append(frames, ToNRGBA(img))
	}

	seq, err := NewSequence(frames, fps)
	if err != nil {
		return nil, fmt.Errorf("unable to build sequence from %s: %w", path, err)
	}
	log.Debug("Loaded frame sequence",
		zap.String("path", path),
		zap.Int("frames", seq.Frames()),
		zap.Float64("fps", fps))
	return seq, nil
}

func readSequenceDir(dir string) ([]archive.Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var entries []archive.Entry
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, it.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, archive.Entry{Name: it.Name(), Data: data})
	}
	return entries, nil
}

func decodeAsset(name string, data []byte) (image.Image, error) {
	if isSVG(name, data) {
		return images.RasterizeSVG(data, 0, 0, 0)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func isSVG(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return true
	}
	head := bytes.TrimSpace(data)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}
