package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"capc/config"
	"capc/media"
)

// loadOverlays builds the configured overlay elements in declaration order.
// They paint below caption clips.
func loadOverlays(specs []config.Overlay, log *zap.Logger) ([]*media.Element, error) {
	var elements []*media.Element
	for _, spec := range specs {
		el, err := loadOverlay(spec, log)
		if err != nil {
			return nil, fmt.Errorf("unable to load overlay %s: %w", spec.Path, err)
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func loadOverlay(spec config.Overlay, log *zap.Logger) (*media.Element, error) {
	sequence, err := isSequenceAsset(spec.Path)
	if err != nil {
		return nil, err
	}

	var src media.Source
	if sequence {
		if spec.Fps <= 0 {
			return nil, fmt.Errorf("sequence overlay needs a frame rate, got %g", spec.Fps)
		}
		src, err = media.LoadSequence(spec.Path, spec.Fps, log)
	} else {
		src, err = media.LoadStill(spec.Path, log)
	}
	if err != nil {
		return nil, err
	}

	el := media.New(src, media.Window{Start: spec.Start, Duration: spec.Duration})
	el.Transform().MoveTo(media.Point{X: spec.X, Y: spec.Y})
	return el, nil
}

// isSequenceAsset reports whether the path holds a frame sequence: a
// directory of images or a zip archive of them.
func isSequenceAsset(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("unable to access overlay: %w", err)
	}
	if info.IsDir() {
		return true, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return true, nil
	}
	head := make([]byte, 262)
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("unable to open overlay: %w", err)
	}
	defer f.Close()
	n, _ := f.Read(head)
	return filetype.Is(head[:n], "zip"), nil
}
