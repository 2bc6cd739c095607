package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Concat joins part files into one stream without re-encoding. Parts must
// share codec parameters, which holds by construction since every worker
// encodes with the same options.
func (t *Tools) Concat(ctx context.Context, parts []string, output string) error {
	if len(parts) == 0 {
		return errors.New("concat: no parts")
	}

	list, err := writeConcatList(filepath.Dir(output), parts)
	if err != nil {
		return err
	}
	defer os.Remove(list)

	args := ffmpeggo.Input(list, ffmpeggo.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeggo.KwArgs{"c": "copy"}).
		OverWriteOutput().
		GetArgs()

	t.log.Debug("Concatenating parts", zap.Int("parts", len(parts)), zap.String("output", output))
	if err := t.run(ctx, t.ffmpeg, args); err != nil {
		return fmt.Errorf("unable to concatenate parts: %w", err)
	}
	return nil
}

// writeConcatList materializes the concat demuxer playlist next to the
// output so relative temp locations never leak into it.
func writeConcatList(dir string, parts []string) (string, error) {
	f, err := os.CreateTemp(dir, "parts-*.txt")
	if err != nil {
		return "", fmt.Errorf("unable to create part list: %w", err)
	}

	var sb strings.Builder
	for _, part := range parts {
		abs, err := filepath.Abs(part)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("unable to resolve part %s: %w", part, err)
		}
		sb.WriteString(concatEntry(abs))
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("unable to write part list: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("unable to write part list: %w", err)
	}
	return f.Name(), nil
}

// concatEntry formats one playlist line. The concat demuxer quotes with
// single quotes, embedded ones are closed, escaped and reopened.
func concatEntry(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'\n"
}
