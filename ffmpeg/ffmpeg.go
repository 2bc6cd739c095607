// Package ffmpeg drives the external ffmpeg/ffprobe tools: stream probing,
// raw frame decode and encode over pipes, lossless concatenation and the
// final audio mix. Command graphs are assembled with ffmpeg-go and executed
// as context-bound subprocesses so a cancelled render tears its workers
// down promptly.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Tools locates the ffmpeg and ffprobe executables once and carries the
// logger every subprocess helper shares.
type Tools struct {
	log     *zap.Logger
	ffmpeg  string
	ffprobe string
}

// New resolves both executables. Empty paths fall back to the conventional
// names looked up in PATH.
func New(ffmpegPath, ffprobePath string, log *zap.Logger) (*Tools, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	resolved, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return nil, fmt.Errorf("unable to locate encoder executable: %w", err)
	}
	probe, err := exec.LookPath(ffprobePath)
	if err != nil {
		return nil, fmt.Errorf("unable to locate prober executable: %w", err)
	}

	t := &Tools{log: log.Named("ffmpeg"), ffmpeg: resolved, ffprobe: probe}
	t.log.Debug("External tools resolved", zap.String("ffmpeg", resolved), zap.String("ffprobe", probe))
	return t, nil
}

func (t *Tools) command(ctx context.Context, path string, args []string) *exec.Cmd {
	t.log.Debug("Starting external tool", zap.String("path", path), zap.Strings("args", args))
	return exec.CommandContext(ctx, path, args...)
}

// run executes a command to completion, surfacing the tool's own
// diagnostic line when it fails.
func (t *Tools) run(ctx context.Context, path string, args []string) error {
	cmd := t.command(ctx, path, args)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return toolError(err, &stderr)
	}
	return nil
}

// toolError folds the last stderr line of a failed tool into the error.
func toolError(err error, stderr *bytes.Buffer) error {
	if tail := stderrTail(stderr); tail != "" {
		return fmt.Errorf("%w: %s", err, tail)
	}
	return err
}

func stderrTail(stderr *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
