package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"capc/ffmpeg"
)

// span is a contiguous frame range [From, To).
type span struct {
	From, To int
}

func (s span) frames() int { return s.To - s.From }

// partition splits n frames across at most workers contiguous chunks. Early
// chunks absorb the remainder so sizes differ by at most one frame.
func partition(frames, workers int) []span {
	if frames <= 0 || workers <= 0 {
		return nil
	}
	workers = min(workers, frames)
	base := frames / workers
	extra := frames % workers
	spans := make([]span, 0, workers)
	from := 0
	for i := range workers {
		size := base
		if i < extra {
			size++
		}
		spans = append(spans, span{From: from, To: from + size})
		from += size
	}
	return spans
}

// Render produces the final video at outputPath: parts in parallel, a
// lossless merge, then the audio pass. A single worker renders the whole
// range in one piece, which keeps debug output deterministic.
func (j *Job) Render(ctx context.Context, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := j.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	spans := partition(j.frames, workers)
	if len(spans) == 0 {
		return errors.New("render: nothing to do")
	}

	j.log.Info("Render starting",
		zap.Stringer("id", j.id),
		zap.Int("frames", j.frames),
		zap.Int("workers", len(spans)))
	defer func(start time.Time) {
		j.log.Info("Render completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputPath))
	}(time.Now())

	parts, err := j.renderParts(ctx, spans)
	if err != nil {
		return err
	}

	merged := parts[0]
	if len(parts) > 1 {
		merged = filepath.Join(j.tmpDir, "merged.mp4")
		if err := j.tools.Concat(ctx, parts, merged); err != nil {
			return err
		}
	}
	return j.finishAudio(ctx, merged, outputPath)
}

// renderParts runs one worker per chunk. The first failure cancels the
// shared context so siblings drain promptly; all failures are reported.
func (j *Job) renderParts(parent context.Context, spans []span) ([]string, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	parts := make([]string, len(spans))
	errs := make([]error, len(spans))

	var wg sync.WaitGroup
	for i, sp := range spans {
		parts[i] = filepath.Join(j.tmpDir, fmt.Sprintf("part-%03d.mp4", i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := j.renderChunk(ctx, sp, parts[i]); err != nil {
				errs[i] = fmt.Errorf("part %d [%d,%d): %w", i, sp.From, sp.To, err)
				cancel()
			}
		}()
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, fmt.Errorf("unable to render parts: %w", err)
	}
	return parts, nil
}

// renderChunk decodes its frame range, composites every element onto each
// frame and streams the result into its own encoder. When the source has an
// audio track the matching slice is muxed into the part.
func (j *Job) renderChunk(ctx context.Context, sp span, path string) (rerr error) {
	dec, err := j.tools.NewDecoder(ctx, ffmpeg.DecodeOptions{
		Path:   j.video,
		Width:  j.width,
		Height: j.height,
		Rate:   j.rate,
		Start:  float64(sp.From) / j.rate,
		Frames: sp.frames(),
	})
	if err != nil {
		return err
	}
	defer func() { rerr = multierr.Append(rerr, dec.Close()) }()

	opts := ffmpeg.EncodeOptions{
		Path:    path,
		Width:   j.width,
		Height:  j.height,
		Rate:    j.rate,
		Quality: j.quality,
	}
	if j.probe.AudioStream() != nil {
		opts.AudioPath = j.video
		opts.AudioStart = float64(sp.From) / j.rate
		opts.AudioDuration = float64(sp.frames()) / j.rate
	}
	enc, err := j.tools.NewEncoder(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { rerr = multierr.Append(rerr, enc.Close()) }()

	for f := sp.From; f < sp.To; f++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := dec.ReadFrame()
		if errors.Is(err, io.EOF) {
			// probed duration overshot the stream, the part just runs short
			j.log.Debug("Source exhausted early", zap.Int("frame", f))
			break
		}
		if err != nil {
			return err
		}

		t := float64(f) / j.rate
		for _, el := range j.elements {
			if err := el.Render(frame, t); err != nil {
				return fmt.Errorf("unable to composite frame %d: %w", f, err)
			}
		}
		if err := enc.WriteFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

// finishAudio overlays scheduled sound effects and optionally normalizes
// loudness, muxing against the merged video stream copied as is. With
// nothing to mix the merged file simply moves into place.
func (j *Job) finishAudio(ctx context.Context, merged, outputPath string) error {
	if len(j.doc.Sounds) == 0 && !j.normalize {
		return moveFile(merged, outputPath)
	}

	var source string
	if j.probe.AudioStream() != nil {
		source = merged
	}
	sounds := make([]ffmpeg.Sound, 0, len(j.doc.Sounds))
	for _, s := range j.doc.Sounds {
		sounds = append(sounds, ffmpeg.Sound{Path: s.Path, At: s.At, Gain: s.Gain})
	}
	return j.tools.MixAudio(ctx, ffmpeg.MixOptions{
		Video:     merged,
		Source:    source,
		Sounds:    sounds,
		Output:    outputPath,
		Duration:  float64(j.frames) / j.rate,
		Normalize: j.normalize,
	})
}

// moveFile renames when possible and falls back to a copy for cross-device
// destinations.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to move result: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to move result: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("unable to move result: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("unable to move result: %w", err)
	}
	return os.Remove(src)
}
