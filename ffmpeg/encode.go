package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"capc/config"
)

// EncodeOptions describe one encoded part file. Frames arrive raw over
// stdin; when AudioPath is set the matching slice of that file's audio
// track is muxed into the part, otherwise the part is silent.
type EncodeOptions struct {
	Path    string
	Width   int
	Height  int
	Rate    float64
	Quality config.Quality

	AudioPath     string
	AudioStart    float64
	AudioDuration float64
}

// Encoder feeds raw RGBA frames to an ffmpeg subprocess producing an H.264
// stream.
type Encoder struct {
	cmd    *exec.Cmd
	in     io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
	frames int
}

// qualityArgs maps the output quality setting to an x264 preset/CRF pair.
// Lower quality trades compression for speed, not just bitrate.
func qualityArgs(q config.Quality) (preset string, crf int) {
	switch q {
	case config.QualityLow:
		return "veryfast", 28
	case config.QualityMiddle:
		return "medium", 23
	case config.QualityHigh:
		return "slow", 18
	case config.QualityVeryHigh:
		return "slower", 15
	default:
		return "medium", 23
	}
}

func encodeArgs(opts EncodeOptions) []string {
	preset, crf := qualityArgs(opts.Quality)
	video := ffmpeggo.Input("pipe:", ffmpeggo.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": strconv.FormatFloat(opts.Rate, 'f', -1, 64),
	})
	out := ffmpeggo.KwArgs{
		"c:v":      "libx264",
		"preset":   preset,
		"crf":      crf,
		"pix_fmt":  "yuv420p",
		"movflags": "+faststart",
	}
	if opts.AudioPath == "" {
		out["an"] = ""
		return video.Output(opts.Path, out).OverWriteOutput().GetArgs()
	}
	audio := ffmpeggo.Input(opts.AudioPath, ffmpeggo.KwArgs{
		"ss": strconv.FormatFloat(opts.AudioStart, 'f', -1, 64),
		"t":  strconv.FormatFloat(opts.AudioDuration, 'f', -1, 64),
	}).Audio()
	out["c:a"] = "aac"
	out["b:a"] = "192k"
	// The trimmed track can run a frame long, the video stream sets the
	// part length.
	out["shortest"] = ""
	return ffmpeggo.Output([]*ffmpeggo.Stream{video.Video(), audio}, opts.Path, out).
		OverWriteOutput().GetArgs()
}

// NewEncoder spawns the encoding subprocess for one part file.
func (t *Tools) NewEncoder(ctx context.Context, opts EncodeOptions) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("encode: bad frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("encode: bad frame rate %g", opts.Rate)
	}

	e := &Encoder{width: opts.Width, height: opts.Height}
	e.cmd = t.command(ctx, t.ffmpeg, encodeArgs(opts))
	e.cmd.Stderr = &e.stderr

	in, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to open encoder pipe: %w", err)
	}
	e.in = in

	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start encoder: %w", err)
	}
	return e, nil
}

// WriteFrame sends one frame. The image must span exactly the configured
// frame size.
func (e *Encoder) WriteFrame(img *image.NRGBA) error {
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height || img.Stride != 4*e.width {
		return fmt.Errorf("encode: frame is %dx%d, expected %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}
	if _, err := e.in.Write(img.Pix); err != nil {
		return fmt.Errorf("unable to write frame %d: %w", e.frames, toolError(err, &e.stderr))
	}
	e.frames++
	return nil
}

// Frames reports how many frames were accepted so far.
func (e *Encoder) Frames() int {
	return e.frames
}

// Close finishes the stream and waits for the encoder to flush the file.
// Unlike the decoder an encoder failure is always a real failure.
func (e *Encoder) Close() error {
	if err := e.in.Close(); err != nil {
		e.cmd.Wait()
		return fmt.Errorf("unable to finish encode: %w", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("unable to finish encode: %w", toolError(err, &e.stderr))
	}
	return nil
}
