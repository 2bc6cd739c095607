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
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DecodeOptions select the frame stream a Decoder produces. The source is
// scaled to Width x Height and resampled to Rate so every worker sees the
// same frame grid regardless of the input timing.
type DecodeOptions struct {
	Path   string
	Width  int
	Height int
	Rate   float64
	Start  float64 // seek position in seconds
	Frames int     // stop after this many frames, zero reads to the end
}

// Decoder reads raw RGBA frames off an ffmpeg subprocess.
type Decoder struct {
	log    *zap.Logger
	cmd    *exec.Cmd
	out    io.ReadCloser
	stderr bytes.Buffer
	width  int
	height int
	eof    bool
}

func decodeArgs(opts DecodeOptions) []string {
	input := ffmpeggo.KwArgs{}
	if opts.Start > 0 {
		input["ss"] = strconv.FormatFloat(opts.Start, 'f', -1, 64)
	}
	output := ffmpeggo.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
	}
	if opts.Frames > 0 {
		output["vframes"] = opts.Frames
	}
	return ffmpeggo.Input(opts.Path, input).
		Filter("scale", ffmpeggo.Args{fmt.Sprintf("%d:%d", opts.Width, opts.Height)}).
		Filter("fps", ffmpeggo.Args{strconv.FormatFloat(opts.Rate, 'f', -1, 64)}).
		Output("pipe:", output).
		GetArgs()
}

// NewDecoder spawns the decoding subprocess. The context bounds its
// lifetime, cancelling it kills the decode mid stream.
func (t *Tools) NewDecoder(ctx context.Context, opts DecodeOptions) (*Decoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("decode: bad frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("decode: bad frame rate %g", opts.Rate)
	}

	d := &Decoder{log: t.log, width: opts.Width, height: opts.Height}
	d.cmd = t.command(ctx, t.ffmpeg, decodeArgs(opts))
	d.cmd.Stderr = &d.stderr

	out, err := d.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to open decoder pipe: %w", err)
	}
	d.out = out

	if err := d.cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start decoder: %w", err)
	}
	return d, nil
}

// ReadFrame returns the next frame. io.EOF signals a cleanly exhausted
// stream, a frame cut short mid pixel is an error.
func (d *Decoder) ReadFrame() (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	_, err := io.ReadFull(d.out, img.Pix)
	if err == io.EOF {
		d.eof = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read frame: %w", toolError(err, &d.stderr))
	}
	return img, nil
}

// Close reaps the subprocess. Shutting down before the stream is exhausted
// is legal, the resulting broken pipe is not reported as a failure.
func (d *Decoder) Close() error {
	var errs error
	errs = multierr.Append(errs, d.out.Close())
	err := d.cmd.Wait()
	if err != nil && !d.eof {
		d.log.Debug("Decoder shut down early", zap.Error(err))
		err = nil
	}
	if err != nil {
		errs = multierr.Append(errs, toolError(err, &d.stderr))
	}
	if errs != nil {
		return fmt.Errorf("unable to close decoder: %w", errs)
	}
	return nil
}
