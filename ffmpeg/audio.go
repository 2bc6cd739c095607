package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Sound is one effect scheduled on the master timeline.
type Sound struct {
	Path string
	At   float64 // offset in seconds
	Gain float64 // linear multiplier, 1.0 keeps the effect as recorded
}

// MixOptions describe the final audio pass: the rendered video stream is
// copied, the source soundtrack (or silence) picks up the scheduled
// effects, optionally loudness-normalized, and both are muxed together.
type MixOptions struct {
	Video     string  // concatenated render, video stream only
	Source    string  // file providing the base soundtrack, empty for silence
	Sounds    []Sound
	Output    string
	Duration  float64 // master timeline length, sizes the silent base
	Normalize bool    // EBU R128 loudness normalization
}

// loudnormSpec keeps the whole mix at a streaming-friendly loudness.
const loudnormSpec = "I=-16:TP=-1.5:LRA=11"

// MixAudio runs the final pass producing the muxed output file.
func (t *Tools) MixAudio(ctx context.Context, opts MixOptions) error {
	stream, err := buildMixGraph(opts, t.log)
	if err != nil {
		return err
	}
	if err := t.run(ctx, t.ffmpeg, stream.GetArgs()); err != nil {
		return fmt.Errorf("unable to mix audio: %w", err)
	}
	return nil
}

func buildMixGraph(opts MixOptions, log *zap.Logger) (*ffmpeggo.Stream, error) {
	if opts.Video == "" || opts.Output == "" {
		return nil, errors.New("mix: video and output paths are required")
	}
	if opts.Source == "" && opts.Duration <= 0 {
		return nil, errors.New("mix: silent base needs the timeline duration")
	}

	video := ffmpeggo.Input(opts.Video).Video()

	var base *ffmpeggo.Stream
	if opts.Source != "" {
		base = ffmpeggo.Input(opts.Source).Audio()
	} else {
		base = ffmpeggo.Input("anullsrc=channel_layout=stereo:sample_rate=44100", ffmpeggo.KwArgs{
			"f": "lavfi",
			"t": strconv.FormatFloat(opts.Duration, 'f', -1, 64),
		}).Audio()
	}

	effects := make([]*ffmpeggo.Stream, 0, len(opts.Sounds))
	for _, s := range opts.Sounds {
		if s.Gain <= 0 {
			log.Warn("Sound effect with non-positive gain dropped", zap.String("path", s.Path))
			continue
		}
		eff := ffmpeggo.Input(s.Path).Audio()
		if s.Gain != 1 {
			eff = eff.Filter("volume", ffmpeggo.Args{volumeDB(s.Gain)})
		}
		if ms := delayMillis(s.At); ms > 0 {
			eff = eff.Filter("adelay", ffmpeggo.Args{fmt.Sprintf("delays=%d:all=1", ms)})
		}
		effects = append(effects, eff)
	}

	audio := base
	if len(effects) > 0 {
		inputs := append([]*ffmpeggo.Stream{base}, effects...)
		audio = ffmpeggo.Filter(inputs, "amix",
			ffmpeggo.Args{fmt.Sprintf("inputs=%d:duration=first:normalize=0", len(inputs))})
	}
	if opts.Normalize {
		audio = audio.Filter("loudnorm", ffmpeggo.Args{loudnormSpec})
	}

	out := ffmpeggo.KwArgs{
		"c:v":      "copy",
		"movflags": "+faststart",
		"shortest": "",
	}
	if len(effects) == 0 && !opts.Normalize && opts.Source != "" {
		// Nothing touches the samples, keep the original track as is.
		out["c:a"] = "copy"
	} else {
		out["c:a"] = "aac"
		out["b:a"] = "192k"
	}

	return ffmpeggo.Output([]*ffmpeggo.Stream{video, audio}, opts.Output, out).OverWriteOutput(), nil
}

// volumeDB converts a linear gain to the decibel argument of the volume
// filter.
func volumeDB(gain float64) string {
	return fmt.Sprintf("%.2fdB", 20*math.Log10(gain))
}

// delayMillis converts a timeline offset to whole milliseconds for adelay.
func delayMillis(at float64) int {
	if at <= 0 {
		return 0
	}
	return int(math.Round(at * 1000))
}
