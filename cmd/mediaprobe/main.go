// mediaprobe prints media file facts the way the captioning pipeline sees
// them: ffprobe stream info for audio/video containers, pixel dimensions and
// estimated encoder quality for still images.
//
// It is a troubleshooting companion for capc - when a render misbehaves on
// some input, run mediaprobe over the video and the overlay assets and attach
// the output to the issue.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"capc/ffmpeg"
	"capc/jpegquality"
)

func main() {
	ffmpegPath := flag.String("ffmpeg", "", "ffmpeg executable to use (default: search PATH)")
	ffprobePath := flag.String("ffprobe", "", "ffprobe executable to use (default: search PATH)")
	rawXML := flag.Bool("xml", false, "print raw ffprobe XML report instead of the summary")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: mediaprobe [-ffmpeg path] [-ffprobe path] [-xml] <file> [file...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints stream info for audio/video files and dimensions/quality for stills.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	// Tools are resolved lazily - image-only runs work without ffmpeg
	// installed.
	var tools *ffmpeg.Tools

	failed := false
	for _, path := range flag.Args() {
		if err := probeOne(path, *ffmpegPath, *ffprobePath, *rawXML, &tools); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func probeOne(path, ffmpegPath, ffprobePath string, rawXML bool, tools **ffmpeg.Tools) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if filetype.IsImage(data) {
		return probeImage(path, data)
	}

	if *tools == nil {
		t, err := ffmpeg.New(ffmpegPath, ffprobePath, zap.NewNop())
		if err != nil {
			return err
		}
		*tools = t
	}
	return probeAV(*tools, path, rawXML)
}

func probeImage(path string, data []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to decode image: %w", err)
	}

	line := fmt.Sprintf("%s: %s image, %dx%d", path, format, cfg.Width, cfg.Height)
	if kind, err := filetype.Match(data); err == nil && kind.Extension == "jpg" {
		if jr, err := jpegquality.NewWithBytes(data); err == nil {
			if q := jr.Quality(); q > 0 {
				line += fmt.Sprintf(", quality %d", q)
			} else {
				line += ", quality unknown"
			}
		}
	}
	fmt.Println(line)
	return nil
}

func probeAV(tools *ffmpeg.Tools, path string, rawXML bool) error {
	info, err := tools.Probe(context.Background(), path)
	if err != nil {
		return err
	}

	if rawXML {
		fmt.Print(info.XML)
		if !strings.HasSuffix(info.XML, "\n") {
			fmt.Println()
		}
		return nil
	}

	fmt.Printf("%s: %s, %.2fs\n", path, info.Format, info.Duration)
	for _, s := range info.Streams {
		switch s.Type {
		case "video":
			fmt.Printf("  #%d video %s %dx%d %.3ffps\n", s.Index, s.Codec, s.Width, s.Height, s.FrameRate)
		case "audio":
			fmt.Printf("  #%d audio %s %dch %dHz\n", s.Index, s.Codec, s.Channels, s.SampleRate)
		default:
			fmt.Printf("  #%d %s %s\n", s.Index, s.Type, s.Codec)
		}
	}
	return nil
}
