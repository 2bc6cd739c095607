package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// StreamInfo describes one stream of a probed media file. Numeric attributes
// ffprobe does not report stay zero.
type StreamInfo struct {
	Index      int
	Type       string // video, audio, subtitle...
	Codec      string
	Width      int
	Height     int
	FrameRate  float64
	Duration   float64
	Channels   int
	SampleRate int
}

// ProbeInfo is the digested ffprobe output. XML keeps the raw tool output
// for the debug report.
type ProbeInfo struct {
	Format   string
	Duration float64
	Streams  []StreamInfo
	XML      string
}

// VideoStream returns the first video stream or nil.
func (pi *ProbeInfo) VideoStream() *StreamInfo {
	return pi.streamOfType("video")
}

// AudioStream returns the first audio stream or nil.
func (pi *ProbeInfo) AudioStream() *StreamInfo {
	return pi.streamOfType("audio")
}

func (pi *ProbeInfo) streamOfType(kind string) *StreamInfo {
	for i := range pi.Streams {
		if pi.Streams[i].Type == kind {
			return &pi.Streams[i]
		}
	}
	return nil
}

// Probe runs ffprobe over the given file and parses its XML report.
func (t *Tools) Probe(ctx context.Context, path string) (*ProbeInfo, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-print_format", "xml",
		"-show_format", "-show_streams",
		path,
	}
	cmd := t.command(ctx, t.ffprobe, args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("unable to probe %s: %w", path, toolError(err, &stderr))
	}
	info, err := ParseProbe(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unable to probe %s: %w", path, err)
	}
	return info, nil
}

// ParseProbe digests ffprobe -print_format xml output.
func ParseProbe(data []byte) (*ProbeInfo, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse probe report: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "ffprobe" {
		return nil, errors.New("not an ffprobe report")
	}

	info := &ProbeInfo{XML: string(data)}

	if format := root.SelectElement("format"); format != nil {
		info.Format = format.SelectAttrValue("format_name", "")
		info.Duration = attrFloat(format, "duration")
	}
	if streams := root.SelectElement("streams"); streams != nil {
		for _, e := range streams.SelectElements("stream") {
			si := StreamInfo{
				Index:      attrInt(e, "index"),
				Type:       e.SelectAttrValue("codec_type", ""),
				Codec:      e.SelectAttrValue("codec_name", ""),
				Width:      attrInt(e, "width"),
				Height:     attrInt(e, "height"),
				Duration:   attrFloat(e, "duration"),
				Channels:   attrInt(e, "channels"),
				SampleRate: attrInt(e, "sample_rate"),
			}
			// Average rate reflects VFR content better, fall back to the
			// nominal rate when it is not usable.
			si.FrameRate = parseRatio(e.SelectAttrValue("avg_frame_rate", ""))
			if si.FrameRate == 0 {
				si.FrameRate = parseRatio(e.SelectAttrValue("r_frame_rate", ""))
			}
			info.Streams = append(info.Streams, si)
		}
	}

	// Container duration is authoritative, stream durations fill in when the
	// format line has none.
	if info.Duration == 0 {
		for _, si := range info.Streams {
			info.Duration = max(info.Duration, si.Duration)
		}
	}
	return info, nil
}

func attrInt(e *etree.Element, name string) int {
	v, err := strconv.Atoi(e.SelectAttrValue(name, ""))
	if err != nil {
		return 0
	}
	return v
}

func attrFloat(e *etree.Element, name string) float64 {
	v, err := strconv.ParseFloat(e.SelectAttrValue(name, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseRatio reads ffprobe rational attributes like "30000/1001". Plain
// numbers pass through, zero denominators report zero.
func parseRatio(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	if !found {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
