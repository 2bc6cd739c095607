// Package compose drives the captioning pipeline end to end: probe the
// source footage, build and lay out the caption document, generate and
// animate word clips, then render the output in parallel chunks and remux
// audio.
package compose

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"capc/animation"
	"capc/caption"
	"capc/config"
	"capc/ffmpeg"
	"capc/media"
	"capc/misc"
	"capc/render"
	"capc/state"
	"capc/style"
	"capc/subtitle"
	"capc/transcript"
)

// Job carries everything a render needs once preparation is done: the
// probed source geometry, the fully laid out document and the flattened
// element list in paint order, overlays below captions.
type Job struct {
	id  uuid.UUID
	log *zap.Logger

	video      string
	transcript string
	language   string
	tools      *ffmpeg.Tools
	renderer   caption.Renderer
	doc        *caption.Document
	theme      *style.Theme
	probe      *ffmpeg.ProbeInfo
	elements   []*media.Element

	width  int
	height int
	rate   float64
	frames int

	quality   config.Quality
	workers   int
	normalize bool
	tmpDir    string
	keepTmp   bool
}

func (j *Job) ID() uuid.UUID { return j.id }

func (j *Job) Document() *caption.Document { return j.doc }

func (j *Job) Theme() *style.Theme { return j.theme }

// Frames returns the number of output frames the render will produce.
func (j *Job) Frames() int { return j.frames }

// Close releases the renderer and the temporary part directory. When a debug
// report captured the directory it stays behind, the report removes it after
// archiving.
func (j *Job) Close() error {
	var err error
	if j.renderer != nil {
		err = j.renderer.Close()
		j.renderer = nil
	}
	if j.tmpDir != "" {
		if !j.keepTmp {
			err = multierr.Append(err, os.RemoveAll(j.tmpDir))
		}
		j.tmpDir = ""
	}
	return err
}

// prepare runs every stage up to the actual render: probe, transcript,
// theme, word measurement, line splitting, clip generation, positioning and
// animation. The returned job owns the renderer and must be closed.
func prepare(ctx context.Context, videoPath, transcriptPath string, renderer caption.Renderer, log *zap.Logger) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate job id: %w", err)
	}

	tools, err := ffmpeg.New(cfg.Render.FFmpegPath, cfg.Render.FFprobePath, log)
	if err != nil {
		return nil, err
	}

	probe, err := tools.Probe(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	vs := probe.VideoStream()
	if vs == nil {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}
	if vs.Width <= 0 || vs.Height <= 0 || vs.FrameRate <= 0 {
		return nil, fmt.Errorf("unable to determine source geometry for %s (%dx%d at %g fps)",
			videoPath, vs.Width, vs.Height, vs.FrameRate)
	}
	frames := int(math.Floor(probe.Duration * vs.FrameRate))
	if frames <= 0 {
		return nil, fmt.Errorf("source video %s has no frames", videoPath)
	}
	env.Rpt.StoreData(fmt.Sprintf("probe-%s.xml", id), []byte(probe.XML))

	tr, err := transcript.Load(transcriptPath, log)
	if err != nil {
		return nil, err
	}
	if cfg.Transcript.Language != "" {
		tr.Language = cfg.Transcript.Language
	}
	doc, err := transcript.BuildDocument(tr, transcript.BuildOptions{MaxGap: cfg.Transcript.MaxGap}, log)
	if err != nil {
		return nil, fmt.Errorf("unable to build caption document: %w", err)
	}
	doc = doc.Normalize(log)

	theme, resources, err := loadTheme(env, log)
	if err != nil {
		return nil, err
	}

	cached := render.NewCache(renderer, cfg.Render.Cache.Path, log)
	if err := cached.Open(vs.Width, vs.Height, resources, cfg.Render.Cache.Policy); err != nil {
		return nil, fmt.Errorf("unable to open renderer: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = cached.Close()
		}
	}()

	if err := layout(doc, cached, cfg, vs.Width, vs.Height, log); err != nil {
		return nil, err
	}

	gen := subtitle.NewGenerator(cached, subtitle.Options{Typewriter: cfg.Animation.Typewriter}, log)
	if err := gen.Generate(doc); err != nil {
		return nil, fmt.Errorf("unable to generate clips: %w", err)
	}

	if err := caption.PositionClips(doc, caption.PositionOptions{
		VideoWidth:  vs.Width,
		VideoHeight: vs.Height,
		Spacing:     cfg.Layout.Spacing,
		Align:       cfg.Layout.Align,
		Offset:      cfg.Layout.VerticalOffset,
	}); err != nil {
		return nil, err
	}
	caption.UpdatePositions(doc)

	rules, err := buildRules(cfg.Animation.Rules)
	if err != nil {
		return nil, err
	}
	animation.NewAnimator(log, rules...).Apply(doc)

	for _, s := range cfg.Audio.Sounds {
		doc.Sounds = append(doc.Sounds, caption.ScheduledSound{Path: s.Path, At: s.At, Gain: s.Gain})
	}

	overlays, err := loadOverlays(cfg.Overlays, log)
	if err != nil {
		return nil, err
	}
	elements := append(overlays, doc.Elements()...)

	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("document-%s.txt", id), []byte(doc.String()))
	}

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store("workdir-"+id.String(), tmpDir)

	j := &Job{
		id:         id,
		log:        log,
		video:      videoPath,
		transcript: transcriptPath,
		language:   tr.Language,
		tools:      tools,
		renderer:   cached,
		doc:        doc,
		theme:      theme,
		probe:      probe,
		elements:   elements,
		width:      vs.Width,
		height:     vs.Height,
		rate:       vs.FrameRate,
		frames:     frames,
		quality:    cfg.Render.Quality,
		workers:    cfg.Render.Workers,
		normalize:  cfg.Audio.Normalize,
		tmpDir:     tmpDir,
		keepTmp:    env.Rpt != nil,
	}
	ok = true

	log.Info("Job prepared",
		zap.Stringer("id", id),
		zap.Int("width", j.width),
		zap.Int("height", j.height),
		zap.Float64("fps", j.rate),
		zap.Int("frames", j.frames),
		zap.Int("segments", len(doc.Segments())),
		zap.Int("elements", len(elements)))
	return j, nil
}

// layout measures words, packs them into lines and settles aggregated
// sizes. Positions come later, after clips exist.
func layout(doc *caption.Document, r caption.Renderer, cfg *config.Config, width, height int, log *zap.Logger) error {
	if err := caption.CalculateWordSizes(doc, r, log); err != nil {
		return fmt.Errorf("unable to measure words: %w", err)
	}
	opts := caption.SplitOptions{
		MaxWidth: cfg.Layout.MaxWidthRatio * float64(width),
		Spacing:  cfg.Layout.Spacing,
		MinLines: cfg.Layout.MinLines,
		MaxLines: cfg.Layout.MaxLines,
		Overflow: cfg.Layout.Overflow,
	}
	for _, seg := range doc.Segments() {
		if err := caption.Split(seg, opts); err != nil {
			return fmt.Errorf("unable to split segment %d: %w", seg.Index(), err)
		}
	}
	caption.UpdateSizes(doc, cfg.Layout.Spacing)
	return nil
}

// loadTheme reads the configured theme or falls back to the embedded
// default one.
func loadTheme(env *state.LocalEnv, log *zap.Logger) (*style.Theme, caption.Resources, error) {
	parser := style.NewParser(log)
	if path := env.Cfg.Style.ThemePath; path != "" {
		return parser.LoadTheme(path)
	}
	theme := parser.Parse(env.DefaultTheme)
	resources := caption.Resources{
		Stylesheet: theme.Source,
		FontPaths:  parser.ResolveFonts(theme, ""),
	}
	return theme, resources, nil
}
