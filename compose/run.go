package compose

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"capc/render"
	"capc/state"
)

//go:embed default.css
var defaultTheme []byte

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compose")

	video := cmd.Args().Get(0)
	if len(video) == 0 {
		return errors.New("no input video has been specified")
	}
	if video, err = filepath.Abs(video); err != nil {
		return err
	}

	transcriptPath := cmd.Args().Get(1)
	if len(transcriptPath) == 0 {
		return errors.New("no transcript has been specified")
	}
	if transcriptPath, err = filepath.Abs(transcriptPath); err != nil {
		return err
	}

	dst := cmd.Args().Get(2)
	if len(dst) != 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}

	env.DefaultTheme = defaultTheme
	if p := cmd.String("theme"); len(p) > 0 {
		env.Cfg.Style.ThemePath = p
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Captioning starting",
		zap.String("video", video), zap.String("transcript", transcriptPath), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Captioning completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, video, transcriptPath, dst, log)
}

// process captions a single video. Panics from the media pipeline are
// converted into errors so one broken run cannot take the CLI down without
// a usable log record.
func process(ctx context.Context, video, transcriptPath, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName, jobID string

	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Captioning ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("captioning panic: %v", r)
		} else {
			log.Info("Render job finished", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("job_id", jobID))
		}
	}(time.Now())

	job, err := prepare(ctx, video, transcriptPath, render.NewBox(log), log)
	if err != nil {
		return fmt.Errorf("unable to prepare render job: %w", err)
	}
	defer func() {
		rerr = multierr.Append(rerr, job.Close())
	}()

	jobID = job.ID().String()

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(job, video, dst, env)
	if filepath.Clean(outputName) == filepath.Clean(video) {
		return fmt.Errorf("output would overwrite the source video: %s", outputName)
	}

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := job.Render(ctx, outputName); err != nil {
		return fmt.Errorf("unable to render output: %w", err)
	}

	// Store render result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", jobID, filepath.Ext(outputName)), outputName)
	}

	return nil
}
