package compose

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"capc/config"
	"capc/state"
)

// buildOutputPath returns constructed output file path/name based on various
// input parameters. When the destination names a file it is used as is, with
// the configured container extension appended if none was given. Otherwise
// the name comes from either the default naming scheme or a user-defined
// template, cleaned up and transliterated if requested.
func buildOutputPath(j *Job, src, dst string, env *state.LocalEnv) string {
	if dst != "" && !isDirDestination(dst) {
		if filepath.Ext(dst) == "" {
			dst += outputExtension(env)
		}
		return dst
	}

	outDir := determineOutputDir(src, dst)
	defaultFile := buildDefaultFileName(src, env)

	if env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(j, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}

	return assemblePathWithSubdirs(outDir, expandedName, env)
}

func isDirDestination(dst string) bool {
	if strings.HasSuffix(dst, string(os.PathSeparator)) || strings.HasSuffix(dst, "/") {
		return true
	}
	fi, err := os.Stat(dst)
	return err == nil && fi.IsDir()
}

func determineOutputDir(src, dst string) string {
	if dst == "" {
		return filepath.Dir(src)
	}
	return dst
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Output.Transliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + "-captioned" + outputExtension(env)
}

func outputExtension(env *state.LocalEnv) string {
	ext := env.Cfg.Output.DefaultExt
	if ext == "" {
		return ".mp4"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func expandOutputNameTemplate(j *Job, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(j, config.OutputNameTemplateFieldName, env.Cfg.Output.NameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expandedName)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed. A template may name its own
// container extension, the configured one is appended only when it does not.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	last := pathSegments[len(pathSegments)-1]
	outExt := filepath.Ext(last)
	if outExt == "" {
		outExt = outputExtension(env)
	} else {
		last = strings.TrimSuffix(last, outExt)
	}

	fileName := cleanPathSegment(last, env) + outExt
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
		path = head
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.Transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
