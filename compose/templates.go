package compose

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"capc/config"
)

// Values holds the variables available to output name templates.
type Values struct {
	Context    string
	SourceFile string
	Transcript string
	Language   string
	Date       string
	Width      int
	Height     int
	Fps        float64
	Duration   float64
	Segments   int
	Words      int
	JobID      string
}

func expandTemplate(j *Job, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		SourceFile: baseName(j.video),
		Transcript: baseName(j.transcript),
		Language:   j.language,
		Date:       time.Now().Format("2006-01-02"),
		Width:      j.width,
		Height:     j.height,
		Fps:        j.rate,
		Duration:   float64(j.frames) / j.rate,
		Segments:   len(j.doc.Segments()),
		Words:      countWords(j),
		JobID:      j.id.String(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func countWords(j *Job) int {
	count := 0
	for _, seg := range j.doc.Segments() {
		count += len(seg.Words())
	}
	return count
}
