package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	TranscriptConfig struct {
		Language string  `yaml:"language"`
		MaxGap   float64 `yaml:"max_gap" validate:"gte=0"`
	}

	LayoutConfig struct {
		MaxWidthRatio  float64          `yaml:"max_width_ratio" validate:"gt=0,lte=1"`
		Spacing        float64          `yaml:"spacing" validate:"gte=0"`
		MinLines       int              `yaml:"min_lines" validate:"min=1"`
		MaxLines       int              `yaml:"max_lines" validate:"min=1,gtefield=MinLines"`
		Overflow       OverflowStrategy `yaml:"overflow" validate:"gte=0"`
		Align          VAlign           `yaml:"align" validate:"gte=0"`
		VerticalOffset float64          `yaml:"vertical_offset"`
	}

	StyleConfig struct {
		ThemePath string `yaml:"theme_path" sanitize:"assure_file_access"`
	}

	AnimationRule struct {
		Preset   AnimationPreset `yaml:"preset" validate:"gte=0"`
		Duration float64         `yaml:"duration" validate:"gte=0"`
		Delay    float64         `yaml:"delay" validate:"gte=0"`
		Scope    string          `yaml:"scope,omitempty" validate:"omitempty,oneof=word line segment"`
		Anchor   string          `yaml:"anchor,omitempty" validate:"omitempty,oneof=start end"`
		Tag      string          `yaml:"tag,omitempty"`
	}

	AnimationConfig struct {
		Typewriter bool            `yaml:"typewriter"`
		Rules      []AnimationRule `yaml:"rules" validate:"dive"`
	}

	Overlay struct {
		Path     string  `yaml:"path" validate:"required"`
		Start    float64 `yaml:"start" validate:"gte=0"`
		Duration float64 `yaml:"duration" validate:"gt=0"`
		X        float64 `yaml:"x"`
		Y        float64 `yaml:"y"`
		Fps      float64 `yaml:"fps,omitempty" validate:"gte=0"`
	}

	Sound struct {
		Path string  `yaml:"path" validate:"required"`
		At   float64 `yaml:"at" validate:"gte=0"`
		Gain float64 `yaml:"gain"`
	}

	AudioConfig struct {
		Normalize bool    `yaml:"normalize"`
		Sounds    []Sound `yaml:"sounds" validate:"dive"`
	}

	CacheConfig struct {
		Policy CachePolicy `yaml:"policy" validate:"gte=0"`
		Path   string      `yaml:"path,omitempty"`
	}

	RenderConfig struct {
		Workers     int         `yaml:"workers" validate:"gte=0"`
		Quality     Quality     `yaml:"quality" validate:"gte=0"`
		FFmpegPath  string      `yaml:"ffmpeg_path,omitempty"`
		FFprobePath string      `yaml:"ffprobe_path,omitempty"`
		Cache       CacheConfig `yaml:"cache"`
	}

	OutputConfig struct {
		NameTemplate  string `yaml:"name_template"`
		Transliterate bool   `yaml:"file_name_transliterate"`
		DefaultExt    string `yaml:"default_extension"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Transcript TranscriptConfig `yaml:"transcript"`
		Layout     LayoutConfig     `yaml:"layout"`
		Style      StyleConfig      `yaml:"style"`
		Animation  AnimationConfig  `yaml:"animation"`
		Overlays   []Overlay        `yaml:"overlays" validate:"dive"`
		Audio      AudioConfig      `yaml:"audio"`
		Render     RenderConfig     `yaml:"render"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
