package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
transcript:
  language: en
  max_gap: 0.75
layout:
  max_width_ratio: 0.9
  spacing: 8
  min_lines: 1
  max_lines: 3
  overflow: exceedMaxLines
  align: top
  vertical_offset: 0.05
animation:
  typewriter: true
  rules:
    - preset: pop
      duration: 0.3
      scope: word
    - preset: fade
      duration: 0.2
      anchor: end
      tag: emphasis
overlays:
  - path: logo.png
    start: 0
    duration: 5
    x: 24
    y: 24
audio:
  normalize: true
  sounds:
    - path: pop.wav
      at: 1.5
      gain: 0.8
render:
  workers: 4
  quality: veryHigh
  cache:
    policy: refresh
output:
  name_template: "{{.SourceFile}}-{{.Language}}"
  file_name_transliterate: true
logging:
  console:
    level: debug
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Transcript.Language != "en" {
		t.Errorf("Transcript.Language = %q, want %q", cfg.Transcript.Language, "en")
	}
	if cfg.Transcript.MaxGap != 0.75 {
		t.Errorf("Transcript.MaxGap = %f, want 0.75", cfg.Transcript.MaxGap)
	}
	if cfg.Layout.MaxWidthRatio != 0.9 {
		t.Errorf("Layout.MaxWidthRatio = %f, want 0.9", cfg.Layout.MaxWidthRatio)
	}
	if cfg.Layout.MaxLines != 3 {
		t.Errorf("Layout.MaxLines = %d, want 3", cfg.Layout.MaxLines)
	}
	if cfg.Layout.Overflow != OverflowStrategyExceedMaxLines {
		t.Errorf("Layout.Overflow = %v, want %v", cfg.Layout.Overflow, OverflowStrategyExceedMaxLines)
	}
	if cfg.Layout.Align != VAlignTop {
		t.Errorf("Layout.Align = %v, want %v", cfg.Layout.Align, VAlignTop)
	}
	if !cfg.Animation.Typewriter {
		t.Error("Expected Animation.Typewriter to be true")
	}
	if len(cfg.Animation.Rules) != 2 {
		t.Fatalf("Animation.Rules length = %d, want 2", len(cfg.Animation.Rules))
	}
	if cfg.Animation.Rules[0].Preset != AnimationPresetPop {
		t.Errorf("Rules[0].Preset = %v, want %v", cfg.Animation.Rules[0].Preset, AnimationPresetPop)
	}
	if cfg.Animation.Rules[1].Anchor != "end" || cfg.Animation.Rules[1].Tag != "emphasis" {
		t.Errorf("Rules[1] = %+v, want anchor end with tag emphasis", cfg.Animation.Rules[1])
	}
	if len(cfg.Overlays) != 1 || cfg.Overlays[0].Path != "logo.png" {
		t.Errorf("Overlays = %+v, want single logo.png entry", cfg.Overlays)
	}
	if !cfg.Audio.Normalize {
		t.Error("Expected Audio.Normalize to be true")
	}
	if len(cfg.Audio.Sounds) != 1 || cfg.Audio.Sounds[0].Gain != 0.8 {
		t.Errorf("Audio.Sounds = %+v, want single entry with gain 0.8", cfg.Audio.Sounds)
	}
	if cfg.Render.Workers != 4 {
		t.Errorf("Render.Workers = %d, want 4", cfg.Render.Workers)
	}
	if cfg.Render.Quality != QualityVeryHigh {
		t.Errorf("Render.Quality = %v, want %v", cfg.Render.Quality, QualityVeryHigh)
	}
	if cfg.Render.Cache.Policy != CachePolicyRefresh {
		t.Errorf("Render.Cache.Policy = %v, want %v", cfg.Render.Cache.Policy, CachePolicyRefresh)
	}
	if cfg.Output.NameTemplate != "{{.SourceFile}}-{{.Language}}" {
		t.Errorf("Output.NameTemplate = %q", cfg.Output.NameTemplate)
	}
	if !cfg.Output.Transliterate {
		t.Error("Expected Output.Transliterate to be true")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
transcript:
  max_gap: 1.0
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
transcript:
  max_gap: 1.0
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid version", "version: 2\n"},
		{"width ratio above one", "version: 1\nlayout:\n  max_width_ratio: 1.5\n"},
		{"max lines below min lines", "version: 1\nlayout:\n  min_lines: 3\n  max_lines: 2\n"},
		{"bad scope", "version: 1\nanimation:\n  rules:\n    - preset: fade\n      duration: 0.2\n      scope: letter\n"},
		{"overlay without path", "version: 1\noverlays:\n  - start: 0\n    duration: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "invalid_values.yaml")

			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Transcript: TranscriptConfig{
			Language: "en",
			MaxGap:   1.5,
		},
		Layout: LayoutConfig{
			MaxWidthRatio: 0.8,
			MinLines:      1,
			MaxLines:      2,
		},
		Render: RenderConfig{
			Workers: 2,
			Quality: QualityHigh,
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Errorf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if cfg2.Render.Quality != QualityHigh {
		t.Errorf("Quality mismatch after dump/load: got %v, want %v", cfg2.Render.Quality, QualityHigh)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		data := []byte(`version: 1`)
		cfg := &Config{}

		result, err := unmarshalConfig(data, cfg, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}

		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}

		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		data := []byte(`invalid: [yaml`)
		cfg := &Config{}

		_, err := unmarshalConfig(data, cfg, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// Check that default values are reasonable
	if cfg.Layout.MaxWidthRatio <= 0 || cfg.Layout.MaxWidthRatio > 1 {
		t.Errorf("Layout.MaxWidthRatio = %f, should be in (0, 1]", cfg.Layout.MaxWidthRatio)
	}

	if cfg.Layout.MinLines < 1 || cfg.Layout.MaxLines < cfg.Layout.MinLines {
		t.Errorf("Layout lines = [%d, %d], should be ordered and at least 1", cfg.Layout.MinLines, cfg.Layout.MaxLines)
	}

	if cfg.Transcript.MaxGap < 0 {
		t.Error("Transcript.MaxGap should not be negative")
	}

	if cfg.Output.DefaultExt == "" {
		t.Error("Output.DefaultExt should have a default value")
	}

	if !cfg.Render.Quality.IsValid() {
		t.Errorf("Render.Quality = %v, should be valid", cfg.Render.Quality)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	// Partial config that only overrides some values
	partialConfig := `version: 1
transcript:
  max_gap: 0.25
`

	if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// Check that explicitly set value is used
	if cfg.Transcript.MaxGap != 0.25 {
		t.Errorf("Transcript.MaxGap = %f, want 0.25 from config file", cfg.Transcript.MaxGap)
	}

	// Check that default values are still present for unspecified fields
	if cfg.Layout.MaxWidthRatio <= 0 {
		t.Error("Layout.MaxWidthRatio should have default value")
	}
	if cfg.Output.DefaultExt == "" {
		t.Error("Output.DefaultExt should have default value")
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	// version: 99 will fail validation (validate:"eq=1").
	data := []byte("version: 99\n")
	cfg := &Config{}

	_, err := unmarshalConfig(data, cfg, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}

	// The error should preserve the chain so the underlying validation
	// failure stays reachable via errors.Unwrap / errors.Is.
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error (errors.Unwrap non-nil), got bare error: %v", err)
	}
}

func TestQuality_String(t *testing.T) {
	tests := []struct {
		quality  Quality
		expected string
	}{
		{QualityLow, "low"},
		{QualityMiddle, "middle"},
		{QualityHigh, "high"},
		{QualityVeryHigh, "veryHigh"},
		{Quality(99), "Quality(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.quality.String()
			if got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestQuality_IsValid(t *testing.T) {
	tests := []struct {
		quality Quality
		valid   bool
	}{
		{QualityLow, true},
		{QualityMiddle, true},
		{QualityHigh, true},
		{QualityVeryHigh, true},
		{Quality(99), false},
		{Quality(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.quality.String(), func(t *testing.T) {
			got := tt.quality.IsValid()
			if got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Quality
		shouldErr bool
	}{
		{"low", "low", QualityLow, false},
		{"veryHigh", "veryHigh", QualityVeryHigh, false},
		{"veryhigh lowercase", "veryhigh", QualityVeryHigh, false},
		{"invalid", "invalid", Quality(0), true},
		{"empty", "", Quality(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuality(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if got != tt.expected {
					t.Errorf("ParseQuality(%q) = %v, want %v", tt.input, got, tt.expected)
				}
			}
		})
	}
}

func TestQuality_UnmarshalText(t *testing.T) {
	var q Quality
	if err := q.UnmarshalText([]byte("middle")); err != nil {
		t.Errorf("UnmarshalText() error = %v", err)
	}
	if q != QualityMiddle {
		t.Errorf("UnmarshalText(middle) = %v, want %v", q, QualityMiddle)
	}

	if err := q.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) should fail")
	}
}

func TestCachePolicy_Flags(t *testing.T) {
	tests := []struct {
		policy CachePolicy
		read   bool
		write  bool
	}{
		{CachePolicyNone, false, false},
		{CachePolicyUse, true, true},
		{CachePolicyRefresh, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			if got := tt.policy.ReadEnabled(); got != tt.read {
				t.Errorf("ReadEnabled() = %v, want %v", got, tt.read)
			}
			if got := tt.policy.WriteEnabled(); got != tt.write {
				t.Errorf("WriteEnabled() = %v, want %v", got, tt.write)
			}
		})
	}
}

func TestParseOverflowStrategy(t *testing.T) {
	tests := []struct {
		input     string
		expected  OverflowStrategy
		shouldErr bool
	}{
		{"exceedLastLineWidth", OverflowStrategyExceedLastLineWidth, false},
		{"exceedMaxLines", OverflowStrategyExceedMaxLines, false},
		{"sideways", OverflowStrategy(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOverflowStrategy(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseOverflowStrategy(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestVAlignNames(t *testing.T) {
	names := VAlignNames()
	expected := []string{"bottom", "center", "top"}

	if len(names) != len(expected) {
		t.Fatalf("VAlignNames() length = %d, want %d", len(names), len(expected))
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("VAlignNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestParseAnimationPreset(t *testing.T) {
	tests := []struct {
		input     string
		expected  AnimationPreset
		shouldErr bool
	}{
		{"none", AnimationPresetNone, false},
		{"fade", AnimationPresetFade, false},
		{"slide", AnimationPresetSlide, false},
		{"pop", AnimationPresetPop, false},
		{"zoom", AnimationPresetZoom, false},
		{"spin", AnimationPreset(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnimationPreset(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseAnimationPreset(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
