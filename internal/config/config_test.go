// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/inigrep/inigrep/internal/issue"
	"github.com/inigrep/inigrep/internal/testutil"
)

// isolate points the config directory at a fresh temp dir, runs the test
// from another temp dir and clears INIGREP_* variables that would leak in.
func isolate(t *testing.T) string {
	t.Helper()

	cfgDir := t.TempDir()
	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)

	t.Cleanup(testutil.MustChdir(t, t.TempDir()))

	for _, key := range []string{
		"INIGREP_IGNORE_MISSING",
		"INIGREP_OUTPUT_FORMAT",
		"INIGREP_UI_COLOR_SCHEME",
		"INIGREP_UI_VERBOSE",
		"INIGREP_UI_LOG_LEVEL",
	} {
		t.Cleanup(testutil.MustUnsetenv(t, key))
	}

	return cfgDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IgnoreMissing {
		t.Error("expected default ignore_missing to be false")
	}

	if cfg.Output.Format != OutputFormatLines {
		t.Errorf("expected default output format to be lines, got %s", cfg.Output.Format)
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.UI.LogLevel != LogLevelDefault {
		t.Errorf("expected default log level to be empty, got %q", cfg.UI.LogLevel)
	}

	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config"))

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}

		expected := filepath.Join("/tmp/test-xdg-config", AppName)
		if dir != expected {
			t.Errorf("ConfigDir() = %s, want %s", dir, expected)
		}
	}

	override := t.TempDir()
	SetConfigDirOverride(override)
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != override {
		t.Errorf("ConfigDir() with override = %s, want %s", dir, override)
	}
}

func TestConfigFilePath(t *testing.T) {
	cfgDir := isolate(t)

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}

	expected := filepath.Join(cfgDir, "config.cue")
	if path != expected {
		t.Errorf("ConfigFilePath() = %s, want %s", path, expected)
	}
}

func TestReset(t *testing.T) {
	SetConfigDirOverride("/some/dir")
	Reset()

	if configDirOverride != "" {
		t.Errorf("Reset() left override %q", configDirOverride)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *DefaultConfig())
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	cfgDir := isolate(t)

	testutil.MustWriteFile(t, cfgDir, "config.cue", `
ignore_missing: true
output: format: "json"
ui: {
	color_scheme: "dark"
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if !cfg.IgnoreMissing {
		t.Error("expected ignore_missing to be true")
	}
	if cfg.Output.Format != OutputFormatJSON {
		t.Errorf("expected output format json, got %s", cfg.Output.Format)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("expected color scheme dark, got %s", cfg.UI.ColorScheme)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose to be true")
	}
	// Unset fields keep their defaults.
	if cfg.UI.LogLevel != LogLevelDefault {
		t.Errorf("expected default log level, got %q", cfg.UI.LogLevel)
	}
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	isolate(t)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() returned error: %v", err)
	}
	testutil.MustWriteFile(t, wd, "config.cue", `output: format: "toml"`+"\n")

	p := NewProvider()

	source, err := p.Source(LoadOptions{})
	if err != nil {
		t.Fatalf("Source() returned error: %v", err)
	}
	if source != "config.cue" {
		t.Errorf("Source() = %q, want %q", source, "config.cue")
	}

	cfg, err := p.Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Output.Format != OutputFormatTOML {
		t.Errorf("expected output format toml, got %s", cfg.Output.Format)
	}
}

func TestLoad_ConfigDirPathOption(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "config.cue", "ignore_missing: true\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !cfg.IgnoreMissing {
		t.Error("expected ignore_missing from ConfigDirPath to be true")
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	cfgDir := isolate(t)

	// The explicit file wins over the config directory.
	testutil.MustWriteFile(t, cfgDir, "config.cue", `output: format: "json"`+"\n")
	custom := testutil.MustWriteFile(t, t.TempDir(), "custom.cue", `output: format: "toml"`+"\n")

	opts := LoadOptions{ConfigFilePath: custom}
	p := NewProvider()

	source, err := p.Source(opts)
	if err != nil {
		t.Fatalf("Source() returned error: %v", err)
	}
	if source != custom {
		t.Errorf("Source() = %q, want %q", source, custom)
	}

	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Output.Format != OutputFormatTOML {
		t.Errorf("expected output format toml, got %s", cfg.Output.Format)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	isolate(t)

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on missing config error")
	}
}

func TestLoad_CustomPath_InvalidCUE_ReturnsError(t *testing.T) {
	isolate(t)

	path := testutil.MustWriteFile(t, t.TempDir(), "bad.cue", "output: {\n")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("expected error for invalid CUE syntax")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "load configuration")
	}
}

func TestLoad_SchemaViolation_ReturnsError(t *testing.T) {
	isolate(t)

	path := testutil.MustWriteFile(t, t.TempDir(), "bad.cue", `output: format: "yaml"`+"\n")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	if !strings.Contains(err.Error(), "output.format") {
		t.Errorf("error should name the offending field, got: %v", err)
	}
}

func TestLoad_UnknownField_ReturnsError(t *testing.T) {
	isolate(t)

	path := testutil.MustWriteFile(t, t.TempDir(), "bad.cue", "search_paths: []\n")

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path}); err == nil {
		t.Fatal("expected error for field outside the closed #Config schema")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	cfgDir := isolate(t)

	testutil.MustWriteFile(t, cfgDir, "config.cue", `output: format: "toml"`+"\n")
	t.Cleanup(testutil.MustSetenv(t, "INIGREP_OUTPUT_FORMAT", "json"))
	t.Cleanup(testutil.MustSetenv(t, "INIGREP_UI_VERBOSE", "true"))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Output.Format != OutputFormatJSON {
		t.Errorf("expected env override json, got %s", cfg.Output.Format)
	}
	if !cfg.UI.Verbose {
		t.Error("expected INIGREP_UI_VERBOSE to enable verbose")
	}
}

func TestLoad_InvalidEnvOverride_ReturnsError(t *testing.T) {
	isolate(t)

	t.Cleanup(testutil.MustSetenv(t, "INIGREP_OUTPUT_FORMAT", "xml"))

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil {
		t.Fatal("expected error for invalid env override")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected errors.Is(err, ErrInvalidConfig), got %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if !strings.Contains(ae.Format(false), "INIGREP_") {
		t.Errorf("expected suggestion mentioning INIGREP_ variables, got:\n%s", ae.Format(false))
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with canceled context error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	cfgDir := isolate(t)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("expected config file to be created")
	}
	if path != filepath.Join(cfgDir, "config.cue") {
		t.Errorf("CreateDefaultConfig() path = %s", path)
	}

	// A second call leaves the existing file alone.
	testutil.MustWriteFile(t, cfgDir, "config.cue", "ignore_missing: true\n")
	_, created, err = CreateDefaultConfig()
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	if created {
		t.Error("expected existing config file to be kept")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() returned error: %v", err)
	}
	if string(data) != "ignore_missing: true\n" {
		t.Errorf("config file was overwritten: %q", data)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	isolate(t)

	want := &Config{
		IgnoreMissing: true,
		Output:        OutputConfig{Format: OutputFormatJSON},
		UI: UIConfig{
			ColorScheme: ColorSchemeLight,
			Verbose:     true,
			LogLevel:    LogLevelInfo,
		},
	}

	path := testutil.MustWriteFile(t, t.TempDir(), "generated.cue", GenerateCUE(want))

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() of generated CUE returned error: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", *got, *want)
	}
}

func TestConstants(t *testing.T) {
	if AppName != "inigrep" {
		t.Errorf("AppName = %s, want inigrep", AppName)
	}
	if ConfigFileName != "config" {
		t.Errorf("ConfigFileName = %s, want config", ConfigFileName)
	}
	if ConfigFileExt != "cue" {
		t.Errorf("ConfigFileExt = %s, want cue", ConfigFileExt)
	}
	if EnvPrefix != "INIGREP" {
		t.Errorf("EnvPrefix = %s, want INIGREP", EnvPrefix)
	}
}
