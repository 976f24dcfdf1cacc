// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// OutputFormatLines prints one item, or one "keypath=value" pair, per line.
	OutputFormatLines OutputFormat = "lines"
	// OutputFormatJSON prints data as a JSON object keyed by keypath.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTOML prints data as TOML tables, one per section.
	OutputFormatTOML OutputFormat = "toml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDefault leaves the level to the verbose setting.
	LogLevelDefault LogLevel = ""
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarn    LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how the data command renders its result.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level the CLI logger prints.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// the field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// IgnoreMissing skips input files that do not exist instead of failing.
		IgnoreMissing bool `json:"ignore_missing" toml:"ignore_missing" mapstructure:"ignore_missing"`
		// Output configures result rendering.
		Output OutputConfig `json:"output" toml:"output" mapstructure:"output"`
		// UI configures terminal presentation and diagnostics.
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
	}

	// OutputConfig configures result rendering.
	OutputConfig struct {
		// Format is the default format of the data command.
		Format OutputFormat `json:"format" toml:"format" mapstructure:"format"`
	}

	// UIConfig configures terminal presentation and diagnostics.
	UIConfig struct {
		// ColorScheme selects the style used for rendered help pages.
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
		// LogLevel overrides the level implied by Verbose.
		LogLevel LogLevel `json:"log_level" toml:"log_level" mapstructure:"log_level"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		IgnoreMissing: false,
		Output: OutputConfig{
			Format: OutputFormatLines,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			LogLevel:    LogLevelDefault,
		},
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputFormatLines, OutputFormatJSON, OutputFormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: lines, json, toml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is empty or one of the named levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDefault, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }
