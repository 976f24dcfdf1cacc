// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/inigrep/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/inigrep/config.cue on macOS, %APPDATA%\inigrep\config.cue
// on Windows), falling back to ./config.cue and then to defaults. The file is validated
// against an embedded CUE schema (config_schema.cue). INIGREP_* environment variables
// override file values, e.g. INIGREP_IGNORE_MISSING=true or INIGREP_OUTPUT_FORMAT=json.
package config
