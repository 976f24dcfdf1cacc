// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/inigrep/inigrep/internal/config"

	"github.com/charmbracelet/log"
)

// newLogger builds the diagnostic logger. An explicit level wins over the
// one implied by verbose.
func newLogger(w io.Writer, verbose bool, level config.LogLevel) *log.Logger {
	lvl := log.WarnLevel
	if verbose {
		lvl = log.DebugLevel
	}
	if level != config.LogLevelDefault {
		if parsed, err := log.ParseLevel(level.String()); err == nil {
			lvl = parsed
		}
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "inigrep",
		Level:  lvl,
	})
}
