// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/inigrep/inigrep/internal/config"
	"github.com/inigrep/inigrep/pkg/inigrep"
	"github.com/inigrep/inigrep/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and read
	// inputs, configuration and output writers through it.
	App struct {
		Config config.Provider
		FS     afero.Fs
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Set by the root command before any subcommand runs.
		opts   Options
		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply an in-memory
	// filesystem, canned stdin and capture buffers.
	Dependencies struct {
		Config config.Provider
		FS     afero.Fs
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Options are the global flags after config defaults have been applied.
	Options struct {
		// ConfigPath is the explicit --config value.
		ConfigPath string
		// IgnoreMissing skips input files that do not exist.
		IgnoreMissing bool
		// Verbose enables debug logging and full error chains.
		Verbose bool
		// Format selects how the data command renders its result.
		Format config.OutputFormat
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}

	return &App{
		Config: deps.Config,
		FS:     deps.FS,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: newLogger(deps.Stderr, false, config.LogLevelDefault),
	}
}

// configure loads the configuration and merges it under the flags that were
// set explicitly on the command line.
func (a *App) configure(ctx context.Context, flags Options, changed func(name string) bool) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.ConfigPath})
	if err != nil {
		if flags.ConfigPath != "" {
			return &ExitError{Code: types.ExitIOError, Err: err}
		}
		// A broken default config must not block queries.
		a.logger.Warn(formatErrorForDisplay(err, flags.Verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	opts := flags
	opts.IgnoreMissing = flags.IgnoreMissing || cfg.IgnoreMissing
	opts.Verbose = flags.Verbose || cfg.UI.Verbose
	if !changed("format") {
		opts.Format = cfg.Output.Format
	}
	if valid, errs := opts.Format.IsValid(); !valid {
		return &ExitError{Code: types.ExitUsage, Err: errs[0]}
	}
	a.opts = opts

	a.logger = newLogger(a.stderr, opts.Verbose, cfg.UI.LogLevel)
	if source, srcErr := a.Config.Source(config.LoadOptions{ConfigFilePath: flags.ConfigPath}); srcErr == nil && source != "" {
		a.logger.Debug("loaded configuration", "path", source)
	}

	return nil
}

// opener returns an Opener over the App's filesystem and stdin that logs
// the files it skips.
func (a *App) opener() *inigrep.Opener {
	return &inigrep.Opener{
		FS:    a.FS,
		Stdin: a.stdin,
		OnMissing: func(path string) {
			a.logger.Debug("skipping missing file", "path", path)
		},
	}
}

// source resolves command operands into one line source, honoring
// --ignore-missing.
func (a *App) source(args []string) (inigrep.LineSource, []string, error) {
	inputs, err := types.InputPaths(args)
	if err != nil {
		return nil, nil, &ExitError{Code: types.ExitUsage, Err: err}
	}

	paths := make([]string, len(inputs))
	for i, p := range inputs {
		paths[i] = p.String()
	}
	a.logger.Debug("reading inputs", "paths", paths, "ignoreMissing", a.opts.IgnoreMissing)

	if a.opts.IgnoreMissing {
		return a.opener().OpenExisting(paths...), paths, nil
	}
	return a.opener().OpenAll(paths...), paths, nil
}
