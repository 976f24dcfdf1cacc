// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inigrep/inigrep/internal/config"
	"github.com/inigrep/inigrep/internal/issue"
	"github.com/inigrep/inigrep/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the inigrep command tree around app.
//
// Without a subcommand inigrep behaves like grep for INI files: the first
// argument is a keypath and its values are printed.
func NewRootCommand(app *App) *cobra.Command {
	var flags Options

	rootCmd := &cobra.Command{
		Use:   "inigrep [KEYPATH] [FILE...]",
		Short: "Query INI files by section, key and keypath",
		Long: TitleStyle.Render("inigrep") + SubtitleStyle.Render(" - Query INI files by section, key and keypath") + `

inigrep reads INI files line by line and prints what a query selects.
A keypath is 'section.key'; the last period separates section from key.
With no FILE, or when FILE is -, standard input is read.

` + SubtitleStyle.Render("Examples:") + `
  inigrep core.editor ~/.gitconfig       Print the values of core.editor
  inigrep sections app.ini               List section names
  inigrep keys server app.ini            List keys of [server]
  inigrep paths --keypath server. app.ini
  inigrep clone app.ini > clean.ini      Re-emit without comments
  inigrep data --format json app.ini`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure(cmd.Context(), flags, cmd.Flags().Changed)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return app.runValues(args[0], args[1:], false, false)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging and full error chains")
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default is $HOME/.config/inigrep/config.cue)")
	pf.BoolVar(&flags.IgnoreMissing, "ignore-missing", false, "skip input files that do not exist")
	pf.StringVar((*string)(&flags.Format), "format", string(config.OutputFormatLines), "data output format: lines, json or toml")

	rootCmd.AddCommand(
		newValuesCommand(app),
		newRawValuesCommand(app),
		newSectionsCommand(app),
		newKeysCommand(app),
		newPathsCommand(app),
		newCloneCommand(app),
		newDataCommand(app),
		newWatchCommand(app),
		newConfigCommand(app),
		newCompletionCommand(app),
	)

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it through fang.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// exitCodeOf returns the process status for an error returned by the
// command tree. Errors without an ExitError, or with a code the OS cannot
// report, exit with types.ExitIOError.
func exitCodeOf(err error) types.ExitCode {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code.Validate() != nil {
		return types.ExitIOError
	}
	return exitErr.Code
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
