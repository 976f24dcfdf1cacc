// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/inigrep/inigrep/internal/watch"
	"github.com/inigrep/inigrep/pkg/inigrep"
	"github.com/inigrep/inigrep/pkg/types"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch KEYPATH FILE...",
		Short: "Print the values of a keypath whenever the files change",
		Long: `Print the values of KEYPATH, then print them again every time one of
the files is written or replaced. Stop with Ctrl+C.`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runWatch(cmd.Context(), args[0], args[1:], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-running the query")

	return cmd
}

func (a *App) runWatch(ctx context.Context, keypath string, files []string, debounce time.Duration) error {
	// Reject a bad keypath before watching anything.
	if _, err := inigrep.FromKeypath(keypath, true, true); err != nil {
		return a.fail(err, keypath)
	}

	w, err := watch.New(watch.Config{
		Files:    files,
		Debounce: debounce,
		Stderr:   a.stderr,
		OnChange: func(_ context.Context, changed []string) error {
			a.logger.Debug("inputs changed", "files", changed)
			fmt.Fprintln(a.stdout, SubtitleStyle.Render("--"))
			return a.runValues(keypath, files, false, false)
		},
	})
	if err != nil {
		return &ExitError{Code: types.ExitIOError, Err: err}
	}

	// The watcher is registered first so no change after this query is lost.
	if err := a.runValues(keypath, files, false, false); err != nil {
		// A failed query is retried after the next change.
		a.logger.Warn(formatErrorForDisplay(err, a.opts.Verbose))
	}

	return w.Run(ctx)
}
