// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/inigrep/inigrep/pkg/inigrep"

	"github.com/spf13/cobra"
)

func newValuesCommand(app *App) *cobra.Command {
	var raw, first bool

	cmd := &cobra.Command{
		Use:   "values KEYPATH [FILE...]",
		Short: "Print the values of a keypath",
		Long: `Print every value of KEYPATH ('section.key') in input order.

Values have surrounding whitespace and trailing inline comments removed.
An inline comment starts with '#' or ';' after at least two spaces.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runValues(args[0], args[1:], raw, first)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print values verbatim, as 'raw-values' does")
	cmd.Flags().BoolVar(&first, "first", false, "print only the first value")

	return cmd
}

func newRawValuesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "raw-values KEYPATH [FILE...]",
		Short: "Print the values of a keypath verbatim",
		Long: `Print every value of KEYPATH exactly as written after the first '=',
including leading spaces and inline comments.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runValues(args[0], args[1:], true, false)
		},
	}
}

func newSectionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [FILE...]",
		Short: "List section names",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, paths, err := app.source(args)
			if err != nil {
				return err
			}
			return app.print(inigrep.ListSections(src), paths)
		},
	}
}

func newKeysCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys SECTION [FILE...]",
		Short: "List the keys of a section",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, paths, err := app.source(args[1:])
			if err != nil {
				return err
			}
			seq, err := inigrep.ListKeys(src, args[0])
			if err != nil {
				return app.fail(err, args[0])
			}
			return app.print(seq, paths)
		},
	}
}

func newPathsCommand(app *App) *cobra.Command {
	var keypath string

	cmd := &cobra.Command{
		Use:   "paths [FILE...]",
		Short: "List keypaths",
		Long: `List the distinct keypaths of the input.

--keypath narrows the listing: 'section.' lists one section,
'section.key' checks for a single keypath.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, paths, err := app.source(args)
			if err != nil {
				return err
			}
			seq, err := inigrep.ListKeypaths(src, keypath)
			if err != nil {
				return app.fail(err, keypath)
			}
			return app.print(seq, paths)
		},
	}
	cmd.Flags().StringVar(&keypath, "keypath", inigrep.MatchAll, "loose keypath to list")

	return cmd
}

func newCloneCommand(app *App) *cobra.Command {
	var keypath string

	cmd := &cobra.Command{
		Use:   "clone [FILE...]",
		Short: "Re-emit the input in canonical INI form",
		Long: `Re-emit the selected sections and keys without comments or junk lines.

Each section is preceded by an empty line and each key is written as
'    key =value' with the raw value, so the output parses back to the
same data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, paths, err := app.source(args)
			if err != nil {
				return err
			}
			seq, err := inigrep.Clone(src, keypath)
			if err != nil {
				return app.fail(err, keypath)
			}
			return app.print(seq, paths)
		},
	}
	cmd.Flags().StringVar(&keypath, "keypath", inigrep.MatchAll, "loose keypath to clone")

	return cmd
}

// runValues prints the (raw) values of keypath read from files.
func (a *App) runValues(keypath string, files []string, raw, first bool) error {
	src, paths, err := a.source(files)
	if err != nil {
		return err
	}

	query := inigrep.Values
	if raw {
		query = inigrep.RawValues
	}
	seq, err := query(src, keypath)
	if err != nil {
		return a.fail(err, keypath)
	}
	a.logger.Debug("querying values", "keypath", keypath, "raw", raw)

	if first {
		v, ok, err := inigrep.First(seq)
		if err != nil {
			return a.fail(err, strings.Join(paths, ", "))
		}
		if ok {
			fmt.Fprintln(a.stdout, v)
		}
		return nil
	}
	return a.print(seq, paths)
}

// print streams seq to stdout one item per line. Lines printed before a
// read error stay printed.
func (a *App) print(seq iter.Seq2[string, error], paths []string) error {
	if err := writeLines(a.stdout, seq); err != nil {
		return a.fail(err, strings.Join(paths, ", "))
	}
	return nil
}

func writeLines(w io.Writer, seq iter.Seq2[string, error]) error {
	for line, err := range seq {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
