// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/inigrep/inigrep/internal/config"
	"github.com/inigrep/inigrep/pkg/inigrep"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newDataCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "data [FILE...]",
		Short: "Dump every keypath with its values",
		Long: `Dump every keypath of the input with all of its values.

The output format comes from --format or output.format in the config file:
  lines  one 'section.key=value' line per value
  json   an object keyed by keypath, in first-seen order
  toml   one table per section, every key holding an array of values`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, paths, err := app.source(args)
			if err != nil {
				return err
			}

			collect := inigrep.Data
			if raw {
				collect = inigrep.RawData
			}
			data, err := collect(src)
			if err != nil {
				return app.fail(err, strings.Join(paths, ", "))
			}
			app.logger.Debug("collected data", "keypaths", data.Len(), "format", app.opts.Format)

			return writeData(app.stdout, data, app.opts.Format)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "keep values verbatim")

	return cmd
}

// writeData renders data in the requested format.
func writeData(w io.Writer, data *inigrep.Ordered, format config.OutputFormat) error {
	switch format {
	case config.OutputFormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case config.OutputFormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(data.Tree()); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		return nil
	default:
		for keypath, values := range data.All() {
			for _, v := range values {
				if _, err := fmt.Fprintf(w, "%s=%s\n", keypath, v); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
