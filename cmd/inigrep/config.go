// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inigrep/inigrep/internal/config"
	"github.com/inigrep/inigrep/internal/issue"
	"github.com/inigrep/inigrep/pkg/types"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the `inigrep config` command tree.
// Subcommands that read configuration use the App's config.Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage inigrep configuration",
		Long: `Manage inigrep configuration.

Configuration is stored in:
  - Linux: ~/.config/inigrep/config.cue
  - macOS: ~/Library/Application Support/inigrep/config.cue
  - Windows: %APPDATA%\inigrep\config.cue

A config.cue in the working directory is used when none exists there.
INIGREP_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, cfgPath)
			return nil
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, dumpFormat)
		},
	}
	dumpCmd.Flags().StringVarP(&dumpFormat, "output", "o", "cue", "encoding: cue, json or toml")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

// loadedConfig reloads the configuration the way the root command did, but
// fails instead of falling back to defaults.
func loadedConfig(ctx context.Context, app *App) (*config.Config, string, error) {
	opts := config.LoadOptions{ConfigFilePath: app.opts.ConfigPath}
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		renderServiceError(app.stderr, app.logger, newServiceError(err, issue.ConfigLoadFailedId), app.cfg.UI.ColorScheme.String())
		return nil, "", &ExitError{Code: types.ExitIOError, Err: err}
	}
	source, err := app.Config.Source(opts)
	if err != nil {
		return nil, "", &ExitError{Code: types.ExitIOError, Err: err}
	}
	return cfg, source, nil
}

func showConfig(ctx context.Context, app *App) error {
	cfg, source, err := loadedConfig(ctx, app)
	if err != nil {
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	w := app.stdout
	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("ignore_missing"), valueStyle.Render(fmt.Sprintf("%v", cfg.IgnoreMissing)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(cfg.Output.Format.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	logLevel := cfg.UI.LogLevel.String()
	if logLevel == "" {
		logLevel = SubtitleStyle.Render("(from verbose)")
	} else {
		logLevel = valueStyle.Render(logLevel)
	}
	fmt.Fprintf(w, "  log_level: %s\n", logLevel)

	return nil
}

func initConfig(app *App) error {
	cfgPath, created, err := config.CreateDefaultConfig()
	if err != nil {
		return &ExitError{Code: types.ExitIOError, Err: err}
	}

	if !created {
		fmt.Fprintf(app.stdout, "Config file already exists at: %s\n", cfgPath)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default config file at: %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func dumpConfig(ctx context.Context, app *App, format string) error {
	cfg, _, err := loadedConfig(ctx, app)
	if err != nil {
		return err
	}

	switch format {
	case "cue":
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, string(out))
	case "toml":
		if err := toml.NewEncoder(app.stdout).Encode(cfg); err != nil {
			return err
		}
	default:
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("unknown dump format %q (valid: cue, json, toml)", format)}
	}
	return nil
}
