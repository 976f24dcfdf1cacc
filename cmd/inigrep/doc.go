// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for inigrep.
//
// This package implements the Cobra command hierarchy for the inigrep CLI:
// the grep-like root command, one subcommand per query of pkg/inigrep,
// the watch command, and the config and completion utilities.
package cmd
