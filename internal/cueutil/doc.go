// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// decodes them into Go values.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	settings, err := cueutil.Decode[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and the dotted path of each offending field.
package cueutil
