// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the documents Decode accepts (1MB).
const DefaultMaxFileSize int64 = 1 << 20

type (
	options struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Decode.
	Option func(*options)
)

// WithMaxFileSize sets the maximum accepted document size.
func WithMaxFileSize(size int64) Option {
	return func(o *options) { o.maxFileSize = size }
}

// WithConcrete sets whether every field must be concrete after
// unification. Optional config fields need false.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// Decode compiles schema, unifies data with the definition at schemaPath
// (e.g. "#Config"), validates the result and decodes it into a T.
func Decode[T any](schema string, data []byte, schemaPath string, opts ...Option) (T, error) {
	var zero T

	o := options{maxFileSize: DefaultMaxFileSize, concrete: true, filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return zero, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return zero, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return zero, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return zero, FormatError(userValue.Err(), o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return zero, FormatError(err, o.filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return zero, FormatError(err, o.filename)
	}
	return result, nil
}
