// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// StdinPath is the operand that selects standard input.
const StdinPath InputPath = "-"

// ErrInvalidInputPath is the sentinel error wrapped by InvalidInputPathError.
var ErrInvalidInputPath = errors.New("invalid input path")

type (
	// InputPath is a file operand of a query: a filesystem path or "-" for
	// standard input. The zero value ("") is invalid.
	InputPath string

	// InvalidInputPathError is returned when an InputPath value is
	// empty or whitespace-only.
	InvalidInputPathError struct {
		Value InputPath
	}
)

// String returns the string representation of the InputPath.
func (p InputPath) String() string { return string(p) }

// IsStdin reports whether the path selects standard input.
func (p InputPath) IsStdin() bool { return p == StdinPath }

// IsValid returns whether the InputPath is valid.
func (p InputPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidInputPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInputPathError.
func (e *InvalidInputPathError) Error() string {
	return fmt.Sprintf("invalid input path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidInputPath for errors.Is() compatibility.
func (e *InvalidInputPathError) Unwrap() error { return ErrInvalidInputPath }

// InputPaths converts command operands to input paths, defaulting to
// standard input when there are none.
func InputPaths(args []string) ([]InputPath, error) {
	if len(args) == 0 {
		return []InputPath{StdinPath}, nil
	}
	paths := make([]InputPath, 0, len(args))
	for _, arg := range args {
		p := InputPath(arg)
		if valid, errs := p.IsValid(); !valid {
			return nil, errs[0]
		}
		paths = append(paths, p)
	}
	return paths, nil
}
