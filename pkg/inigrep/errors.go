// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"errors"
	"fmt"
)

// ErrInvalidKeypath is the sentinel error wrapped by KeypathError.
var ErrInvalidKeypath = errors.New("invalid keypath")

// KeypathError is returned when a keypath, section name or key name given
// to a query is malformed. It is always raised when the condition is
// built, never from inside a sequence.
type KeypathError struct {
	// Keypath is the offending input as the caller gave it.
	Keypath string
	// Reason says which rule was broken.
	Reason string
}

// Error implements the error interface.
func (e *KeypathError) Error() string {
	return fmt.Sprintf("invalid keypath %q: %s", e.Keypath, e.Reason)
}

// Unwrap returns ErrInvalidKeypath so callers can use errors.Is.
func (e *KeypathError) Unwrap() error { return ErrInvalidKeypath }
