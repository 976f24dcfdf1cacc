// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"fmt"
	"strings"
)

const (
	matchAlways matchMode = iota
	matchSection
	matchKey
	matchKeypath
)

type (
	matchMode int

	// Condition selects the units relevant to a query. It is one of four
	// variants: match everything, match a section context, match a key, or
	// match both (a keypath). The zero value matches everything.
	Condition struct {
		mode    matchMode
		section string
		key     string
	}
)

// Always returns a condition that matches every unit.
func Always() Condition {
	return Condition{mode: matchAlways}
}

// FromSection returns a condition matching units whose section context is
// name. The name must be non-empty and must not contain ']'.
func FromSection(name string) (Condition, error) {
	if err := validateSection(name, name); err != nil {
		return Condition{}, err
	}
	return Condition{mode: matchSection, section: name}, nil
}

// FromKey returns a condition matching units whose key equals pattern.
// Matching is exact. The pattern must be non-empty and must not contain
// '\', '[' or '='.
func FromKey(pattern string) (Condition, error) {
	if err := validateKey(pattern, pattern); err != nil {
		return Condition{}, err
	}
	return Condition{mode: matchKey, key: pattern}, nil
}

// FromKeypath parses "section.key", splitting on the last period. The empty
// string counts as both parts empty.
//
//   - both parts empty: Always (only when neither part is required)
//   - key empty: section condition (only when the key is not required)
//   - section empty, key given: always an error
//   - both given: keypath condition
func FromKeypath(text string, requireSection, requireKey bool) (Condition, error) {
	var section, key string
	if text != "" {
		i := strings.LastIndex(text, ".")
		if i < 0 {
			return Condition{}, &KeypathError{Keypath: text, Reason: "missing period"}
		}
		section, key = text[:i], text[i+1:]
	}

	switch {
	case section == "" && key != "":
		return Condition{}, &KeypathError{Keypath: text, Reason: "key given without a section"}
	case section == "" && key == "":
		if requireSection || requireKey {
			return Condition{}, &KeypathError{Keypath: text, Reason: "missing section and key"}
		}
		return Always(), nil
	case key == "":
		if requireKey {
			return Condition{}, &KeypathError{Keypath: text, Reason: "missing key"}
		}
		if err := validateSection(text, section); err != nil {
			return Condition{}, err
		}
		return Condition{mode: matchSection, section: section}, nil
	}

	if err := validateSection(text, section); err != nil {
		return Condition{}, err
	}
	if err := validateKey(text, key); err != nil {
		return Condition{}, err
	}
	return Condition{mode: matchKeypath, section: section, key: key}, nil
}

func validateSection(input, name string) error {
	if name == "" {
		return &KeypathError{Keypath: input, Reason: "missing section"}
	}
	if strings.Contains(name, "]") {
		return &KeypathError{Keypath: input, Reason: "section name must not contain ']'"}
	}
	return nil
}

func validateKey(input, name string) error {
	if name == "" {
		return &KeypathError{Keypath: input, Reason: "missing key"}
	}
	if strings.ContainsAny(name, `\[=`) {
		return &KeypathError{Keypath: input, Reason: `key name must not contain '\', '[' or '='`}
	}
	return nil
}

// Match reports whether u satisfies the condition.
func (c Condition) Match(u Unit) bool {
	switch c.mode {
	case matchSection:
		return u.ctx == c.section
	case matchKey:
		return u.key == c.key
	case matchKeypath:
		return u.ctx == c.section && u.key == c.key
	default:
		return true
	}
}

// String describes the condition for diagnostics.
func (c Condition) String() string {
	switch c.mode {
	case matchSection:
		return fmt.Sprintf("section %q", c.section)
	case matchKey:
		return fmt.Sprintf("key %q", c.key)
	case matchKeypath:
		return fmt.Sprintf("keypath %q", c.section+"."+c.key)
	default:
		return "all"
	}
}
