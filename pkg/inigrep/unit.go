// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
)

const (
	// KindComment is a line starting with '#' or ';' after optional whitespace.
	KindComment Kind = iota + 1
	// KindSection is a "[name]" section header line.
	KindSection
	// KindKeyValue is a "key = value" line.
	KindKeyValue
	// KindJunk is any line not recognized as one of the above.
	KindJunk
)

// cloneIndent prefixes key/value lines produced by ClonedLines.
const cloneIndent = "    "

var (
	commentRe = regexp.MustCompile(`^\s*[#;]`)
	sectionRe = regexp.MustCompile(`^\s*\[([^\]]+)\]`)
	// Two spaces are required before the marker: "a # b" keeps the comment,
	// "a  # b" does not.
	inlineCommentRe = regexp.MustCompile(`  +[#;].*$`)
)

type (
	// Kind classifies a Unit.
	Kind int

	// Unit is one classified input line together with the section context in
	// effect when it was read. Units are immutable.
	Unit struct {
		kind     Kind
		ctx      string
		line     string
		section  string
		key      string
		value    string
		rawValue string
	}
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindSection:
		return "section"
	case KindKeyValue:
		return "keyvalue"
	case KindJunk:
		return "junk"
	default:
		return "unknown"
	}
}

// Classify turns one line into a Unit given the section context in effect
// before it. For section headers the returned unit's context is the new
// section, which callers feed forward to the next line.
func Classify(line, ctxSection string) Unit {
	if commentRe.MatchString(line) {
		return Unit{kind: KindComment, ctx: ctxSection, line: line}
	}

	if m := sectionRe.FindStringSubmatch(line); m != nil {
		return Unit{kind: KindSection, ctx: m[1], line: line, section: m[1]}
	}

	key, raw, found := strings.Cut(line, "=")
	if !found {
		return Unit{kind: KindJunk, ctx: ctxSection, line: line}
	}

	return Unit{
		kind:     KindKeyValue,
		ctx:      ctxSection,
		line:     line,
		key:      strings.TrimSpace(key),
		value:    cleanValue(raw),
		rawValue: raw,
	}
}

func cleanValue(raw string) string {
	v := strings.TrimLeftFunc(raw, unicode.IsSpace)
	v = inlineCommentRe.ReplaceAllString(v, "")
	return strings.TrimRightFunc(v, unicode.IsSpace)
}

// Kind returns the classification of the unit.
func (u Unit) Kind() Kind { return u.kind }

// Context returns the section in effect for this line, or "" before the
// first section header.
func (u Unit) Context() string { return u.ctx }

// Line returns the original line text.
func (u Unit) Line() string { return u.line }

// Section returns the header name; it is set only for KindSection.
func (u Unit) Section() string { return u.section }

// Key returns the trimmed key; it is set only for KindKeyValue.
func (u Unit) Key() string { return u.key }

// Value returns the cleaned value; it is set only for KindKeyValue.
func (u Unit) Value() string { return u.value }

// RawValue returns the text after the first '=' as-is; it is set only for
// KindKeyValue.
func (u Unit) RawValue() string { return u.rawValue }

// IsSection reports whether the unit is a section header.
func (u Unit) IsSection() bool { return u.kind == KindSection }

// IsKeyValue reports whether the unit is a key/value line.
func (u Unit) IsKeyValue() bool { return u.kind == KindKeyValue }

// Keypath returns "section.key" when the unit has both a section context
// and a non-empty key.
func (u Unit) Keypath() (string, bool) {
	if u.ctx == "" || u.key == "" {
		return "", false
	}
	return u.ctx + "." + u.key, true
}

// ClonedLines returns the lines that reproduce this unit in a regenerated
// file: a blank line and the header for a section, an indented
// "key =raw value" line for a key/value, nothing otherwise.
func (u Unit) ClonedLines() iter.Seq[string] {
	return func(yield func(string) bool) {
		switch u.kind {
		case KindSection:
			if !yield("") {
				return
			}
			yield("[" + u.section + "]")
		case KindKeyValue:
			yield(cloneIndent + u.key + " =" + u.rawValue)
		}
	}
}
