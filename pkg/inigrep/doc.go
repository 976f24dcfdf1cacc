// SPDX-License-Identifier: MPL-2.0

// Package inigrep is a streaming query engine for INI-like files.
//
// Input is read line by line and every line is classified into a Unit
// (comment, section header, key/value or junk) that carries the section
// context in effect at that point. Queries are addressed with keypaths of
// the form "section.key", split on the last period, so section names may
// contain periods but keys may not.
//
// No document model is built. Every query is a chain of lazy iterators:
//
//	LineSource -> Parse -> Filter(Condition) -> extractor
//
// and file I/O happens only when the caller pulls the next element:
//
//	values, err := inigrep.Values(inigrep.Open("app.ini"), "db.host")
//	if err != nil {
//		return err // invalid keypath
//	}
//	for v, err := range values {
//		if err != nil {
//			return err // I/O error, possibly mid-stream
//		}
//		fmt.Println(v)
//	}
//
// Sequences are single-pass and not restartable, since a source may wrap
// standard input. Values are always strings.
package inigrep
