// SPDX-License-Identifier: MPL-2.0

package inigrep

import "iter"

// Filter passes through the units matching cond. Errors are forwarded.
func Filter(units iter.Seq2[Unit, error], cond Condition) iter.Seq2[Unit, error] {
	return func(yield func(Unit, error) bool) {
		for u, err := range units {
			if err != nil {
				yield(Unit{}, err)
				return
			}
			if cond.Match(u) && !yield(u, nil) {
				return
			}
		}
	}
}

// ExtractSections yields each section header name once, in first-seen order.
func ExtractSections(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return distinct(units, func(u Unit) (string, bool) {
		return u.section, u.IsSection()
	})
}

// ExtractKeypaths yields each keypath once, in first-seen order.
func ExtractKeypaths(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return distinct(units, Unit.Keypath)
}

// ExtractKeys yields each non-empty key once, in first-seen order.
func ExtractKeys(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return distinct(units, func(u Unit) (string, bool) {
		return u.key, u.IsKeyValue() && u.key != ""
	})
}

// ExtractValues yields the cleaned value of every key/value unit in stream order.
func ExtractValues(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return project(units, func(u Unit) (string, bool) {
		return u.value, u.IsKeyValue()
	})
}

// ExtractRawValues yields the raw value of every key/value unit in stream order.
func ExtractRawValues(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return project(units, func(u Unit) (string, bool) {
		return u.rawValue, u.IsKeyValue()
	})
}

// ExtractClonedLines flattens the cloned lines of every unit in stream order.
func ExtractClonedLines(units iter.Seq2[Unit, error]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for u, err := range units {
			if err != nil {
				yield("", err)
				return
			}
			for line := range u.ClonedLines() {
				if !yield(line, nil) {
					return
				}
			}
		}
	}
}

// project yields pick(u) for every unit where it is present.
func project(units iter.Seq2[Unit, error], pick func(Unit) (string, bool)) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for u, err := range units {
			if err != nil {
				yield("", err)
				return
			}
			if s, ok := pick(u); ok && !yield(s, nil) {
				return
			}
		}
	}
}

// distinct is project without repeats.
func distinct(units iter.Seq2[Unit, error], pick func(Unit) (string, bool)) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		seen := make(map[string]struct{})
		for s, err := range project(units, pick) {
			if err != nil {
				yield("", err)
				return
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			if !yield(s, nil) {
				return
			}
		}
	}
}
