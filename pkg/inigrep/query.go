// SPDX-License-Identifier: MPL-2.0

package inigrep

import "iter"

// MatchAll is the loose keypath that selects everything.
const MatchAll = "."

// query wires src through the parser and cond into an extractor.
func query(src LineSource, cond Condition, extract func(iter.Seq2[Unit, error]) iter.Seq2[string, error]) iter.Seq2[string, error] {
	return extract(Filter(Parse(src), cond))
}

// ListSections yields the distinct section names of src in first-seen order.
func ListSections(src LineSource) iter.Seq2[string, error] {
	return query(src, Always(), ExtractSections)
}

// ListKeys yields the distinct keys found under section. A section that
// does not occur yields nothing.
func ListKeys(src LineSource, section string) (iter.Seq2[string, error], error) {
	cond, err := FromSection(section)
	if err != nil {
		return nil, err
	}
	return query(src, cond, ExtractKeys), nil
}

// ListKeypaths yields the distinct keypaths selected by the loose keypath
// (MatchAll lists everything, "section." lists one section).
func ListKeypaths(src LineSource, keypath string) (iter.Seq2[string, error], error) {
	cond, err := FromKeypath(keypath, false, false)
	if err != nil {
		return nil, err
	}
	return query(src, cond, ExtractKeypaths), nil
}

// Values yields every value of the "section.key" keypath in input order.
func Values(src LineSource, keypath string) (iter.Seq2[string, error], error) {
	cond, err := FromKeypath(keypath, true, true)
	if err != nil {
		return nil, err
	}
	return query(src, cond, ExtractValues), nil
}

// RawValues is Values without leading-whitespace trimming or inline
// comment removal.
func RawValues(src LineSource, keypath string) (iter.Seq2[string, error], error) {
	cond, err := FromKeypath(keypath, true, true)
	if err != nil {
		return nil, err
	}
	return query(src, cond, ExtractRawValues), nil
}

// Clone yields the lines of a regenerated file holding only the units
// selected by the loose keypath.
func Clone(src LineSource, keypath string) (iter.Seq2[string, error], error) {
	cond, err := FromKeypath(keypath, false, false)
	if err != nil {
		return nil, err
	}
	return query(src, cond, ExtractClonedLines), nil
}

// Data collects every keypath of src with all its values.
//
// The source is read into memory once, its keypaths are listed, and the
// lines are rescanned with a strict condition for each keypath, so the cost
// is O(keypaths x lines). A keypath that is not a valid strict keypath
// (a key holding '\' or '[') is reported as a *KeypathError.
func Data(src LineSource) (*Ordered, error) {
	return collectData(src, Values)
}

// RawData is Data with raw values.
func RawData(src LineSource) (*Ordered, error) {
	return collectData(src, RawValues)
}

func collectData(src LineSource, strict func(LineSource, string) (iter.Seq2[string, error], error)) (*Ordered, error) {
	lines, err := ReadLines(src)
	if err != nil {
		return nil, err
	}

	listing, err := ListKeypaths(FromLines(lines...), MatchAll)
	if err != nil {
		return nil, err
	}
	keypaths, err := Collect(listing)
	if err != nil {
		return nil, err
	}

	data := NewOrdered()
	for _, kp := range keypaths {
		seq, err := strict(FromLines(lines...), kp)
		if err != nil {
			return nil, err
		}
		for v, err := range seq {
			if err != nil {
				return nil, err
			}
			data.Add(kp, v)
		}
	}
	return data, nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var out []string
	for s, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

// First returns the first element of seq and whether there was one.
func First(seq iter.Seq2[string, error]) (string, bool, error) {
	for s, err := range seq {
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	return "", false, nil
}
