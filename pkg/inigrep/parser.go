// SPDX-License-Identifier: MPL-2.0

package inigrep

import "iter"

// Parse classifies every line of src, carrying the current section forward
// from header lines to the lines that follow them. A source error is
// yielded as (Unit{}, err) and ends the sequence.
func Parse(src LineSource) iter.Seq2[Unit, error] {
	return func(yield func(Unit, error) bool) {
		ctx := ""
		for line, err := range src {
			if err != nil {
				yield(Unit{}, err)
				return
			}
			u := Classify(line, ctx)
			ctx = u.ctx
			if !yield(u, nil) {
				return
			}
		}
	}
}
