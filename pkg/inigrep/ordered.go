// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strings"
)

// Ordered maps keypaths to their values, remembering the order in which
// keypaths were first added. Values of a keypath keep append order.
type Ordered struct {
	order  []string
	values map[string][]string
}

// NewOrdered returns an empty Ordered.
func NewOrdered() *Ordered {
	return &Ordered{values: make(map[string][]string)}
}

// Add appends value to keypath.
func (o *Ordered) Add(keypath, value string) {
	if _, ok := o.values[keypath]; !ok {
		o.order = append(o.order, keypath)
	}
	o.values[keypath] = append(o.values[keypath], value)
}

// Len returns the number of keypaths.
func (o *Ordered) Len() int { return len(o.order) }

// Keypaths returns the keypaths in first-seen order.
func (o *Ordered) Keypaths() []string { return slices.Clone(o.order) }

// Get returns the values of keypath, or nil.
func (o *Ordered) Get(keypath string) []string {
	return slices.Clone(o.values[keypath])
}

// All yields keypaths in first-seen order with their values.
func (o *Ordered) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, kp := range o.order {
			if !yield(kp, slices.Clone(o.values[kp])) {
				return
			}
		}
	}
}

// Tree regroups the data as section -> key -> values, splitting each
// keypath on its last period.
func (o *Ordered) Tree() map[string]map[string][]string {
	tree := make(map[string]map[string][]string)
	for _, kp := range o.order {
		i := strings.LastIndex(kp, ".")
		section, key := kp[:i], kp[i+1:]
		if tree[section] == nil {
			tree[section] = make(map[string][]string)
		}
		tree[section][key] = append(tree[section][key], o.values[kp]...)
	}
	return tree
}

// MarshalJSON encodes the data as an object whose members keep first-seen
// keypath order.
func (o *Ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kp := range o.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kp)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.values[kp])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
