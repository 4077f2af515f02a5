/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package value

import (
	"strings"

	"github.com/krotik/mq/ident"
)

/*
OrderedDict is a Dict's backing store: an insertion-order preserving map
keyed by interned identifiers. The dict builtins (dict, set, get, del)
intern their string keys into symbols, so a map[ident.Symbol]Value plus an
ordered key slice is enough, and avoids a linear scan on lookup.
*/
type OrderedDict struct {
	keys   []ident.Symbol
	values map[ident.Symbol]Value
}

/*
NewOrderedDict creates an empty OrderedDict.
*/
func NewOrderedDict() *OrderedDict {
	return &OrderedDict{values: make(map[ident.Symbol]Value)}
}

/*
Get looks up a key.
*/
func (d *OrderedDict) Get(k ident.Symbol) (Value, bool) {
	v, ok := d.values[k]
	return v, ok
}

/*
Set inserts or updates a key, appending it to the key order the first time
it is seen.
*/
func (d *OrderedDict) Set(k ident.Symbol, v Value) {
	if _, ok := d.values[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.values[k] = v
}

/*
Delete removes a key, preserving the order of the remaining keys.
*/
func (d *OrderedDict) Delete(k ident.Symbol) {
	if _, ok := d.values[k]; !ok {
		return
	}
	delete(d.values, k)
	for i, kk := range d.keys {
		if kk == k {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

/*
Len returns the number of entries.
*/
func (d *OrderedDict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

/*
Keys returns the keys in insertion order.
*/
func (d *OrderedDict) Keys() []ident.Symbol {
	return d.keys
}

/*
Clone returns a shallow copy with its own independent key order and map,
used by the functional dict builtins (set, del) which never mutate their
input.
*/
func (d *OrderedDict) Clone() *OrderedDict {
	c := NewOrderedDict()
	for _, k := range d.keys {
		c.Set(k, d.values[k])
	}
	return c
}

/*
Equal compares two dicts by key set and value equality, independent of
insertion order.
*/
func (d *OrderedDict) Equal(o *OrderedDict) bool {
	if d.Len() != o.Len() {
		return false
	}
	for _, k := range d.keys {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}
		v, _ := d.Get(k)
		if !Equal(v, ov) {
			return false
		}
	}
	return true
}

/*
String renders a dict as `{key: value, ...}` in insertion order.
*/
func (d *OrderedDict) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ident.Name(k))
		sb.WriteString(": ")
		v, _ := d.Get(k)
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
