/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package builtin

import (
	"testing"

	"github.com/krotik/mq/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	e, ok := Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	if !e.Arity.Accepts(len(args)) {
		t.Fatalf("builtin %q rejects %d args", name, len(args))
	}
	v, err := e.Thunk(args, nil)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("does_not_exist"); ok {
		t.Error("expected lookup miss for unregistered builtin")
	}
}

func TestArithmetic(t *testing.T) {
	if v := call(t, "add", value.IntVal(2), value.IntVal(3)); v.N.I != 5 {
		t.Error("unexpected add result:", v.String())
	}
	if v := call(t, "mul", value.FloatVal(1.5), value.IntVal(2)); v.N.Float() != 3.0 {
		t.Error("unexpected mul result:", v.String())
	}
	if _, err := thunk(t, "div", value.IntVal(1), value.IntVal(0)); err == nil {
		t.Error("expected zero division error")
	}
}

func thunk(t *testing.T, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	e, _ := Lookup(name)
	return e.Thunk(args, nil)
}

func TestComparison(t *testing.T) {
	if v := call(t, "lt", value.IntVal(1), value.IntVal(2)); !v.B {
		t.Error("expected 1 < 2")
	}
	if v := call(t, "eq", value.StringVal("a"), value.StringVal("a")); !v.B {
		t.Error("expected string equality")
	}
}

func TestStringBuiltins(t *testing.T) {
	if v := call(t, "upcase", value.StringVal("abc")); v.S != "ABC" {
		t.Error("unexpected upcase result:", v.S)
	}
	if v := call(t, "starts_with", value.StringVal("hello"), value.StringVal("he")); !v.B {
		t.Error("expected prefix match")
	}
	if v := call(t, "split", value.StringVal("a,b,c"), value.StringVal(",")); len(v.Arr) != 3 {
		t.Error("unexpected split result:", v.String())
	}
}

func TestCollectionBuiltins(t *testing.T) {
	arr := value.ArrayVal([]value.Value{value.IntVal(3), value.IntVal(1), value.IntVal(2)})
	if v := call(t, "sort", arr); v.Arr[0].N.I != 1 || v.Arr[2].N.I != 3 {
		t.Error("unexpected sort result:", v.String())
	}
	if v := call(t, "reverse", arr); v.Arr[0].N.I != 2 {
		t.Error("unexpected reverse result:", v.String())
	}
	if v := call(t, "join", arr, value.StringVal("-")); v.S != "3-1-2" {
		t.Error("unexpected join result:", v.S)
	}

	d := call(t, "dict",
		value.ArrayVal([]value.Value{value.StringVal("a"), value.IntVal(1)}),
		value.ArrayVal([]value.Value{value.StringVal("b"), value.IntVal(2)}),
	)
	if d.D.Len() != 2 {
		t.Error("unexpected dict size:", d.String())
	}
	if v := call(t, "keys", d); v.Arr[0].S != "a" || v.Arr[1].S != "b" {
		t.Error("unexpected keys result:", v.String())
	}
}

func TestRangeBuiltin(t *testing.T) {
	if v := call(t, "range", value.IntVal(3)); len(v.Arr) != 4 {
		t.Error("unexpected range result:", v.String())
	}
	if v := call(t, "range", value.IntVal(3), value.IntVal(1)); len(v.Arr) != 3 {
		t.Error("unexpected descending range result:", v.String())
	}
}

func TestMarkdownConstructors(t *testing.T) {
	h := call(t, "to_h", value.StringVal("Title"), value.IntVal(2))
	if h.Kind != value.Markdown || h.MD.Depth != 2 {
		t.Error("unexpected to_h result:", h.String())
	}

	code := call(t, "to_code", value.StringVal("x = 1"), value.StringVal("python"))
	if got, _ := code.MD.Attr("lang"); got != "python" {
		t.Error("unexpected code lang:", got)
	}
}

func TestMarkdownMutators(t *testing.T) {
	h := call(t, "to_h", value.StringVal("Title"), value.IntVal(3))
	raised := call(t, "increase_header_level", h)
	if raised.MD.Depth != 2 {
		t.Error("unexpected increased depth:", raised.MD.Depth)
	}

	attr := call(t, "attr", h, value.StringVal("depth"))
	if attr.S != "3" {
		t.Error("unexpected depth attr:", attr.S)
	}
}

func TestCoalesce(t *testing.T) {
	v := call(t, "coalesce", value.NoneVal, value.NoneVal, value.IntVal(7))
	if v.N.I != 7 {
		t.Error("unexpected coalesce result:", v.String())
	}
}
