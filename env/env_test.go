/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package env

import (
	"testing"

	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

func TestScopeChainLookup(t *testing.T) {

	root := New("global")
	child := NewWithParent("c1", root)

	x := ident.Intern("x")
	root.Define(x, value.IntVal(42))

	v, ok := child.Get(x)
	if !ok || v.N.I != 42 {
		t.Fatal("Expected child scope to see parent binding, got:", v, ok)
	}
}

func TestScopeShadowing(t *testing.T) {

	root := New("global")
	child := NewWithParent("c1", root)

	x := ident.Intern("x")
	root.Define(x, value.IntVal(1))
	child.Define(x, value.IntVal(2))

	v, _ := child.Get(x)
	if v.N.I != 2 {
		t.Error("Expected child binding to shadow parent, got:", v)
	}

	pv, _ := root.Get(x)
	if pv.N.I != 1 {
		t.Error("Shadowing in child must not affect parent, got:", pv)
	}
}

func TestScopeSetUpdatesNearestBinding(t *testing.T) {

	root := New("global")
	child := NewWithParent("c1", root)

	x := ident.Intern("x")
	root.Define(x, value.IntVal(1))

	if ok := child.Set(x, value.IntVal(9)); !ok {
		t.Fatal("Expected Set to find the parent binding")
	}

	v, _ := root.Get(x)
	if v.N.I != 9 {
		t.Error("Expected Set to update the parent binding in place, got:", v)
	}
}

func TestScopeSetUnboundReturnsFalse(t *testing.T) {

	root := New("global")
	if ok := root.Set(ident.Intern("nope"), value.IntVal(1)); ok {
		t.Error("Expected Set on an unbound name to return false")
	}
}

func TestMemoryImportLocator(t *testing.T) {

	loc := &MemoryImportLocator{Files: map[string]string{"a": `"x"`}}

	src, err := loc.Resolve("a")
	if err != nil || src != `"x"` {
		t.Fatal("Unexpected resolve result:", src, err)
	}

	if _, err := loc.Resolve("missing"); err == nil {
		t.Error("Expected an error for a missing import path")
	}
}
