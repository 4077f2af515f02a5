/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package eval

import (
	"testing"

	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/env"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/mdnode"
	"github.com/krotik/mq/value"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, _, err := ParseModule(0, src)
	if err != nil {
		t.Fatal("Unexpected parse error:", err)
	}
	return prog
}

func run(t *testing.T, src string) []value.Value {
	t.Helper()
	prog := mustParse(t, src)
	ev := New(nil, nil)
	sc := env.New("root")
	res, err := ev.Evaluate(prog, "test", nil, sc)
	if err != nil {
		t.Fatal("Unexpected eval error:", err)
	}
	return res
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	prog := mustParse(t, src)
	ev := New(nil, nil)
	sc := env.New("root")
	_, err := ev.Evaluate(prog, "test", nil, sc)
	return err
}

func TestLiteralsAndArithmetic(t *testing.T) {
	res := run(t, "1 + 2 * 3")
	if res[0].Kind != value.Number || res[0].N.I != 9 {
		t.Error("Unexpected result:", res[0])
	}
}

func TestPipelineImplicitFirstArg(t *testing.T) {
	res := run(t, `"hello" | starts_with("he")`)
	if res[0].Kind != value.Bool || !res[0].B {
		t.Error("Unexpected result:", res[0])
	}
}

func TestLetAndIdent(t *testing.T) {
	res := run(t, "let x = 41; x + 1")
	if res[1].Kind != value.Number || res[1].N.I != 42 {
		t.Error("Unexpected result:", res[1])
	}
}

func TestDefAndCall(t *testing.T) {
	res := run(t, "def inc(x): x + 1; inc(41)")
	if res[1].Kind != value.Number || res[1].N.I != 42 {
		t.Error("Unexpected result:", res[1])
	}
}

func TestDefImplicitSelf(t *testing.T) {
	res := run(t, `def shout(): upcase(); "hi" | shout()`)
	if res[1].Kind != value.String || res[1].S != "HI" {
		t.Error("Unexpected result:", res[1])
	}
}

func TestFnClosureCapturesScope(t *testing.T) {
	res := run(t, "let base = 10; let f = fn(x): x + base; f(5)")
	if res[2].Kind != value.Number || res[2].N.I != 15 {
		t.Error("Unexpected result:", res[2])
	}
}

func TestIfElif(t *testing.T) {
	res := run(t, `if (false): "a" elif (true): "b" else: "c"`)
	if res[0].S != "b" {
		t.Error("Unexpected result:", res[0])
	}
}

func TestWhileLoop(t *testing.T) {
	res := run(t, "let n = 0; while (n < 3): let n = n + 1")
	arr := res[1]
	if arr.Kind != value.Array || len(arr.Arr) != 3 {
		t.Error("Unexpected result:", arr)
	}
}

func TestForeachOverArray(t *testing.T) {
	res := run(t, "foreach(x, array(1, 2, 3)): x * 2")
	arr := res[0]
	if arr.Kind != value.Array || len(arr.Arr) != 3 || arr.Arr[2].N.I != 6 {
		t.Error("Unexpected result:", arr)
	}
}

func TestOptionalCallSwallowsRuntimeError(t *testing.T) {
	res := run(t, `div(1, 0)?`)
	if !res[0].IsNone() {
		t.Error("Expected None, got:", res[0])
	}
}

func TestOptionalCallNeverSwallowsUnknownName(t *testing.T) {
	err := runErr(t, "totally_unknown_fn(1)?")
	if err == nil {
		t.Fatal("Expected an unknown-name error to propagate through '?'")
	}
	ee, ok := err.(*errs.EvalError)
	if !ok || ee.Type != errs.ErrNotDefined {
		t.Error("Unexpected error:", err)
	}
}

func TestVariableReadAsFunctionIsError(t *testing.T) {
	err := runErr(t, "let x = 1; x()")
	ee, ok := err.(*errs.EvalError)
	if !ok || ee.Type != errs.ErrVariableReadAsFunction {
		t.Error("Unexpected error:", err)
	}
}

func TestSelectorOnMarkdownSelf(t *testing.T) {
	doc := mdnode.FromSource("# Title\n\nbody\n")
	prog := mustParse(t, "foreach(n, nodes): (n | .h1)")
	ev := New(nil, nil)
	sc := env.New("root")
	res, err := ev.Evaluate(prog, "test", doc, sc)
	if err != nil {
		t.Fatal("Unexpected eval error:", err)
	}
	arr := res[0].Arr
	if len(arr) != 2 {
		t.Fatal("Unexpected result count:", arr)
	}
	if arr[0].Kind != value.Markdown || arr[0].MD.Kind != mdnode.Heading {
		t.Error("Expected matching heading node, got:", arr[0])
	}
	if !arr[1].IsNone() {
		t.Error("Expected non-heading node to yield None, got:", arr[1])
	}
}

func TestIncludeEvaluatesIntoCallerScope(t *testing.T) {
	loc := &env.MemoryImportLocator{Files: map[string]string{
		"lib": "def double(x): x * 2",
	}}
	reg := env.NewRegistry(loc)

	prog := mustParse(t, `include "lib"; double(21)`)
	ev := New(reg, nil)
	sc := env.New("root")
	res, err := ev.Evaluate(prog, "test", nil, sc)
	if err != nil {
		t.Fatal("Unexpected eval error:", err)
	}
	if res[1].Kind != value.Number || res[1].N.I != 42 {
		t.Error("Unexpected result:", res[1])
	}
}
