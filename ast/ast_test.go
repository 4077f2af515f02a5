/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"testing"

	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/lexer"
)

func parseSrc(t *testing.T, src string) *Program {
	toks, err := lexer.LexToList(0, src)
	if err != nil {
		t.Fatal("Unexpected lex error:", err)
	}
	a := arena.New()
	prog, err := Parse(0, toks, a)
	if err != nil {
		t.Fatal("Unexpected parse error:", err)
	}
	return prog
}

func TestOperatorDesugaring(t *testing.T) {

	prog := parseSrc(t, "1 + 2 * 3")

	if len(prog.Pipelines) != 1 {
		t.Fatal("Unexpected pipeline count:", len(prog.Pipelines))
	}

	root := prog.Pipelines[0]
	if root.Kind != Call || ident.Name(root.Name) != "mul" {
		t.Fatal("Expected flat left-to-right fold ending in mul, got:", root.String())
	}

	lhs := root.Args[0]
	if lhs.Kind != Call || ident.Name(lhs.Name) != "add" {
		t.Error("Expected inner add call, got:", lhs.String())
	}
}

func TestSelectorDesugaring(t *testing.T) {

	prog := parseSrc(t, ".h1")

	sel := prog.Pipelines[0]
	if sel.Kind != Selector || sel.Sel.HeadingDepth == nil || *sel.Sel.HeadingDepth != 1 {
		t.Fatal("Unexpected selector node:", sel)
	}
}

func TestSelectorAttrDesugaring(t *testing.T) {

	prog := parseSrc(t, ".list.checked")

	call := prog.Pipelines[0]
	if call.Kind != Call || ident.Name(call.Name) != "attr" {
		t.Fatal("Expected attribute suffix to desugar to attr() call, got:", call.String())
	}
	if len(call.Args) != 2 || call.Args[1].Str != "checked" {
		t.Error("Unexpected attr() call arguments:", call.Args)
	}
}

func TestPipelineChain(t *testing.T) {

	prog := parseSrc(t, `"hello" | upcase()`)

	root := prog.Pipelines[0]
	if root.Kind != Seq || len(root.Steps) != 2 {
		t.Fatal("Expected a two-stage pipeline, got:", root)
	}
	if !root.Steps[1].Pipe {
		t.Error("Second stage should be marked as pipe-threaded")
	}
}

func TestLetTermination(t *testing.T) {

	prog := parseSrc(t, "let x = 3")

	n := prog.Pipelines[0]
	if n.Kind != Let || ident.Name(n.Var) != "x" {
		t.Fatal("Unexpected let node:", n)
	}
}

func TestNodesOnlyAtRoot(t *testing.T) {

	toks, err := lexer.LexToList(0, "upcase(nodes)")
	if err != nil {
		t.Fatal(err)
	}
	a := arena.New()
	if _, err := Parse(0, toks, a); err == nil {
		t.Error("Expected an error for 'nodes' used outside root position")
	}
}

func TestMultiplePipelinesSeparatedBySemicolon(t *testing.T) {

	prog := parseSrc(t, `"a"; "b"`)

	if len(prog.Pipelines) != 2 {
		t.Fatal("Expected two independent pipelines, got:", len(prog.Pipelines))
	}
}
