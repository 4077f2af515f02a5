/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package ast implements the semantic syntax tree the evaluator walks.
Nodes are a single tagged-union struct discriminated by Kind rather than
a family of types behind an interface - matching the module-wide
"exhaustive case analysis, no vtables" design. Every node carries only a
TokenID handle back into the module's token arena for diagnostics, plus
the arena reference needed to resolve it, rather than a copy of the
token itself.
*/
package ast

import (
	"fmt"

	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/mdnode"
)

/*
Kind is the closed set of AST node kinds.
*/
type Kind int

/*
Known node kinds.
*/
const (
	Literal Kind = iota
	Ident_
	Self_
	Nodes_
	EnvRef
	Paren
	InterpString
	Call
	Def
	Fn
	Let
	If
	While
	Until
	Foreach
	Include
	Selector
	Seq
)

var kindNames = map[Kind]string{
	Literal: "literal", Ident_: "ident", Self_: "self", Nodes_: "nodes",
	EnvRef: "env_ref", Paren: "paren", InterpString: "interp_string",
	Call: "call", Def: "def", Fn: "fn", Let: "let", If: "if", While: "while",
	Until: "until", Foreach: "foreach", Include: "include", Selector: "selector",
	Seq: "seq",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

/*
LitKind is the closed set of literal kinds.
*/
type LitKind int

const (
	LitString LitKind = iota
	LitNumber
	LitBool
	LitNone
)

/*
InterpSegment is one piece of an interpolated string: either a literal run
or a parsed sub-expression.
*/
type InterpSegment struct {
	Literal bool
	Text    string
	Expr    *Node
}

/*
IfBranch is one `if`/`elif`/`else` arm. Cond == nil marks the `else` arm.
*/
type IfBranch struct {
	Cond *Node
	Body *Node
}

/*
Step is one stage of a top-level or block sequence. Pipe is true when this
step was introduced by `|` (its value is threaded into the step as the
implicit current value / self); false marks the first step, which starts
from the pipeline's incoming self. `;` does not create steps: it separates
whole pipelines (see Program).
*/
type Step struct {
	Node *Node
	Pipe bool
}

/*
Node is the tagged-union AST node.
*/
type Node struct {
	Kind Kind

	tok   arena.TokenID
	arena *arena.Arena

	// Literal
	LitKind LitKind
	Str     string
	NumIsInt bool
	NumI    int64
	NumF    float64
	Bool    bool

	// Ident / EnvRef
	Name    ident.Symbol
	EnvName string

	// Paren / unary containers
	Expr *Node

	// InterpString
	Segments []InterpSegment

	// Call
	Args     []*Node
	Optional bool

	// Def / Fn / Let / Foreach
	Params []ident.Symbol
	Body   *Node
	Var    ident.Symbol

	// If
	Branches []IfBranch

	// While / Until
	Cond *Node

	// Include
	Module string

	// Selector
	Sel mdnode.SelectorKind

	// Seq
	Steps []Step
}

/*
New creates a bare node of the given kind, recording its primary token.
*/
func New(kind Kind, a *arena.Arena, tok arena.TokenID) *Node {
	return &Node{Kind: kind, arena: a, tok: tok}
}

/*
SourceRange implements errs.Node by resolving this node's primary token
back through its owning arena.
*/
func (n *Node) SourceRange() errs.Range {
	if n.arena == nil {
		return errs.Range{}
	}
	return n.arena.Get(n.tok).Range
}

/*
String implements errs.Node with a short diagnostic label.
*/
func (n *Node) String() string {
	switch n.Kind {
	case Ident_:
		return fmt.Sprintf("ident(%s)", ident.Name(n.Name))
	case Call:
		return fmt.Sprintf("call(%s)", ident.Name(n.Name))
	case Def:
		return fmt.Sprintf("def(%s)", ident.Name(n.Name))
	case Selector:
		return fmt.Sprintf("selector(%s)", n.Sel.Kind)
	default:
		return n.Kind.String()
	}
}
