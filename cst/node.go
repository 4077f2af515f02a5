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
Package cst implements the lossless Concrete Syntax Tree parser: every
byte of the source text, including whitespace and comments, is recoverable
from the tree it produces. Unlike the ast package, it never fails fatally -
a malformed span becomes an Error node and parsing resumes at the next
synchronizing token, so editor tooling always gets a complete tree back.
*/
package cst

import "github.com/krotik/mq/token"

/*
Kind is the syntactic category of a CST node.
*/
type Kind int

/*
Known CST node kinds. TokenLeaf wraps a single significant token plus the
trivia immediately preceding it; every other kind is a composite node whose
Children reproduce the source in exact order.
*/
const (
	TokenLeaf Kind = iota
	Program
	Pipeline
	BinOp
	Unary
	Paren
	Call
	ArgList
	ParamList
	Selector
	Def
	Fn
	Let
	If
	IfBranch
	While
	Until
	Foreach
	Include
	Error
)

/*
Node is one element of the lossless tree. For a TokenLeaf, Tok and Leading
carry the actual text; for any other Kind, Children carries the sub-tree in
source order and Tok/Leading are unused.
*/
type Node struct {
	Kind     Kind
	Tok      token.Token
	Leading  []token.Token
	Children []*Node
}

/*
Text reconstructs the exact source span this node covers, trivia included.
*/
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Kind == TokenLeaf {
		var out string
		for _, t := range n.Leading {
			if t.Kind == token.Comment {
				out += "#" // the lexer stores a comment's text without its '#'
			}
			out += t.Val
		}
		return out + n.leafText()
	}
	var out string
	for _, c := range n.Children {
		out += c.Text()
	}
	return out
}

/*
leafText renders a TokenLeaf's own token. String and InterpolatedString
tokens carry Val in decoded form (escapes resolved, quotes stripped), so
Text reproduces the source exactly only by using the original Raw span the
lexer also records for them; every other kind's Val already is the source
substring.
*/
func (n *Node) leafText() string {
	if n.Tok.Raw != "" {
		return n.Tok.Raw
	}
	return n.Tok.Val
}

/*
Append adds a child to a composite node and returns the node, for fluent
tree building.
*/
func (n *Node) Append(c *Node) *Node {
	n.Children = append(n.Children, c)
	return n
}
