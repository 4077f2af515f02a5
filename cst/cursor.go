/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package cst

import "github.com/krotik/mq/token"

/*
cursor walks the full, trivia-included token slice the lexer produced.
Significant-token lookahead skips trivia without consuming it; consuming a
significant token (leaf) also consumes and attaches any trivia immediately
preceding it, which is how the tree stays lossless without every production
having to think about whitespace.
*/
type cursor struct {
	toks   []token.Token
	pos    int
	module int
}

func newCursor(toks []token.Token, module int) *cursor {
	return &cursor{toks: toks, module: module}
}

/*
sigIdx returns the index into toks of the nth significant token at or after
pos (n=0 is the next one), or len(toks) if there is none.
*/
func (c *cursor) sigIdx(n int) int {
	i := c.pos
	skipped := -1
	for i < len(c.toks) {
		if !c.toks[i].IsTrivia() {
			skipped++
			if skipped == n {
				return i
			}
		}
		i++
	}
	return len(c.toks)
}

func (c *cursor) tokAt(n int) token.Token {
	i := c.sigIdx(n)
	if i >= len(c.toks) {
		return token.Token{Kind: token.EOF, Module: c.module}
	}
	return c.toks[i]
}

func (c *cursor) cur() token.Token { return c.tokAt(0) }

func (c *cursor) at(k token.Kind) bool { return c.cur().Kind == k }

/*
leaf consumes the leading trivia run plus the next significant token (or
EOF, once, to pick up trailing trivia at end of input) and wraps them into
a TokenLeaf node.
*/
func (c *cursor) leaf() *Node {
	var leading []token.Token
	for c.pos < len(c.toks) && c.toks[c.pos].IsTrivia() {
		leading = append(leading, c.toks[c.pos])
		c.pos++
	}

	var tok token.Token
	if c.pos < len(c.toks) {
		tok = c.toks[c.pos]
		c.pos++
	} else {
		tok = token.Token{Kind: token.EOF, Module: c.module}
	}

	return &Node{Kind: TokenLeaf, Tok: tok, Leading: leading}
}

/*
skipOne consumes exactly one significant token (plus its leading trivia)
without interpreting it, used by error recovery to swallow garbage up to a
synchronizing token.
*/
func (c *cursor) skipOne() *Node {
	return c.leaf()
}
