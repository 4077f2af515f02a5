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

import (
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/lexer"
	"github.com/krotik/mq/token"
)

/*
binOpKinds is the same flat operator tier ast.Parser folds, duplicated here
because the CST needs to recognize these tokens without desugaring them -
the CST keeps the operator token itself as a leaf rather than a builtin
call name.
*/
var binOpKinds = map[token.Kind]bool{
	token.AndAnd: true, token.OrOr: true, token.Plus: true, token.Minus: true,
	token.Star: true, token.Slash: true, token.Percent: true, token.EqEq: true,
	token.NotEq: true, token.Lt: true, token.LtEq: true, token.Gt: true,
	token.GtEq: true, token.DotDot: true,
}

/*
syncKinds is the set of token kinds parser error recovery scans forward to:
reaching any of these (without consuming it) ends recovery and lets the
enclosing production try again from a known-good position.
*/
var syncKinds = map[token.Kind]bool{
	token.If: true, token.While: true, token.Foreach: true, token.Let: true,
	token.Def: true, token.Identifier: true, token.Pipe: true,
	token.Semicolon: true, token.EOF: true,
}

type parser struct {
	c        *cursor
	reporter *ErrorReporter
	module   int
}

/*
Parse lexes and CST-parses src for the given module id. Unlike ast.Parse,
it never returns a fatal error for malformed input - diagnostics accumulate
in the returned ErrorReporter (capped per config.MaxCSTErrors) and bad spans
become Error nodes, so callers always get a usable tree back. When src lexes
cleanly, Node.Text() reproduces it byte for byte; after a lexical error the
tree covers only the tokens before it (see collectTokens).
*/
func Parse(module int, src string) (*Node, *ErrorReporter) {
	toks, lexErr := collectTokens(module, src)
	reporter := NewErrorReporter()
	if lexErr != nil {
		reporter.Add(lexErr.Kind, lexErr.Msg, lexErr.Range)
	}

	p := &parser{c: newCursor(toks, module), reporter: reporter, module: module}
	return p.parseProgram(), reporter
}

/*
collectTokens drains the lexer's channel in full. A lexical error ends the
channel early (the lexer cannot recover a span it could not tokenize), so
the returned token list is only ever a prefix of src in that case; the
caller synthesizes a closing EOF so the rest of the pipeline still has
something to walk.
*/
func collectTokens(module int, src string) ([]token.Token, *errs.ParseError) {
	var toks []token.Token
	var lexErr *errs.ParseError

	for t := range lexer.Lex(module, src) {
		if t.Kind == token.Error {
			lexErr = errs.NewParseError(errs.ErrUnexpectedToken, t.Val, t.Range)
			toks = append(toks, token.Token{Kind: token.EOF, Range: t.Range, Module: module})
			break
		}
		toks = append(toks, t)
	}

	return toks, lexErr
}

func (p *parser) err(kind error, msg string) {
	p.reporter.Add(kind, msg, p.c.cur().Range)
}

/*
recover swallows tokens (preserving them losslessly inside the returned
Error node) until the next synchronizing token, so one malformed
construct doesn't cascade into spurious errors for everything after it.
*/
func (p *parser) recover() *Node {
	n := &Node{Kind: Error}
	for !syncKinds[p.c.cur().Kind] {
		n.Append(p.c.skipOne())
	}
	return n
}

func (p *parser) expect(k token.Kind, msg string) *Node {
	if !p.c.at(k) {
		p.err(errs.ErrUnexpectedToken, msg)
		return p.recover()
	}
	return p.c.leaf()
}

// Program / pipelines
// ====================

func (p *parser) parseProgram() *Node {
	prog := &Node{Kind: Program}

	for !p.c.at(token.EOF) {
		prog.Append(p.parsePipeline(true))

		if p.c.at(token.Semicolon) {
			prog.Append(p.c.leaf())
			continue
		}
		if p.c.at(token.EOF) {
			break
		}
		p.err(errs.ErrUnexpectedToken, "expected ';' or end of input between pipelines")
		prog.Append(p.recover())
	}
	prog.Append(p.c.leaf()) // EOF, carrying any trailing trivia

	return prog
}

func (p *parser) parsePipeline(root bool) *Node {
	n := &Node{Kind: Pipeline}
	n.Append(p.parseExpr(root))

	for p.c.at(token.Pipe) {
		n.Append(p.c.leaf())
		n.Append(p.parseExpr(false))
	}
	return n
}

// Expressions
// ===========

func (p *parser) parseExpr(root bool) *Node {
	lhs := p.parsePrimary(root)

	for binOpKinds[p.c.cur().Kind] {
		op := p.c.leaf()
		rhs := p.parsePrimary(false)
		n := &Node{Kind: BinOp}
		n.Append(lhs)
		n.Append(op)
		n.Append(rhs)
		lhs = n
	}
	return lhs
}

func (p *parser) parsePrimary(root bool) *Node {
	t := p.c.cur()

	switch t.Kind {
	case token.String, token.InterpolatedString, token.Number, token.Bool, token.None,
		token.Self, token.EnvRef, token.Selector:
		return p.c.leaf()

	case token.Nodes:
		if !root {
			p.err(errs.ErrUnexpectedToken, "'nodes' is only legal at root-level pipeline position")
		}
		return p.c.leaf()

	case token.Bang, token.Minus:
		n := &Node{Kind: Unary}
		n.Append(p.c.leaf())
		n.Append(p.parsePrimary(false))
		return n

	case token.LParen:
		n := &Node{Kind: Paren}
		n.Append(p.c.leaf())
		n.Append(p.parsePipeline(false))
		n.Append(p.expect(token.RParen, "expected closing ')'"))
		return n

	case token.Def:
		return p.parseDef()
	case token.Fn:
		return p.parseFn()
	case token.Let:
		return p.parseLet()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Until:
		return p.parseUntil()
	case token.Foreach:
		return p.parseForeach(root)
	case token.Include:
		return p.parseInclude()

	case token.Identifier:
		return p.parseIdentOrCall()

	case token.EOF:
		p.err(errs.ErrUnexpectedEOF, "expected expression")
		return &Node{Kind: Error}

	default:
		p.err(errs.ErrUnexpectedToken, "unexpected token "+t.Kind.String())
		return p.recover()
	}
}

func (p *parser) parseArgList() *Node {
	n := &Node{Kind: ArgList}
	n.Append(p.expect(token.LParen, "expected '('"))

	for !p.c.at(token.RParen) && !p.c.at(token.EOF) {
		n.Append(p.parsePipeline(false))
		if p.c.at(token.Comma) {
			n.Append(p.c.leaf())
			continue
		}
		break
	}
	n.Append(p.expect(token.RParen, "expected closing ')'"))
	return n
}

func (p *parser) parseIdentOrCall() *Node {
	id := p.c.leaf()
	if !p.c.at(token.LParen) {
		return id
	}

	n := &Node{Kind: Call}
	n.Append(id)
	n.Append(p.parseArgList())
	if p.c.at(token.Question) {
		n.Append(p.c.leaf())
	}
	return n
}

func (p *parser) parseParamList() *Node {
	n := &Node{Kind: ParamList}
	n.Append(p.expect(token.LParen, "expected '(' to begin parameter list"))

	for !p.c.at(token.RParen) && !p.c.at(token.EOF) {
		if !p.c.at(token.Identifier) {
			p.err(errs.ErrInvalidParameter, "parameter must be an identifier")
			n.Append(p.recover())
			break
		}
		n.Append(p.c.leaf())
		if p.c.at(token.Comma) {
			n.Append(p.c.leaf())
			continue
		}
		break
	}
	n.Append(p.expect(token.RParen, "expected closing ')'"))
	return n
}

func (p *parser) parseDef() *Node {
	n := &Node{Kind: Def}
	n.Append(p.c.leaf()) // 'def'
	n.Append(p.expect(token.Identifier, "expected function name after 'def'"))
	n.Append(p.parseParamList())
	n.Append(p.expect(token.Colon, "expected ':' before function body"))
	n.Append(p.parsePipeline(false))
	return n
}

func (p *parser) parseFn() *Node {
	n := &Node{Kind: Fn}
	n.Append(p.c.leaf()) // 'fn'
	n.Append(p.parseParamList())
	n.Append(p.expect(token.Colon, "expected ':' before function body"))
	n.Append(p.parsePipeline(false))
	return n
}

func (p *parser) parseLet() *Node {
	n := &Node{Kind: Let}
	n.Append(p.c.leaf()) // 'let'
	n.Append(p.expect(token.Identifier, "expected identifier after 'let'"))
	n.Append(p.expect(token.Equal, "expected '=' in let binding"))
	n.Append(p.parseExpr(false))

	switch p.c.cur().Kind {
	case token.Pipe, token.Semicolon, token.EOF:
	default:
		p.err(errs.ErrUnexpectedToken, "let binding must terminate at '|', ';' or end of input")
	}
	return n
}

func (p *parser) parseCondParen() *Node {
	n := &Node{Kind: Paren}
	n.Append(p.expect(token.LParen, "expected '(' before condition"))
	n.Append(p.parsePipeline(false))
	n.Append(p.expect(token.RParen, "expected closing ')' after condition"))
	return n
}

func (p *parser) parseBranch(kw *Node) *Node {
	n := &Node{Kind: IfBranch}
	n.Append(kw)
	if kw.Tok.Kind != token.Else {
		n.Append(p.parseCondParen())
	}
	n.Append(p.expect(token.Colon, "expected ':' before branch body"))
	n.Append(p.parseExpr(false))
	return n
}

func (p *parser) parseIf() *Node {
	n := &Node{Kind: If}
	n.Append(p.parseBranch(p.c.leaf())) // 'if' (...): body

	for p.c.at(token.Elif) {
		n.Append(p.parseBranch(p.c.leaf()))
	}
	if p.c.at(token.Else) {
		n.Append(p.parseBranch(p.c.leaf()))
	}
	return n
}

func (p *parser) parseWhile() *Node {
	n := &Node{Kind: While}
	n.Append(p.c.leaf()) // 'while'
	n.Append(p.parseCondParen())
	n.Append(p.expect(token.Colon, "expected ':' before while body"))
	n.Append(p.parseExpr(false))
	return n
}

func (p *parser) parseUntil() *Node {
	n := &Node{Kind: Until}
	n.Append(p.c.leaf()) // 'until'
	n.Append(p.parseCondParen())
	n.Append(p.expect(token.Colon, "expected ':' before until body"))
	n.Append(p.parseExpr(false))
	return n
}

func (p *parser) parseForeach(root bool) *Node {
	n := &Node{Kind: Foreach}
	n.Append(p.c.leaf()) // 'foreach'
	n.Append(p.expect(token.LParen, "expected '(' after 'foreach'"))
	n.Append(p.expect(token.Identifier, "expected loop variable name"))
	n.Append(p.expect(token.Comma, "expected ',' after loop variable"))
	n.Append(p.parsePipeline(root))
	n.Append(p.expect(token.RParen, "expected closing ')' after foreach header"))
	n.Append(p.expect(token.Colon, "expected ':' before foreach body"))
	n.Append(p.parseExpr(false))
	return n
}

func (p *parser) parseInclude() *Node {
	n := &Node{Kind: Include}
	n.Append(p.c.leaf()) // 'include'
	n.Append(p.expect(token.String, "expected module name string after 'include'"))
	return n
}
