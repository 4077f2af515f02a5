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
	"os"
	"strconv"

	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/lexer"
	"github.com/krotik/mq/token"
)

/*
Program is the result of parsing a module's full source: one independent
pipeline per top-level `;`-separated segment. Evaluating a Program yields
one value per pipeline, per the specification's "array of values, one per
pipeline at root" contract.
*/
type Program struct {
	Pipelines []*Node
}

/*
binOpNames maps a binary operator token to the built-in call name it
desugars to, per the fixed one-tier operator-to-name mapping: the source's
Markdown queries never require precedence, so every binary operator folds
left-to-right at a single tier.
*/
var binOpNames = map[token.Kind]string{
	token.AndAnd: "and", token.OrOr: "or", token.Plus: "add", token.Minus: "sub",
	token.Star: "mul", token.Slash: "div", token.Percent: "mod",
	token.EqEq: "eq", token.NotEq: "ne", token.Lt: "lt", token.LtEq: "lte",
	token.Gt: "gt", token.GtEq: "gte", token.DotDot: "range",
}

/*
Parser turns a flat token slice (trivia already stripped) into a Program.
It fails eagerly on the first error - the CST layer is what accumulates
diagnostics for tooling.
*/
type Parser struct {
	toks   []token.Token
	pos    int
	arena  *arena.Arena
	module int
}

/*
Parse parses an already lexed token slice for the given module id, dropping
trivia tokens and registering the tokens its nodes refer to in the caller's
arena a, and returns the resulting Program.
*/
func Parse(module int, toks []token.Token, a *arena.Arena) (*Program, error) {
	var filtered []token.Token
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		filtered = append(filtered, t)
	}

	p := &Parser{toks: filtered, arena: a, module: module}
	return p.parseProgram()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF, Module: p.module}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) reg() arena.TokenID {
	return p.arena.Add(p.cur())
}

func (p *Parser) err(kind error, msg string) error {
	return errs.NewParseError(kind, msg, p.cur().Range)
}

func (p *Parser) expect(k token.Kind, msg string) (token.Token, error) {
	if !p.at(k) {
		if p.at(token.EOF) {
			return token.Token{}, p.err(errs.ErrUnexpectedEOF, msg)
		}
		return token.Token{}, p.err(errs.ErrUnexpectedToken, msg)
	}
	return p.advance(), nil
}

func (p *Parser) node(kind Kind) *Node {
	id := p.reg()
	return New(kind, p.arena, id)
}

// Program / pipelines
// ===================

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}

	for !p.at(token.EOF) {
		pipe, err := p.parsePipeline(true)
		if err != nil {
			return nil, err
		}
		prog.Pipelines = append(prog.Pipelines, pipe)

		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.at(token.EOF) {
			break
		}
		return nil, p.err(errs.ErrUnexpectedToken, "expected ';' or end of input between pipelines")
	}

	return prog, nil
}

/*
parsePipeline parses one `|`-chained sequence of stages. root indicates
whether `nodes` is legal at the first stage.
*/
func (p *Parser) parsePipeline(root bool) (*Node, error) {
	seq := p.node(Seq)

	first, err := p.parseExpr(root)
	if err != nil {
		return nil, err
	}
	seq.Steps = append(seq.Steps, Step{Node: first, Pipe: false})

	for p.at(token.Pipe) {
		p.advance()
		stage, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		seq.Steps = append(seq.Steps, Step{Node: stage, Pipe: true})
	}

	if len(seq.Steps) == 1 {
		return seq.Steps[0].Node, nil
	}
	return seq, nil
}

// Expressions
// ===========

/*
parseExpr parses one primary and folds any trailing binary operators left
to right at a single precedence tier, per the specification's flat-fold
design.
*/
func (p *Parser) parseExpr(root bool) (*Node, error) {
	lhs, err := p.parsePrimary(root)
	if err != nil {
		return nil, err
	}

	for {
		name, ok := binOpNames[p.cur().Kind]
		if !ok {
			return lhs, nil
		}
		opTok := p.reg()
		p.advance()

		rhs, err := p.parsePrimary(false)
		if err != nil {
			return nil, err
		}

		call := New(Call, p.arena, opTok)
		call.Name = ident.Intern(name)
		call.Args = []*Node{lhs, rhs}
		lhs = call
	}
}

func (p *Parser) parsePrimary(root bool) (*Node, error) {
	t := p.cur()

	switch t.Kind {
	case token.String:
		n := p.node(Literal)
		n.LitKind = LitString
		n.Str = t.Val
		p.advance()
		return n, nil

	case token.InterpolatedString:
		n := p.node(InterpString)
		for _, seg := range t.Segments {
			if seg.Literal {
				n.Segments = append(n.Segments, InterpSegment{Literal: true, Text: seg.Text})
				continue
			}
			subToks, lerr := lexSub(seg.Expr, seg.ExprModule)
			if lerr != nil {
				return nil, lerr
			}
			subProg, perr := Parse(seg.ExprModule, subToks, p.arena)
			if perr != nil {
				return nil, perr
			}
			if len(subProg.Pipelines) != 1 {
				return nil, p.err(errs.ErrUnexpectedToken, "interpolation must contain exactly one expression")
			}
			n.Segments = append(n.Segments, InterpSegment{Expr: subProg.Pipelines[0]})
		}
		p.advance()
		return n, nil

	case token.Number:
		n := p.node(Literal)
		n.LitKind = LitNumber
		if iv, ierr := strconv.ParseInt(t.Val, 10, 64); ierr == nil {
			n.NumIsInt = true
			n.NumI = iv
		} else {
			fv, ferr := strconv.ParseFloat(t.Val, 64)
			if ferr != nil {
				return nil, p.err(errs.ErrUnexpectedToken, "invalid number literal")
			}
			n.NumF = fv
		}
		p.advance()
		return n, nil

	case token.Bool:
		n := p.node(Literal)
		n.LitKind = LitBool
		n.Bool = t.Val == "true"
		p.advance()
		return n, nil

	case token.None:
		n := p.node(Literal)
		n.LitKind = LitNone
		p.advance()
		return n, nil

	case token.Self:
		n := p.node(Self_)
		p.advance()
		return n, nil

	case token.Nodes:
		if !root {
			return nil, p.err(errs.ErrUnexpectedToken, "'nodes' is only legal at root-level pipeline position")
		}
		n := p.node(Nodes_)
		p.advance()
		return n, nil

	case token.EnvRef:
		n := p.node(EnvRef)
		n.EnvName = t.Val
		val, ok := os.LookupEnv(t.Val)
		if !ok {
			return nil, p.err(errs.ErrEnvNotFound, "environment variable '"+t.Val+"' is not set")
		}
		n.Str = val
		p.advance()
		return n, nil

	case token.Selector:
		return p.parseSelector()

	case token.Bang:
		opTok := p.reg()
		p.advance()
		operand, err := p.parsePrimary(false)
		if err != nil {
			return nil, err
		}
		call := New(Call, p.arena, opTok)
		call.Name = ident.Intern("not")
		call.Args = []*Node{operand}
		return call, nil

	case token.Minus:
		opTok := p.reg()
		p.advance()
		operand, err := p.parsePrimary(false)
		if err != nil {
			return nil, err
		}
		call := New(Call, p.arena, opTok)
		call.Name = ident.Intern("negate")
		call.Args = []*Node{operand}
		return call, nil

	case token.LParen:
		parenTok := p.reg()
		p.advance()
		inner, err := p.parsePipeline(false)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "expected closing ')'"); err != nil {
			return nil, err
		}
		n := New(Paren, p.arena, parenTok)
		n.Expr = inner
		return n, nil

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
		return nil, p.err(errs.ErrUnexpectedEOF, "expected expression")

	default:
		return nil, p.err(errs.ErrUnexpectedToken, "unexpected token "+t.Kind.String())
	}
}

func (p *Parser) parseSelector() (*Node, error) {
	t := p.cur()
	parsed, perr := parseSelectorToken(t.Val, t.Range)
	if perr != nil {
		return nil, perr
	}

	n := p.node(Selector)
	n.Sel = parsed.sel
	p.advance()

	var result *Node = n
	for _, attr := range parsed.attrs {
		call := New(Call, p.arena, n.tok)
		call.Name = ident.Intern("attr")
		lit := New(Literal, p.arena, n.tok)
		lit.LitKind = LitString
		lit.Str = attr
		call.Args = []*Node{result, lit}
		result = call
	}

	return result, nil
}

func (p *Parser) parseIdentOrCall() (*Node, error) {
	idTok := p.reg()
	name := ident.Intern(p.advance().Val)

	if !p.at(token.LParen) {
		n := New(Ident_, p.arena, idTok)
		n.Name = name
		return n, nil
	}

	p.advance() // consume '('
	var args []*Node
	for !p.at(token.RParen) {
		arg, err := p.parsePipeline(false)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen, "expected closing ')'"); err != nil {
		return nil, err
	}

	call := New(Call, p.arena, idTok)
	call.Name = name
	call.Args = args

	if p.at(token.Question) {
		call.Optional = true
		p.advance()
	}

	return call, nil
}

func (p *Parser) parseParamList() ([]ident.Symbol, error) {
	if _, err := p.expect(token.LParen, "expected '(' to begin parameter list"); err != nil {
		return nil, err
	}

	var params []ident.Symbol
	for !p.at(token.RParen) {
		if !p.at(token.Identifier) {
			return nil, p.err(errs.ErrInvalidParameter, "parameter must be an identifier")
		}
		params = append(params, ident.Intern(p.advance().Val))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RParen, "expected closing ')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseDef() (*Node, error) {
	n := p.node(Def)
	p.advance() // 'def'

	if !p.at(token.Identifier) {
		return nil, p.err(errs.ErrUnexpectedToken, "expected function name after 'def'")
	}
	n.Name = ident.Intern(p.advance().Val)

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	n.Params = params

	if _, err := p.expect(token.Colon, "expected ':' before function body"); err != nil {
		return nil, err
	}

	body, err := p.parsePipeline(false)
	if err != nil {
		return nil, err
	}
	n.Body = body

	return n, nil
}

func (p *Parser) parseFn() (*Node, error) {
	n := p.node(Fn)
	p.advance() // 'fn'

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	n.Params = params

	if _, err := p.expect(token.Colon, "expected ':' before function body"); err != nil {
		return nil, err
	}

	body, err := p.parsePipeline(false)
	if err != nil {
		return nil, err
	}
	n.Body = body

	return n, nil
}

func (p *Parser) parseLet() (*Node, error) {
	n := p.node(Let)
	p.advance() // 'let'

	if !p.at(token.Identifier) {
		return nil, p.err(errs.ErrUnexpectedToken, "expected identifier after 'let'")
	}
	n.Var = ident.Intern(p.advance().Val)

	if _, err := p.expect(token.Equal, "expected '=' in let binding"); err != nil {
		return nil, err
	}

	expr, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	n.Expr = expr

	switch p.cur().Kind {
	case token.Pipe, token.Semicolon, token.EOF:
	default:
		return nil, p.err(errs.ErrUnexpectedToken, "let binding must terminate at '|', ';' or end of input")
	}

	return n, nil
}

func (p *Parser) parseCondParen() (*Node, error) {
	if _, err := p.expect(token.LParen, "expected '(' before condition"); err != nil {
		return nil, err
	}
	cond, err := p.parsePipeline(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "expected closing ')' after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (*Node, error) {
	n := p.node(If)
	p.advance() // 'if'

	cond, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "expected ':' before if-branch body"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	n.Branches = append(n.Branches, IfBranch{Cond: cond, Body: body})

	for p.at(token.Elif) {
		p.advance()
		c, err := p.parseCondParen()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "expected ':' before elif-branch body"); err != nil {
			return nil, err
		}
		b, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		n.Branches = append(n.Branches, IfBranch{Cond: c, Body: b})
	}

	if p.at(token.Else) {
		p.advance()
		if _, err := p.expect(token.Colon, "expected ':' before else-branch body"); err != nil {
			return nil, err
		}
		b, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		n.Branches = append(n.Branches, IfBranch{Cond: nil, Body: b})
	}

	return n, nil
}

func (p *Parser) parseWhile() (*Node, error) {
	n := p.node(While)
	p.advance() // 'while'

	cond, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	n.Cond = cond

	if _, err := p.expect(token.Colon, "expected ':' before while body"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	n.Body = body

	return n, nil
}

func (p *Parser) parseUntil() (*Node, error) {
	n := p.node(Until)
	p.advance() // 'until'

	cond, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	n.Cond = cond

	if _, err := p.expect(token.Colon, "expected ':' before until body"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	n.Body = body

	return n, nil
}

func (p *Parser) parseForeach(root bool) (*Node, error) {
	n := p.node(Foreach)
	p.advance() // 'foreach'

	if _, err := p.expect(token.LParen, "expected '(' after 'foreach'"); err != nil {
		return nil, err
	}
	if !p.at(token.Identifier) {
		return nil, p.err(errs.ErrUnexpectedToken, "expected loop variable name")
	}
	n.Var = ident.Intern(p.advance().Val)

	if _, err := p.expect(token.Comma, "expected ',' after loop variable"); err != nil {
		return nil, err
	}

	iterable, err := p.parsePipeline(root)
	if err != nil {
		return nil, err
	}
	n.Expr = iterable

	if _, err := p.expect(token.RParen, "expected closing ')' after foreach header"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "expected ':' before foreach body"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}
	n.Body = body

	return n, nil
}

func (p *Parser) parseInclude() (*Node, error) {
	n := p.node(Include)
	p.advance() // 'include'

	if !p.at(token.String) {
		return nil, p.err(errs.ErrUnexpectedToken, "expected module name string after 'include'")
	}
	n.Module = p.advance().Val

	return n, nil
}

/*
lexSub lexes a string interpolation segment's embedded expression source,
reusing the same lexer the top-level parser runs on.
*/
func lexSub(src string, module int) ([]token.Token, error) {
	return lexer.LexToList(module, src)
}
