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
Package token defines the closed set of lexical token kinds produced by the
lexer and shared by the CST and AST parsers.
*/
package token

import (
	"fmt"

	"github.com/krotik/mq/errs"
)

/*
Kind is the closed set of lexical token kinds.
*/
type Kind int

/*
Known token kinds.
*/
const (
	EOF Kind = iota
	Error

	// Literals

	String
	InterpolatedString
	Number
	Bool
	None
	Identifier
	Selector
	EnvRef

	// Keywords

	Def
	Fn
	Let
	If
	Elif
	Else
	While
	Until
	Foreach
	Include
	Self
	Nodes

	// Delimiters

	LParen
	RParen
	LBrack
	RBrack
	LBrace
	RBrace
	Comma
	Colon
	Semicolon
	Pipe

	// Operators

	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	Plus
	Minus
	Star
	Slash
	Percent
	DotDot
	AndAnd
	OrOr
	Bang
	Equal
	Dot
	Question

	// Trivia (CST only)

	Whitespace
	Tab
	Newline
	Comment
)

/*
names gives a human readable label for every Kind, used in diagnostics.
*/
var names = map[Kind]string{
	EOF: "EOF", Error: "ERROR", String: "STRING", InterpolatedString: "ISTRING",
	Number: "NUMBER", Bool: "BOOL", None: "NONE", Identifier: "IDENT",
	Selector: "SELECTOR", EnvRef: "ENVREF", Def: "def", Fn: "fn", Let: "let",
	If: "if", Elif: "elif", Else: "else", While: "while", Until: "until",
	Foreach: "foreach", Include: "include", Self: "self", Nodes: "nodes",
	LParen: "(", RParen: ")", LBrack: "[", RBrack: "]", LBrace: "{", RBrace: "}",
	Comma: ",", Colon: ":", Semicolon: ";", Pipe: "|",
	EqEq: "==", NotEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", DotDot: "..",
	AndAnd: "&&", OrOr: "||", Bang: "!", Equal: "=", Dot: ".", Question: "?",
	Whitespace: "WS", Tab: "TAB", Newline: "NL", Comment: "COMMENT",
}

/*
String returns a human readable representation of a Kind.
*/
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Keywords maps keyword text to its token Kind.
*/
var Keywords = map[string]Kind{
	"def": Def, "fn": Fn, "let": Let, "if": If, "elif": Elif, "else": Else,
	"while": While, "until": Until, "foreach": Foreach, "include": Include,
	"self": Self, "nodes": Nodes, "true": Bool, "false": Bool, "none": None,
}

/*
StringSegment is either a literal run or an expression span inside an
interpolated string token.
*/
type StringSegment struct {
	Literal    bool
	Text       string // literal text, when Literal is true
	Expr       string // raw source text of the embedded expression, when Literal is false
	ExprModule int
}

/*
Token is a single lexical token, annotated with its source range and the id
of the module it came from.
*/
type Token struct {
	Kind     Kind
	Range    errs.Range
	Val      string
	Raw      string // original source span, quotes included; only set for String/InterpolatedString
	Segments []StringSegment // only set for InterpolatedString
	Module   int
}

/*
IsTrivia returns true for tokens which are only retained in the CST.
*/
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, Tab, Newline, Comment:
		return true
	}
	return false
}

/*
String returns a human readable representation of a Token for diagnostics.
*/
func (t Token) String() string {
	if t.Kind == String || t.Kind == Identifier || t.Kind == Selector {
		return fmt.Sprintf("%v(%q)", t.Kind, t.Val)
	}
	return t.Kind.String()
}
