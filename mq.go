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
Package mq is the embedding façade: it wires the lexer, the two parsers,
the evaluator and the Markdown node model together behind a handful of
convenience entry points, mirroring the surface the teacher exposes at its
own module root (ecal.Parse / ecal.AddRuntimeProvider / ecal.RunECALFile).
Callers who need finer control - a custom environment, a shared module
registry across many Run calls, CST diagnostics - use the subpackages
(ast, cst, env, eval, lexer) directly; this file is the one-call-does-it
path for the common case of "run this query against this document".
*/
package mq

import (
	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/builtin"
	"github.com/krotik/mq/config"
	"github.com/krotik/mq/cst"
	"github.com/krotik/mq/env"
	"github.com/krotik/mq/eval"
	"github.com/krotik/mq/lexer"
	"github.com/krotik/mq/log"
	"github.com/krotik/mq/mdnode"
	"github.com/krotik/mq/token"
	"github.com/krotik/mq/value"
)

func init() {
	builtin.SetRegexCacheCapacity(config.Int(config.RegexCacheSize))
}

/*
Lex tokenizes src for module id 0, discarding trivia - the same view the
AST parser works from. Use the lexer package directly for a trivia-
preserving or multi-module lex.
*/
func Lex(src string) ([]token.Token, error) {
	toks, err := lexer.LexToList(0, src)
	var out []token.Token
	for _, t := range toks {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out, err
}

/*
ParseCST parses src into a lossless Concrete Syntax Tree. It never fails
fatally; check the returned ErrorReporter for diagnostics.
*/
func ParseCST(src string) (*cst.Node, *cst.ErrorReporter) {
	return cst.Parse(0, src)
}

/*
ParseAST lexes and parses src into the semantic AST the evaluator walks.
Unlike ParseCST, a malformed program is a fatal error here.
*/
func ParseAST(src string) (*ast.Program, error) {
	toks, err := lexer.LexToList(0, src)
	if err != nil {
		return nil, err
	}
	prog, err := ast.Parse(0, toks, arena.New())
	return prog, err
}

/*
Runtime bundles the state a Run call needs across invocations: a module
registry for `include`, and a Logger. Evaluate does not pass the Logger on;
print/stderr output goes to builtin.Logger. The zero value is a usable
runtime with no include support and a nil Logger.
*/
type Runtime struct {
	Registry *env.Registry
	Logger   log.Logger
}

/*
NewRuntime creates a Runtime backed by locator (for `include`) and logger.
Either may be nil.
*/
func NewRuntime(locator env.ImportLocator, logger log.Logger) *Runtime {
	var reg *env.Registry
	if locator != nil {
		reg = env.NewRegistry(locator)
	}
	if logger == nil {
		logger = &log.NullLogger{}
	}
	return &Runtime{Registry: reg, Logger: logger}
}

/*
Evaluate parses and runs src against doc (which may be nil, for queries
that don't reference `nodes`), returning one result value per top-level
`;`-separated pipeline. cancel may be nil to disable cooperative
cancellation.
*/
func (rt *Runtime) Evaluate(src string, doc *mdnode.Node, cancel <-chan struct{}) ([]value.Value, error) {
	prog, err := ParseAST(src)
	if err != nil {
		return nil, err
	}

	ev := eval.New(rt.Registry, cancel)
	sc := env.New("root")
	return ev.Evaluate(prog, "main", doc, sc)
}

/*
Run is the one-call convenience wrapper: parse Markdown source, run an mq
query against it and return the results, with no include support and no
cancellation. Most embedders that just want "query this document" reach
for Run; Runtime.Evaluate is there once `include` or cancellation matter.
*/
func Run(query string, markdown string) ([]value.Value, error) {
	doc := mdnode.FromSource(markdown)
	rt := NewRuntime(nil, nil)
	return rt.Evaluate(query, doc, nil)
}
