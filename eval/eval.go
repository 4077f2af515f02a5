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
Package eval implements the tree-walking evaluator: it walks an ast.Program
against a lexical environment, threading a dynamically scoped "self" value
across `|` pipeline stages and dispatching calls against local bindings,
then the built-in table.
*/
package eval

import (
	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/builtin"
	"github.com/krotik/mq/config"
	"github.com/krotik/mq/env"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/mdnode"
	"github.com/krotik/mq/value"
)

/*
Evaluator holds the state of one evaluation run: the module registry used
to resolve `include`, a cooperative cancel channel, the loop-iteration
ceiling, and the "self" value threaded dynamically through pipeline
stages. `self` is call-site state, not lexical state - it is saved and
restored around nested pipelines (parens, call arguments, function bodies)
so that evaluating one argument never leaks its pipeline progress into a
sibling argument or the caller.
*/
type Evaluator struct {
	Registry *env.Registry
	Cancel   <-chan struct{}
	LoopLimit int

	self     value.Value
	nodesVal value.Value
	source   string
}

/*
New creates an Evaluator. registry may be nil if the embedding host never
resolves `include`; cancel may be nil to disable cooperative cancellation.
*/
func New(registry *env.Registry, cancel <-chan struct{}) *Evaluator {
	return &Evaluator{
		Registry:  registry,
		Cancel:    cancel,
		LoopLimit: config.Int(config.LoopIterationLimit),
	}
}

/*
NodesValue builds the value the `nodes` keyword evaluates to: an array of
Markdown values, one per top-level node of doc. doc is typically the
Fragment root returned by mdnode.FromSource.
*/
func NodesValue(doc *mdnode.Node) value.Value {
	if doc == nil {
		return value.ArrayVal(nil)
	}
	out := make([]value.Value, len(doc.Children))
	for i, c := range doc.Children {
		out[i] = value.MarkdownVal(c)
	}
	return value.ArrayVal(out)
}

/*
Evaluate runs every top-level pipeline of prog against doc and sc, in
order, returning one value per pipeline - the specification's "array of
values, one per pipeline at root" contract. Each pipeline starts with
`self` reset to None; `nodes` is available throughout as the full
document node stream regardless of which pipeline references it.
*/
func (e *Evaluator) Evaluate(prog *ast.Program, source string, doc *mdnode.Node, sc value.Env) ([]value.Value, error) {
	e.source = source
	e.nodesVal = NodesValue(doc)

	results := make([]value.Value, 0, len(prog.Pipelines))
	for _, pipe := range prog.Pipelines {
		e.self = value.NoneVal
		v, err := e.evalPipeline(pipe, sc)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

func (e *Evaluator) loopLimit() int {
	if e.LoopLimit > 0 {
		return e.LoopLimit
	}
	return config.Int(config.LoopIterationLimit)
}

func (e *Evaluator) cancelled() bool {
	if e.Cancel == nil {
		return false
	}
	select {
	case <-e.Cancel:
		return true
	default:
		return false
	}
}

/*
eval dispatches a single AST node. It checks cancellation on entry to
every node (loops in control.go also check it once per iteration) and attaches
a trace step to any EvalError unwinding through it.
*/
func (e *Evaluator) eval(n *ast.Node, sc value.Env) (value.Value, error) {
	if e.cancelled() {
		return value.NoneVal, errs.NewEvalError(e.source, errs.ErrCancelled, "evaluation cancelled", n)
	}

	v, err := e.dispatch(n, sc)
	if err != nil {
		if ee, ok := err.(*errs.EvalError); ok {
			ee.AddTrace(n)
		}
	}
	return v, err
}

func (e *Evaluator) dispatch(n *ast.Node, sc value.Env) (value.Value, error) {
	switch n.Kind {
	case ast.Literal:
		return e.evalLiteral(n), nil
	case ast.Ident_:
		return e.evalIdent(n, sc)
	case ast.Self_:
		return e.self, nil
	case ast.Nodes_:
		return e.nodesVal, nil
	case ast.EnvRef:
		return value.StringVal(n.Str), nil
	case ast.Paren:
		return e.evalPipeline(n.Expr, sc)
	case ast.InterpString:
		return e.evalInterp(n, sc)
	case ast.Call:
		return e.evalCall(n, sc)
	case ast.Def:
		return e.evalDef(n, sc)
	case ast.Fn:
		return e.evalFn(n, sc)
	case ast.Let:
		return e.evalLet(n, sc)
	case ast.If:
		return e.evalIf(n, sc)
	case ast.While:
		return e.evalWhile(n, sc)
	case ast.Until:
		return e.evalUntil(n, sc)
	case ast.Foreach:
		return e.evalForeach(n, sc)
	case ast.Include:
		return e.evalInclude(n, sc)
	case ast.Selector:
		return e.evalSelector(n, sc)
	case ast.Seq:
		return e.evalPipeline(n, sc)
	default:
		return value.NoneVal, e.wrapErr(n, errs.ErrRuntime, "unhandled node kind "+n.Kind.String())
	}
}

/*
evalPipeline evaluates a `|`-chained sequence of stages, threading the
result of each Pipe-marked stage into `self` for the next one. A bare,
non-Seq node (the common case for a one-stage pipeline, and for call-arg
and control-flow body expressions, which are never chained) is evaluated
directly against the self already in effect. self is restored to its
entry value on return so a sub-pipeline's progress never escapes its call
site.
*/
func (e *Evaluator) evalPipeline(n *ast.Node, sc value.Env) (value.Value, error) {
	if n.Kind != ast.Seq {
		return e.eval(n, sc)
	}

	saved := e.self
	defer func() { e.self = saved }()

	var result value.Value
	var err error
	for _, step := range n.Steps {
		if step.Pipe {
			e.self = result
		}
		result, err = e.eval(step.Node, sc)
		if err != nil {
			return value.NoneVal, err
		}
	}
	return result, nil
}

func (e *Evaluator) evalLiteral(n *ast.Node) value.Value {
	switch n.LitKind {
	case ast.LitString:
		return value.StringVal(n.Str)
	case ast.LitNumber:
		if n.NumIsInt {
			return value.IntVal(n.NumI)
		}
		return value.FloatVal(n.NumF)
	case ast.LitBool:
		return value.BoolVal(n.Bool)
	default:
		return value.NoneVal
	}
}

func (e *Evaluator) evalIdent(n *ast.Node, sc value.Env) (value.Value, error) {
	if v, ok := sc.Get(n.Name); ok {
		return v, nil
	}
	if entry, ok := builtin.Lookup(ident.Name(n.Name)); ok {
		return value.NativeVal(&value.Native{Name: entry.Name, Fn: entry.Thunk}), nil
	}
	return value.NoneVal, e.wrapErr(n, errs.ErrNotDefined, ident.Name(n.Name))
}

func (e *Evaluator) evalInterp(n *ast.Node, sc value.Env) (value.Value, error) {
	var sb []byte
	for _, seg := range n.Segments {
		if seg.Literal {
			sb = append(sb, seg.Text...)
			continue
		}
		v, err := e.evalPipeline(seg.Expr, sc)
		if err != nil {
			return value.NoneVal, err
		}
		sb = append(sb, v.String()...)
	}
	return value.StringVal(string(sb)), nil
}

func (e *Evaluator) evalSelector(n *ast.Node, sc value.Env) (value.Value, error) {
	if e.self.Kind != value.Markdown {
		return value.NoneVal, e.wrapErr(n, errs.ErrInvalidTypes, "selector requires a Markdown self value")
	}
	matched, ok := n.Sel.Apply(e.self.MD)
	if !ok {
		return value.NoneVal, nil
	}
	return value.MarkdownVal(matched), nil
}

func (e *Evaluator) evalDef(n *ast.Node, sc value.Env) (value.Value, error) {
	c := &value.Closure{Name: n.Name, Params: n.Params, Body: n.Body, Closure: sc}
	fn := value.FunctionVal(c)
	sc.Define(n.Name, fn)
	return fn, nil
}

func (e *Evaluator) evalFn(n *ast.Node, sc value.Env) (value.Value, error) {
	c := &value.Closure{Params: n.Params, Body: n.Body, Closure: sc}
	return value.FunctionVal(c), nil
}

func (e *Evaluator) evalLet(n *ast.Node, sc value.Env) (value.Value, error) {
	v, err := e.evalPipeline(n.Expr, sc)
	if err != nil {
		return value.NoneVal, err
	}
	sc.Define(n.Var, v)
	return v, nil
}

func (e *Evaluator) wrapErr(n *ast.Node, sentinel error, detail string) error {
	return errs.NewEvalError(e.source, sentinel, detail, n)
}
