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
	"errors"
	"fmt"

	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/builtin"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

/*
evalCall resolves and invokes a call site, then applies the optional-call
swallowing policy uniformly: a `?`-marked call whose failure is not a
control error (Cancelled, Halt, arity, or unknown-name, per errs.IsControl)
yields None instead of propagating.
*/
func (e *Evaluator) evalCall(n *ast.Node, sc value.Env) (value.Value, error) {
	v, err := e.doCall(n, sc)
	if err != nil && n.Optional {
		if ee, ok := err.(*errs.EvalError); ok && !errs.IsControl(ee) {
			return value.NoneVal, nil
		}
	}
	return v, err
}

/*
doCall implements the name-lookup order: innermost lexical binding, then
the built-in table. A name bound to a non-function value is a "variable
read" used as a call - always an error, per the specification.
*/
func (e *Evaluator) doCall(n *ast.Node, sc value.Env) (value.Value, error) {
	if v, ok := sc.Get(n.Name); ok {
		switch v.Kind {
		case value.Function:
			return e.callClosure(n, v.Fn, sc)
		case value.NativeFn:
			return e.callNativeValue(n, v.Native, sc)
		default:
			return value.NoneVal, e.wrapErr(n, errs.ErrVariableReadAsFunction, ident.Name(n.Name))
		}
	}

	entry, ok := builtin.Lookup(ident.Name(n.Name))
	if !ok {
		return value.NoneVal, e.wrapErr(n, errs.ErrNotDefined, ident.Name(n.Name))
	}
	return e.callBuiltin(n, entry, sc)
}

func (e *Evaluator) evalArgs(n *ast.Node, sc value.Env) ([]value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalPipeline(a, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

/*
implicitPrepend reports whether a call supplied exactly one fewer argument
than an arity spec requires, the condition under which the evaluator
prepends the current self value as the implicit first argument.
*/
func implicitPrepend(a builtin.Arity, got int) bool {
	switch a.Kind {
	case builtin.ArityFixed:
		return got == a.N-1
	case builtin.ArityRange:
		return got == a.Lo-1
	default:
		return false
	}
}

func (e *Evaluator) callBuiltin(n *ast.Node, entry *builtin.Entry, sc value.Env) (value.Value, error) {
	args, err := e.evalArgs(n, sc)
	if err != nil {
		return value.NoneVal, err
	}

	if implicitPrepend(entry.Arity, len(args)) {
		args = append([]value.Value{e.self}, args...)
	}

	if !entry.Arity.Accepts(len(args)) {
		return value.NoneVal, e.wrapErr(n, errs.ErrInvalidNumberOfArgs,
			fmt.Sprintf("%s: invalid number of arguments (got %d)", entry.Name, len(args)))
	}

	v, rerr := entry.Thunk(args, sc)
	if rerr != nil {
		return value.NoneVal, e.wrapBuiltinErr(n, rerr)
	}
	return v, nil
}

/*
callNativeValue invokes a NativeFn value read as a bare identifier (see
Evaluator.evalIdent) rather than resolved directly through the built-in
table at the call site. Its arity is unknown at this point, so the
implicit-first-argument rule does not apply here - only a direct,
named call to a built-in carries the Entry.Arity needed to detect it.
*/
func (e *Evaluator) callNativeValue(n *ast.Node, nat *value.Native, sc value.Env) (value.Value, error) {
	args, err := e.evalArgs(n, sc)
	if err != nil {
		return value.NoneVal, err
	}
	v, rerr := nat.Fn(args, sc)
	if rerr != nil {
		return value.NoneVal, e.wrapBuiltinErr(n, rerr)
	}
	return v, nil
}

func (e *Evaluator) callClosure(n *ast.Node, c *value.Closure, sc value.Env) (value.Value, error) {
	args, err := e.evalArgs(n, sc)
	if err != nil {
		return value.NoneVal, err
	}

	if len(args) == len(c.Params)-1 {
		args = append([]value.Value{e.self}, args...)
	}

	if len(args) != len(c.Params) {
		return value.NoneVal, e.wrapErr(n, errs.ErrInvalidNumberOfArgs,
			fmt.Sprintf("%s: expects %d arguments, got %d", ident.Name(c.Name), len(c.Params), len(args)))
	}

	callScope := c.Closure.Child()
	for i, p := range c.Params {
		callScope.Define(p, args[i])
	}

	return e.evalPipeline(c.Body, callScope)
}

/*
wrapBuiltinErr turns a plain error a built-in returned (wrapping one of the
errs sentinels via %w) into an *errs.EvalError carrying this call's node,
so later trace accumulation and errs.IsControl both see the right shape.
*/
func (e *Evaluator) wrapBuiltinErr(n *ast.Node, err error) *errs.EvalError {
	if ee, ok := err.(*errs.EvalError); ok {
		return ee
	}

	sentinel := errs.ErrRuntime
	for _, s := range builtinSentinels {
		if errors.Is(err, s) {
			sentinel = s
			break
		}
	}
	return errs.NewEvalError(e.source, sentinel, err.Error(), n)
}

var builtinSentinels = []error{
	errs.ErrCancelled,
	errs.ErrHalt,
	errs.ErrInvalidNumberOfArgs,
	errs.ErrNotDefined,
	errs.ErrVariableReadAsFunction,
	errs.ErrInvalidTypes,
	errs.ErrZeroDivision,
	errs.ErrInvalidBase64,
	errs.ErrInvalidRegularExpr,
	errs.ErrDateTimeFormat,
	errs.ErrUserDefined,
	errs.ErrRuntime,
}
