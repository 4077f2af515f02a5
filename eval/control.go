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
	"fmt"

	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

func (e *Evaluator) evalIf(n *ast.Node, sc value.Env) (value.Value, error) {
	for _, br := range n.Branches {
		if br.Cond == nil {
			return e.evalPipeline(br.Body, sc)
		}

		cond, err := e.evalPipeline(br.Cond, sc)
		if err != nil {
			return value.NoneVal, err
		}
		if cond.Truthy() {
			return e.evalPipeline(br.Body, sc)
		}
	}
	return value.NoneVal, nil
}

/*
evalWhile repeats body while cond is truthy, collecting each body result
into an array. Loops self-bound their iteration count to guarantee
termination under a pathological predicate, as a backstop behind
cooperative cancellation.
*/
func (e *Evaluator) evalWhile(n *ast.Node, sc value.Env) (value.Value, error) {
	return e.loop(n, sc, func(v value.Value) bool { return v.Truthy() })
}

/*
evalUntil repeats body while cond is falsy - the mirror image of while.
*/
func (e *Evaluator) evalUntil(n *ast.Node, sc value.Env) (value.Value, error) {
	return e.loop(n, sc, func(v value.Value) bool { return !v.Truthy() })
}

func (e *Evaluator) loop(n *ast.Node, sc value.Env, keepGoing func(value.Value) bool) (value.Value, error) {
	var results []value.Value
	limit := e.loopLimit()

	for iter := 0; ; iter++ {
		if e.cancelled() {
			return value.NoneVal, e.wrapErr(n, errs.ErrCancelled, "evaluation cancelled")
		}
		if iter >= limit {
			return value.NoneVal, e.wrapErr(n, errs.ErrRuntime, "loop iteration limit exceeded")
		}

		cond, err := e.evalPipeline(n.Cond, sc)
		if err != nil {
			return value.NoneVal, err
		}
		if !keepGoing(cond) {
			break
		}

		v, err := e.evalPipeline(n.Body, sc)
		if err != nil {
			return value.NoneVal, err
		}
		results = append(results, v)
	}

	return value.ArrayVal(results), nil
}

/*
evalForeach iterates xs - an array, a string (by rune), or a dict (as
[key, value] pairs, matching the entries() built-in's shape) - binding v
to a fresh child scope per iteration so a `let` inside the body does not
leak across iterations.
*/
func (e *Evaluator) evalForeach(n *ast.Node, sc value.Env) (value.Value, error) {
	iterVal, err := e.evalPipeline(n.Expr, sc)
	if err != nil {
		return value.NoneVal, err
	}

	items, err := iterableItems(iterVal)
	if err != nil {
		return value.NoneVal, e.wrapErr(n, errs.ErrInvalidTypes, err.Error())
	}

	limit := e.loopLimit()
	results := make([]value.Value, 0, len(items))

	for i, item := range items {
		if e.cancelled() {
			return value.NoneVal, e.wrapErr(n, errs.ErrCancelled, "evaluation cancelled")
		}
		if i >= limit {
			return value.NoneVal, e.wrapErr(n, errs.ErrRuntime, "loop iteration limit exceeded")
		}

		iterScope := sc.Child()
		iterScope.Define(n.Var, item)

		v, err := e.evalPipeline(n.Body, iterScope)
		if err != nil {
			return value.NoneVal, err
		}
		results = append(results, v)
	}

	return value.ArrayVal(results), nil
}

func iterableItems(v value.Value) ([]value.Value, error) {
	switch v.Kind {
	case value.Array:
		return v.Arr, nil

	case value.String:
		runes := []rune(v.S)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.StringVal(string(r))
		}
		return out, nil

	case value.Dict:
		out := make([]value.Value, 0, v.D.Len())
		for _, k := range v.D.Keys() {
			val, _ := v.D.Get(k)
			out = append(out, value.ArrayVal([]value.Value{value.StringVal(ident.Name(k)), val}))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("foreach requires an array, string or dict, got %s", v.TypeName())
	}
}
