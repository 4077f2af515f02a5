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

	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/lexer"
	"github.com/krotik/mq/value"
)

/*
ParseModule lexes and parses an include target's source text. It is the
parseFn the eval package passes to env.Registry.Load, so that env itself
does not import the lexer or call the ast parser.
*/
func ParseModule(moduleID int, src string) (*ast.Program, *arena.Arena, error) {
	toks, err := lexer.LexToList(moduleID, src)
	if err != nil {
		return nil, nil, err
	}

	a := arena.New()
	prog, err := ast.Parse(moduleID, toks, a)
	if err != nil {
		return nil, nil, err
	}
	return prog, a, nil
}

/*
evalInclude loads the named module through the Registry (caching by name,
so a module included from several places is only fetched and parsed
once) and evaluates its pipelines directly into the caller's scope - the
language has no module namespacing, only name-based source resolution, so
an include behaves as if its definitions were inlined at the include
site.
*/
func (e *Evaluator) evalInclude(n *ast.Node, sc value.Env) (value.Value, error) {
	if e.Registry == nil {
		return value.NoneVal, e.wrapErr(n, errs.ErrRuntime, "no module registry configured for include")
	}

	mod, err := e.Registry.Load(n.Module, ParseModule)
	if err != nil {
		return value.NoneVal, e.wrapErr(n, errs.ErrRuntime, fmt.Sprintf("include %q: %v", n.Module, err))
	}

	savedSource := e.source
	e.source = mod.Name
	defer func() { e.source = savedSource }()

	result := value.NoneVal
	for _, pipe := range mod.Program.Pipelines {
		v, perr := e.evalPipeline(pipe, sc)
		if perr != nil {
			return value.NoneVal, perr
		}
		result = v
	}
	return result, nil
}
