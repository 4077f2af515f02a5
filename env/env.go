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
Package env implements the lexically scoped environment the evaluator
threads through a program: a chain of frames holding `let`/parameter
bindings, each pointing at its enclosing parent. This mirrors the
teacher's scope.VarScope, generalized from string-keyed nested maps to
flat interned-symbol bindings, since the language has no nested
dotted-path assignment.
*/
package env

import (
	"fmt"
	"sync"

	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

/*
Scope is one lexical frame. It implements value.Env so that closures can
carry their defining scope without the value package importing env.
*/
type Scope struct {
	name   string
	parent *Scope
	lock   sync.RWMutex
	vars   map[ident.Symbol]value.Value
}

/*
New creates a new root scope.
*/
func New(name string) *Scope {
	return &Scope{name: name, vars: make(map[ident.Symbol]value.Value)}
}

/*
NewWithParent creates a new scope chained to a parent.
*/
func NewWithParent(name string, parent *Scope) *Scope {
	return &Scope{name: name, parent: parent, vars: make(map[ident.Symbol]value.Value)}
}

/*
Parent returns this scope's parent, or nil for a root scope.
*/
func (s *Scope) Parent() *Scope {
	return s.parent
}

/*
Get looks up a binding, walking up the parent chain.
*/
func (s *Scope) Get(sym ident.Symbol) (value.Value, bool) {
	s.lock.RLock()
	v, ok := s.vars[sym]
	s.lock.RUnlock()

	if ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.Get(sym)
	}
	return value.NoneVal, false
}

/*
Define binds a name in this scope specifically (shadowing any parent
binding), used for `let` and function parameters.
*/
func (s *Scope) Define(sym ident.Symbol, v value.Value) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.vars[sym] = v
}

/*
Set updates the nearest existing binding in the chain, returning false if
the name is not bound anywhere.
*/
func (s *Scope) Set(sym ident.Symbol, v value.Value) bool {
	s.lock.Lock()
	if _, ok := s.vars[sym]; ok {
		s.vars[sym] = v
		s.lock.Unlock()
		return true
	}
	s.lock.Unlock()

	if s.parent != nil {
		return s.parent.Set(sym, v)
	}
	return false
}

/*
Child creates a new child scope, implementing value.Env.
*/
func (s *Scope) Child() value.Env {
	return NewWithParent(s.name+".child", s)
}

/*
String renders the scope chain for debugging, in the teacher's
`name { k (type): v }` style.
*/
func (s *Scope) String() string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := s.name + " {\n"
	for sym, v := range s.vars {
		res += fmt.Sprintf("    %s (%v) : %v\n", ident.Name(sym), v.TypeName(), v.String())
	}
	res += "}"

	if s.parent != nil {
		res += "\n" + s.parent.String()
	}
	return res
}
