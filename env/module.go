/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/krotik/mq/arena"
	"github.com/krotik/mq/ast"
)

/*
ImportLocator resolves an `include "name"` module reference to source
text. Grounded on the teacher's util.ImportLocator: implementations
decide whether "name" means a file on disk, an in-memory bundle, or a
host-provided registry.
*/
type ImportLocator interface {
	Resolve(path string) (string, error)
}

/*
MemoryImportLocator resolves imports from an in-memory name→source map,
for embedding and tests.
*/
type MemoryImportLocator struct {
	Files map[string]string
}

/*
Resolve implements ImportLocator.
*/
func (il *MemoryImportLocator) Resolve(path string) (string, error) {
	res, ok := il.Files[path]
	if !ok {
		return "", fmt.Errorf("could not find import path: %v", path)
	}
	return res, nil
}

/*
FileImportLocator resolves imports from files on disk, rooted at Root and
refusing to resolve outside of it.
*/
type FileImportLocator struct {
	Root string
}

/*
Resolve implements ImportLocator.
*/
func (il *FileImportLocator) Resolve(path string) (string, error) {
	importPath := filepath.Clean(filepath.Join(il.Root, path))

	ok, err := isSubpath(il.Root, importPath)
	if err == nil && !ok {
		err = fmt.Errorf("import path is outside of code root: %v", path)
	}
	if err != nil {
		return "", err
	}

	b, rerr := os.ReadFile(importPath)
	if rerr != nil {
		return "", fmt.Errorf("could not import path %v: %v", path, rerr)
	}
	return string(b), nil
}

func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil &&
		!strings.HasPrefix(rel, ".."+string(os.PathSeparator)) &&
		rel != "..", err
}

/*
Module is a parsed include target: its source text, its program, and the
arena its tokens live in.
*/
type Module struct {
	Name    string
	Source  string
	Program *ast.Program
	Arena   *arena.Arena
}

/*
Registry caches resolved and parsed modules by name, so that a module
included from several places is only fetched and parsed once. The only
shared mutable state besides the interner and the regex cache (see
package builtin), guarded by its own lock.
*/
type Registry struct {
	locator ImportLocator

	lock    sync.Mutex
	modules map[string]*Module
	nextID  int
}

/*
NewRegistry creates a Registry backed by the given ImportLocator.
*/
func NewRegistry(locator ImportLocator) *Registry {
	return &Registry{locator: locator, modules: make(map[string]*Module)}
}

/*
Load resolves, lexes and parses a module by name, caching the result.
parseFn is supplied by the caller (the eval package passes ParseModule), so
env itself does not import the lexer or call the ast parser.
*/
func (r *Registry) Load(name string, parseFn func(moduleID int, src string) (*ast.Program, *arena.Arena, error)) (*Module, error) {
	r.lock.Lock()
	if m, ok := r.modules[name]; ok {
		r.lock.Unlock()
		return m, nil
	}
	id := r.nextID
	r.nextID++
	r.lock.Unlock()

	src, err := r.locator.Resolve(name)
	if err != nil {
		return nil, err
	}

	prog, a, err := parseFn(id, src)
	if err != nil {
		return nil, err
	}

	m := &Module{Name: name, Source: src, Program: prog, Arena: a}

	r.lock.Lock()
	r.modules[name] = m
	r.lock.Unlock()

	return m, nil
}
