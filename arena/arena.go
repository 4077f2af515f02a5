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
Package arena implements the per-module token arena. AST nodes only carry a
dense TokenID back into the arena that produced them, instead of holding a
shared reference to the token itself - this collapses token lifetime to the
owning module and avoids reference cycles between the CST and the AST.
*/
package arena

import "github.com/krotik/mq/token"

/*
TokenID is a dense handle into an Arena.
*/
type TokenID int32

/*
Arena is an append-only vector of tokens owned by one module.
*/
type Arena struct {
	tokens []token.Token
}

/*
New creates a new, empty Arena.
*/
func New() *Arena {
	return &Arena{tokens: make([]token.Token, 0, 256)}
}

/*
Add appends a token to the arena and returns its TokenID.
*/
func (a *Arena) Add(t token.Token) TokenID {
	a.tokens = append(a.tokens, t)
	return TokenID(len(a.tokens) - 1)
}

/*
Get dereferences a TokenID back to the full token. Panics if the id is not
live in this arena - that would indicate an AST node outliving its module,
which is an invariant violation.
*/
func (a *Arena) Get(id TokenID) token.Token {
	return a.tokens[id]
}

/*
Len returns the number of tokens currently stored.
*/
func (a *Arena) Len() int {
	return len(a.tokens)
}
