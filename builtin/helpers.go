/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package builtin

import (
	"fmt"

	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

func errInvalidBase64(s string) error {
	return fmt.Errorf("%w: %q", errs.ErrInvalidBase64, s)
}

func typeErr(name string, args []value.Value) error {
	summary := make([]string, len(args))
	for i, a := range args {
		summary[i] = a.TypeName()
	}
	return fmt.Errorf("%w: %s%v", errs.ErrInvalidTypes, name, summary)
}

/*
asText reads a Value's textual content: strings pass through, Markdown
nodes are transparently unwrapped via their primary text (Node.ValueOf), matching the
specification's "functions that read Markdown text transparently unwrap
the node" rule.
*/
func asText(v value.Value) (string, bool) {
	switch v.Kind {
	case value.String:
		return v.S, true
	case value.Markdown:
		return v.MD.ValueOf(), true
	case value.Symbol:
		return ident.Name(v.Sym), true
	}
	return "", false
}

func asNumber(v value.Value) (value.Num, bool) {
	if v.Kind == value.Number {
		return v.N, true
	}
	return value.Num{}, false
}

func asArray(v value.Value) ([]value.Value, bool) {
	if v.Kind == value.Array {
		return v.Arr, true
	}
	return nil, false
}

func asDict(v value.Value) (*value.OrderedDict, bool) {
	if v.Kind == value.Dict {
		return v.D, true
	}
	return nil, false
}

func asInt(v value.Value) (int, bool) {
	n, ok := asNumber(v)
	if !ok {
		return 0, false
	}
	if n.IsInt {
		return int(n.I), true
	}
	return int(n.F), true
}
