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
	"strconv"

	"github.com/krotik/mq/value"
)

func init() {
	register("to_string", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.StringVal(args[0].String()), nil
	})

	register("to_number", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Number:
			return args[0], nil
		case value.Bool:
			if args[0].B {
				return value.IntVal(1), nil
			}
			return value.IntVal(0), nil
		case value.String, value.Markdown, value.Symbol:
			s, _ := asText(args[0])
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return value.IntVal(i), nil
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return value.FloatVal(f), nil
			}
		}
		return value.NoneVal, typeErr("to_number", args)
	})

	register("to_array", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Array:
			return args[0], nil
		case value.Dict:
			out := make([]value.Value, 0, args[0].D.Len())
			for _, k := range args[0].D.Keys() {
				v, _ := args[0].D.Get(k)
				out = append(out, v)
			}
			return value.ArrayVal(out), nil
		case value.String:
			var out []value.Value
			for _, r := range args[0].S {
				out = append(out, value.StringVal(string(r)))
			}
			return value.ArrayVal(out), nil
		}
		return value.ArrayVal([]value.Value{args[0]}), nil
	})
}
