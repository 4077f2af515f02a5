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
	"strings"

	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/value"
)

func init() {
	register("array", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		out := make([]value.Value, len(args))
		copy(out, args)
		return value.ArrayVal(out), nil
	})

	register("flatten", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("flatten", args)
		}
		return value.ArrayVal(flattenAll(arr)), nil
	})

	register("compact", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("compact", args)
		}
		var out []value.Value
		for _, v := range arr {
			if !v.IsNone() {
				out = append(out, v)
			}
		}
		return value.ArrayVal(out), nil
	})

	register("uniq", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("uniq", args)
		}
		var out []value.Value
		for _, v := range arr {
			dup := false
			for _, o := range out {
				if value.Equal(v, o) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		return value.ArrayVal(out), nil
	})

	register("sort", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("sort", args)
		}
		out := make([]value.Value, len(arr))
		copy(out, arr)
		value.SortValues(out)
		return value.ArrayVal(out), nil
	})

	register("reverse", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Array:
			out := make([]value.Value, len(args[0].Arr))
			for i, v := range args[0].Arr {
				out[len(out)-1-i] = v
			}
			return value.ArrayVal(out), nil
		case value.String:
			r := []rune(args[0].S)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return value.StringVal(string(r)), nil
		}
		return value.NoneVal, typeErr("reverse", args)
	})

	register("join", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		sep, ok2 := asText(args[1])
		if !ok || !ok2 {
			return value.NoneVal, typeErr("join", args)
		}
		parts := make([]string, len(arr))
		for i, v := range arr {
			parts[i] = v.String()
		}
		return value.StringVal(strings.Join(parts, sep)), nil
	})

	register("insert", Fixed(3), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		i, ok2 := asInt(args[1])
		if !ok || !ok2 || i < 0 || i > len(arr) {
			return value.NoneVal, typeErr("insert", args)
		}
		out := make([]value.Value, 0, len(arr)+1)
		out = append(out, arr[:i]...)
		out = append(out, args[2])
		out = append(out, arr[i:]...)
		return value.ArrayVal(out), nil
	})

	register("del", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Dict:
			d := args[0].D.Clone()
			k, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("del", args)
			}
			d.Delete(ident.Intern(k))
			return value.DictVal(d), nil

		case value.Array:
			i, ok := asInt(args[1])
			if !ok || i < 0 || i >= len(args[0].Arr) {
				return value.NoneVal, typeErr("del", args)
			}
			out := make([]value.Value, 0, len(args[0].Arr)-1)
			out = append(out, args[0].Arr[:i]...)
			out = append(out, args[0].Arr[i+1:]...)
			return value.ArrayVal(out), nil
		}
		return value.NoneVal, typeErr("del", args)
	})

	register("get", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Dict:
			k, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("get", args)
			}
			v, ok := args[0].D.Get(ident.Intern(k))
			if !ok {
				return value.NoneVal, nil
			}
			return v, nil

		case value.Array:
			i, ok := asInt(args[1])
			if !ok || i < 0 || i >= len(args[0].Arr) {
				return value.NoneVal, nil
			}
			return args[0].Arr[i], nil
		}
		return value.NoneVal, typeErr("get", args)
	})

	register("set", Fixed(3), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.Dict:
			d := args[0].D.Clone()
			k, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("set", args)
			}
			d.Set(ident.Intern(k), args[2])
			return value.DictVal(d), nil

		case value.Array:
			i, ok := asInt(args[1])
			if !ok || i < 0 || i >= len(args[0].Arr) {
				return value.NoneVal, typeErr("set", args)
			}
			out := make([]value.Value, len(args[0].Arr))
			copy(out, args[0].Arr)
			out[i] = args[2]
			return value.ArrayVal(out), nil
		}
		return value.NoneVal, typeErr("set", args)
	})

	register("keys", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		d, ok := asDict(args[0])
		if !ok {
			return value.NoneVal, typeErr("keys", args)
		}
		out := make([]value.Value, 0, d.Len())
		for _, k := range d.Keys() {
			out = append(out, value.StringVal(ident.Name(k)))
		}
		return value.ArrayVal(out), nil
	})

	register("values", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		d, ok := asDict(args[0])
		if !ok {
			return value.NoneVal, typeErr("values", args)
		}
		out := make([]value.Value, 0, d.Len())
		for _, k := range d.Keys() {
			v, _ := d.Get(k)
			out = append(out, v)
		}
		return value.ArrayVal(out), nil
	})

	register("entries", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		d, ok := asDict(args[0])
		if !ok {
			return value.NoneVal, typeErr("entries", args)
		}
		out := make([]value.Value, 0, d.Len())
		for _, k := range d.Keys() {
			v, _ := d.Get(k)
			out = append(out, value.ArrayVal([]value.Value{value.StringVal(ident.Name(k)), v}))
		}
		return value.ArrayVal(out), nil
	})

	register("dict", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		d := value.NewOrderedDict()
		for _, pair := range args {
			arr, ok := asArray(pair)
			if !ok || len(arr) != 2 {
				return value.NoneVal, typeErr("dict", args)
			}
			k, ok := asText(arr[0])
			if !ok {
				return value.NoneVal, typeErr("dict", args)
			}
			d.Set(ident.Intern(k), arr[1])
		}
		return value.DictVal(d), nil
	})

	register("range", Range(1, 3), func(args []value.Value, env value.Env) (value.Value, error) {
		return rangeValue(args)
	})
}

func flattenAll(arr []value.Value) []value.Value {
	var out []value.Value
	for _, v := range arr {
		if v.Kind == value.Array {
			out = append(out, flattenAll(v.Arr)...)
		} else {
			out = append(out, v)
		}
	}
	return out
}

/*
rangeValue implements range(end) / range(start, end) / range(start, end,
step) with auto-detected direction, plus single-character and
equal-length multi-character string range support.
*/
func rangeValue(args []value.Value) (value.Value, error) {
	if args[0].Kind == value.String {
		return stringRange(args)
	}

	var start, end int
	step := 1

	switch len(args) {
	case 1:
		e, ok := asInt(args[0])
		if !ok {
			return value.NoneVal, typeErr("range", args)
		}
		start, end = 0, e
	case 2:
		s, ok1 := asInt(args[0])
		e, ok2 := asInt(args[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr("range", args)
		}
		start, end = s, e
		if end < start {
			step = -1
		}
	case 3:
		s, ok1 := asInt(args[0])
		e, ok2 := asInt(args[1])
		st, ok3 := asInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			return value.NoneVal, typeErr("range", args)
		}
		if st == 0 {
			return value.NoneVal, errs.ErrRuntime
		}
		start, end, step = s, e, st
	}

	var out []value.Value
	if step > 0 {
		for i := start; i <= end; i += step {
			out = append(out, value.IntVal(int64(i)))
		}
	} else {
		for i := start; i >= end; i += step {
			out = append(out, value.IntVal(int64(i)))
		}
	}
	return value.ArrayVal(out), nil
}

func stringRange(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.NoneVal, typeErr("range", args)
	}
	start, ok1 := asText(args[0])
	end, ok2 := asText(args[1])
	if !ok1 || !ok2 || len(start) != len(end) || len(start) == 0 {
		return value.NoneVal, typeErr("range", args)
	}

	var out []value.Value
	cur := start
	limit := 100000 // guards against runaway string ranges
	for i := 0; i < limit; i++ {
		out = append(out, value.StringVal(cur))
		if cur == end {
			break
		}
		var ok bool
		cur, ok = nextString(cur)
		if !ok {
			break
		}
	}
	return value.ArrayVal(out), nil
}

/*
nextString walks one lexicographic increment of an equal-length string,
treating it as a base-256 counter over its bytes.
*/
func nextString(s string) (string, bool) {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b), true
		}
		b[i] = 0
	}
	return "", false
}
