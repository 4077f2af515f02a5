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
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/krotik/mq/value"
)

func strOp(name string, f func(s string, args []value.Value) (value.Value, error)) Fn {
	return func(args []value.Value, env value.Env) (value.Value, error) {
		s, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr(name, args)
		}
		return f(s, args[1:])
	}
}

func init() {
	register("starts_with", Fixed(2), strOp("starts_with", func(s string, rest []value.Value) (value.Value, error) {
		pfx, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("starts_with", rest)
		}
		return value.BoolVal(strings.HasPrefix(s, pfx)), nil
	}))

	register("ends_with", Fixed(2), strOp("ends_with", func(s string, rest []value.Value) (value.Value, error) {
		sfx, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("ends_with", rest)
		}
		return value.BoolVal(strings.HasSuffix(s, sfx)), nil
	}))

	register("match", Fixed(2), strOp("match", func(s string, rest []value.Value) (value.Value, error) {
		pat, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("match", rest)
		}
		re, err := compileCached(pat)
		if err != nil {
			return value.NoneVal, err
		}
		return value.BoolVal(re.MatchString(s)), nil
	}))

	register("gsub", Fixed(3), strOp("gsub", func(s string, rest []value.Value) (value.Value, error) {
		pat, ok1 := asText(rest[0])
		repl, ok2 := asText(rest[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr("gsub", rest)
		}
		re, err := compileCached(pat)
		if err != nil {
			return value.NoneVal, err
		}
		return value.StringVal(re.ReplaceAllString(s, repl)), nil
	}))

	register("replace", Fixed(3), strOp("replace", func(s string, rest []value.Value) (value.Value, error) {
		from, ok1 := asText(rest[0])
		to, ok2 := asText(rest[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr("replace", rest)
		}
		return value.StringVal(strings.ReplaceAll(s, from, to)), nil
	}))

	register("repeat", Fixed(2), strOp("repeat", func(s string, rest []value.Value) (value.Value, error) {
		n, ok := asInt(rest[0])
		if !ok || n < 0 {
			return value.NoneVal, typeErr("repeat", rest)
		}
		return value.StringVal(strings.Repeat(s, n)), nil
	}))

	register("explode", Fixed(1), strOp("explode", func(s string, rest []value.Value) (value.Value, error) {
		var out []value.Value
		for _, r := range s {
			out = append(out, value.IntVal(int64(r)))
		}
		return value.ArrayVal(out), nil
	}))

	register("implode", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("implode", args)
		}
		var sb strings.Builder
		for _, v := range arr {
			n, ok := asNumber(v)
			if !ok {
				return value.NoneVal, typeErr("implode", args)
			}
			sb.WriteRune(rune(n.I))
		}
		return value.StringVal(sb.String()), nil
	})

	register("trim", Fixed(1), strOp("trim", func(s string, rest []value.Value) (value.Value, error) {
		return value.StringVal(strings.TrimSpace(s)), nil
	}))

	register("upcase", Fixed(1), strOp("upcase", func(s string, rest []value.Value) (value.Value, error) {
		return value.StringVal(strings.ToUpper(s)), nil
	}))

	register("downcase", Fixed(1), strOp("downcase", func(s string, rest []value.Value) (value.Value, error) {
		return value.StringVal(strings.ToLower(s)), nil
	}))

	register("split", Fixed(2), strOp("split", func(s string, rest []value.Value) (value.Value, error) {
		sep, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("split", rest)
		}
		re, err := compileCached(sep)
		if err != nil {
			return value.NoneVal, err
		}
		parts := re.Split(s, -1)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.StringVal(p)
		}
		return value.ArrayVal(out), nil
	}))

	register("slice", Range(2, 3), func(args []value.Value, env value.Env) (value.Value, error) {
		return sliceValue(args)
	})

	register("index", Fixed(2), strOp("index", func(s string, rest []value.Value) (value.Value, error) {
		sub, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("index", rest)
		}
		return value.IntVal(int64(strings.Index(s, sub))), nil
	}))

	register("rindex", Fixed(2), strOp("rindex", func(s string, rest []value.Value) (value.Value, error) {
		sub, ok := asText(rest[0])
		if !ok {
			return value.NoneVal, typeErr("rindex", rest)
		}
		return value.IntVal(int64(strings.LastIndex(s, sub))), nil
	}))

	register("len", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		switch args[0].Kind {
		case value.String:
			return value.IntVal(int64(utf8.RuneCountInString(args[0].S))), nil
		case value.Array:
			return value.IntVal(int64(len(args[0].Arr))), nil
		case value.Dict:
			return value.IntVal(int64(args[0].D.Len())), nil
		case value.Markdown:
			return value.IntVal(int64(utf8.RuneCountInString(args[0].MD.ValueOf()))), nil
		}
		return value.NoneVal, typeErr("len", args)
	})

	register("url_encode", Fixed(1), strOp("url_encode", func(s string, rest []value.Value) (value.Value, error) {
		return value.StringVal(url.QueryEscape(s)), nil
	}))

	register("base64", Fixed(1), strOp("base64", func(s string, rest []value.Value) (value.Value, error) {
		return value.StringVal(base64.StdEncoding.EncodeToString([]byte(s))), nil
	}))

	register("base64d", Fixed(1), strOp("base64d", func(s string, rest []value.Value) (value.Value, error) {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return value.NoneVal, errInvalidBase64(s)
		}
		return value.StringVal(string(b)), nil
	}))

	register("utf8bytelen", Fixed(1), strOp("utf8bytelen", func(s string, rest []value.Value) (value.Value, error) {
		return value.IntVal(int64(len(s))), nil
	}))
}

func sliceValue(args []value.Value) (value.Value, error) {
	lo, ok1 := asInt(args[1])
	if !ok1 {
		return value.NoneVal, typeErr("slice", args)
	}
	hi := -1
	if len(args) == 3 {
		h, ok2 := asInt(args[2])
		if !ok2 {
			return value.NoneVal, typeErr("slice", args)
		}
		hi = h
	}

	switch args[0].Kind {
	case value.String, value.Markdown:
		s, _ := asText(args[0])
		runes := []rune(s)
		if hi < 0 || hi > len(runes) {
			hi = len(runes)
		}
		if lo < 0 || lo > hi {
			return value.NoneVal, typeErr("slice", args)
		}
		return value.StringVal(string(runes[lo:hi])), nil

	case value.Array:
		if hi < 0 || hi > len(args[0].Arr) {
			hi = len(args[0].Arr)
		}
		if lo < 0 || lo > hi {
			return value.NoneVal, typeErr("slice", args)
		}
		out := make([]value.Value, hi-lo)
		copy(out, args[0].Arr[lo:hi])
		return value.ArrayVal(out), nil
	}

	return value.NoneVal, typeErr("slice", args)
}
