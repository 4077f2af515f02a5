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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/log"
	"github.com/krotik/mq/value"
)

/*
Logger receives user-facing print/stderr output; a host embedding the interpreter
replaces it (tests do this to capture output). Stdin stays a plain
io.Reader since `input` is not a logging concern.
*/
var (
	Logger log.Logger = log.NewWriterLogger(os.Stdout)
	Stdin  io.Reader  = os.Stdin
)

func init() {
	register("print", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		Logger.LogInfo(strings.Join(parts, " "))
		return value.NoneVal, nil
	})

	register("stderr", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		Logger.LogError(strings.Join(parts, " "))
		return value.NoneVal, nil
	})

	register("halt", Range(0, 1), func(args []value.Value, env value.Env) (value.Value, error) {
		msg := "halt"
		if len(args) == 1 {
			if s, ok := asText(args[0]); ok {
				msg = s
			}
		}
		return value.NoneVal, fmt.Errorf("%w: %s", errs.ErrHalt, msg)
	})

	register("error", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		msg, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("error", args)
		}
		return value.NoneVal, fmt.Errorf("%w: %s", errs.ErrUserDefined, msg)
	})

	register("input", Range(0, 1), func(args []value.Value, env value.Env) (value.Value, error) {
		if len(args) == 1 {
			prompt, ok := asText(args[0])
			if !ok {
				return value.NoneVal, typeErr("input", args)
			}
			fmt.Fprint(os.Stdout, prompt)
		}
		reader := bufio.NewReader(Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return value.NoneVal, nil
		}
		return value.StringVal(strings.TrimRight(line, "\r\n")), nil
	})

	register("type", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.StringVal(args[0].TypeName()), nil
	})

	register("now", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.IntVal(time.Now().Unix()), nil
	})

	register("to_date", Range(1, 2), func(args []value.Value, env value.Env) (value.Value, error) {
		layout := time.RFC3339
		if len(args) == 2 {
			l, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("to_date", args)
			}
			layout = l
		}
		epoch, ok := asInt(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_date", args)
		}
		t := time.Unix(int64(epoch), 0).UTC()
		return value.StringVal(t.Format(layout)), nil
	})

	register("from_date", Range(1, 2), func(args []value.Value, env value.Env) (value.Value, error) {
		layout := time.RFC3339
		if len(args) == 2 {
			l, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("from_date", args)
			}
			layout = l
		}
		s, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("from_date", args)
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return value.NoneVal, fmt.Errorf("%w: %v", errs.ErrDateTimeFormat, err)
		}
		return value.IntVal(t.Unix()), nil
	})

	register("nan", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.FloatVal(math.NaN()), nil
	})

	register("is_nan", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asNumber(args[0])
		if !ok {
			return value.NoneVal, typeErr("is_nan", args)
		}
		return value.BoolVal(!n.IsInt && math.IsNaN(n.F)), nil
	})

	register("infinite", Range(0, 1), func(args []value.Value, env value.Env) (value.Value, error) {
		sign := 1
		if len(args) == 1 && !args[0].Truthy() {
			sign = -1
		}
		return value.FloatVal(math.Inf(sign)), nil
	})

	register("coalesce", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		for _, a := range args {
			if !a.IsNone() {
				return a, nil
			}
		}
		return value.NoneVal, nil
	})

	register("all_symbols", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		syms := ident.All()
		out := make([]value.Value, len(syms))
		for i, s := range syms {
			out[i] = value.StringVal(ident.Name(s))
		}
		return value.ArrayVal(out), nil
	})

	register("intern", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		s, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("intern", args)
		}
		return value.SymbolVal(ident.Intern(s)), nil
	})

	register("read_file", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		path, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("read_file", args)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return value.NoneVal, fmt.Errorf("%w: %v", errs.ErrRuntime, err)
		}
		return value.StringVal(string(b)), nil
	})
}
