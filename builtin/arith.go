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
	"math"

	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/value"
)

func numOp(name string, f func(a, b value.Num) (value.Num, error)) Fn {
	return func(args []value.Value, env value.Env) (value.Value, error) {
		a, ok1 := asNumber(args[0])
		b, ok2 := asNumber(args[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr(name, args)
		}
		n, err := f(a, b)
		if err != nil {
			return value.NoneVal, err
		}
		return value.NumVal(n), nil
	}
}

func init() {
	register("add", Fixed(2), numOp("add", func(a, b value.Num) (value.Num, error) {
		if a.IsInt && b.IsInt {
			return value.IntNum(a.I + b.I), nil
		}
		return value.FloatNum(a.Float() + b.Float()), nil
	}))

	register("sub", Fixed(2), numOp("sub", func(a, b value.Num) (value.Num, error) {
		if a.IsInt && b.IsInt {
			return value.IntNum(a.I - b.I), nil
		}
		return value.FloatNum(a.Float() - b.Float()), nil
	}))

	register("mul", Fixed(2), numOp("mul", func(a, b value.Num) (value.Num, error) {
		if a.IsInt && b.IsInt {
			return value.IntNum(a.I * b.I), nil
		}
		return value.FloatNum(a.Float() * b.Float()), nil
	}))

	register("div", Fixed(2), numOp("div", func(a, b value.Num) (value.Num, error) {
		if b.Float() == 0 {
			return value.Num{}, errs.ErrZeroDivision
		}
		if a.IsInt && b.IsInt && a.I%b.I == 0 {
			return value.IntNum(a.I / b.I), nil
		}
		return value.FloatNum(a.Float() / b.Float()), nil
	}))

	register("mod", Fixed(2), numOp("mod", func(a, b value.Num) (value.Num, error) {
		if b.Float() == 0 {
			return value.Num{}, errs.ErrZeroDivision
		}
		if a.IsInt && b.IsInt {
			return value.IntNum(a.I % b.I), nil
		}
		return value.FloatNum(math.Mod(a.Float(), b.Float())), nil
	}))

	register("pow", Fixed(2), numOp("pow", func(a, b value.Num) (value.Num, error) {
		return value.FloatNum(math.Pow(a.Float(), b.Float())), nil
	}))

	register("eq", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(value.Equal(args[0], args[1])), nil
	})
	register("ne", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(!value.Equal(args[0], args[1])), nil
	})
	register("lt", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(value.Less(args[0], args[1])), nil
	})
	register("gt", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(value.Less(args[1], args[0])), nil
	})
	register("lte", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(!value.Less(args[1], args[0])), nil
	})
	register("gte", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(!value.Less(args[0], args[1])), nil
	})

	register("and", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(args[0].Truthy() && args[1].Truthy()), nil
	})
	register("or", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(args[0].Truthy() || args[1].Truthy()), nil
	})
	register("not", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		return value.BoolVal(!args[0].Truthy()), nil
	})
	register("negate", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asNumber(args[0])
		if !ok {
			return value.NoneVal, typeErr("negate", args)
		}
		if n.IsInt {
			return value.IntVal(-n.I), nil
		}
		return value.FloatVal(-n.F), nil
	})

	register("abs", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asNumber(args[0])
		if !ok {
			return value.NoneVal, typeErr("abs", args)
		}
		if n.IsInt {
			if n.I < 0 {
				return value.IntVal(-n.I), nil
			}
			return value.IntVal(n.I), nil
		}
		return value.FloatVal(math.Abs(n.F)), nil
	})
	register("ceil", Fixed(1), roundLike("ceil", math.Ceil))
	register("floor", Fixed(1), roundLike("floor", math.Floor))
	register("round", Fixed(1), roundLike("round", math.Round))
	register("trunc", Fixed(1), roundLike("trunc", math.Trunc))
}

func roundLike(name string, f func(float64) float64) Fn {
	return func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asNumber(args[0])
		if !ok {
			return value.NoneVal, typeErr(name, args)
		}
		if n.IsInt {
			return value.IntVal(n.I), nil
		}
		return value.IntVal(int64(f(n.F))), nil
	}
}
