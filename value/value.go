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
Package value implements the runtime value union every expression
evaluates to: None, Bool, Number, String, Symbol, Array, Dict, Markdown,
Function and NativeFn. The set is closed and dispatched on with a type
switch over Kind rather than through per-kind interfaces, matching the
"tagged sum types, exhaustive case analysis, no vtables" design used
across the module.
*/
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/krotik/mq/ast"
	"github.com/krotik/mq/ident"
	"github.com/krotik/mq/mdnode"
)

/*
Kind is the closed set of runtime value kinds.
*/
type Kind int

/*
Known value kinds.
*/
const (
	None Kind = iota
	Bool
	Number
	String
	Symbol
	Array
	Dict
	Markdown
	Function
	NativeFn
)

var kindNames = map[Kind]string{
	None: "none", Bool: "bool", Number: "number", String: "string",
	Symbol: "symbol", Array: "array", Dict: "dict", Markdown: "markdown",
	Function: "function", NativeFn: "native_fn",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

/*
Env is the subset of the environment's behaviour a closure needs to carry
its defining scope and a native function needs to recurse back into the
evaluator. It is declared here - not in package env - so that Value can
reference it without value importing env, which would otherwise be a
cycle: env depends on value, not the other way round.
*/
type Env interface {
	Get(sym ident.Symbol) (Value, bool)
	Define(sym ident.Symbol, v Value)
	Set(sym ident.Symbol, v Value) bool
	Child() Env
}

/*
Num is the unified int-or-float numeric representation. Arithmetic
promotes to float only when at least one operand is itself float, or when
an integer operation would otherwise lose precision (division); pow always
yields a float.
*/
type Num struct {
	IsInt bool
	I     int64
	F     float64
}

/*
IntNum builds an integer Num.
*/
func IntNum(i int64) Num { return Num{IsInt: true, I: i} }

/*
FloatNum builds a float Num.
*/
func FloatNum(f float64) Num { return Num{IsInt: false, F: f} }

/*
Float returns this Num's value widened to float64.
*/
func (n Num) Float() float64 {
	if n.IsInt {
		return float64(n.I)
	}
	return n.F
}

/*
String renders a Num the way the language prints numbers: integers without
a decimal point, floats via Go's shortest round-trip representation.
*/
func (n Num) String() string {
	if n.IsInt {
		return strconv.FormatInt(n.I, 10)
	}
	return strconv.FormatFloat(n.F, 'g', -1, 64)
}

/*
Cmp orders two Nums. NaN compares equal to NaN (so sorting over
collections containing NaN is total), and otherwise orders numerically by
float value widening when kinds differ.
*/
func (n Num) Cmp(o Num) int {
	if n.IsInt && o.IsInt {
		switch {
		case n.I < o.I:
			return -1
		case n.I > o.I:
			return 1
		default:
			return 0
		}
	}

	a, b := n.Float(), o.Float()
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)

	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

/*
Closure is a user-defined function value: its parameter names, its body
expression, and the environment it closed over at definition time. `self`
references inside the body are resolved dynamically at call time rather
than captured here - see the module's Open Question decision in
DESIGN.md.
*/
type Closure struct {
	Name    ident.Symbol
	Params  []ident.Symbol
	Body    *ast.Node
	Closure Env
}

/*
Native is a built-in function implemented in Go.
*/
type Native struct {
	Name string
	Fn   func(args []Value, env Env) (Value, error)
}

/*
Value is the tagged-union runtime value.
*/
type Value struct {
	Kind Kind

	B   bool
	N   Num
	S   string
	Sym ident.Symbol
	Arr []Value
	D   *OrderedDict

	MD       *mdnode.Node
	Selector *mdnode.SelectorKind // unconsumed index-selector refinement

	Fn     *Closure
	Native *Native
}

/*
NoneVal is the singleton none value.
*/
var NoneVal = Value{Kind: None}

/*
BoolVal constructs a Bool value.
*/
func BoolVal(b bool) Value { return Value{Kind: Bool, B: b} }

/*
IntVal constructs an integer Number value.
*/
func IntVal(i int64) Value { return Value{Kind: Number, N: IntNum(i)} }

/*
FloatVal constructs a float Number value.
*/
func FloatVal(f float64) Value { return Value{Kind: Number, N: FloatNum(f)} }

/*
NumVal wraps a Num into a Number value.
*/
func NumVal(n Num) Value { return Value{Kind: Number, N: n} }

/*
StringVal constructs a String value.
*/
func StringVal(s string) Value { return Value{Kind: String, S: s} }

/*
SymbolVal constructs a Symbol value.
*/
func SymbolVal(s ident.Symbol) Value { return Value{Kind: Symbol, Sym: s} }

/*
ArrayVal constructs an Array value.
*/
func ArrayVal(v []Value) Value { return Value{Kind: Array, Arr: v} }

/*
DictVal constructs a Dict value.
*/
func DictVal(d *OrderedDict) Value { return Value{Kind: Dict, D: d} }

/*
MarkdownVal constructs a Markdown value with no pending selector refinement.
*/
func MarkdownVal(n *mdnode.Node) Value { return Value{Kind: Markdown, MD: n} }

/*
MarkdownRefinedVal constructs a Markdown value carrying an unconsumed index
selector refinement.
*/
func MarkdownRefinedVal(n *mdnode.Node, sel mdnode.SelectorKind) Value {
	return Value{Kind: Markdown, MD: n, Selector: &sel}
}

/*
FunctionVal constructs a Function value.
*/
func FunctionVal(c *Closure) Value { return Value{Kind: Function, Fn: c} }

/*
NativeVal constructs a NativeFn value.
*/
func NativeVal(n *Native) Value { return Value{Kind: NativeFn, Native: n} }

/*
IsNone reports whether v is the none value.
*/
func (v Value) IsNone() bool { return v.Kind == None }

/*
Truthy implements the language's truthiness rule: none, false, the empty
string, zero, and empty collections are falsy; everything else, including
Markdown nodes regardless of content, is truthy.
*/
func (v Value) Truthy() bool {
	switch v.Kind {
	case None:
		return false
	case Bool:
		return v.B
	case Number:
		return v.N.Float() != 0 || (v.N.IsInt && v.N.I != 0)
	case String:
		return v.S != ""
	case Array:
		return len(v.Arr) > 0
	case Dict:
		return v.D != nil && v.D.Len() > 0
	default:
		return true
	}
}

/*
TypeName returns the language-level type name used in error messages and
by the `type` builtin.
*/
func (v Value) TypeName() string {
	return v.Kind.String()
}

/*
String renders a Value the way the language's `to_string`/print path does.
*/
func (v Value) String() string {
	switch v.Kind {
	case None:
		return "none"
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	case Number:
		return v.N.String()
	case String:
		return v.S
	case Symbol:
		return ident.Name(v.Sym)
	case Array:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Dict:
		return v.D.String()
	case Markdown:
		return mdnode.Render(v.MD)
	case Function:
		return fmt.Sprintf("<function %s>", ident.Name(v.Fn.Name))
	case NativeFn:
		return fmt.Sprintf("<native %s>", v.Native.Name)
	}
	return "?"
}

/*
Equal implements value equality: numbers compare by numeric value,
Markdown nodes by rendered-string equality (mdnode.Equal), and everything
else structurally.
*/
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case None:
		return true
	case Bool:
		return a.B == b.B
	case Number:
		return a.N.Cmp(b.N) == 0
	case String:
		return a.S == b.S
	case Symbol:
		return a.Sym == b.Sym
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case Dict:
		return a.D.Equal(b.D)
	case Markdown:
		return mdnode.Equal(a.MD, b.MD)
	case Function:
		return a.Fn == b.Fn
	case NativeFn:
		return a.Native == b.Native
	}
	return false
}

/*
Less implements the language's order, used by sort() and lt/gt/lte/gte:
numbers order numerically (NaN last but equal to itself), strings and
symbols lexically, bools false<true, arrays by length then elementwise,
Markdown nodes by mdnode.Less, and values of different kinds order by
Kind. Dicts, functions and none are never less than another value of the
same kind.
*/
func Less(a, b Value) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}

	switch a.Kind {
	case Bool:
		return !a.B && b.B
	case Number:
		return a.N.Cmp(b.N) < 0
	case String:
		return a.S < b.S
	case Symbol:
		return ident.Name(a.Sym) < ident.Name(b.Sym)
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return len(a.Arr) < len(b.Arr)
		}
		for i := range a.Arr {
			if Equal(a.Arr[i], b.Arr[i]) {
				continue
			}
			return Less(a.Arr[i], b.Arr[i])
		}
		return false
	case Markdown:
		return mdnode.Less(a.MD, b.MD)
	default:
		return false
	}
}

/*
SortValues sorts a slice of Value in place using the language's total
order.
*/
func SortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool { return Less(vs[i], vs[j]) })
}
