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

	"github.com/krotik/mq/mdnode"
	"github.com/krotik/mq/value"
)

func asMD(v value.Value) (*mdnode.Node, bool) {
	if v.Kind == value.Markdown {
		return v.MD, true
	}
	return nil, false
}

func init() {
	register("attr", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		name, ok2 := asText(args[1])
		if !ok || !ok2 {
			return value.NoneVal, typeErr("attr", args)
		}
		v, ok := n.Attr(name)
		if !ok {
			return value.NoneVal, nil
		}
		return value.StringVal(v), nil
	})

	register("set_attr", Fixed(3), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		name, ok2 := asText(args[1])
		val, ok3 := asText(args[2])
		if !ok || !ok2 || !ok3 {
			return value.NoneVal, typeErr("set_attr", args)
		}
		return value.MarkdownVal(n.SetAttr(name, val)), nil
	})

	register("update", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		text, ok2 := asText(args[1])
		if !ok || !ok2 {
			return value.NoneVal, typeErr("update", args)
		}
		return value.MarkdownVal(n.WithValue(text)), nil
	})

	register("set_check", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok || n.Kind != mdnode.ListItem {
			return value.NoneVal, typeErr("set_check", args)
		}
		b := args[1].Truthy()
		return value.MarkdownVal(n.SetAttr("checked", boolStr(b))), nil
	})

	register("set_ref", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		ref, ok2 := asText(args[1])
		if !ok || !ok2 {
			return value.NoneVal, typeErr("set_ref", args)
		}
		return value.MarkdownVal(n.SetAttr("ident", ref)), nil
	})

	register("set_code_block_lang", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		lang, ok2 := asText(args[1])
		if !ok || !ok2 || n.Kind != mdnode.CodeBlock {
			return value.NoneVal, typeErr("set_code_block_lang", args)
		}
		return value.MarkdownVal(n.SetAttr("lang", lang)), nil
	})

	register("set_list_ordered", Fixed(2), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok || n.Kind != mdnode.List {
			return value.NoneVal, typeErr("set_list_ordered", args)
		}
		b := args[1].Truthy()
		return value.MarkdownVal(n.SetAttr("ordered", boolStr(b))), nil
	})

	register("increase_header_level", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok || n.Kind != mdnode.Heading {
			return value.NoneVal, typeErr("increase_header_level", args)
		}
		depth := n.Depth - 1
		if depth < 1 {
			depth = 1
		}
		return value.MarkdownVal(n.SetAttr("depth", strconv.Itoa(depth))), nil
	})

	register("decrease_header_level", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok || n.Kind != mdnode.Heading {
			return value.NoneVal, typeErr("decrease_header_level", args)
		}
		depth := n.Depth + 1
		if depth > 6 {
			depth = 6
		}
		return value.MarkdownVal(n.SetAttr("depth", strconv.Itoa(depth))), nil
	})

	register("get_url", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok {
			return value.NoneVal, typeErr("get_url", args)
		}
		v, ok := n.Attr("url")
		if !ok {
			return value.NoneVal, nil
		}
		return value.StringVal(v), nil
	})

	register("get_title", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok {
			return value.NoneVal, typeErr("get_title", args)
		}
		v, ok := n.Attr("title")
		if !ok {
			return value.NoneVal, nil
		}
		return value.StringVal(v), nil
	})

	register("to_md_name", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		n, ok := asMD(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_md_name", args)
		}
		return value.StringVal(n.Name()), nil
	})
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

