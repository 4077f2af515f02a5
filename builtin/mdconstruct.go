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
	"github.com/krotik/mq/mdnode"
	"github.com/krotik/mq/value"
)

func mdVal(n *mdnode.Node) value.Value { return value.MarkdownVal(n) }

func init() {
	register("to_h", Range(1, 2), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_h", args)
		}
		depth := 1
		if len(args) == 2 {
			d, ok := asInt(args[1])
			if !ok {
				return value.NoneVal, typeErr("to_h", args)
			}
			depth = d
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Heading, Value: text, Depth: depth}), nil
	})

	register("to_hr", None(), func(args []value.Value, env value.Env) (value.Value, error) {
		return mdVal(&mdnode.Node{Kind: mdnode.HorizontalRule}), nil
	})

	register("to_link", Range(2, 3), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok1 := asText(args[0])
		url, ok2 := asText(args[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr("to_link", args)
		}
		title := ""
		if len(args) == 3 {
			t, ok := asText(args[2])
			if !ok {
				return value.NoneVal, typeErr("to_link", args)
			}
			title = t
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Link, Value: text, URL: url, Title: title}), nil
	})

	register("to_image", Range(2, 3), func(args []value.Value, env value.Env) (value.Value, error) {
		alt, ok1 := asText(args[0])
		url, ok2 := asText(args[1])
		if !ok1 || !ok2 {
			return value.NoneVal, typeErr("to_image", args)
		}
		title := ""
		if len(args) == 3 {
			t, ok := asText(args[2])
			if !ok {
				return value.NoneVal, typeErr("to_image", args)
			}
			title = t
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Image, Alt: alt, URL: url, Title: title}), nil
	})

	register("to_code", Range(1, 2), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_code", args)
		}
		lang := ""
		if len(args) == 2 {
			l, ok := asText(args[1])
			if !ok {
				return value.NoneVal, typeErr("to_code", args)
			}
			lang = l
		}
		return mdVal(&mdnode.Node{Kind: mdnode.CodeBlock, Value: text, Lang: lang}), nil
	})

	register("to_code_inline", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_code_inline", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.InlineCode, Value: text}), nil
	})

	register("to_math", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_math", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Math, Value: text}), nil
	})

	register("to_math_inline", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_math_inline", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.InlineMath, Value: text}), nil
	})

	register("to_em", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_em", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Emphasis, Value: text}), nil
	})

	register("to_strong", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_strong", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Strong, Value: text}), nil
	})

	register("to_md_text", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_md_text", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.Text, Value: text}), nil
	})

	register("to_md_list", Range(1, 3), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_md_list", args)
		}
		level := 0
		if len(args) >= 2 {
			l, ok := asInt(args[1])
			if !ok {
				return value.NoneVal, typeErr("to_md_list", args)
			}
			level = l
		}
		n := &mdnode.Node{
			Kind:  mdnode.ListItem,
			Index: level,
			Children: []*mdnode.Node{
				{Kind: mdnode.Text, Value: text},
			},
		}
		if len(args) == 3 {
			b := args[2].Truthy()
			n.Checked = &b
		}
		return mdVal(n), nil
	})

	register("to_md_table_row", Range(1, 2), func(args []value.Value, env value.Env) (value.Value, error) {
		cells, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_md_table_row", args)
		}
		header := len(args) == 2 && args[1].Truthy()

		kind := mdnode.TableCell
		if header {
			kind = mdnode.TableHeader
		}

		children := make([]*mdnode.Node, len(cells))
		for i, c := range cells {
			text, ok := asText(c)
			if !ok {
				return value.NoneVal, typeErr("to_md_table_row", args)
			}
			children[i] = &mdnode.Node{Kind: kind, Value: text, ColIndex: i}
		}
		return mdVal(&mdnode.Node{Kind: mdnode.TableRow, Children: children}), nil
	})

	register("to_html", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		text, ok := asText(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_html", args)
		}
		return mdVal(&mdnode.Node{Kind: mdnode.HTML, Value: text}), nil
	})

	register("to_markdown_string", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		if args[0].Kind != value.Markdown {
			return value.NoneVal, typeErr("to_markdown_string", args)
		}
		return value.StringVal(mdnode.Render(args[0].MD)), nil
	})

	register("to_tsv", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		arr, ok := asArray(args[0])
		if !ok {
			return value.NoneVal, typeErr("to_tsv", args)
		}
		return value.StringVal(tsvOf(arr)), nil
	})

	register("to_text", Fixed(1), func(args []value.Value, env value.Env) (value.Value, error) {
		if args[0].Kind != value.Markdown {
			return value.NoneVal, typeErr("to_text", args)
		}
		return value.StringVal(args[0].MD.ValueOf()), nil
	})
}

/*
tsvOf renders a (possibly nested) array of rows/cells as tab-separated
values, one line per row.
*/
func tsvOf(rows []value.Value) string {
	out := ""
	for i, row := range rows {
		if i > 0 {
			out += "\n"
		}
		if cells, ok := asArray(row); ok {
			for j, c := range cells {
				if j > 0 {
					out += "\t"
				}
				out += c.String()
			}
		} else {
			out += row.String()
		}
	}
	return out
}
