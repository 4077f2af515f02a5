/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package mdnode

import (
	"strconv"
	"strings"
)

/*
Render serialises a node tree back to Markdown source. Node identity is
not preserved by gomarkdown once walked into the tagged-union model, so
rendering is done by a small writer of our own rather than round-tripping
through gomarkdown's own renderer - this is also what backs the node
model's structural-equality contract (mdnode.Equal compares rendered
output).
*/
func Render(n *Node) string {
	var sb strings.Builder
	renderNode(&sb, n, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func renderNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil || n.Kind == Empty {
		return
	}

	switch n.Kind {
	case Fragment:
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			renderNode(sb, c, depth)
		}

	case Heading:
		sb.WriteString(strings.Repeat("#", clampDepth(n.Depth)))
		sb.WriteByte(' ')
		sb.WriteString(renderInlineChildren(n))

	case Text:
		sb.WriteString(renderInlineChildren(n))

	case CodeBlock:
		sb.WriteString("```")
		sb.WriteString(n.Lang)
		sb.WriteByte('\n')
		sb.WriteString(n.Value)
		if !strings.HasSuffix(n.Value, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString("```")

	case InlineCode:
		sb.WriteByte('`')
		sb.WriteString(n.Value)
		sb.WriteByte('`')

	case Math:
		sb.WriteString("$$")
		sb.WriteString(n.Value)
		sb.WriteString("$$")

	case InlineMath:
		sb.WriteByte('$')
		sb.WriteString(n.Value)
		sb.WriteByte('$')

	case Strong:
		sb.WriteString("**")
		sb.WriteString(renderInlineChildren(n))
		sb.WriteString("**")

	case Emphasis:
		sb.WriteByte('*')
		sb.WriteString(renderInlineChildren(n))
		sb.WriteByte('*')

	case Delete:
		sb.WriteString("~~")
		sb.WriteString(renderInlineChildren(n))
		sb.WriteString("~~")

	case Link:
		sb.WriteByte('[')
		sb.WriteString(renderInlineChildren(n))
		sb.WriteString("](")
		sb.WriteString(n.URL)
		if n.Title != "" {
			sb.WriteString(` "` + n.Title + `"`)
		}
		sb.WriteByte(')')

	case LinkRef:
		sb.WriteByte('[')
		sb.WriteString(n.Value)
		sb.WriteString("][")
		sb.WriteString(n.Ident)
		sb.WriteByte(']')

	case Image:
		sb.WriteString("![")
		sb.WriteString(n.Alt)
		sb.WriteString("](")
		sb.WriteString(n.URL)
		if n.Title != "" {
			sb.WriteString(` "` + n.Title + `"`)
		}
		sb.WriteByte(')')

	case ImageRef:
		sb.WriteString("![")
		sb.WriteString(n.Alt)
		sb.WriteString("][")
		sb.WriteString(n.Ident)
		sb.WriteByte(']')

	case Footnote:
		sb.WriteString("[^")
		sb.WriteString(n.Ident)
		sb.WriteString("]: ")
		sb.WriteString(n.Label)

	case FootnoteRef:
		sb.WriteString("[^")
		sb.WriteString(n.Ident)
		sb.WriteByte(']')

	case Definition:
		sb.WriteByte('[')
		sb.WriteString(n.Ident)
		sb.WriteString("]: ")
		sb.WriteString(n.URL)

	case Blockquote:
		for _, line := range strings.Split(renderChildBlocks(n, depth), "\n") {
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}

	case HorizontalRule:
		sb.WriteString("---")

	case Break:
		sb.WriteString("  \n")

	case HTML:
		sb.WriteString(n.Value)

	case Yaml:
		sb.WriteString("---\n")
		sb.WriteString(n.Value)
		sb.WriteString("\n---")

	case Toml:
		sb.WriteString("+++\n")
		sb.WriteString(n.Value)
		sb.WriteString("\n+++")

	case List:
		renderList(sb, n)

	case ListItem:
		sb.WriteString(renderInlineChildren(n))

	case TableRow, TableHeader:
		sb.WriteByte('|')
		for _, c := range n.Children {
			sb.WriteByte(' ')
			sb.WriteString(renderInlineChildren(c))
			sb.WriteString(" |")
		}

	case TableCell:
		sb.WriteString(renderInlineChildren(n))

	case Mdx, MdxFlowExpression, MdxTextExpression, MdxJsxFlowElement, MdxJsxTextElement, MdxEsm:
		sb.WriteString(n.Value)

	default:
		sb.WriteString(n.Value)
	}
}

func clampDepth(d int) int {
	if d < 1 {
		return 1
	}
	if d > 6 {
		return 6
	}
	return d
}

func renderInlineChildren(n *Node) string {
	if len(n.Children) == 0 {
		return n.ValueOf()
	}
	var sb strings.Builder
	for _, c := range n.Children {
		renderNode(&sb, c, 0)
	}
	return sb.String()
}

func renderChildBlocks(n *Node, depth int) string {
	var sb strings.Builder
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		renderNode(&sb, c, depth+1)
	}
	return sb.String()
}

func renderList(sb *strings.Builder, n *Node) {
	for i, item := range n.Children {
		if n.Ordered {
			start := n.Index
			if start == 0 {
				start = 1
			}
			sb.WriteString(strconv.Itoa(start + i))
			sb.WriteString(". ")
		} else {
			sb.WriteString("- ")
		}

		if item.Checked != nil {
			if *item.Checked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
		}

		renderNode(sb, item, 0)
		if i < len(n.Children)-1 {
			sb.WriteByte('\n')
		}
	}
}
