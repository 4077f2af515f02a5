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
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

/*
parserExtensions mirrors the common extension bundle most Markdown
dialects in the wild rely on: tables, fenced code, strikethrough,
autolinking, footnotes, definition lists and MathJax delimiters.
*/
const parserExtensions = parser.CommonExtensions |
	parser.AutoHeadingIDs |
	parser.Footnotes |
	parser.DefinitionLists |
	parser.MathJax

/*
FromSource parses Markdown source text into the module's tagged-union node
tree. Front-matter (YAML "---" or TOML "+++" fenced at the very start of the
document) is recognised before handing the remainder to gomarkdown, since
neither block is part of gomarkdown's own AST.
*/
func FromSource(src string) *Node {
	fm, body := splitFrontMatter(src)

	p := parser.NewWithExtensions(parserExtensions)
	doc := p.Parse([]byte(body))

	root := &Node{Kind: Fragment}
	if fm != nil {
		root.Children = append(root.Children, fm)
	}

	if doc != nil {
		for _, c := range doc.GetChildren() {
			if n := fromAST(c); n != nil {
				root.Children = append(root.Children, n)
			}
		}
	}

	return root
}

func splitFrontMatter(src string) (*Node, string) {
	trimmed := strings.TrimLeft(src, "﻿")

	for _, fence := range []struct {
		delim string
		kind  Kind
	}{
		{"---", Yaml},
		{"+++", Toml},
	} {
		if !strings.HasPrefix(trimmed, fence.delim+"\n") {
			continue
		}
		rest := trimmed[len(fence.delim)+1:]
		end := strings.Index(rest, "\n"+fence.delim)
		if end < 0 {
			continue
		}
		body := rest[end+len(fence.delim)+1:]
		body = strings.TrimPrefix(body, "\n")
		return &Node{Kind: fence.kind, Value: rest[:end]}, body
	}

	return nil, src
}

/*
fromAST converts a single gomarkdown ast.Node (and its subtree) into the
module's node model. Kinds the node model has no dedicated slot for fall
back to recursing through their children, the same policy the reference
ANSI renderer in the example pack uses for unrecognised containers.
*/
func fromAST(n ast.Node) *Node {
	children := func() []*Node {
		var out []*Node
		for _, c := range n.GetChildren() {
			if cn := fromAST(c); cn != nil {
				out = append(out, cn)
			}
		}
		return out
	}

	switch t := n.(type) {
	case *ast.Heading:
		return &Node{Kind: Heading, Depth: t.Level, Children: children(), Value: textOf(children())}

	case *ast.Paragraph:
		return &Node{Kind: Text, Children: children(), Value: textOf(children())}

	case *ast.Text:
		return &Node{Kind: Text, Value: string(t.Literal)}

	case *ast.Code:
		return &Node{Kind: InlineCode, Value: string(t.Literal)}

	case *ast.CodeBlock:
		return &Node{Kind: CodeBlock, Value: string(t.Literal), Lang: string(t.Info)}

	case *ast.Math:
		return &Node{Kind: InlineMath, Value: string(t.Literal)}

	case *ast.MathBlock:
		return &Node{Kind: Math, Value: string(t.Literal)}

	case *ast.Strong:
		return &Node{Kind: Strong, Children: children(), Value: textOf(children())}

	case *ast.Emph:
		return &Node{Kind: Emphasis, Children: children(), Value: textOf(children())}

	case *ast.Del:
		return &Node{Kind: Delete, Children: children(), Value: textOf(children())}

	case *ast.Link:
		return &Node{Kind: Link, Children: children(), Value: textOf(children()),
			URL: string(t.Destination), Title: string(t.Title)}

	case *ast.Image:
		return &Node{Kind: Image, Children: children(), Alt: textOf(children()),
			URL: string(t.Destination), Title: string(t.Title)}

	case *ast.List:
		return &Node{Kind: List, Ordered: t.ListFlags&ast.ListTypeOrdered != 0,
			Index: t.Start, Children: children()}

	case *ast.ListItem:
		checked := taskListChecked(t)
		return &Node{Kind: ListItem, Checked: checked, Children: children(), Value: textOf(children())}

	case *ast.BlockQuote:
		return &Node{Kind: Blockquote, Children: children(), Value: textOf(children())}

	case *ast.HorizontalRule:
		return &Node{Kind: HorizontalRule}

	case *ast.Hardbreak, *ast.Softbreak:
		return &Node{Kind: Break}

	case *ast.HTMLBlock:
		return &Node{Kind: HTML, Value: string(t.Literal)}

	case *ast.HTMLSpan:
		return &Node{Kind: HTML, Value: string(t.Literal)}

	case *ast.Table:
		return &Node{Kind: Fragment, Children: children()}

	case *ast.TableHeader:
		out := children()
		for i, row := range out {
			row.Kind = TableHeader
			row.RowIndex = 0
			markTableCells(row, 0, true)
			out[i] = row
		}
		return &Node{Kind: Fragment, Children: out}

	case *ast.TableBody:
		out := children()
		for i, row := range out {
			row.RowIndex = i
			markTableCells(row, i, false)
		}
		return &Node{Kind: Fragment, Children: out}

	case *ast.TableRow:
		return &Node{Kind: TableRow, Children: children(), Value: textOf(children())}

	case *ast.TableCell:
		kind := TableCell
		if t.IsHeader {
			kind = TableHeader
		}
		return &Node{Kind: kind, Children: children(), Value: textOf(children())}

	case *ast.Document:
		return &Node{Kind: Fragment, Children: children()}

	default:
		// Unknown container (footnote groups, definition lists, and anything
		// a future gomarkdown extension might add): recurse into children so
		// no text is silently dropped.
		kids := children()
		if len(kids) == 1 {
			return kids[0]
		}
		return &Node{Kind: Fragment, Children: kids}
	}
}

func markTableCells(row *Node, rowIdx int, header bool) {
	for i, c := range row.Children {
		c.RowIndex = rowIdx
		c.ColIndex = i
		if header {
			c.Kind = TableHeader
		}
	}
}

/*
taskListChecked reports the checked state of a task-list item, detected
from a leading "[ ]"/"[x]" marker in its first text run, since gomarkdown's
core extensions do not model task-list checkboxes as a distinct field.
*/
func taskListChecked(li *ast.ListItem) *bool {
	for _, c := range li.GetChildren() {
		p, ok := c.(*ast.Paragraph)
		if !ok {
			continue
		}
		for _, pc := range p.GetChildren() {
			txt, ok := pc.(*ast.Text)
			if !ok {
				continue
			}
			s := strings.TrimSpace(string(txt.Literal))
			if strings.HasPrefix(s, "[ ]") {
				b := false
				return &b
			}
			if strings.HasPrefix(s, "[x]") || strings.HasPrefix(s, "[X]") {
				b := true
				return &b
			}
			return nil
		}
		return nil
	}
	return nil
}

func textOf(children []*Node) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(c.ValueOf())
	}
	return sb.String()
}
