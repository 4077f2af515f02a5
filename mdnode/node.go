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
Package mdnode implements the Markdown node model: a tagged union of the
~30 block/inline Markdown kinds the evaluator and the built-in library
operate on. Ingestion from, and emission back to, Markdown source text is
delegated to github.com/gomarkdown/markdown; this package only owns the
node shape and the selector-matching contract.
*/
package mdnode

import "fmt"

/*
Kind is the closed set of Markdown node kinds.
*/
type Kind int

/*
Known node kinds.
*/
const (
	Heading Kind = iota
	Text                 // also covers paragraphs - their content is the node's text
	CodeBlock
	InlineCode
	Math
	InlineMath
	Strong
	Emphasis
	Delete
	Link
	LinkRef
	Image
	ImageRef
	Footnote
	FootnoteRef
	Definition
	Blockquote
	HorizontalRule
	Break
	HTML
	Yaml
	Toml
	List
	ListItem
	TableRow
	TableCell
	TableHeader
	Mdx
	MdxFlowExpression
	MdxTextExpression
	MdxJsxFlowElement
	MdxJsxTextElement
	MdxEsm
	Fragment // internal, never a user-visible value
	Empty
)

var kindNames = map[Kind]string{
	Heading: "heading", Text: "text", CodeBlock: "code", InlineCode: "code_inline",
	Math: "math", InlineMath: "math_inline", Strong: "strong", Emphasis: "emphasis",
	Delete: "delete", Link: "link", LinkRef: "link_ref", Image: "image",
	ImageRef: "image_ref", Footnote: "footnote", FootnoteRef: "footnote_ref",
	Definition: "definition", Blockquote: "blockquote", HorizontalRule: "horizontal_rule",
	Break: "break", HTML: "html", Yaml: "yaml", Toml: "toml", List: "list",
	ListItem: "list_item", TableRow: "table_row", TableCell: "table_cell",
	TableHeader: "table_header", Mdx: "mdx", MdxFlowExpression: "mdx_flow_expression",
	MdxTextExpression: "mdx_text_expression", MdxJsxFlowElement: "mdx_jsx_flow_element",
	MdxJsxTextElement: "mdx_jsx_text_element", MdxEsm: "mdx_esm", Fragment: "fragment",
	Empty: "empty",
}

/*
String returns the canonical short name of a Kind, used by to_md_name and type.
*/
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

/*
Position is a node's location in the original source, used for ordering and
sorting stability.
*/
type Position struct {
	Line, Col int
}

/*
Node is the tagged-union Markdown node value. Only the fields relevant to
Kind are meaningful; this mirrors the "closed sum, exhaustive case analysis"
design used throughout the module instead of per-kind vtables.
*/
type Node struct {
	Kind Kind

	Value string // primary textual content: heading text, code body, link text, ...
	Lang  string // code block / inline code language
	Depth int    // heading depth (1-6)

	URL   string // link/image destination
	Title string // link/image title
	Alt   string // image alt text

	Ident string // footnote/definition/link-ref identifier
	Label string // footnote label text

	Ordered  bool // list
	Checked  *bool
	Index    int // list item index / table row/col index
	RowIndex int
	ColIndex int

	Children []*Node

	Attrs map[string]string // free-form attributes not covered above (set_attr with an unknown name, on any kind)

	Pos *Position
}

/*
NewEmpty returns the singleton-shaped Empty node.
*/
func NewEmpty() *Node {
	return &Node{Kind: Empty}
}

/*
IsEmpty reports whether n is the Empty kind.
*/
func (n *Node) IsEmpty() bool {
	return n != nil && n.Kind == Empty
}

/*
Name returns the canonical short name of this node, as used by to_md_name.
*/
func (n *Node) Name() string {
	return n.Kind.String()
}

/*
textValue renders a node's children as a concatenated text run, used by
kinds whose primary value is derived from inline children (e.g. Strong,
Emphasis, Link text).
*/
func (n *Node) textValue() string {
	if n.Value != "" || len(n.Children) == 0 {
		return n.Value
	}
	s := ""
	for _, c := range n.Children {
		s += c.ValueOf()
	}
	return s
}

/*
ValueOf returns the node's primary textual content: heading text, code
body, and so on. For a Link or LinkRef it returns the link text; the URL
is returned only when the text is empty.
The struct field above stores the raw backing text for kinds whose value
is not derived from children.
*/
func (n *Node) ValueOf() string {
	switch n.Kind {
	case Link, LinkRef:
		if n.Value != "" {
			return n.Value
		}
		return n.URL
	case Image, ImageRef:
		return n.Alt
	case Definition:
		return n.URL
	case Footnote, FootnoteRef:
		return n.Label
	case Strong, Emphasis, Delete, Blockquote, TableCell, TableHeader:
		return n.textValue()
	case HorizontalRule, Break, Empty, Fragment:
		return ""
	default:
		return n.Value
	}
}

/*
Attr returns a named attribute of this node, mirroring the evaluator-facing
attr() builtin. The attribute names are part of the module's public contract:
"lang", "depth", "checked", "ordered", "ident", "label", "url", "title",
"alt".
*/
func (n *Node) Attr(name string) (string, bool) {
	switch name {
	case "lang":
		if n.Kind == CodeBlock || n.Kind == InlineCode {
			return n.Lang, true
		}
	case "depth":
		if n.Kind == Heading {
			return fmt.Sprint(n.Depth), true
		}
	case "checked":
		if n.Kind == ListItem && n.Checked != nil {
			return fmt.Sprint(*n.Checked), true
		}
	case "ordered":
		if n.Kind == List {
			return fmt.Sprint(n.Ordered), true
		}
	case "ident":
		if n.Ident != "" {
			return n.Ident, true
		}
	case "label":
		if n.Label != "" {
			return n.Label, true
		}
	case "url":
		if n.URL != "" {
			return n.URL, true
		}
	case "title":
		if n.Title != "" {
			return n.Title, true
		}
	case "alt":
		if n.Kind == Image || n.Kind == ImageRef {
			return n.Alt, true
		}
	}

	if n.Attrs != nil {
		if v, ok := n.Attrs[name]; ok {
			return v, true
		}
	}

	return "", false
}

/*
SetAttr returns a copy of n with the named attribute replaced. A known
attribute written to a kind with no slot for it (e.g. "lang" on a heading)
is silently ignored, and a name outside the known set is stored in Attrs,
keeping script-level code robust - this is the reference policy for the
open question flagged in the specification (§9).
*/
func (n *Node) SetAttr(name, value string) *Node {
	c := n.clone()

	switch name {
	case "lang":
		if c.Kind == CodeBlock || c.Kind == InlineCode {
			c.Lang = value
		}
	case "depth":
		if c.Kind == Heading {
			fmt.Sscanf(value, "%d", &c.Depth)
		}
	case "checked":
		if c.Kind == ListItem {
			b := value == "true"
			c.Checked = &b
		}
	case "ordered":
		if c.Kind == List {
			c.Ordered = value == "true"
		}
	case "ident":
		c.Ident = value
	case "label":
		c.Label = value
	case "url":
		c.URL = value
	case "title":
		c.Title = value
	case "alt":
		if c.Kind == Image || c.Kind == ImageRef {
			c.Alt = value
		}
	default:
		if c.Attrs == nil {
			c.Attrs = make(map[string]string)
		}
		c.Attrs[name] = value
	}

	return c
}

func (n *Node) clone() *Node {
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		copy(cp.Children, n.Children)
	}
	if n.Attrs != nil {
		cp.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			cp.Attrs[k] = v
		}
	}
	return &cp
}

/*
WithValue returns a new node whose primary text is replaced with s. Kinds
with no sensible primary text (HorizontalRule, Break) are returned
unchanged.
*/
func (n *Node) WithValue(s string) *Node {
	switch n.Kind {
	case HorizontalRule, Break:
		return n
	}

	c := n.clone()
	c.Value = s
	return c
}

/*
WithChildValue returns a new node whose i'th child's primary text is
replaced with s. Out-of-range indices return n unchanged.
*/
func (n *Node) WithChildValue(s string, i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return n
	}

	c := n.clone()
	c.Children = make([]*Node, len(n.Children))
	copy(c.Children, n.Children)
	c.Children[i] = n.Children[i].WithValue(s)
	return c
}

/*
ToFragment wraps a node's children into a Fragment value, used internally to
batch child rewrites atomically.
*/
func (n *Node) ToFragment() *Node {
	return &Node{Kind: Fragment, Children: n.Children}
}

/*
ApplyFragment merges a fragment back into a container node. An Empty child
leaves the original child unchanged, a Fragment child recurses, and any
other child replaces the original.
*/
func (n *Node) ApplyFragment(frag *Node) *Node {
	c := n.clone()
	newChildren := make([]*Node, 0, len(n.Children))

	for i, orig := range n.Children {
		if i >= len(frag.Children) {
			newChildren = append(newChildren, orig)
			continue
		}

		repl := frag.Children[i]

		switch {
		case repl.IsEmpty():
			newChildren = append(newChildren, orig)
		case repl.Kind == Fragment:
			newChildren = append(newChildren, orig.ApplyFragment(repl))
		default:
			newChildren = append(newChildren, repl)
		}
	}

	c.Children = newChildren
	return c
}

// Position helpers
// ================

/*
SetPosition attaches a source position to a node, returning the updated
node.
*/
func (n *Node) SetPosition(p Position) *Node {
	c := n.clone()
	c.Pos = &p
	return c
}

/*
PositionOf returns the node's source position and whether it has one.
*/
func (n *Node) PositionOf() (Position, bool) {
	if n.Pos == nil {
		return Position{}, false
	}
	return *n.Pos, true
}

// Predicates
// ==========

func (n *Node) IsHeading() bool        { return n.Kind == Heading }
func (n *Node) IsText() bool           { return n.Kind == Text }
func (n *Node) IsCodeBlock() bool      { return n.Kind == CodeBlock }
func (n *Node) IsInlineCode() bool     { return n.Kind == InlineCode }
func (n *Node) IsMath() bool           { return n.Kind == Math }
func (n *Node) IsInlineMath() bool     { return n.Kind == InlineMath }
func (n *Node) IsStrong() bool         { return n.Kind == Strong }
func (n *Node) IsEmphasis() bool       { return n.Kind == Emphasis }
func (n *Node) IsDelete() bool         { return n.Kind == Delete }
func (n *Node) IsLink() bool           { return n.Kind == Link }
func (n *Node) IsLinkRef() bool        { return n.Kind == LinkRef }
func (n *Node) IsImage() bool          { return n.Kind == Image }
func (n *Node) IsImageRef() bool       { return n.Kind == ImageRef }
func (n *Node) IsFootnote() bool       { return n.Kind == Footnote }
func (n *Node) IsFootnoteRef() bool    { return n.Kind == FootnoteRef }
func (n *Node) IsDefinition() bool     { return n.Kind == Definition }
func (n *Node) IsBlockquote() bool     { return n.Kind == Blockquote }
func (n *Node) IsHorizontalRule() bool { return n.Kind == HorizontalRule }
func (n *Node) IsBreak() bool          { return n.Kind == Break }
func (n *Node) IsHTML() bool           { return n.Kind == HTML }
func (n *Node) IsYaml() bool           { return n.Kind == Yaml }
func (n *Node) IsToml() bool           { return n.Kind == Toml }
func (n *Node) IsList() bool           { return n.Kind == List }
func (n *Node) IsListItem() bool       { return n.Kind == ListItem }
func (n *Node) IsTableRow() bool       { return n.Kind == TableRow }
func (n *Node) IsTableCell() bool      { return n.Kind == TableCell }
func (n *Node) IsTableHeader() bool    { return n.Kind == TableHeader }

// Equality / ordering
// ===================

/*
Equal defines structural equality by rendered-string equality, per the
specification's node model contract.
*/
func Equal(a, b *Node) bool {
	return Render(a) == Render(b)
}

/*
Less defines positional ordering: earlier line then earlier column;
positionless nodes compare by kind name, and a kind with a position always
precedes one without.
*/
func Less(a, b *Node) bool {
	pa, oka := a.PositionOf()
	pb, okb := b.PositionOf()

	if oka && okb {
		if pa.Line != pb.Line {
			return pa.Line < pb.Line
		}
		return pa.Col < pb.Col
	}
	if oka != okb {
		return oka
	}
	return a.Name() < b.Name()
}
