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

import "testing"

func TestFromSourceHeading(t *testing.T) {

	root := FromSource("# Title\n\nSome text.\n")

	if len(root.Children) != 2 {
		t.Fatal("Unexpected child count:", len(root.Children))
	}

	h := root.Children[0]
	if !h.IsHeading() || h.Depth != 1 {
		t.Error("Unexpected heading:", h)
	}
	if h.ValueOf() != "Title" {
		t.Error("Unexpected heading text:", h.ValueOf())
	}
}

func TestFromSourceCodeBlock(t *testing.T) {

	root := FromSource("```rust\nfn main() {}\n```\n")

	if len(root.Children) != 1 {
		t.Fatal("Unexpected child count:", len(root.Children))
	}

	c := root.Children[0]
	if !c.IsCodeBlock() || c.Lang != "rust" {
		t.Error("Unexpected code block:", c)
	}
}

func TestSelectorHeadingMatch(t *testing.T) {

	depth := 2
	sel := SelectorKind{Kind: Heading, HeadingDepth: &depth}

	h2 := &Node{Kind: Heading, Depth: 2}
	h3 := &Node{Kind: Heading, Depth: 3}

	if !sel.Matches(h2) {
		t.Error("Expected .h2 to match a depth-2 heading")
	}
	if sel.Matches(h3) {
		t.Error("Expected .h2 to reject a depth-3 heading")
	}

	any := SelectorKind{Kind: Heading}
	if !any.Matches(h3) {
		t.Error("Expected bare .h to match any heading")
	}
}

func TestSelectorCodeLang(t *testing.T) {

	lang := "rust"
	sel := SelectorKind{Kind: CodeBlock, CodeLang: &lang}

	match := &Node{Kind: CodeBlock, Lang: "rust"}
	miss := &Node{Kind: CodeBlock, Lang: "go"}

	if !sel.Matches(match) {
		t.Error("Expected .code(\"rust\") to match a rust block")
	}
	if sel.Matches(miss) {
		t.Error("Expected .code(\"rust\") to reject a go block")
	}
}

func TestSelectorListIndex(t *testing.T) {

	idx := 1
	sel := SelectorKind{Kind: ListItem, ListIndex: &idx}

	list := &Node{Kind: List, Children: []*Node{
		{Kind: ListItem, Index: 0, Value: "a"},
		{Kind: ListItem, Index: 1, Value: "b"},
	}}

	n, ok := sel.Apply(list)
	if !ok || n.Value != "b" {
		t.Error("Unexpected selector application result:", n, ok)
	}
}

func TestWithValueAndFragment(t *testing.T) {

	h := &Node{Kind: Heading, Depth: 1, Value: "old"}

	h2 := h.WithValue("new")
	if h.Value != "old" || h2.Value != "new" {
		t.Error("WithValue must not mutate the receiver")
	}

	parent := &Node{Kind: Fragment, Children: []*Node{h, h2}}
	frag := parent.ToFragment()
	if len(frag.Children) != 2 {
		t.Fatal("Unexpected fragment child count:", len(frag.Children))
	}

	merged := parent.ApplyFragment(&Node{Kind: Fragment, Children: []*Node{
		NewEmpty(),
		{Kind: Heading, Depth: 1, Value: "replaced"},
	}})

	if merged.Children[0].Value != "old" {
		t.Error("Empty fragment slot should keep original child")
	}
	if merged.Children[1].Value != "replaced" {
		t.Error("Non-empty fragment slot should replace child")
	}
}

func TestEqualByRender(t *testing.T) {

	a := &Node{Kind: Heading, Depth: 1, Value: "Title"}
	b := &Node{Kind: Heading, Depth: 1, Value: "Title"}
	c := &Node{Kind: Heading, Depth: 2, Value: "Title"}

	if !Equal(a, b) {
		t.Error("Expected structurally equal nodes to compare equal")
	}
	if Equal(a, c) {
		t.Error("Expected nodes with different depth to compare unequal")
	}
}
