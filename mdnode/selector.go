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

/*
SelectorKind is the closed set of selector predicates a `.`-selector token
desugars to. It mirrors Kind one-to-one except where a selector additionally
carries match parameters (Heading depth, Code language, List/Table
indices).
*/
type SelectorKind struct {
	Kind Kind

	HeadingDepth *int
	CodeLang     *string
	ListIndex    *int
	ListChecked  *bool
	TableRow     *int
	TableCol     *int
}

/*
Matches reports whether n satisfies this selector, per the predicate table:
Heading/Code/List/Table take optional match parameters where nil means
"don't constrain"; every other selector kind matches on node kind alone.
*/
func (s SelectorKind) Matches(n *Node) bool {
	if n == nil {
		return false
	}

	switch s.Kind {
	case Heading:
		if n.Kind != Heading {
			return false
		}
		return s.HeadingDepth == nil || *s.HeadingDepth == n.Depth

	case CodeBlock:
		if n.Kind != CodeBlock {
			return false
		}
		if s.CodeLang == nil {
			return true
		}
		want := *s.CodeLang
		return want == n.Lang

	case ListItem:
		if n.Kind != ListItem {
			return false
		}
		if s.ListIndex != nil && *s.ListIndex != n.Index {
			return false
		}
		if s.ListChecked != nil {
			if n.Checked == nil || *n.Checked != *s.ListChecked {
				return false
			}
		}
		return true

	case TableCell, TableHeader:
		if n.Kind != TableCell && n.Kind != TableHeader {
			return false
		}
		if s.TableRow != nil && *s.TableRow != n.RowIndex {
			return false
		}
		if s.TableCol != nil && *s.TableCol != n.ColIndex {
			return false
		}
		return true

	default:
		return n.Kind == s.Kind
	}
}

/*
Apply evaluates the selector against n, returning the matched node (possibly
narrowed to a child, for index selectors) and whether it matched.

List(i, _) and Table(r, c) selectors narrow into the matching child/cell
rather than merely testing the parent: a List selector with an index
returns the i'th item of a matching list, and a Table selector with row
and/or column returns the first matching cell within a matching row.
*/
func (s SelectorKind) Apply(n *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}

	switch s.Kind {
	case ListItem:
		if n.Kind == List {
			if s.ListIndex == nil {
				return nil, false
			}
			i := *s.ListIndex
			if i < 0 || i >= len(n.Children) {
				return nil, false
			}
			item := n.Children[i]
			if s.ListChecked != nil && (item.Checked == nil || *item.Checked != *s.ListChecked) {
				return nil, false
			}
			return item, true
		}
		return n, s.Matches(n)

	case TableCell, TableHeader:
		if n.Kind == TableRow || n.Kind == TableHeader {
			for _, c := range n.Children {
				sel := s
				if sel.Matches(c) {
					return c, true
				}
			}
			return nil, false
		}
		return n, s.Matches(n)

	default:
		if s.Matches(n) {
			return n, true
		}
		return nil, false
	}
}
