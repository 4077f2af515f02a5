/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"strconv"
	"strings"

	"github.com/krotik/mq/errs"
	"github.com/krotik/mq/mdnode"
)

/*
selectorNames maps a selector's leading dotted name to the Markdown kind
it tests, for every selector kind the node model defines which has no
depth/language/index parameter of its own.
*/
var selectorNames = map[string]mdnode.Kind{
	"text": mdnode.Text, "code_inline": mdnode.InlineCode, "math": mdnode.Math,
	"math_inline": mdnode.InlineMath, "strong": mdnode.Strong, "em": mdnode.Emphasis,
	"emphasis": mdnode.Emphasis, "del": mdnode.Delete, "delete": mdnode.Delete,
	"link": mdnode.Link, "link_ref": mdnode.LinkRef, "image": mdnode.Image,
	"image_ref": mdnode.ImageRef, "footnote": mdnode.Footnote,
	"footnote_ref": mdnode.FootnoteRef, "definition": mdnode.Definition,
	"blockquote": mdnode.Blockquote, "hr": mdnode.HorizontalRule,
	"horizontal_rule": mdnode.HorizontalRule, "break": mdnode.Break,
	"html": mdnode.HTML, "yaml": mdnode.Yaml, "toml": mdnode.Toml,
	"mdx": mdnode.Mdx, "mdx_flow_expression": mdnode.MdxFlowExpression,
	"mdx_text_expression": mdnode.MdxTextExpression,
	"mdx_jsx_flow_element": mdnode.MdxJsxFlowElement,
	"mdx_jsx_text_element": mdnode.MdxJsxTextElement, "mdx_esm": mdnode.MdxEsm,
}

/*
parsedSelector is the result of pattern-matching a raw selector token
against the closed name set: the matched kind plus any attribute-suffix
chain to desugar into attr() calls.
*/
type parsedSelector struct {
	sel   mdnode.SelectorKind
	attrs []string
}

/*
parseSelectorToken pattern-matches a raw selector token (its text,
including the leading '.') against the closed selector grammar described
in the specification's selector section. Every unknown selector is a hard
error.
*/
func parseSelectorToken(raw string, rng errs.Range) (parsedSelector, error) {
	s := raw[1:] // drop leading '.'

	if strings.HasPrefix(s, "[") {
		return parseIndexSelector(s, rng)
	}

	segs, err := splitSelectorSegments(s, rng)
	if err != nil {
		return parsedSelector{}, err
	}
	if len(segs) == 0 {
		return parsedSelector{}, errs.NewParseError(errs.ErrUnknownSelector, "empty selector", rng)
	}

	head := segs[0]
	sel, err := parseSelectorHead(head, rng)
	if err != nil {
		return parsedSelector{}, err
	}

	return parsedSelector{sel: sel, attrs: segs[1:]}, nil
}

/*
splitSelectorSegments splits a selector's body on '.' while respecting
balanced '(' ')' and '[' ']' groups, so that e.g. "code(\"rust\")" is not
split at the dot inside its string argument (there is none here, but
nested selectors like "list(1).checked" must only split at the top
level).
*/
func splitSelectorSegments(s string, rng errs.Range) ([]string, error) {
	var segs []string
	depth := 0
	start := 0

	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, errs.NewParseError(errs.ErrUnknownSelector, "unbalanced selector", rng)
			}
		case '.':
			if depth == 0 {
				segs = append(segs, s[start:i])
				start = i + 1
			}
		}
	}
	segs = append(segs, s[start:])

	return segs, nil
}

func parseSelectorHead(head string, rng errs.Range) (mdnode.SelectorKind, error) {
	name, args := splitNameArgs(head)

	switch {
	case name == "h" || isHeadingShorthand(name):
		return parseHeadingSelector(name, args, rng)

	case name == "code":
		return parseCodeSelector(args, rng)

	case name == "list":
		return parseListSelector(args, rng)

	default:
		if kind, ok := selectorNames[name]; ok {
			if len(args) != 0 {
				return mdnode.SelectorKind{}, errs.NewParseError(errs.ErrUnknownSelector, "selector '"+name+"' takes no arguments", rng)
			}
			return mdnode.SelectorKind{Kind: kind}, nil
		}
		return mdnode.SelectorKind{}, errs.NewParseError(errs.ErrUnknownSelector, "unknown selector '"+name+"'", rng)
	}
}

func isHeadingShorthand(name string) bool {
	if len(name) != 2 || name[0] != 'h' {
		return false
	}
	return name[1] >= '1' && name[1] <= '6'
}

func parseHeadingSelector(name string, args []string, rng errs.Range) (mdnode.SelectorKind, error) {
	if name != "h" {
		d := int(name[1] - '0')
		return mdnode.SelectorKind{Kind: mdnode.Heading, HeadingDepth: &d}, nil
	}
	if len(args) == 0 {
		return mdnode.SelectorKind{Kind: mdnode.Heading}, nil
	}
	d, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return mdnode.SelectorKind{}, errs.NewParseError(errs.ErrUnknownSelector, "invalid heading depth", rng)
	}
	return mdnode.SelectorKind{Kind: mdnode.Heading, HeadingDepth: &d}, nil
}

func parseCodeSelector(args []string, rng errs.Range) (mdnode.SelectorKind, error) {
	if len(args) == 0 {
		return mdnode.SelectorKind{Kind: mdnode.CodeBlock}, nil
	}
	lang := unquote(strings.TrimSpace(args[0]))
	return mdnode.SelectorKind{Kind: mdnode.CodeBlock, CodeLang: &lang}, nil
}

func parseListSelector(args []string, rng errs.Range) (mdnode.SelectorKind, error) {
	sel := mdnode.SelectorKind{Kind: mdnode.ListItem}
	if len(args) == 0 {
		return sel, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return mdnode.SelectorKind{}, errs.NewParseError(errs.ErrUnknownSelector, "invalid list index", rng)
	}
	sel.ListIndex = &i
	if len(args) > 1 {
		b := strings.TrimSpace(args[1]) == "true"
		sel.ListChecked = &b
	}
	return sel, nil
}

func parseIndexSelector(s string, rng errs.Range) (parsedSelector, error) {
	groups, err := bracketGroups(s, rng)
	if err != nil {
		return parsedSelector{}, err
	}

	switch len(groups) {
	case 1:
		i, err := strconv.Atoi(groups[0])
		if err != nil {
			return parsedSelector{}, errs.NewParseError(errs.ErrUnknownSelector, "invalid index", rng)
		}
		return parsedSelector{sel: mdnode.SelectorKind{Kind: mdnode.ListItem, ListIndex: &i}}, nil

	case 2:
		r, err1 := strconv.Atoi(groups[0])
		c, err2 := strconv.Atoi(groups[1])
		if err1 != nil || err2 != nil {
			return parsedSelector{}, errs.NewParseError(errs.ErrUnknownSelector, "invalid table index", rng)
		}
		return parsedSelector{sel: mdnode.SelectorKind{Kind: mdnode.TableCell, TableRow: &r, TableCol: &c}}, nil

	default:
		return parsedSelector{}, errs.NewParseError(errs.ErrUnknownSelector, "invalid index selector", rng)
	}
}

func bracketGroups(s string, rng errs.Range) ([]string, error) {
	var groups []string
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			return nil, errs.NewParseError(errs.ErrUnknownSelector, "expected '['", rng)
		}
		end := strings.IndexByte(s[i:], ']')
		if end < 0 {
			return nil, errs.NewParseError(errs.ErrExpectedClosingBracket, "unterminated index selector", rng)
		}
		groups = append(groups, s[i+1:i+end])
		i += end + 1
	}
	return groups, nil
}

/*
splitNameArgs splits "name(a, b)" into ("name", ["a", "b"]); a bare name
with no parens returns a nil argument list.
*/
func splitNameArgs(head string) (string, []string) {
	i := strings.IndexByte(head, '(')
	if i < 0 {
		return head, nil
	}
	name := head[:i]
	inner := strings.TrimSuffix(head[i+1:], ")")
	if strings.TrimSpace(inner) == "" {
		return name, nil
	}
	return name, splitArgs(inner)
}

func splitArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	inStr := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inStr = !inStr
		case inStr:
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			args = append(args, s[start:i])
			start = i + 1
		}
	}
	args = append(args, s[start:])
	return args
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
