// Package htmlcodec is the serialization rule engine: it converts between the
// document tree and the intermediate element tree in both directions through
// an ordered list of rules. Rules are tried in registration order and the
// first one that claims a node wins; a rule that declines is not a failure,
// it hands the node to the next rule. Anything no rule claims is dropped,
// which is how unsupported constructs degrade.
package htmlcodec

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nimblecms/richedit/document"
	"github.com/nimblecms/richedit/plugin"
)

// Continuation recursively deserializes an element's children. Rules that
// want default child handling call it instead of walking the tree themselves,
// so the engine owns the traversal.
type Continuation func(el *html.Node) []document.Node

// Rule is one entry in the codec's ordered rule list. Any subset of the
// capability functions may be set; each reports a decline through its second
// result.
type Rule struct {
	Name string

	// Deserialize classifies one element into document nodes.
	Deserialize func(el *html.Node, next Continuation) ([]document.Node, bool)

	// Serialize renders one block or inline node whose children have already
	// been rendered bottom-up.
	Serialize func(n document.Node, children []*html.Node) ([]*html.Node, bool)

	// SerializeMark wraps already-rendered leaf content in a mark's element.
	SerializeMark func(m document.Mark, inner []*html.Node) ([]*html.Node, bool)
}

// Config holds codec configuration.
type Config struct {
	// Plugins resolves shortcode identifiers. May be nil, in which case every
	// plugin block declines and is dropped.
	Plugins *plugin.Registry
}

// Codec converts between element trees and document trees.
type Codec struct {
	config Config
	rules  []Rule
}

// New creates a Codec with the standard rule list.
func New(config Config) *Codec {
	c := &Codec{config: config}
	c.rules = c.standardRules()
	return c
}

type state struct {
	codec    *Codec
	warnings []Warning
}

func (st *state) addWarning(warnType WarningType, element, message string) {
	st.warnings = append(st.warnings, Warning{
		Type:    warnType,
		Element: element,
		Message: message,
	})
}

// Deserialize converts an element tree into a normalized document.
func (c *Codec) Deserialize(root *html.Node) DeserializeResult {
	res := c.DeserializeFragment(root)
	res.Doc = document.Normalize(res.Doc)
	return res
}

// DeserializeFragment converts an element tree into a document without the
// whole-document normalization pass, for content that will be inserted into
// an existing document rather than stand on its own.
func (c *Codec) DeserializeFragment(root *html.Node) DeserializeResult {
	st := &state{codec: c}

	nodes := st.deserializeChildren(root)
	nodes = wrapStrayInlines(nodes)
	nodes = ensureLeaves(nodes)

	return DeserializeResult{Doc: document.Document{Nodes: nodes}, Warnings: st.warnings}
}

// Serialize converts a document into an element tree rooted at a container.
func (c *Codec) Serialize(doc document.Document) SerializeResult {
	st := &state{codec: c}

	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	for _, n := range doc.Nodes {
		for _, el := range st.serializeNode(n) {
			container.AppendChild(el)
		}
	}

	return SerializeResult{Root: container, Warnings: st.warnings}
}

func (st *state) deserializeChildren(el *html.Node) []document.Node {
	var out []document.Node
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, st.deserializeNode(child)...)
	}
	return out
}

func (st *state) deserializeNode(n *html.Node) []document.Node {
	switch n.Type {
	case html.TextNode:
		// Whitespace between block elements is formatting, not content.
		if isInterBlockWhitespace(n) {
			return nil
		}
		return []document.Node{document.NewText(n.Data)}

	case html.ElementNode:
		for _, rule := range st.codec.rules {
			if rule.Deserialize == nil {
				continue
			}
			if nodes, ok := rule.Deserialize(n, st.deserializeChildren); ok {
				return nodes
			}
		}
		st.addWarning(
			WarningUnknownElement,
			n.Data,
			fmt.Sprintf("unsupported element %q dropped", n.Data),
		)
		return nil

	default:
		return nil
	}
}

func (st *state) serializeNode(n document.Node) []*html.Node {
	if n.IsText() {
		return st.serializeLeaf(n)
	}

	// Children of void nodes are regenerated by their rule, not walked.
	var children []*html.Node
	if !n.Void() {
		for _, child := range n.Nodes {
			children = append(children, st.serializeNode(child)...)
		}
	}

	for _, rule := range st.codec.rules {
		if rule.Serialize == nil {
			continue
		}
		if out, ok := rule.Serialize(n, children); ok {
			return out
		}
	}

	st.addWarning(
		WarningUnknownNode,
		string(n.Type),
		fmt.Sprintf("node type %q has no serialize rule, dropped", n.Type),
	)
	return nil
}

func (st *state) serializeLeaf(n document.Node) []*html.Node {
	out := []*html.Node{{Type: html.TextNode, Data: n.Text}}

	// The first mark ends up innermost, matching deserialization order.
	for _, m := range n.Marks {
		wrapped := false
		for _, rule := range st.codec.rules {
			if rule.SerializeMark == nil {
				continue
			}
			if next, ok := rule.SerializeMark(m, out); ok {
				out = next
				wrapped = true
				break
			}
		}
		if !wrapped {
			st.addWarning(
				WarningUnknownMark,
				string(m.Type),
				fmt.Sprintf("mark type %q has no serialize rule, dropped", m.Type),
			)
		}
	}

	return out
}

// isInterBlockWhitespace reports whether a text node is pure formatting
// whitespace between block-level siblings. Whitespace inside phrasing
// content (paragraphs, headings, marks, links) is real content and kept.
func isInterBlockWhitespace(n *html.Node) bool {
	for _, r := range n.Data {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	if n.Parent == nil {
		return true
	}
	switch n.Parent.Data {
	case "div", "body", "html", "ul", "ol", "blockquote":
		return true
	case "li":
		// Loose list items hold blocks, so whitespace between them is
		// formatting; tight items hold phrasing content.
		return hasBlockElementChild(n.Parent)
	}
	return false
}

func hasBlockElementChild(el *html.Node) bool {
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if _, ok := document.BlockTags[child.Data]; ok {
			return true
		}
	}
	return false
}

// wrapStrayInlines groups consecutive top-level text and inline nodes into
// paragraphs, guarding against stray content outside any block.
func wrapStrayInlines(nodes []document.Node) []document.Node {
	var out []document.Node
	var run []document.Node

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, document.NewBlock(document.Paragraph, run...))
		run = nil
	}

	for _, n := range nodes {
		if n.IsBlock() {
			flush()
			out = append(out, n)
			continue
		}
		run = append(run, n)
	}
	flush()
	return out
}

// ensureLeaves gives every non-void block and inline at least one text leaf,
// so there is always an editable position inside it.
func ensureLeaves(nodes []document.Node) []document.Node {
	out := make([]document.Node, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsText() && !n.Void() {
			if len(n.Nodes) == 0 {
				n.Nodes = []document.Node{document.NewText("")}
			} else {
				n.Nodes = ensureLeaves(n.Nodes)
			}
		}
		out = append(out, n)
	}
	return out
}
