// Package markdown is the markup dialect bridge: it converts between the
// persisted markdown text and the intermediate element tree the serialization
// rule engine consumes. Both directions are total over everything the engine
// can produce; content the dialect cannot represent degrades to warnings.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// The dialect is GFM-flavored. Raw HTML must pass through unescaped because
// plugin blocks and underline marks persist as inline HTML.
var dialect = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// FromMarkdown converts markdown text into an element tree rooted at a
// container element. The container guards against stray top-level text nodes.
func FromMarkdown(src string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := dialect.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}
	return ParseFragment(buf.String())
}

// ToMarkdown converts an element tree to markdown with default options.
func ToMarkdown(root *html.Node) (string, error) {
	s, err := NewSerializer(Config{})
	if err != nil {
		return "", err
	}
	result, err := s.Serialize(root)
	if err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// ParseFragment parses a markup fragment and wraps the resulting nodes in a
// container element.
func ParseFragment(markup string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup fragment: %w", err)
	}

	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// RenderElement renders a single element (without its children) back to
// markup text.
func RenderElement(el *html.Node) (string, error) {
	shallow := &html.Node{
		Type:     el.Type,
		DataAtom: el.DataAtom,
		Data:     el.Data,
		Attr:     append([]html.Attribute(nil), el.Attr...),
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, shallow); err != nil {
		return "", fmt.Errorf("failed to render element: %w", err)
	}
	return buf.String(), nil
}

// Roundtrip pushes a markup fragment through the dialect and back, so the
// result only contains constructs the persistence format can represent.
// Pasted content goes through here before it is spliced into the tree.
func Roundtrip(markup string) (*html.Node, error) {
	parsed, err := ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	md, err := ToMarkdown(parsed)
	if err != nil {
		return nil, err
	}
	return FromMarkdown(md)
}
