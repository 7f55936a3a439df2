package htmlcodec

import (
	"golang.org/x/net/html"

	"github.com/nimblecms/richedit/document"
)

// Component describes how a node type appears in the element tree: the
// element name it renders to, an optional nested inner element, and the
// attributes a node of the type carries. The codec consults it for shape
// only; visual rendering lives with the host.
type Component struct {
	Tag   string
	Inner string
	Attrs func(n document.Node) []html.Attribute
}

var components = map[document.Type]Component{
	document.Paragraph:    {Tag: "p"},
	document.HeadingOne:   {Tag: "h1"},
	document.HeadingTwo:   {Tag: "h2"},
	document.HeadingThree: {Tag: "h3"},
	document.HeadingFour:  {Tag: "h4"},
	document.HeadingFive:  {Tag: "h5"},
	document.HeadingSix:   {Tag: "h6"},
	document.Quote:        {Tag: "blockquote"},
	document.ListItem:     {Tag: "li"},
	document.BulletedList: {Tag: "ul"},
	document.NumberedList: {Tag: "ol"},
	document.Code:         {Tag: "pre", Inner: "code", Attrs: codeAttrs},
	document.Image:        {Tag: "img", Attrs: imageAttrs},
	document.Link:         {Tag: "a", Attrs: linkAttrs},
}

func codeAttrs(n document.Node) []html.Attribute {
	lang, _ := n.Data["lang"].(string)
	if lang == "" {
		return nil
	}
	return []html.Attribute{{Key: "class", Val: "language-" + lang}}
}

func imageAttrs(n document.Node) []html.Attribute {
	src, _ := n.Data["src"].(string)
	attrs := []html.Attribute{{Key: "src", Val: src}}
	if alt, _ := n.Data["alt"].(string); alt != "" {
		attrs = append(attrs, html.Attribute{Key: "alt", Val: alt})
	}
	if title, _ := n.Data["title"].(string); title != "" {
		attrs = append(attrs, html.Attribute{Key: "title", Val: title})
	}
	return attrs
}

func linkAttrs(n document.Node) []html.Attribute {
	href, _ := n.Data["href"].(string)
	attrs := []html.Attribute{{Key: "href", Val: href}}
	if title, _ := n.Data["title"].(string); title != "" {
		attrs = append(attrs, html.Attribute{Key: "title", Val: title})
	}
	return attrs
}

func newElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}
