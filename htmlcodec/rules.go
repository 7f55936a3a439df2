package htmlcodec

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nimblecms/richedit/document"
	"github.com/nimblecms/richedit/plugin"
)

// standardRules builds the codec's rule list. Order is priority: the plugin
// rule runs first so a marker element is never misclassified as a generic
// block, and the list rule runs last because list containers are excluded
// from the generic block serializer.
func (c *Codec) standardRules() []Rule {
	return []Rule{
		c.shortcodeRule(),
		blockRule(),
		markRule(),
		codeBlockRule(),
		imageRule(),
		linkRule(),
		listRule(),
	}
}

func (c *Codec) shortcodeRule() Rule {
	return Rule{
		Name: "shortcode",

		Deserialize: func(el *html.Node, next Continuation) ([]document.Node, bool) {
			id := elementAttr(el, document.PluginMarkerAttr)
			if id == "" || c.config.Plugins == nil {
				return nil, false
			}
			// Unknown plugins decline so removed plugins degrade to being
			// dropped instead of crashing.
			if _, ok := c.config.Plugins.ByID(id); !ok {
				return nil, false
			}

			data := map[string]any{"shortcodeId": id}
			for _, attr := range el.Attr {
				if attr.Key == document.PluginMarkerAttr {
					continue
				}
				key, ok := strings.CutPrefix(attr.Key, document.PluginAttrPrefix)
				if !ok {
					continue
				}
				key = strings.ToLower(key)
				if key == "" {
					continue
				}
				data[key] = attr.Val
			}

			node := document.Node{
				Object: document.ObjectBlock,
				Type:   document.Shortcode,
				Data:   map[string]any{"shortcode": data},
			}
			return []document.Node{node}, true
		},

		Serialize: func(n document.Node, _ []*html.Node) ([]*html.Node, bool) {
			if n.Type != document.Shortcode || c.config.Plugins == nil {
				return nil, false
			}
			data, _ := n.Data["shortcode"].(map[string]any)
			id, _ := data["shortcodeId"].(string)
			if id == "" {
				return nil, false
			}
			p, ok := c.config.Plugins.ByID(id)
			if !ok {
				return nil, false
			}

			el := newElement("div", html.Attribute{Key: document.PluginMarkerAttr, Val: id})

			keys := make([]string, 0, len(data))
			for key := range data {
				if key == "shortcodeId" {
					continue
				}
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				value, _ := data[key].(string)
				el.Attr = append(el.Attr, html.Attribute{
					Key: document.PluginAttrPrefix + strings.ToLower(key),
					Val: value,
				})
			}

			for _, child := range c.renderPreview(p, data) {
				el.AppendChild(child)
			}

			return []*html.Node{el}, true
		},
	}
}

func blockRule() Rule {
	return Rule{
		Name: "block",

		Deserialize: func(el *html.Node, next Continuation) ([]document.Node, bool) {
			// Preformatted content belongs to the code-block rule.
			if el.Data == "pre" {
				return nil, false
			}
			t, ok := document.BlockTags[el.Data]
			if !ok {
				return nil, false
			}
			return []document.Node{document.NewBlock(t, next(el)...)}, true
		},

		Serialize: func(n document.Node, children []*html.Node) ([]*html.Node, bool) {
			if !n.IsBlock() || document.IsListContainer(n.Type) {
				return nil, false
			}
			comp, ok := components[n.Type]
			if !ok {
				return nil, false
			}

			el := newElement(comp.Tag)
			parent := el
			if comp.Inner != "" {
				inner := newElement(comp.Inner)
				if comp.Attrs != nil {
					inner.Attr = comp.Attrs(n)
				}
				el.AppendChild(inner)
				parent = inner
			} else if comp.Attrs != nil {
				el.Attr = comp.Attrs(n)
			}

			for _, child := range children {
				parent.AppendChild(child)
			}
			return []*html.Node{el}, true
		},
	}
}

func markRule() Rule {
	return Rule{
		Name: "mark",

		Deserialize: func(el *html.Node, next Continuation) ([]document.Node, bool) {
			t, ok := document.MarkTags[el.Data]
			if !ok {
				return nil, false
			}
			return document.MarkAll(next(el), t), true
		},

		SerializeMark: func(m document.Mark, inner []*html.Node) ([]*html.Node, bool) {
			tag, ok := document.TagForMark(m.Type)
			if !ok {
				return nil, false
			}
			el := newElement(tag)
			for _, child := range inner {
				el.AppendChild(child)
			}
			return []*html.Node{el}, true
		},
	}
}

// codeBlockRule unwraps the conventional pre>code nesting so the code
// element's children become the code block's children directly. Serialization
// of code blocks goes through the generic block rule, whose component
// re-nests them.
func codeBlockRule() Rule {
	return Rule{
		Name: "code-block",

		Deserialize: func(el *html.Node, next Continuation) ([]document.Node, bool) {
			if el.Data != "pre" {
				return nil, false
			}

			target := el
			lang := ""
			for child := el.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.ElementNode && child.Data == "code" {
					target = child
					lang = languageFromClass(elementAttr(child, "class"))
					break
				}
			}

			node := document.NewBlock(document.Code, next(target)...)
			if lang != "" {
				node.Data = map[string]any{"lang": lang}
			}
			return []document.Node{node}, true
		},
	}
}

func imageRule() Rule {
	return Rule{
		Name: "image",

		Deserialize: func(el *html.Node, _ Continuation) ([]document.Node, bool) {
			if el.Data != "img" {
				return nil, false
			}
			data := map[string]any{"src": elementAttr(el, "src")}
			if alt := elementAttr(el, "alt"); alt != "" {
				data["alt"] = alt
			}
			if title := elementAttr(el, "title"); title != "" {
				data["title"] = title
			}
			return []document.Node{document.NewInline(document.Image, data)}, true
		},

		Serialize: func(n document.Node, _ []*html.Node) ([]*html.Node, bool) {
			if n.Type != document.Image {
				return nil, false
			}
			comp := components[document.Image]
			return []*html.Node{newElement(comp.Tag, comp.Attrs(n)...)}, true
		},
	}
}

func linkRule() Rule {
	return Rule{
		Name: "link",

		Deserialize: func(el *html.Node, next Continuation) ([]document.Node, bool) {
			if el.Data != "a" {
				return nil, false
			}
			data := map[string]any{"href": elementAttr(el, "href")}
			if title := elementAttr(el, "title"); title != "" {
				data["title"] = title
			}
			return []document.Node{document.NewInline(document.Link, data, next(el)...)}, true
		},

		Serialize: func(n document.Node, children []*html.Node) ([]*html.Node, bool) {
			if n.Type != document.Link {
				return nil, false
			}
			comp := components[document.Link]
			el := newElement(comp.Tag, comp.Attrs(n)...)
			for _, child := range children {
				el.AppendChild(child)
			}
			return []*html.Node{el}, true
		},
	}
}

// listRule serializes the two list containers, which the generic block rule
// excludes. Their deserialization is already covered by the block rule.
func listRule() Rule {
	return Rule{
		Name: "list",

		Serialize: func(n document.Node, children []*html.Node) ([]*html.Node, bool) {
			if !document.IsListContainer(n.Type) {
				return nil, false
			}
			el := newElement(components[n.Type].Tag)
			for _, child := range children {
				el.AppendChild(child)
			}
			return []*html.Node{el}, true
		},
	}
}

// renderPreview asks the plugin for its preview of the block. A raw string
// preview is parsed as a markup fragment; plugins are first-party, so the
// string passes through verbatim unless the registry carries a sanitizer.
func (c *Codec) renderPreview(p plugin.Plugin, data map[string]any) []*html.Node {
	if p.ToPreview == nil {
		return nil
	}

	fields := make(map[string]string, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			fields[key] = s
		}
	}

	preview := p.ToPreview(fields)
	if preview.Node != nil {
		return []*html.Node{preview.Node}
	}
	if preview.HTML == "" {
		return nil
	}

	raw := c.config.Plugins.SanitizePreview(preview.HTML)
	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(raw), context)
	if err != nil {
		return nil
	}
	return nodes
}

func elementAttr(el *html.Node, name string) string {
	for _, attr := range el.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func languageFromClass(class string) string {
	for _, field := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(field, "language-"); ok {
			return lang
		}
	}
	return ""
}
