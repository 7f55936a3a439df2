package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/nimblecms/richedit/document"
	"github.com/nimblecms/richedit/htmlcodec"
)

// Serializer converts an element tree to markdown text.
type Serializer struct {
	config Config
}

type state struct {
	config   Config
	warnings []htmlcodec.Warning
}

// NewSerializer creates a new Serializer with the given config.
func NewSerializer(config Config) (*Serializer, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Serializer{config: cfg}, nil
}

// Serialize walks the element tree rooted at the container and returns the
// markdown text plus any warnings for constructs the dialect dropped.
func (s *Serializer) Serialize(root *html.Node) (Result, error) {
	st := &state{config: s.config}

	out, err := st.convertBlockChildren(root)
	if err != nil {
		return Result{}, err
	}

	// Trim right to avoid excessive newlines at the end, then ensure exactly one.
	md := strings.TrimRight(out, "\n")
	if md != "" {
		md += "\n"
	}

	return Result{Markdown: md, Warnings: st.warnings}, nil
}

func (st *state) addWarning(warnType htmlcodec.WarningType, element, message string) {
	st.warnings = append(st.warnings, htmlcodec.Warning{
		Type:    warnType,
		Element: element,
		Message: message,
	})
}

func (st *state) convertBlockChildren(n *html.Node) (string, error) {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		res, err := st.convertBlock(child)
		if err != nil {
			return "", err
		}
		sb.WriteString(res)
	}
	return sb.String(), nil
}

func (st *state) convertBlock(n *html.Node) (string, error) {
	switch n.Type {
	case html.TextNode:
		// Stray top-level text becomes its own paragraph.
		if strings.TrimSpace(n.Data) == "" {
			return "", nil
		}
		return escapeLineStart(escapeText(strings.TrimSpace(n.Data))) + "\n\n", nil
	case html.ElementNode:
	default:
		return "", nil
	}

	if attrValue(n, document.PluginMarkerAttr) != "" {
		return st.convertPluginBlock(n)
	}

	switch n.Data {
	case "p":
		content, err := st.convertInlineChildren(n)
		if err != nil {
			return "", err
		}
		if content == "" {
			return "", nil
		}
		return escapeLineStart(content) + "\n\n", nil

	case "h1", "h2", "h3", "h4", "h5", "h6":
		return st.convertHeading(n)

	case "blockquote":
		return st.convertBlockquote(n)

	case "pre":
		return st.convertCodeBlock(n)

	case "ul":
		return st.convertList(n, false)
	case "ol":
		return st.convertList(n, true)

	case "hr":
		return "---\n\n", nil

	case "div", "body":
		// Transparent containers: fragment wrappers and pasted markup.
		return st.convertBlockChildren(n)

	default:
		if st.config.UnknownElements == UnknownError {
			return "", fmt.Errorf("unknown element: %s", n.Data)
		}
		st.addWarning(
			htmlcodec.WarningUnknownElement,
			n.Data,
			fmt.Sprintf("unsupported element %q dropped", n.Data),
		)
		return "", nil
	}
}

// convertPluginBlock persists a plugin block as its marker element. Children
// are a rendered preview and are not part of the persisted form.
func (st *state) convertPluginBlock(n *html.Node) (string, error) {
	rendered, err := RenderElement(n)
	if err != nil {
		return "", err
	}
	return rendered + "\n\n", nil
}

func (st *state) convertHeading(n *html.Node) (string, error) {
	level := int(n.Data[1] - '0')

	content, err := st.convertInlineChildren(n)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("#", level))
	sb.WriteString(" ")
	sb.WriteString(content)
	sb.WriteString("\n\n")
	return sb.String(), nil
}

func (st *state) convertBlockquote(n *html.Node) (string, error) {
	inner, err := st.convertBlockChildren(n)
	if err != nil {
		return "", err
	}

	content := strings.TrimRight(inner, "\n")
	if content == "" {
		return "", nil
	}

	lines := strings.Split(content, "\n")
	quoted := make([]string, 0, len(lines))
	for _, line := range lines {
		// Nested blockquote lines already start with ">", so no extra space.
		if strings.HasPrefix(line, ">") {
			quoted = append(quoted, ">"+line)
		} else if line == "" {
			quoted = append(quoted, ">")
		} else {
			quoted = append(quoted, "> "+line)
		}
	}

	return strings.Join(quoted, "\n") + "\n\n", nil
}

func (st *state) convertCodeBlock(n *html.Node) (string, error) {
	target := n
	lang := ""
	if code := firstElementChild(n, "code"); code != nil {
		target = code
		lang = languageFromClass(attrValue(code, "class"))
	}

	content := textContent(target)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}

	return fence + lang + "\n" + content + fence + "\n\n", nil
}

func (st *state) convertList(n *html.Node, ordered bool) (string, error) {
	var sb strings.Builder
	num := 1

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}

		content, err := st.convertListItem(child)
		if err != nil {
			return "", err
		}

		marker := string(st.config.BulletMarker) + " "
		if ordered {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		sb.WriteString(indent(content, marker))
		sb.WriteString("\n")
	}

	return sb.String() + "\n", nil
}

func (st *state) convertListItem(li *html.Node) (string, error) {
	if !hasBlockChild(li) {
		return st.convertInlineChildren(li)
	}

	// Loose items carry block children; separate them with a blank line and
	// drop trailing newlines so the item indents as one unit.
	var parts []string
	for child := li.FirstChild; child != nil; child = child.NextSibling {
		res, err := st.convertBlock(child)
		if err != nil {
			return "", err
		}
		res = strings.TrimRight(res, "\n")
		if res == "" {
			continue
		}
		parts = append(parts, res)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (st *state) convertInlineChildren(n *html.Node) (string, error) {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		res, err := st.convertInline(child)
		if err != nil {
			return "", err
		}
		sb.WriteString(res)
	}
	return sb.String(), nil
}

func (st *state) convertInline(n *html.Node) (string, error) {
	switch n.Type {
	case html.TextNode:
		return escapeText(n.Data), nil
	case html.ElementNode:
	default:
		return "", nil
	}

	switch n.Data {
	case "strong", "b":
		return st.wrapInline(n, "**", "**")
	case "em", "i":
		return st.wrapInline(n, "*", "*")
	case "s", "del":
		return st.wrapInline(n, "~~", "~~")
	case "u":
		return st.wrapInline(n, "<u>", "</u>")

	case "code":
		return codeSpan(textContent(n)), nil

	case "a":
		return st.convertLink(n)
	case "img":
		return st.convertImage(n)

	case "br":
		return "\\\n", nil

	default:
		st.addWarning(
			htmlcodec.WarningUnknownElement,
			n.Data,
			fmt.Sprintf("unsupported inline element %q unwrapped", n.Data),
		)
		return st.convertInlineChildren(n)
	}
}

func (st *state) wrapInline(n *html.Node, opening, closing string) (string, error) {
	content, err := st.convertInlineChildren(n)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}
	return opening + content + closing, nil
}

func (st *state) convertLink(n *html.Node) (string, error) {
	text, err := st.convertInlineChildren(n)
	if err != nil {
		return "", err
	}

	href := attrValue(n, "href")
	if href == "" {
		// No destination: keep the text, lose the link.
		st.addWarning(htmlcodec.WarningMissingAttribute, "a", "link without href reduced to plain text")
		return text, nil
	}

	closing := "](" + href
	if title := attrValue(n, "title"); title != "" {
		closing += " \"" + escapeTitle(title) + "\""
	}
	return "[" + text + closing + ")", nil
}

func (st *state) convertImage(n *html.Node) (string, error) {
	src := attrValue(n, "src")
	if src == "" {
		st.addWarning(htmlcodec.WarningMissingAttribute, "img", "image without src dropped")
		return "", nil
	}

	closing := "](" + src
	if title := attrValue(n, "title"); title != "" {
		closing += " \"" + escapeTitle(title) + "\""
	}
	return "![" + attrValue(n, "alt") + closing + ")", nil
}

// codeSpan picks a backtick delimiter longer than any run inside the content.
func codeSpan(content string) string {
	if content == "" {
		return ""
	}
	delim := "`"
	for strings.Contains(content, delim) {
		delim += "`"
	}
	if len(delim) > 1 {
		return delim + " " + content + " " + delim
	}
	return delim + content + delim
}

// indent prefixes the first line with the marker and subsequent lines with
// matching whitespace, so multi-line items stay inside their list position.
func indent(content, marker string) string {
	pad := strings.Repeat(" ", len(marker))
	lines := strings.Split(content, "\n")

	var sb strings.Builder
	for i, line := range lines {
		if i == 0 {
			sb.WriteString(marker)
			sb.WriteString(line)
			continue
		}
		sb.WriteString("\n")
		if line != "" {
			sb.WriteString(pad)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func firstElementChild(n *html.Node, tag string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}

func hasBlockChild(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "ul", "ol", "div", "hr":
			return true
		}
	}
	return false
}

func languageFromClass(class string) string {
	for _, field := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(field, "language-"); ok {
			return lang
		}
	}
	return ""
}
