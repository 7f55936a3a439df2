package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func firstElement(root *html.Node) *html.Node {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			return child
		}
	}
	return nil
}

func TestFromMarkdownParsesIntoContainer(t *testing.T) {
	root, err := FromMarkdown("# Title\n\nhello **world**\n")
	require.NoError(t, err)

	h1 := firstElement(root)
	require.NotNil(t, h1)
	assert.Equal(t, "h1", h1.Data)
}

func TestFromMarkdownPassesRawHTMLThrough(t *testing.T) {
	root, err := FromMarkdown(`<div data-ncp="gist" data-ncp-gistid="abc"></div>`)
	require.NoError(t, err)

	el := firstElement(root)
	require.NotNil(t, el)
	assert.Equal(t, "div", el.Data)

	var marker string
	for _, attr := range el.Attr {
		if attr.Key == "data-ncp" {
			marker = attr.Val
		}
	}
	assert.Equal(t, "gist", marker)
}

func TestToMarkdownStableAcrossReparse(t *testing.T) {
	src := "# Title\n\nhello **world**\n\n- a\n- b\n"

	root, err := FromMarkdown(src)
	require.NoError(t, err)

	out, err := ToMarkdown(root)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestRenderElementDropsChildren(t *testing.T) {
	root, err := ParseFragment(`<div data-ncp="gist"><figure>preview</figure></div>`)
	require.NoError(t, err)

	rendered, err := RenderElement(firstElement(root))
	require.NoError(t, err)
	assert.Equal(t, `<div data-ncp="gist"></div>`, rendered)
}

func TestRoundtripNormalizesPastedMarkup(t *testing.T) {
	root, err := Roundtrip("<p>kept</p><table><tbody><tr><td>x</td></tr></tbody></table>")
	require.NoError(t, err)

	p := firstElement(root)
	require.NotNil(t, p)
	assert.Equal(t, "p", p.Data)

	// The table cannot be represented and does not survive the trip.
	for el := p.NextSibling; el != nil; el = el.NextSibling {
		assert.NotEqual(t, "table", el.Data)
	}
}
