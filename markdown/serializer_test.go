package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimblecms/richedit/htmlcodec"
)

func serialize(t testing.TB, cfg Config, markup string) Result {
	t.Helper()

	root, err := ParseFragment(markup)
	require.NoError(t, err)

	s, err := NewSerializer(cfg)
	require.NoError(t, err)

	result, err := s.Serialize(root)
	require.NoError(t, err)
	return result
}

func TestSerializeParagraph(t *testing.T) {
	result := serialize(t, Config{}, "<p>hello world</p>")

	assert.Equal(t, "hello world\n", result.Markdown)
	assert.Empty(t, result.Warnings)
}

func TestSerializeEmptyTree(t *testing.T) {
	result := serialize(t, Config{}, "")

	assert.Equal(t, "", result.Markdown)
}

func TestSerializeMarks(t *testing.T) {
	result := serialize(t, Config{},
		"<p><strong>b</strong> <em>i</em> <s>st</s> <u>u</u> <code>c</code></p>")

	assert.Equal(t, "**b** *i* ~~st~~ <u>u</u> `c`\n", result.Markdown)
}

func TestSerializeHeadings(t *testing.T) {
	result := serialize(t, Config{}, "<h1>One</h1><h3>Three</h3>")

	assert.Equal(t, "# One\n\n### Three\n", result.Markdown)
}

func TestSerializeNestedBlockquote(t *testing.T) {
	result := serialize(t, Config{},
		"<blockquote><p>a</p><blockquote><p>b</p></blockquote></blockquote>")

	assert.Equal(t, "> a\n>\n>> b\n", result.Markdown)
}

func TestSerializeCodeBlock(t *testing.T) {
	result := serialize(t, Config{},
		`<pre><code class="language-go">x := 1</code></pre>`)

	assert.Equal(t, "```go\nx := 1\n```\n", result.Markdown)
}

func TestSerializeCodeBlockGrowsFence(t *testing.T) {
	result := serialize(t, Config{},
		"<pre><code>```\ninner fence\n```</code></pre>")

	assert.Equal(t, "````\n```\ninner fence\n```\n````\n", result.Markdown)
}

func TestSerializeBulletList(t *testing.T) {
	result := serialize(t, Config{}, "<ul><li>a</li><li>b</li></ul>")

	assert.Equal(t, "- a\n- b\n", result.Markdown)
}

func TestSerializeBulletMarkerConfig(t *testing.T) {
	result := serialize(t, Config{BulletMarker: '*'}, "<ul><li>a</li></ul>")

	assert.Equal(t, "* a\n", result.Markdown)
}

func TestSerializeOrderedList(t *testing.T) {
	result := serialize(t, Config{}, "<ol><li>a</li><li>b</li></ol>")

	assert.Equal(t, "1. a\n2. b\n", result.Markdown)
}

func TestSerializeNestedList(t *testing.T) {
	result := serialize(t, Config{}, "<ul><li>a<ul><li>b</li></ul></li></ul>")

	assert.Equal(t, "- a\n\n  - b\n", result.Markdown)
}

func TestSerializeLinkWithTitle(t *testing.T) {
	result := serialize(t, Config{}, `<p><a href="/x" title="The &quot;X&quot;">t</a></p>`)

	assert.Equal(t, "[t](/x \"The \\\"X\\\"\")\n", result.Markdown)
}

func TestSerializeLinkWithoutHrefKeepsText(t *testing.T) {
	result := serialize(t, Config{}, "<p><a>just text</a></p>")

	assert.Equal(t, "just text\n", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, htmlcodec.WarningMissingAttribute, result.Warnings[0].Type)
}

func TestSerializeImage(t *testing.T) {
	result := serialize(t, Config{}, `<p><img src="/cat.png" alt="cat"></p>`)

	assert.Equal(t, "![cat](/cat.png)\n", result.Markdown)
}

func TestSerializeHardBreak(t *testing.T) {
	result := serialize(t, Config{}, "<p>a<br>b</p>")

	assert.Equal(t, "a\\\nb\n", result.Markdown)
}

func TestSerializeThematicBreak(t *testing.T) {
	result := serialize(t, Config{}, "<p>a</p><hr><p>b</p>")

	assert.Equal(t, "a\n\n---\n\nb\n", result.Markdown)
}

func TestSerializeEscapesInlineSyntax(t *testing.T) {
	result := serialize(t, Config{}, "<p>*stars* and [brackets]</p>")

	assert.Equal(t, "\\*stars\\* and \\[brackets\\]\n", result.Markdown)
}

func TestSerializeEscapesBlockSyntaxAtLineStart(t *testing.T) {
	result := serialize(t, Config{}, "<p># not a heading</p>")
	assert.Equal(t, "\\# not a heading\n", result.Markdown)

	result = serialize(t, Config{}, "<p>2. not a list</p>")
	assert.Equal(t, "2\\. not a list\n", result.Markdown)
}

func TestSerializePluginBlockPersistsMarkerOnly(t *testing.T) {
	result := serialize(t, Config{},
		`<div data-ncp="gist" data-ncp-gistid="abc"><figure>preview</figure></div>`)

	assert.Equal(t, `<div data-ncp="gist" data-ncp-gistid="abc"></div>`+"\n", result.Markdown)
}

func TestSerializeUnknownElementSkipsWithWarning(t *testing.T) {
	result := serialize(t, Config{}, "<p>kept</p><table><tbody><tr><td>x</td></tr></tbody></table>")

	assert.Equal(t, "kept\n", result.Markdown)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, htmlcodec.WarningUnknownElement, result.Warnings[0].Type)
}

func TestSerializeUnknownElementErrorPolicy(t *testing.T) {
	root, err := ParseFragment("<table><tbody><tr><td>x</td></tr></tbody></table>")
	require.NoError(t, err)

	s, err := NewSerializer(Config{UnknownElements: UnknownError})
	require.NoError(t, err)

	_, err = s.Serialize(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown element")
}

func TestSerializeUnknownInlineUnwrapped(t *testing.T) {
	result := serialize(t, Config{}, "<p>a <span>b</span></p>")

	assert.Equal(t, "a b\n", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "span", result.Warnings[0].Element)
}
