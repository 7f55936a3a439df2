package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimblecms/richedit/document"
	"github.com/nimblecms/richedit/plugin"
)

func gistRegistry(t testing.TB) *plugin.Registry {
	t.Helper()

	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(plugin.Plugin{
		ID: "gist",
		ToBlock: func(data map[string]string) string {
			return `<div data-ncp="gist" data-ncp-gistid="` + data["gistId"] + `"></div>`
		},
	}))
	return reg
}

func TestNewEditorWithoutInitialValue(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, document.New(), e.State().Doc)
	assert.True(t, e.State().Sel.Collapsed())
	assert.Equal(t, document.Path{0, 0}, e.State().Sel.Anchor.Path)
}

func TestNewEditorLoadsInitialValue(t *testing.T) {
	e, err := New(Options{InitialValue: "# Hi\n"})
	require.NoError(t, err)

	doc := e.State().Doc
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, document.HeadingOne, doc.Nodes[0].Type)
	assert.Equal(t, "Hi", doc.Nodes[0].PlainText())

	result, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "# Hi\n", result.Markdown)
}

func TestCommitFiresOnChangeOnlyForDocumentChanges(t *testing.T) {
	var changes []string
	e, err := New(Options{
		InitialValue: "hello\n",
		OnChange:     func(md string) { changes = append(changes, md) },
	})
	require.NoError(t, err)

	// Selection-only transitions commit silently.
	st := e.State()
	st.Sel = selectRange(document.Path{0, 0}, 0, document.Path{0, 0}, 5)
	require.NoError(t, e.Commit(st))
	assert.Empty(t, changes)

	require.NoError(t, e.ToggleMark(document.Bold))
	require.Equal(t, []string{"**hello**\n"}, changes)
}

func TestEditorShortcutTogglesMark(t *testing.T) {
	e, err := New(Options{InitialValue: "hello\n"})
	require.NoError(t, err)

	st := e.State()
	st.Sel = selectRange(document.Path{0, 0}, 0, document.Path{0, 0}, 5)
	require.NoError(t, e.Commit(st))

	handled, err := e.Shortcut('i', true)
	require.NoError(t, err)
	require.True(t, handled)

	result, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "*hello*\n", result.Markdown)
}

func TestEditorSoftBreakDeclinesInParagraph(t *testing.T) {
	e, err := New(Options{InitialValue: "hello\n"})
	require.NoError(t, err)

	handled, err := e.SoftBreak()
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestEditorPasteMarkup(t *testing.T) {
	e, err := New(Options{InitialValue: "a\n"})
	require.NoError(t, err)

	handled, err := e.Paste(Payload{Markup: "<p>x</p>", IsMarkup: true})
	require.NoError(t, err)
	require.True(t, handled)

	result, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "a\n\nx\n", result.Markdown)
}

func TestEditorPasteBypassIsNoOp(t *testing.T) {
	e, err := New(Options{InitialValue: "a\n"})
	require.NoError(t, err)

	before := e.State()
	handled, err := e.Paste(Payload{Markup: "<p>x</p>", IsMarkup: true, Bypass: true})
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, before, e.State())
}

func TestEditorPasteDropsUnrepresentableContent(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)

	handled, err := e.Paste(Payload{
		Markup:   "<p>kept</p><table><tbody><tr><td>x</td></tr></tbody></table>",
		IsMarkup: true,
	})
	require.NoError(t, err)
	require.True(t, handled)

	result, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "kept\n", result.Markdown)
}

func TestEditorInsertPlugin(t *testing.T) {
	e, err := New(Options{Plugins: gistRegistry(t)})
	require.NoError(t, err)

	handled, err := e.InsertPlugin("gist", map[string]string{"gistId": "abc"})
	require.NoError(t, err)
	require.True(t, handled)

	doc := e.State().Doc
	require.Len(t, doc.Nodes, 3, "void block gets boundary paragraphs")
	block := doc.Nodes[1]
	assert.Equal(t, document.Shortcode, block.Type)
	assert.Equal(t, map[string]any{
		"shortcodeId": "gist",
		"gistid":      "abc",
	}, block.Data["shortcode"])

	result, err := e.Markdown()
	require.NoError(t, err)
	assert.Equal(t, `<div data-ncp="gist" data-ncp-gistid="abc"></div>`+"\n", result.Markdown)
}

func TestEditorInsertPluginTakesFirstBlock(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(plugin.Plugin{
		ID: "note",
		ToBlock: func(map[string]string) string {
			return "first\n\nsecond\n"
		},
	}))

	e, err := New(Options{Plugins: reg})
	require.NoError(t, err)

	handled, err := e.InsertPlugin("note", nil)
	require.NoError(t, err)
	require.True(t, handled)

	doc := e.State().Doc
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, document.Paragraph, doc.Nodes[0].Type)
	assert.Equal(t, "first", doc.Nodes[0].PlainText())
}

func TestEditorInsertUnknownPluginDeclines(t *testing.T) {
	e, err := New(Options{Plugins: gistRegistry(t)})
	require.NoError(t, err)

	handled, err := e.InsertPlugin("missing", nil)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestEditorRequestMode(t *testing.T) {
	var modes []string
	e, err := New(Options{OnMode: func(mode string) { modes = append(modes, mode) }})
	require.NoError(t, err)

	e.RequestMode("raw")
	assert.Equal(t, []string{"raw"}, modes)
}
