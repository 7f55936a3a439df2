package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimblecms/richedit/document"
)

func TestPayloadHandled(t *testing.T) {
	assert.False(t, Payload{Markup: "<p>x</p>"}.Handled())
	assert.True(t, Payload{Markup: "<p>x</p>", IsMarkup: true}.Handled())
	assert.False(t, Payload{Markup: "<p>x</p>", IsMarkup: true, Bypass: true}.Handled())
}

func TestInsertFragmentReplacesEmptyParagraph(t *testing.T) {
	s := NewState(document.New())

	out := InsertFragment(s, []document.Node{
		document.NewBlock(document.Paragraph, document.NewText("x")),
		document.NewBlock(document.Paragraph, document.NewText("yz")),
	})

	require.Len(t, out.Doc.Nodes, 2)
	assert.Equal(t, "x", out.Doc.Nodes[0].PlainText())
	assert.Equal(t, "yz", out.Doc.Nodes[1].PlainText())

	// The caret lands at the end of the last inserted block.
	assert.Equal(t, document.Path{1, 0}, out.Sel.Anchor.Path)
	assert.Equal(t, 2, out.Sel.Anchor.Offset)
	assert.True(t, out.Sel.Collapsed())
}

func TestInsertFragmentAfterNonEmptyBlock(t *testing.T) {
	s := State{
		Doc: document.Document{Nodes: []document.Node{
			document.NewBlock(document.Paragraph, document.NewText("a")),
			document.NewBlock(document.Paragraph, document.NewText("c")),
		}},
		Sel: collapsedAt(document.Path{0, 0}, 1),
	}

	out := InsertFragment(s, []document.Node{
		document.NewBlock(document.Paragraph, document.NewText("b")),
	})

	require.Len(t, out.Doc.Nodes, 3)
	assert.Equal(t, "a", out.Doc.Nodes[0].PlainText())
	assert.Equal(t, "b", out.Doc.Nodes[1].PlainText())
	assert.Equal(t, "c", out.Doc.Nodes[2].PlainText())
	assert.Equal(t, document.Path{1, 0}, out.Sel.Anchor.Path)
}

func TestInsertFragmentInsideNestedBlockInsertsAtTopLevel(t *testing.T) {
	s := State{
		Doc: document.Document{Nodes: []document.Node{
			document.NewBlock(document.Quote,
				document.NewBlock(document.Paragraph, document.NewText("q")),
			),
		}},
		Sel: collapsedAt(document.Path{0, 0, 0}, 1),
	}

	out := InsertFragment(s, []document.Node{
		document.NewBlock(document.Paragraph, document.NewText("after")),
	})

	require.Len(t, out.Doc.Nodes, 2)
	assert.Equal(t, document.Quote, out.Doc.Nodes[0].Type)
	assert.Equal(t, "after", out.Doc.Nodes[1].PlainText())
}

func TestInsertFragmentKeepsImageOnlyParagraph(t *testing.T) {
	s := State{
		Doc: document.Document{Nodes: []document.Node{
			document.NewBlock(document.Paragraph,
				document.NewInline(document.Image, map[string]any{"src": "/cat.png"}),
			),
		}},
		Sel: collapsedAt(document.Path{0, 0}, 0),
	}

	out := InsertFragment(s, []document.Node{
		document.NewBlock(document.Paragraph, document.NewText("x")),
	})

	// The paragraph has no text but it is not empty; the image survives.
	require.Len(t, out.Doc.Nodes, 2)
	assert.Equal(t, document.Image, out.Doc.Nodes[0].Nodes[0].Type)
	assert.Equal(t, "x", out.Doc.Nodes[1].PlainText())
}

func TestInsertFragmentEmptyIsNoOp(t *testing.T) {
	s := NewState(document.New())

	assert.Equal(t, s, InsertFragment(s, nil))
}

func TestApplyShortcut(t *testing.T) {
	s := State{
		Doc: document.Document{Nodes: []document.Node{
			document.NewBlock(document.Paragraph, document.NewText("hello")),
		}},
		Sel: selectRange(document.Path{0, 0}, 0, document.Path{0, 0}, 5),
	}

	out, handled := ApplyShortcut(s, 'b', true)
	require.True(t, handled)
	assert.True(t, out.Doc.Nodes[0].Nodes[0].HasMark(document.Bold))

	_, handled = ApplyShortcut(s, 'b', false)
	assert.False(t, handled, "no modifier, no shortcut")

	_, handled = ApplyShortcut(s, 'x', true)
	assert.False(t, handled, "unbound key")
}

func TestMarkForShortcut(t *testing.T) {
	cases := map[rune]document.MarkType{
		'b': document.Bold,
		'i': document.Italic,
		'u': document.Underline,
		's': document.Strikethrough,
		'`': document.CodeMark,
	}
	for key, want := range cases {
		got, ok := MarkForShortcut(key)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := MarkForShortcut('q')
	assert.False(t, ok)
}
