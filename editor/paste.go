package editor

import (
	"github.com/nimblecms/richedit/document"
)

// Payload is pasted clipboard content as the host hands it over.
type Payload struct {
	// Markup is the clipboard's markup text.
	Markup string
	// IsMarkup reports whether the clipboard carried structured markup at
	// all. Plain-text pastes keep the host's default behavior.
	IsMarkup bool
	// Bypass skips structured handling even for markup pastes, for
	// paste-without-formatting.
	Bypass bool
}

// Handled reports whether the payload should go through structured paste.
func (p Payload) Handled() bool {
	return p.IsMarkup && !p.Bypass
}

// InsertFragment inserts top-level blocks at the selection. When the
// selection sits inside an empty default block, the fragment replaces that
// block; otherwise it is inserted after the enclosing top-level block. The
// selection moves to the end of the last inserted block.
func InsertFragment(s State, nodes []document.Node) State {
	if len(nodes) == 0 {
		return s
	}

	r := s.Sel.Normalized()
	at := topLevelPath(r.Anchor.Path)
	block, ok := s.Doc.Node(at)
	if !ok {
		at = document.Path{len(s.Doc.Nodes) - 1}
		block, ok = s.Doc.Node(at)
		if !ok {
			s.Doc = document.Normalize(document.Document{Nodes: nodes})
			s.Sel = collapseAtEnd(s.Doc, document.Path{len(s.Doc.Nodes) - 1})
			return s
		}
	}

	var lastPath document.Path
	if isEmptyParagraph(block) {
		s.Doc = s.Doc.Splice(at, nodes...)
		lastPath = document.Path{at.Index() + len(nodes) - 1}
	} else {
		s.Doc = s.Doc.InsertAfter(at, nodes...)
		lastPath = document.Path{at.Index() + len(nodes)}
	}

	s.Doc = document.Normalize(s.Doc)
	s.Sel = collapseAtEnd(s.Doc, lastPath)
	return s
}

func topLevelPath(p document.Path) document.Path {
	if len(p) == 0 {
		return document.Path{0}
	}
	return document.Path{p[0]}
}

// isEmptyParagraph reports whether the block is a paragraph holding nothing
// but empty text leaves. A paragraph carrying a void inline still has content.
func isEmptyParagraph(n document.Node) bool {
	if n.Type != document.Paragraph {
		return false
	}
	for _, child := range n.Nodes {
		if !child.IsText() || child.Text != "" {
			return false
		}
	}
	return true
}

// collapseAtEnd collapses the selection after the last character of the node
// at the path, falling back to the document start.
func collapseAtEnd(d document.Document, p document.Path) document.Range {
	if tp, text, ok := d.LastText(p); ok {
		return document.Collapse(document.Point{Path: tp, Offset: len(text.Text)})
	}
	return document.Collapse(d.Start())
}
