package editor

import (
	"github.com/nimblecms/richedit/document"
)

// HasMark reports whether some selected text run carries the mark. This is
// the query predicate toolbars use for button state.
func HasMark(s State, t document.MarkType) bool {
	for _, sp := range selectedSpans(s.Doc, s.Sel) {
		if sp.node.HasMark(t) {
			return true
		}
	}
	return false
}

// ToggleMark removes the mark from the selection when every selected run
// already carries it, and adds it to the whole selection otherwise.
func ToggleMark(s State, t document.MarkType) State {
	spans := selectedSpans(s.Doc, s.Sel)
	if len(spans) == 0 {
		return s
	}

	add := false
	for _, sp := range spans {
		if !sp.node.HasMark(t) {
			add = true
			break
		}
	}

	// Later spans first, so splitting one leaf never shifts the paths of
	// spans still to be processed.
	doc := s.Doc
	for i := len(spans) - 1; i >= 0; i-- {
		doc = toggleSpan(doc, spans[i], t, add)
	}
	s.Doc = doc

	// The selection keeps covering the same characters; only the leaf
	// boundaries may have moved.
	first, last := spans[0], spans[len(spans)-1]
	anchorPath := first.path.Clone()
	focusPath := last.path.Clone()
	splitAtStart := first.start > 0
	if splitAtStart {
		splitDepth := len(first.path) - 1
		anchorPath[splitDepth]++
		// The split shifts every later sibling of the anchor leaf, including
		// an inline whose own leaf the focus may sit in.
		if len(focusPath) > splitDepth &&
			focusPath[:splitDepth].Equal(first.path[:splitDepth]) &&
			focusPath[splitDepth] > first.path[splitDepth] {
			focusPath[splitDepth]++
		}
	}
	s.Sel = document.Range{
		Anchor: document.Point{Path: anchorPath, Offset: 0},
		Focus:  document.Point{Path: focusPath, Offset: last.end - last.start},
	}
	if first.path.Equal(last.path) {
		s.Sel.Focus.Path = anchorPath.Clone()
	}
	return s
}

// toggleSpan replaces one leaf with up to three leaves so the mark change
// applies exactly to the covered slice.
func toggleSpan(d document.Document, sp span, t document.MarkType, add bool) document.Document {
	parent, _ := sp.path.Parent()
	index := sp.path.Index()

	return d.UpdateChildren(parent, func(children []document.Node) []document.Node {
		if index < 0 || index >= len(children) {
			return children
		}
		leaf := children[index]
		if !leaf.IsText() {
			return children
		}

		var pieces []document.Node
		if sp.start > 0 {
			before := leaf
			before.Text = leaf.Text[:sp.start]
			pieces = append(pieces, before)
		}

		middle := leaf
		middle.Text = leaf.Text[sp.start:sp.end]
		if add {
			middle = middle.AddMark(t)
		} else {
			middle = middle.RemoveMark(t)
		}
		pieces = append(pieces, middle)

		if sp.end < len(leaf.Text) {
			after := leaf
			after.Text = leaf.Text[sp.end:]
			pieces = append(pieces, after)
		}

		out := make([]document.Node, 0, len(children)-1+len(pieces))
		out = append(out, children[:index]...)
		out = append(out, pieces...)
		out = append(out, children[index+1:]...)
		return out
	})
}
