package editor

import (
	"github.com/nimblecms/richedit/document"
)

// BlockActive reports whether the closest block of the selection already has
// the given type.
func BlockActive(s State, t document.Type) bool {
	r := s.Sel.Normalized()
	_, block, ok := s.Doc.ClosestBlock(r.Anchor.Path)
	return ok && block.Type == t
}

// ToggleBlock sets the closest blocks of the selection to the given type, or
// back to the default paragraph when they already have it. Toggling inside a
// list always exits list structure first, so turning a list item into a
// heading never leaves it inside the list.
func ToggleBlock(s State, t document.Type) State {
	if document.IsListContainer(t) {
		return ToggleListBlock(s, t)
	}

	r := s.Sel.Normalized()
	_, block, ok := s.Doc.ClosestBlock(r.Anchor.Path)
	if !ok {
		return s
	}

	target := t
	if block.Type == t {
		target = document.Paragraph
	}

	doc := s.Doc
	for _, bp := range selectedBlockPaths(doc, r) {
		doc = doc.SetType(bp, target)
	}
	s.Doc = doc

	s = unwrapEnclosingList(s, document.BulletedList)
	s = unwrapEnclosingList(s, document.NumberedList)

	s.Doc = document.Normalize(s.Doc)
	return s
}

// unwrapEnclosingList splices the nearest enclosing list container of the
// given type out of the tree. Items still typed list-item are repaired on
// the way out: phrasing items become default blocks, items holding blocks
// dissolve into them. The selection collapses to the start of the spliced
// region.
func unwrapEnclosingList(s State, t document.Type) State {
	r := s.Sel.Normalized()
	listPath, listNode, ok := s.Doc.Closest(r.Anchor.Path, func(n document.Node) bool {
		return n.Type == t
	})
	if !ok {
		return s
	}

	var repl []document.Node
	for _, child := range listNode.Nodes {
		if child.Type != document.ListItem {
			repl = append(repl, child)
			continue
		}
		if hasBlockChildren(child) {
			repl = append(repl, child.Nodes...)
			continue
		}
		child.Type = document.Paragraph
		repl = append(repl, child)
	}
	if len(repl) == 0 {
		repl = []document.Node{document.EmptyParagraph()}
	}

	s.Doc = s.Doc.Splice(listPath, repl...)
	s.Sel = collapseIntoNode(s.Doc, listPath)
	return s
}

func hasBlockChildren(n document.Node) bool {
	for _, child := range n.Nodes {
		if child.IsBlock() {
			return true
		}
	}
	return false
}

// collapseIntoNode collapses the selection at the first editable position of
// the node at the path, falling back to the document start.
func collapseIntoNode(d document.Document, p document.Path) document.Range {
	if tp, _, ok := d.FirstText(p); ok {
		return document.Collapse(document.Point{Path: tp})
	}
	return document.Collapse(d.Start())
}
