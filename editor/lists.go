package editor

import (
	"github.com/nimblecms/richedit/document"
)

// InList reports whether the selection sits inside any list container, and
// returns the enclosing container's type when it does.
func InList(s State) (document.Type, bool) {
	r := s.Sel.Normalized()
	_, list, ok := enclosingList(s.Doc, r.Anchor.Path)
	if !ok {
		return "", false
	}
	return list.Type, true
}

// ToggleListBlock cycles list structure for the selection:
// inside a list of the given type it turns the list off entirely, inside the
// other list type it switches the container in place, and outside any list
// it wraps the selection's blocks in a new container of the given type.
func ToggleListBlock(s State, t document.Type) State {
	if !document.IsListContainer(t) {
		return ToggleBlock(s, t)
	}

	r := s.Sel.Normalized()
	listPath, list, inside := enclosingList(s.Doc, r.Anchor.Path)

	switch {
	case inside && list.Type == t:
		doc := s.Doc
		for _, bp := range selectedBlockPaths(doc, r) {
			if node, ok := doc.Node(bp); ok && node.Type == document.ListItem {
				doc = doc.SetType(bp, document.Paragraph)
			}
		}
		s.Doc = doc
		s = unwrapEnclosingList(s, document.BulletedList)
		s = unwrapEnclosingList(s, document.NumberedList)

	case inside:
		s.Doc = s.Doc.SetType(listPath, t)

	default:
		s = wrapInList(s, t)
	}

	s.Doc = document.Normalize(s.Doc)
	return s
}

// wrapInList retypes the selection's blocks to list items and wraps the
// contiguous sibling run they form into a fresh container.
func wrapInList(s State, t document.Type) State {
	r := s.Sel.Normalized()
	blockPaths := selectedBlockPaths(s.Doc, r)
	if len(blockPaths) == 0 {
		return s
	}

	parent, _ := blockPaths[0].Parent()
	first, last := -1, -1
	doc := s.Doc
	for _, bp := range blockPaths {
		if bpParent, _ := bp.Parent(); !bpParent.Equal(parent) {
			// Only siblings of the anchor's block join the new list.
			continue
		}
		doc = doc.SetType(bp, document.ListItem)
		index := bp.Index()
		if first == -1 || index < first {
			first = index
		}
		if index > last {
			last = index
		}
	}
	if first == -1 {
		return s
	}

	doc = doc.UpdateChildren(parent, func(children []document.Node) []document.Node {
		if first >= len(children) || last >= len(children) {
			return children
		}
		container := document.NewBlock(t, children[first:last+1]...)
		out := make([]document.Node, 0, len(children)-(last-first))
		out = append(out, children[:first]...)
		out = append(out, container)
		out = append(out, children[last+1:]...)
		return out
	})

	s.Doc = doc
	containerPath := append(parent.Clone(), first)
	s.Sel = collapseIntoNode(doc, containerPath)
	return s
}

func enclosingList(d document.Document, p document.Path) (document.Path, document.Node, bool) {
	return d.Closest(p, func(n document.Node) bool {
		return document.IsListContainer(n.Type)
	})
}
