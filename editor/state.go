// Package editor implements the editing command engine. Every command is a
// state transition: it takes the current tree plus selection and returns a
// new state, leaving the old one untouched. The host owns the single current
// state and commits each returned one.
package editor

import (
	"github.com/nimblecms/richedit/document"
)

// State is one editing state: the document tree and the user's selection.
type State struct {
	Doc document.Document
	Sel document.Range
}

// NewState builds a state with the selection collapsed at the start of the
// document.
func NewState(doc document.Document) State {
	doc = document.Normalize(doc)
	return State{Doc: doc, Sel: document.Collapse(doc.Start())}
}

// span is the covered slice of one text leaf inside a selection.
type span struct {
	path       document.Path
	start, end int
	node       document.Node
}

// selectedSpans resolves a range to the text slices it covers.
func selectedSpans(d document.Document, r document.Range) []span {
	r = r.Normalized()
	var out []span
	for _, entry := range d.TextsIn(r) {
		sp := span{path: entry.Path, start: 0, end: len(entry.Node.Text), node: entry.Node}
		if entry.Path.Equal(r.Anchor.Path) {
			sp.start = clamp(r.Anchor.Offset, 0, len(entry.Node.Text))
		}
		if entry.Path.Equal(r.Focus.Path) {
			sp.end = clamp(r.Focus.Offset, 0, len(entry.Node.Text))
		}
		if sp.start >= sp.end {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// selectedBlockPaths returns the closest block of every leaf the range
// touches, deduplicated, in document order.
func selectedBlockPaths(d document.Document, r document.Range) []document.Path {
	r = r.Normalized()
	entries := d.TextsIn(r)
	if len(entries) == 0 {
		if bp, _, ok := d.ClosestBlock(r.Anchor.Path); ok {
			return []document.Path{bp}
		}
		return nil
	}

	var out []document.Path
	for _, entry := range entries {
		bp, _, ok := d.ClosestBlock(entry.Path)
		if !ok {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Equal(bp) {
			continue
		}
		out = append(out, bp)
	}
	return out
}

// deleteSelected removes the text covered by an expanded selection and
// collapses it at the range start. Block structure stays in place; leaves
// emptied by the removal remain as editable positions.
func deleteSelected(s State) State {
	r := s.Sel.Normalized()
	if r.Collapsed() {
		s.Sel = r
		return s
	}
	doc := s.Doc
	for _, sp := range selectedSpans(doc, r) {
		doc = doc.Update(sp.path, func(n document.Node) document.Node {
			n.Text = n.Text[:sp.start] + n.Text[sp.end:]
			return n
		})
	}
	s.Doc = doc
	s.Sel = document.Collapse(r.Anchor)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsType(types []document.Type, t document.Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
