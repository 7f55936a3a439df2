package document

// Update returns a document with the node at the path replaced by fn's
// result. Slices along the spine are copied, so the original document is
// left untouched.
func (d Document) Update(p Path, fn func(Node) Node) Document {
	if len(p) == 0 {
		return d
	}
	return Document{Nodes: updateAt(d.Nodes, p, fn)}
}

func updateAt(nodes []Node, p Path, fn func(Node) Node) []Node {
	index := p[0]
	if index < 0 || index >= len(nodes) {
		return nodes
	}
	out := append([]Node(nil), nodes...)
	if len(p) == 1 {
		out[index] = fn(out[index])
		return out
	}
	child := out[index]
	child.Nodes = updateAt(child.Nodes, p[1:], fn)
	out[index] = child
	return out
}

// UpdateChildren returns a document with the child slice of the node at
// parent replaced by fn's result. An empty parent path addresses the
// document's own top-level children.
func (d Document) UpdateChildren(parent Path, fn func([]Node) []Node) Document {
	if len(parent) == 0 {
		return Document{Nodes: fn(append([]Node(nil), d.Nodes...))}
	}
	return d.Update(parent, func(n Node) Node {
		n.Nodes = fn(append([]Node(nil), n.Nodes...))
		return n
	})
}

// Splice replaces the node at the path with zero or more replacement nodes.
func (d Document) Splice(p Path, replacements ...Node) Document {
	parent, _ := p.Parent()
	index := p.Index()
	return d.UpdateChildren(parent, func(children []Node) []Node {
		if index < 0 || index >= len(children) {
			return children
		}
		out := make([]Node, 0, len(children)-1+len(replacements))
		out = append(out, children[:index]...)
		out = append(out, replacements...)
		out = append(out, children[index+1:]...)
		return out
	})
}

// InsertAfter inserts nodes immediately after the node at the path.
func (d Document) InsertAfter(p Path, nodes ...Node) Document {
	parent, _ := p.Parent()
	index := p.Index()
	return d.UpdateChildren(parent, func(children []Node) []Node {
		if index < 0 || index >= len(children) {
			return children
		}
		out := make([]Node, 0, len(children)+len(nodes))
		out = append(out, children[:index+1]...)
		out = append(out, nodes...)
		out = append(out, children[index+1:]...)
		return out
	})
}

// Remove deletes the node at the path.
func (d Document) Remove(p Path) Document {
	return d.Splice(p)
}

// SetType returns a document with the block at the path retyped.
func (d Document) SetType(p Path, t Type) Document {
	return d.Update(p, func(n Node) Node {
		n.Type = t
		return n
	})
}

// InsertText inserts text into the leaf addressed by the point.
func (d Document) InsertText(at Point, text string) Document {
	return d.Update(at.Path, func(n Node) Node {
		if !n.IsText() {
			return n
		}
		offset := at.Offset
		if offset < 0 {
			offset = 0
		}
		if offset > len(n.Text) {
			offset = len(n.Text)
		}
		n.Text = n.Text[:offset] + text + n.Text[offset:]
		return n
	})
}
