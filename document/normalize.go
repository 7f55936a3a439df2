package document

// Normalize restores the boundary invariant: the first and last top-level
// blocks of a document must never be void, since a void boundary block would
// leave no adjacent editable position. An empty paragraph is inserted at each
// violated boundary. The pass is idempotent.
func Normalize(d Document) Document {
	if len(d.Nodes) == 0 {
		return Document{Nodes: []Node{EmptyParagraph()}}
	}

	first := d.Nodes[0]
	last := d.Nodes[len(d.Nodes)-1]

	needsLeading := first.Void()
	needsTrailing := last.Void()
	if !needsLeading && !needsTrailing {
		return d
	}

	nodes := make([]Node, 0, len(d.Nodes)+2)
	if needsLeading {
		nodes = append(nodes, EmptyParagraph())
	}
	nodes = append(nodes, d.Nodes...)
	if needsTrailing {
		nodes = append(nodes, EmptyParagraph())
	}

	return Document{Nodes: nodes}
}
