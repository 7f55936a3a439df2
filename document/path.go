package document

// Path addresses a node in the tree as the sequence of child indexes from the
// document root down.
type Path []int

// Clone returns a copy of the path.
func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(q Path) bool {
	return p.Compare(q) == 0
}

// Compare orders paths in document (pre-order) traversal order. An ancestor
// sorts before its descendants.
func (p Path) Compare(q Path) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		if p[i] != q[i] {
			if p[i] < q[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	default:
		return 0
	}
}

// Parent returns the path of the node's parent. The second result is false
// for a top-level path, whose parent is the document itself.
func (p Path) Parent() (Path, bool) {
	if len(p) <= 1 {
		return nil, false
	}
	return p[:len(p)-1].Clone(), true
}

// Index returns the node's position among its siblings.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Point addresses a position inside a text leaf.
type Point struct {
	Path   Path `json:"path"`
	Offset int  `json:"offset"`
}

// Range is a selection between two points. Anchor and focus may appear in
// either document order.
type Range struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

// Collapsed reports whether the range selects no characters.
func (r Range) Collapsed() bool {
	return r.Anchor.Path.Equal(r.Focus.Path) && r.Anchor.Offset == r.Focus.Offset
}

// Normalized returns the range with its start point first.
func (r Range) Normalized() Range {
	cmp := r.Anchor.Path.Compare(r.Focus.Path)
	if cmp > 0 || (cmp == 0 && r.Anchor.Offset > r.Focus.Offset) {
		return Range{Anchor: r.Focus, Focus: r.Anchor}
	}
	return r
}

// Collapse returns a collapsed range at the given point.
func Collapse(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// Node returns the node addressed by the path.
func (d Document) Node(p Path) (Node, bool) {
	nodes := d.Nodes
	var current Node
	for depth, index := range p {
		if index < 0 || index >= len(nodes) {
			return Node{}, false
		}
		current = nodes[index]
		if depth < len(p)-1 {
			nodes = current.Nodes
		}
	}
	if len(p) == 0 {
		return Node{}, false
	}
	return current, true
}

// TextEntry pairs a text leaf with its path.
type TextEntry struct {
	Path Path
	Node Node
}

// Texts returns every text leaf in the document in traversal order.
func (d Document) Texts() []TextEntry {
	var out []TextEntry
	var walk func(nodes []Node, prefix Path)
	walk = func(nodes []Node, prefix Path) {
		for i, n := range nodes {
			path := append(prefix.Clone(), i)
			if n.IsText() {
				out = append(out, TextEntry{Path: path, Node: n})
				continue
			}
			walk(n.Nodes, path)
		}
	}
	walk(d.Nodes, nil)
	return out
}

// TextsIn returns the text leaves covered by the range, in traversal order.
func (d Document) TextsIn(r Range) []TextEntry {
	r = r.Normalized()
	var out []TextEntry
	for _, entry := range d.Texts() {
		if entry.Path.Compare(r.Anchor.Path) < 0 {
			continue
		}
		if entry.Path.Compare(r.Focus.Path) > 0 {
			break
		}
		out = append(out, entry)
	}
	return out
}

// ClosestBlock returns the nearest block at or above the path.
func (d Document) ClosestBlock(p Path) (Path, Node, bool) {
	return d.Closest(p, func(n Node) bool { return n.IsBlock() })
}

// Closest walks from the addressed node toward the root and returns the first
// node satisfying the predicate.
func (d Document) Closest(p Path, pred func(Node) bool) (Path, Node, bool) {
	for probe := p.Clone(); len(probe) > 0; probe = probe[:len(probe)-1] {
		node, ok := d.Node(probe)
		if !ok {
			continue
		}
		if pred(node) {
			return probe.Clone(), node, true
		}
	}
	return nil, Node{}, false
}

// FirstText returns the path of the first text leaf under the given node.
func (d Document) FirstText(p Path) (Path, Node, bool) {
	node, ok := d.Node(p)
	if !ok {
		return nil, Node{}, false
	}
	if node.IsText() {
		return p.Clone(), node, true
	}
	for i := range node.Nodes {
		childPath := append(p.Clone(), i)
		if found, n, ok := d.FirstText(childPath); ok {
			return found, n, ok
		}
	}
	return nil, Node{}, false
}

// LastText returns the path of the last text leaf under the given node.
func (d Document) LastText(p Path) (Path, Node, bool) {
	node, ok := d.Node(p)
	if !ok {
		return nil, Node{}, false
	}
	if node.IsText() {
		return p.Clone(), node, true
	}
	for i := len(node.Nodes) - 1; i >= 0; i-- {
		childPath := append(p.Clone(), i)
		if found, n, ok := d.LastText(childPath); ok {
			return found, n, ok
		}
	}
	return nil, Node{}, false
}

// Start returns a point at the very beginning of the document.
func (d Document) Start() Point {
	if path, _, ok := d.FirstText(Path{0}); ok {
		return Point{Path: path}
	}
	return Point{Path: Path{0}}
}
