// Package document defines the in-memory tree that the editing surface works
// on: typed block and inline nodes, text leaves with mark annotations, and the
// structural queries and invariants the command engine relies on.
package document

// Object discriminates the three node shapes in the tree.
type Object string

const (
	ObjectBlock  Object = "block"
	ObjectInline Object = "inline"
	ObjectText   Object = "text"
)

// Type identifies a block or inline node kind.
type Type string

const (
	Paragraph    Type = "paragraph"
	HeadingOne   Type = "heading-one"
	HeadingTwo   Type = "heading-two"
	HeadingThree Type = "heading-three"
	HeadingFour  Type = "heading-four"
	HeadingFive  Type = "heading-five"
	HeadingSix   Type = "heading-six"
	Quote        Type = "quote"
	Code         Type = "code"
	BulletedList Type = "bulleted-list"
	NumberedList Type = "numbered-list"
	ListItem     Type = "list-item"
	Shortcode    Type = "shortcode"

	Link  Type = "link"
	Image Type = "image"
)

// MarkType identifies a text annotation kind.
type MarkType string

const (
	Bold          MarkType = "bold"
	Italic        MarkType = "italic"
	Underline     MarkType = "underline"
	Strikethrough MarkType = "strikethrough"
	CodeMark      MarkType = "code"
)

// Mark represents formatting applied to a run of text. Marks are annotations,
// not tree nodes: a text leaf carries the set of marks active on it.
type Mark struct {
	Type MarkType `json:"type"`
}

// Node represents any node in the document tree. Blocks and inlines carry a
// Type, ordered children and a data mapping; text leaves carry Text and Marks.
type Node struct {
	Object Object         `json:"object"`
	Type   Type           `json:"type,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
	Nodes  []Node         `json:"nodes,omitempty"`
	Text   string         `json:"text,omitempty"`
	Marks  []Mark         `json:"marks,omitempty"`
}

// Document is the root of the tree. Its children are the top-level blocks.
type Document struct {
	Nodes []Node `json:"nodes"`
}

// NewBlock builds a block node of the given type.
func NewBlock(t Type, children ...Node) Node {
	return Node{Object: ObjectBlock, Type: t, Nodes: children}
}

// NewInline builds an inline node of the given type.
func NewInline(t Type, data map[string]any, children ...Node) Node {
	return Node{Object: ObjectInline, Type: t, Data: data, Nodes: children}
}

// NewText builds a text leaf carrying the given marks.
func NewText(text string, marks ...Mark) Node {
	return Node{Object: ObjectText, Text: text, Marks: marks}
}

// EmptyParagraph returns a paragraph block holding a single empty text leaf.
func EmptyParagraph() Node {
	return NewBlock(Paragraph, NewText(""))
}

// New returns a document holding a single empty paragraph, the state an
// editing session starts from when no initial value is supplied.
func New() Document {
	return Document{Nodes: []Node{EmptyParagraph()}}
}

// IsText reports whether the node is a text leaf.
func (n Node) IsText() bool { return n.Object == ObjectText }

// IsBlock reports whether the node is a block.
func (n Node) IsBlock() bool { return n.Object == ObjectBlock }

// Void reports whether the node has no editable text content. Children of a
// void node are ignored by the editing surface but kept for serialization.
func (n Node) Void() bool {
	return voidTypes[n.Type]
}

// HasMark reports whether the leaf carries a mark of the given type.
func (n Node) HasMark(t MarkType) bool {
	for _, m := range n.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

// PlainText concatenates the text of every leaf under the node.
func (n Node) PlainText() string {
	if n.IsText() {
		return n.Text
	}
	var out string
	for _, child := range n.Nodes {
		out += child.PlainText()
	}
	return out
}

// AddMark returns a copy of the leaf with the mark appended, or the node
// unchanged when it already carries the mark or is not a text leaf.
func (n Node) AddMark(t MarkType) Node {
	if !n.IsText() || n.HasMark(t) {
		return n
	}
	marks := make([]Mark, 0, len(n.Marks)+1)
	marks = append(marks, n.Marks...)
	marks = append(marks, Mark{Type: t})
	n.Marks = marks
	return n
}

// RemoveMark returns a copy of the leaf without marks of the given type.
func (n Node) RemoveMark(t MarkType) Node {
	if !n.IsText() || !n.HasMark(t) {
		return n
	}
	marks := make([]Mark, 0, len(n.Marks))
	for _, m := range n.Marks {
		if m.Type != t {
			marks = append(marks, m)
		}
	}
	if len(marks) == 0 {
		marks = nil
	}
	n.Marks = marks
	return n
}

// MarkAll applies the mark to every text leaf in the slice, recursing into
// block and inline children.
func MarkAll(nodes []Node, t MarkType) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsText() {
			out = append(out, n.AddMark(t))
			continue
		}
		n.Nodes = MarkAll(n.Nodes, t)
		out = append(out, n)
	}
	return out
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	out.Data = cloneData(n.Data)
	if n.Marks != nil {
		out.Marks = append([]Mark(nil), n.Marks...)
	}
	if n.Nodes != nil {
		out.Nodes = make([]Node, len(n.Nodes))
		for i, child := range n.Nodes {
			out.Nodes[i] = child.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	nodes := make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[i] = n.Clone()
	}
	return Document{Nodes: nodes}
}

func cloneData(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			dst[key] = cloneData(nested)
			continue
		}
		dst[key] = value
	}
	return dst
}
