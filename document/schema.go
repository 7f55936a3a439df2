package document

const (
	// PluginMarkerAttr holds the plugin identifier on a plugin block element.
	PluginMarkerAttr = "data-ncp"
	// PluginAttrPrefix prefixes one attribute per plugin data field.
	PluginAttrPrefix = "data-ncp-"
)

// BlockTags maps external-markup element names to block types. Deserialization
// classifies elements through this table; anything missing from it falls
// through the rule list and is dropped.
var BlockTags = map[string]Type{
	"p":          Paragraph,
	"li":         ListItem,
	"ul":         BulletedList,
	"ol":         NumberedList,
	"blockquote": Quote,
	"pre":        Code,
	"h1":         HeadingOne,
	"h2":         HeadingTwo,
	"h3":         HeadingThree,
	"h4":         HeadingFour,
	"h5":         HeadingFive,
	"h6":         HeadingSix,
}

// MarkTags maps external-markup emphasis element names to mark types.
var MarkTags = map[string]MarkType{
	"strong": Bold,
	"b":      Bold,
	"em":     Italic,
	"i":      Italic,
	"u":      Underline,
	"s":      Strikethrough,
	"del":    Strikethrough,
	"code":   CodeMark,
}

// blockTagByType is the serialization inverse of BlockTags. Where several
// element names classify to one type, the canonical name wins.
var blockTagByType = map[Type]string{
	Paragraph:    "p",
	ListItem:     "li",
	BulletedList: "ul",
	NumberedList: "ol",
	Quote:        "blockquote",
	Code:         "pre",
	HeadingOne:   "h1",
	HeadingTwo:   "h2",
	HeadingThree: "h3",
	HeadingFour:  "h4",
	HeadingFive:  "h5",
	HeadingSix:   "h6",
}

// markTagByType is the serialization inverse of MarkTags.
var markTagByType = map[MarkType]string{
	Bold:          "strong",
	Italic:        "em",
	Underline:     "u",
	Strikethrough: "s",
	CodeMark:      "code",
}

var voidTypes = map[Type]bool{
	Image:     true,
	Shortcode: true,
}

var listContainerTypes = map[Type]bool{
	BulletedList: true,
	NumberedList: true,
}

// TagForBlock returns the element name a block type serializes to.
func TagForBlock(t Type) (string, bool) {
	tag, ok := blockTagByType[t]
	return tag, ok
}

// TagForMark returns the element name a mark type serializes to.
func TagForMark(t MarkType) (string, bool) {
	tag, ok := markTagByType[t]
	return tag, ok
}

// IsListContainer reports whether the type is one of the two list containers.
func IsListContainer(t Type) bool { return listContainerTypes[t] }
