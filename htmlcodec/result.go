package htmlcodec

import (
	"golang.org/x/net/html"

	"github.com/nimblecms/richedit/document"
)

// WarningType categorizes non-fatal conversion issues.
type WarningType string

const (
	WarningUnknownElement   WarningType = "unknown_element"
	WarningUnknownNode      WarningType = "unknown_node"
	WarningUnknownMark      WarningType = "unknown_mark"
	WarningUnknownPlugin    WarningType = "unknown_plugin"
	WarningDroppedContent   WarningType = "dropped_content"
	WarningMissingAttribute WarningType = "missing_attribute"
)

// Warning represents a non-fatal issue encountered during conversion.
// Unsupported constructs degrade by being dropped, never by failing.
type Warning struct {
	Type    WarningType `json:"type"`
	Element string      `json:"element,omitempty"`
	Message string      `json:"message"`
}

// DeserializeResult holds the document produced from an element tree.
type DeserializeResult struct {
	Doc      document.Document
	Warnings []Warning
}

// SerializeResult holds the element tree produced from a document.
type SerializeResult struct {
	Root     *html.Node
	Warnings []Warning
}
