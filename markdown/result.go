package markdown

import "github.com/nimblecms/richedit/htmlcodec"

// Result holds the output of a serialization pass.
type Result struct {
	Markdown string              `json:"markdown"`
	Warnings []htmlcodec.Warning `json:"warnings,omitempty"`
}
