package editor

import (
	"github.com/nimblecms/richedit/document"
)

var shortcuts = map[rune]document.MarkType{
	'b': document.Bold,
	'i': document.Italic,
	'u': document.Underline,
	's': document.Strikethrough,
	'`': document.CodeMark,
}

// MarkForShortcut resolves a keyboard key to the mark it toggles.
func MarkForShortcut(key rune) (document.MarkType, bool) {
	t, ok := shortcuts[key]
	return t, ok
}

// ApplyShortcut toggles the mark bound to the key when the modifier is held.
// The second result is false when the key press is not a formatting shortcut
// and should fall through to the host.
func ApplyShortcut(s State, key rune, modifier bool) (State, bool) {
	if !modifier {
		return s, false
	}
	t, ok := MarkForShortcut(key)
	if !ok {
		return s, false
	}
	return ToggleMark(s, t), true
}
