package editor

import (
	"strings"

	"github.com/nimblecms/richedit/document"
)

// BreakConfig controls the soft-break command. The zero value applies to
// every block type and never closes blocks.
type BreakConfig struct {
	// OnlyIn limits the command to these block types when non-empty.
	OnlyIn []document.Type
	// IgnoreIn excludes these block types.
	IgnoreIn []document.Type
	// CloseAfter is the number of trailing newline characters that close the
	// block instead of extending it. Zero disables closing.
	CloseAfter int
	// UnwrapTypes are enclosing block types escaped when a block closes: the
	// fresh default block is inserted after the outermost enclosing ancestor
	// of one of these types.
	UnwrapTypes []document.Type
}

func (c BreakConfig) applies(t document.Type) bool {
	if len(c.OnlyIn) > 0 && !containsType(c.OnlyIn, t) {
		return false
	}
	return !containsType(c.IgnoreIn, t)
}

// BackspaceConfig controls the backspace-close-block command.
type BackspaceConfig struct {
	OnlyIn   []document.Type
	IgnoreIn []document.Type
}

func (c BackspaceConfig) applies(t document.Type) bool {
	if len(c.OnlyIn) > 0 && !containsType(c.OnlyIn, t) {
		return false
	}
	return !containsType(c.IgnoreIn, t)
}

// SoftBreak handles the break key inside a block: it inserts a literal
// newline without splitting the block, or, when the block already ends with
// the configured run of newlines, deletes that run and closes the block by
// inserting a fresh default block after it. An expanded selection is replaced
// by the break. The second result is false when the command does not apply
// and the host's default behavior should run.
func SoftBreak(s State, cfg BreakConfig) (State, bool) {
	r := s.Sel.Normalized()
	// The admitted block may be an ancestor of the closest one: a paragraph
	// inside a quote still takes the quote's break behavior.
	blockPath, _, ok := s.Doc.Closest(r.Anchor.Path, func(n document.Node) bool {
		return n.IsBlock() && cfg.applies(n.Type)
	})
	if !ok {
		return s, false
	}

	s = deleteSelected(s)
	r = s.Sel

	if cfg.CloseAfter > 0 {
		if closed, next := closeBlock(s, blockPath, cfg); closed {
			return next, true
		}
	}

	s.Doc = s.Doc.InsertText(r.Anchor, "\n")
	s.Sel = document.Collapse(document.Point{
		Path:   r.Anchor.Path.Clone(),
		Offset: r.Anchor.Offset + 1,
	})
	return s, true
}

func closeBlock(s State, blockPath document.Path, cfg BreakConfig) (bool, State) {
	textPath, text, ok := s.Doc.LastText(blockPath)
	if !ok {
		return false, s
	}
	run := strings.Repeat("\n", cfg.CloseAfter)
	if !strings.HasSuffix(text.Text, run) {
		return false, s
	}

	s.Doc = s.Doc.Update(textPath, func(n document.Node) document.Node {
		n.Text = strings.TrimSuffix(n.Text, run)
		return n
	})

	// Escape enclosing containers the config names, outermost wins.
	after := blockPath
	for probe := blockPath.Clone(); len(probe) > 1; {
		probe = probe[:len(probe)-1]
		node, ok := s.Doc.Node(probe)
		if !ok {
			break
		}
		if containsType(cfg.UnwrapTypes, node.Type) {
			after = probe.Clone()
		}
	}

	fresh := document.EmptyParagraph()
	s.Doc = document.Normalize(s.Doc.InsertAfter(after, fresh))

	freshPath := after.Clone()
	freshPath[len(freshPath)-1]++
	s.Sel = collapseIntoNode(s.Doc, freshPath)
	return true, s
}

// BackspaceCloseBlock handles delete-backward at the start of an empty
// non-default block by replacing it with a default block, so the user never
// gets stuck inside an empty container. The second result is false when the
// command does not apply.
func BackspaceCloseBlock(s State, cfg BackspaceConfig) (State, bool) {
	r := s.Sel.Normalized()
	if !r.Collapsed() || r.Anchor.Offset != 0 {
		return s, false
	}

	blockPath, block, ok := s.Doc.ClosestBlock(r.Anchor.Path)
	if !ok || block.Type == document.Paragraph || !cfg.applies(block.Type) {
		return s, false
	}

	firstPath, first, ok := s.Doc.FirstText(blockPath)
	if !ok || !firstPath.Equal(r.Anchor.Path) || first.Text != "" {
		return s, false
	}

	s.Doc = document.Normalize(s.Doc.Splice(blockPath, document.EmptyParagraph()))
	s.Sel = collapseIntoNode(s.Doc, blockPath)
	return s, true
}
