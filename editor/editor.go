package editor

import (
	"fmt"
	"reflect"

	"github.com/nimblecms/richedit/document"
	"github.com/nimblecms/richedit/htmlcodec"
	"github.com/nimblecms/richedit/markdown"
	"github.com/nimblecms/richedit/plugin"
)

// DefaultBreakConfig is the break behavior for prose editing: quotes and code
// blocks take literal newlines and close after one trailing blank line, the
// fresh block escaping the quote.
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{
		OnlyIn:      []document.Type{document.Quote, document.Code},
		CloseAfter:  1,
		UnwrapTypes: []document.Type{document.Quote},
	}
}

// DefaultBackspaceConfig closes any empty block except the types backspace
// already handles natively.
func DefaultBackspaceConfig() BackspaceConfig {
	return BackspaceConfig{
		IgnoreIn: []document.Type{
			document.Paragraph,
			document.ListItem,
			document.BulletedList,
			document.NumberedList,
		},
	}
}

// Options configures an editing session.
type Options struct {
	// InitialValue is the markdown the session starts from. Empty means a
	// fresh single-paragraph document.
	InitialValue string

	// Plugins resolves shortcode identifiers. May be nil.
	Plugins *plugin.Registry

	// Markdown configures the persisted dialect.
	Markdown markdown.Config

	// Break and Backspace configure the key commands. Zero values pick the
	// defaults.
	Break     BreakConfig
	Backspace BackspaceConfig

	// OnChange is called with the serialized markdown after every commit
	// that changed the document. May be nil.
	OnChange func(md string)

	// OnMode is called when the host should switch editing surfaces, for
	// example to a raw-markup view. May be nil.
	OnMode func(mode string)
}

func (o Options) applyDefaults() Options {
	if reflect.DeepEqual(o.Break, BreakConfig{}) {
		o.Break = DefaultBreakConfig()
	}
	if reflect.DeepEqual(o.Backspace, BackspaceConfig{}) {
		o.Backspace = DefaultBackspaceConfig()
	}
	return o
}

// Editor is one editing session: it owns the current state and runs commands
// against it, notifying the host of document changes.
type Editor struct {
	opts       Options
	codec      *htmlcodec.Codec
	serializer *markdown.Serializer
	state      State
}

// New creates an editing session from the initial markdown value.
func New(opts Options) (*Editor, error) {
	opts = opts.applyDefaults()

	serializer, err := markdown.NewSerializer(opts.Markdown)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		opts:       opts,
		codec:      htmlcodec.New(htmlcodec.Config{Plugins: opts.Plugins}),
		serializer: serializer,
	}

	doc := document.New()
	if opts.InitialValue != "" {
		root, err := markdown.FromMarkdown(opts.InitialValue)
		if err != nil {
			return nil, fmt.Errorf("failed to load initial value: %w", err)
		}
		doc = e.codec.Deserialize(root).Doc
	}
	e.state = NewState(doc)
	return e, nil
}

// State returns the current editing state.
func (e *Editor) State() State {
	return e.state
}

// Markdown serializes the current document to the persisted dialect.
func (e *Editor) Markdown() (markdown.Result, error) {
	serialized := e.codec.Serialize(e.state.Doc)
	result, err := e.serializer.Serialize(serialized.Root)
	if err != nil {
		return markdown.Result{}, err
	}
	result.Warnings = append(serialized.Warnings, result.Warnings...)
	return result, nil
}

// Commit replaces the current state and fires OnChange when the document
// actually changed. Selection-only transitions commit silently.
func (e *Editor) Commit(next State) error {
	changed := !reflect.DeepEqual(e.state.Doc, next.Doc)
	e.state = next
	if !changed || e.opts.OnChange == nil {
		return nil
	}
	result, err := e.Markdown()
	if err != nil {
		return err
	}
	e.opts.OnChange(result.Markdown)
	return nil
}

// ToggleMark toggles a formatting mark over the selection.
func (e *Editor) ToggleMark(t document.MarkType) error {
	return e.Commit(ToggleMark(e.state, t))
}

// ToggleBlock toggles the selection's block type.
func (e *Editor) ToggleBlock(t document.Type) error {
	return e.Commit(ToggleBlock(e.state, t))
}

// ToggleListBlock toggles list structure around the selection.
func (e *Editor) ToggleListBlock(t document.Type) error {
	return e.Commit(ToggleListBlock(e.state, t))
}

// SoftBreak runs the break command. The second result is false when the host
// should fall back to its default break handling.
func (e *Editor) SoftBreak() (bool, error) {
	next, handled := SoftBreak(e.state, e.opts.Break)
	if !handled {
		return false, nil
	}
	return true, e.Commit(next)
}

// Backspace runs the close-empty-block command. The second result is false
// when the host should fall back to its default delete handling.
func (e *Editor) Backspace() (bool, error) {
	next, handled := BackspaceCloseBlock(e.state, e.opts.Backspace)
	if !handled {
		return false, nil
	}
	return true, e.Commit(next)
}

// Shortcut runs the formatting shortcut bound to the key, if any.
func (e *Editor) Shortcut(key rune, modifier bool) (bool, error) {
	next, handled := ApplyShortcut(e.state, key, modifier)
	if !handled {
		return false, nil
	}
	return true, e.Commit(next)
}

// Paste inserts clipboard markup at the selection. The payload is pushed
// through the persisted dialect first, so only constructs the format can
// represent survive. The second result is false for payloads the host should
// paste natively.
func (e *Editor) Paste(p Payload) (bool, error) {
	if !p.Handled() {
		return false, nil
	}

	root, err := markdown.Roundtrip(p.Markup)
	if err != nil {
		return false, fmt.Errorf("failed to paste markup: %w", err)
	}

	res := e.codec.DeserializeFragment(root)
	if len(res.Doc.Nodes) == 0 {
		return true, nil
	}
	return true, e.Commit(InsertFragment(e.state, res.Doc.Nodes))
}

// InsertPlugin inserts a plugin block at the selection with the given field
// values. Unknown identifiers decline.
func (e *Editor) InsertPlugin(id string, fields map[string]string) (bool, error) {
	if e.opts.Plugins == nil {
		return false, nil
	}
	p, ok := e.opts.Plugins.ByID(id)
	if !ok {
		return false, nil
	}

	root, err := markdown.FromMarkdown(p.ToBlock(fields))
	if err != nil {
		return false, fmt.Errorf("failed to insert plugin %q: %w", id, err)
	}

	res := e.codec.DeserializeFragment(root)
	if len(res.Doc.Nodes) == 0 {
		return true, nil
	}
	// A plugin contributes exactly one block per insert.
	return true, e.Commit(InsertFragment(e.state, res.Doc.Nodes[:1]))
}

// RequestMode asks the host to switch editing surfaces.
func (e *Editor) RequestMode(mode string) {
	if e.opts.OnMode != nil {
		e.opts.OnMode(mode)
	}
}
