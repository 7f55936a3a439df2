// Package plugin holds the registry of externally contributed block plugins.
// A plugin owns the rendering and markup serialization of its blocks; the
// core treats every plugin block uniformly and defers type-specific behavior
// to the capability functions registered here.
package plugin

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// ErrEmptyID is returned when a plugin registers without an identifier.
var ErrEmptyID = errors.New("plugin id must not be empty")

// Field describes one data field a plugin collects from the user.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

// Preview is what a plugin renders inside the editing surface for one of its
// blocks. Exactly one of HTML and Node should be set: HTML is a raw markup
// string inserted verbatim (plugins are first-party, so their output is
// trusted unless the registry carries a sanitizer), Node is a structured
// element tree.
type Preview struct {
	HTML string
	Node *html.Node
}

// Plugin describes one registered block plugin.
type Plugin struct {
	ID     string
	Label  string
	Fields []Field

	// ToPreview renders the block's field data for display inside the
	// editing surface.
	ToPreview func(data map[string]string) Preview

	// ToBlock converts the block's field data to markup-dialect text for
	// persistence.
	ToBlock func(data map[string]string) string
}

// Registry is the lookup surface the serialization and command engines
// consult. It may be mutated between commands as plugins are registered and
// deregistered; lookups of unknown identifiers are not errors.
type Registry struct {
	plugins   map[string]Plugin
	order     []string
	sanitizer *bluemonday.Policy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds or replaces a plugin.
func (r *Registry) Register(p Plugin) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if _, exists := r.plugins[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.plugins[p.ID] = p
	return nil
}

// Deregister removes a plugin. Removing an unknown id is a no-op.
func (r *Registry) Deregister(id string) {
	if _, exists := r.plugins[id]; !exists {
		return
	}
	delete(r.plugins, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// All returns the registered plugins in registration order.
func (r *Registry) All() []Plugin {
	out := make([]Plugin, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plugins[id])
	}
	return out
}

// ByID looks up a plugin. The second result is false for unknown ids, which
// callers treat as a decline, not a fault.
func (r *Registry) ByID(id string) (Plugin, bool) {
	p, ok := r.plugins[id]
	return p, ok
}

// SetSanitizer attaches a policy applied to raw string previews before they
// reach the rendered surface. Without one, previews pass through verbatim.
func (r *Registry) SetSanitizer(policy *bluemonday.Policy) {
	r.sanitizer = policy
}

// SanitizePreview applies the registry's sanitizer to a raw preview string,
// or returns it unchanged when no sanitizer is set.
func (r *Registry) SanitizePreview(raw string) string {
	if r.sanitizer == nil {
		return raw
	}
	return r.sanitizer.Sanitize(raw)
}
