// Package projectgen creates projects from text templates holding
// ${{name type:default}} placeholders. The root package re-exports the pieces
// most callers need; the full API lives under pkg/.
package projectgen

import (
	"github.com/goliatone/go-projectgen/pkg/catalog"
	"github.com/goliatone/go-projectgen/pkg/editor"
	"github.com/goliatone/go-projectgen/pkg/placeholder"
	"github.com/goliatone/go-projectgen/pkg/wizard"
)

// Placeholder aliases placeholder.Placeholder.
type Placeholder = placeholder.Placeholder

// Value aliases placeholder.Value.
type Value = placeholder.Value

// Descriptor aliases editor.Descriptor.
type Descriptor = editor.Descriptor

// Row aliases wizard.Row.
type Row = wizard.Row

// Extract returns the placeholders of text in document order.
func Extract(text string) []Placeholder {
	return placeholder.Extract(text)
}

// Substitute replaces placeholder markers with values, in value order.
func Substitute(text string, values []Value) string {
	return placeholder.Substitute(text, values)
}

// RenderDefaults substitutes every placeholder with the default its editor
// offers. Placeholders without a registered editor use their raw default.
func RenderDefaults(text string) string {
	placeholders := Extract(text)
	values := make([]Value, 0, len(placeholders))
	for _, p := range placeholders {
		kind := p.Type
		if kind == "" {
			kind = editor.KindString
		}
		value := p.Default
		if desc, ok := editor.Create(kind, p.Default); ok {
			value = desc.Default
		}
		values = append(values, Value{Name: p.Name, Value: value})
	}
	return Substitute(text, values)
}

// NewCatalog lists the bundled templates shadowed by those in userDir.
func NewCatalog(userDir string) (*catalog.Catalog, error) {
	return catalog.Load(EmbeddedTemplates(), userDir)
}

// NewWizard builds a wizard over the bundled and user templates.
func NewWizard(userDir string, options ...wizard.Option) (*wizard.Wizard, error) {
	cat, err := NewCatalog(userDir)
	if err != nil {
		return nil, err
	}
	return wizard.New(cat, options...)
}
