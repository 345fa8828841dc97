package projectgen

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.template
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the bundled project templates (committed under
// templates/) as a read-only filesystem rooted at the template directory.
//
// Typical use:
//
//	cat, err := catalog.Load(projectgen.EmbeddedTemplates(), settings.TemplatesPath())
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
