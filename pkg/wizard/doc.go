// Package wizard drives the creation of a project from a template.
//
// A Wizard owns the selected catalog entry, one Row per placeholder marker
// found in it, and the project location. Rows carry the editor descriptor
// built from the placeholder type; presentation layers (see pkg/renderers/tui)
// turn descriptors into prompts and hand the chosen values back through
// SetValue. Create renders the template with the row values and writes the
// project file.
package wizard
