package catalog

import "errors"

// ErrTemplateNotFound is returned when a template name is not in the catalog.
var ErrTemplateNotFound = errors.New("catalog: template not found")
