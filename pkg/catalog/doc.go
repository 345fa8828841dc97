// Package catalog discovers project templates. Templates in the user directory
// are listed first and shadow bundled templates with the same base name.
package catalog
