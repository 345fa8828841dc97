// Package placeholder extracts and substitutes the typed substitution points
// embedded in project templates. A marker has the form
//
//	${{name[ type][:default]}}
//
// where name and type are restricted to ASCII letters, digits and underscores.
// Markers are matched left to right without overlap and the first closing
// "}}" ends a marker, so defaults cannot contain a literal "}}". Nested or
// escaped markers are not supported.
package placeholder
