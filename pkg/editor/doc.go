// Package editor maps placeholder type names to editor descriptors. A
// descriptor is plain data (kind, options, default) so presentation layers such
// as the terminal renderer decide how to materialise it.
package editor
