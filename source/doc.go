// Package source is the read-only view over a compiled service description.
//
// A [Graph] exposes a tree of [Namespace] containers holding [Node] elements.
// Everything the compiler knows about a node (its channel path, operation
// type, message configuration, security declaration and binding declarations)
// lives in a typed [Metadata] side-table keyed by [NodeID]. The table is filled
// once when the graph is constructed and never re-queried from the original
// representation.
//
// Two adapters ship with the package: [MemoryGraph], built programmatically or
// from a YAML service description with [LoadFile] / [Parse], and the Go-source
// adapter in the gosource subpackage.
package source
