// Package document provides the in-memory AsyncAPI 3.0 document model.
//
// The struct field names and JSON tags are the literal on-wire shape of the
// emitted artifact: channels, operations and components are keyed exactly as
// downstream AsyncAPI tooling expects.
//
// Top-level maps (servers, channels, operations and the three component maps)
// are [OrderedMap] values so the serialized document lists entries in the order
// they were first written. Overwriting a key replaces its value in place, which
// gives last-write-wins semantics without reordering the output.
//
// # Serialization
//
//	data, err := document.Marshal(doc, document.KindYAML)
//
// YAML is produced from the ordered JSON encoding through a yaml.Node, so both
// encodings list keys in the same order.
package document
