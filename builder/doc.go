// Package builder creates and structurally initializes AsyncAPI documents.
//
// [Builder.CreateInitialDocument] returns a document whose channels,
// operations and component maps are all present and empty, with servers
// derived from the source graph. [EnsureComponents] and [EnsureStructure]
// repair a document into the same shape and are idempotent: applying them
// any number of times leaves the document as applying them once.
//
// The Set helpers write a single entry with last-write-wins semantics and
// report whether an existing entry was replaced:
//
//	replaced := builder.SetMessage(doc, "orderMessage", msg)
//
// Security scheme constructors fill only the fields meaningful to each kind:
//
//	builder.SetSecurityScheme(doc, "bearer", builder.HTTPScheme("bearer", "JWT", ""))
package builder
