// Package processing turns discovered elements into document entries.
//
// For each operation the processor writes a channel named channel_<op>, an
// operation entry referencing it and a message component named <op>Message.
// Message models contribute schemas and, when configured, message
// components. Security declarations contribute security schemes. Every write
// is last-write-wins per key; [WithCollisionPolicy] can turn collisions into
// warnings or errors instead.
//
// After element processing, binding declarations are resolved through a
// [bindings.Registry] and merged under bindings[type] on the matching
// channel, operation, message or server. Binding generation can run on a
// bounded worker pool ([WithConcurrency]); results are applied to the
// document by a single writer in declaration order, so output does not
// depend on scheduling.
package processing
