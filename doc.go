// Package asyncforge compiles annotated service descriptions into AsyncAPI
// 3.0.0 documents.
//
// A description is a graph of namespaces whose nodes carry metadata:
// operations (publish and subscribe endpoints), message models, security
// configurations and server declarations. asyncforge walks that graph and
// assembles a document with channels, operations, messages, schemas,
// security schemes and protocol bindings, then validates the result.
//
// # Overview
//
// The library is split into one package per pipeline stage:
//
//   - source: the graph model, a YAML description loader, and source/gosource
//     for Go packages annotated with asyncforge directives
//   - discovery: walks the graph and classifies decorated elements
//   - builder: creates the skeleton document and idempotently adds components
//   - processing: turns discovered elements into document entries and
//     attaches bindings
//   - bindings: the protocol and cloud binding registry (mqtt, kafka, amqp,
//     ws, http, sns, sqs)
//   - validator: structural and cross-reference validation
//   - pipeline: runs every stage in order and hands the result to a sink
//   - sink: file and in-memory destinations for the serialized document
//
// # Quick Start
//
// Compile a YAML service description and write asyncapi.yaml:
//
//	import (
//		"github.com/erraggy/asyncforge/bindings"
//		"github.com/erraggy/asyncforge/pipeline"
//		"github.com/erraggy/asyncforge/sink"
//		"github.com/erraggy/asyncforge/source"
//	)
//
//	g, err := source.LoadFile("service.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p, err := pipeline.New(bindings.DefaultRegistry(),
//		pipeline.WithSink(sink.NewFileSink(".")),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := p.Run(ctx, g)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
//
// Validate an existing AsyncAPI document:
//
//	doc, err := document.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := validator.Validate(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !res.Valid {
//		fmt.Printf("Found %d errors\n", res.ErrorCount)
//	}
//
// # Diagnostics
//
// Every stage reports problems as issues carrying a severity, the stage
// name, a dotted document path and the element it relates to. Errors make
// the document invalid; warnings never do. Fatal conditions such as a nil
// graph or a cancelled context abort the run with an aserrors.FatalError.
//
// # Command-line and MCP
//
// The asyncforge command (cmd/asyncforge) exposes compile, validate and
// bindings subcommands, and an mcp subcommand that serves the same
// operations to Model Context Protocol clients over stdio.
package asyncforge
