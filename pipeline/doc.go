// Package pipeline runs the stages that turn a source graph into a validated
// AsyncAPI document.
//
// Stages run strictly in order: discovery, generation, processing,
// validation and, when a sink is configured, emit. Each stage returns a
// [StageResult]; the orchestrator inspects it before moving on. Element level
// problems never stop a run. Only a missing graph, a missing registry or a
// cancelled context abort it, reported as an [aserrors.FatalError].
//
// # Quick Start
//
//	p, err := pipeline.New(bindings.DefaultRegistry(),
//		pipeline.WithSink(sink.NewFileSink("out")),
//		pipeline.WithFormats(document.KindYAML, document.KindJSON),
//	)
//	if err != nil {
//		return err
//	}
//	result, err := p.Run(ctx, graph)
//	if err != nil {
//		return err
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
package pipeline
