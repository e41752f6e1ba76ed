// Package bindings is the protocol and cloud binding registry.
//
// A binding plugin contributes transport-specific fragments to channels,
// operations, messages and servers. Each plugin owns a typed configuration
// variant implementing [Config]; loosely typed declarations from the source
// graph are decoded into that variant at the registry boundary by
// [Registry.Decode], so plugins never see untyped input.
//
// Registries are explicit values. Build one per run and pass it to the
// processing stage:
//
//	reg := bindings.DefaultRegistry()
//	if err := bindings.Register(reg, myPlugin{}); err != nil {
//		return err
//	}
//
// Looking up an unregistered type never panics: [Registry.Lookup] reports
// false and [Registry.Decode] returns a *aserrors.BindingError marked
// Unsupported.
//
// # Built-in plugins
//
//   - mqtt: broker QoS, retain and client session settings
//   - kafka: topic, partitions, consumer group and schema registry
//   - amqp: queue or routing-key exchange, delivery settings
//   - ws: socket upgrade method, query and headers
//   - http: request method, query, headers and status code
//   - sns, sqs: AWS notification topics and queues with ARN validation
package bindings
