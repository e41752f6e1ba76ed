// Package aserrors provides structured error types for asyncforge.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish the fatal conditions that abort
// a pipeline run from the recoverable ones that only produce diagnostics.
//
// # Error Categories
//
//   - FatalError: the pipeline context or source graph is absent or malformed
//   - ConfigError: invalid library or CLI configuration
//   - BindingError: a binding declaration could not be decoded or generated
//   - ReferenceError: a "$ref" pointer that cannot be resolved
//   - SinkError: the output sink rejected an artifact
//
// # Usage with errors.As
//
//	result, err := p.Run(ctx, graph)
//	if err != nil {
//	    var fatal *aserrors.FatalError
//	    if errors.As(err, &fatal) {
//	        log.Printf("run aborted in %s: %s", fatal.Stage, fatal.Message)
//	    }
//	}
package aserrors
