// Package trace provides the event log of a w3cv run.
//
// Tracing is off by default and is enabled from the command line:
//
//	w3cv --trace=- --trace-level=detail index.html
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failed files and requests
//   - LevelPhase: Run and per-file boundaries
//   - LevelDetail: HTTP requests and responses
//   - LevelDebug: Everything, including decoded payload summaries
//
// # Scopes
//
//   - ScopeDriver: the whole run
//   - ScopeFile: one input path
//   - ScopeRequest: one call to a validation service
//   - ScopePayload: request/response payload details
//
// # Context Propagation
//
// The tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "file", parentID)
//	defer span.End("")
package trace
