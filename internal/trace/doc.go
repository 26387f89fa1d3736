// Package trace records what the reify tooling does while it loads universes and
// resolves signatures.
//
// Tracing is off unless the CLI is started with --trace:
//
//	reify inspect --trace=- --trace-level=detail 'Map<string, Sequence<int>>'
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelCommand: command boundaries only
//   - LevelDetail: universe loading and per-signature resolution
//   - LevelDebug: everything
//
// # Context Propagation
//
// Tracers travel with the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeResolve, "inspect", 0)
//	defer span.End("")
package trace
