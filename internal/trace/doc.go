// Package trace provides a tracing subsystem for the ferrite linter.
//
// The trace package enables tracking of lint passes, compiler invocations,
// and other operations to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	ferrite check --trace=- --trace-level=pass src/main.rs
//
// # Architecture
//
// The package provides two tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelPass: Run and per-file pass boundaries
//   - LevelStage: Stages inside a pass (resolve, invoke, parse, filter)
//   - LevelDebug: Everything
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeRun: Top-level CLI operations
//   - ScopePass: One file's lint pass
//   - ScopeStage: Stage within a pass
//
// # Context Propagation
//
// Tracers are propagated through the lint pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "pass:src/main.rs", parentID)
//	defer span.End("")
package trace
