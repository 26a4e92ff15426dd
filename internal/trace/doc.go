// Package trace records what a synscan run is doing.
//
// Events are spans (begin/end pairs) and points, grouped by scope:
//
//   - ScopeRun: one CLI invocation, one watch cycle or one LSP check batch
//   - ScopeFile: loading and checking a single document
//   - ScopeCheck: a checker or validator call inside a file
//
// Enable with:
//
//	synscan check --trace=- --trace-level=detail ./src
//
// A tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+path, 0)
//	defer span.End("")
//
// The ring tracer keeps the last events in memory so that a crash can dump
// them (see ModeRing and RingTracer.Dump).
package trace
