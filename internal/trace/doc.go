// Package trace is the logging layer of the converter.
//
// Events are spans (begin/end pairs) and point events, tagged with a scope
// that says how coarse they are. The level chosen on the command line decides
// which scopes reach the output.
//
//	cppts convert --trace=- --trace-level=detail src/
//
// # Scopes
//
//   - ScopeDriver: one span per CLI run
//   - ScopePass: load, parse, normalize, render, format
//   - ScopeModule: one span per converted file
//   - ScopeNode: CST nodes skipped or rejected by the normalizer
//
// Level error is special: it keeps only failed span ends and "unsupported"
// points. Ring mode holds the last events in memory; the CLI dumps them when
// a file fails.
//
// # Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
