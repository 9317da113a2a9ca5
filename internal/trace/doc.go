// Package trace records what the formatter is doing: one span per command,
// one per source file and one per formatter phase inside a file.
//
// Tracing is off unless asked for:
//
//	mofmt fmt --trace=fmt.json --trace-level=phase src/
//	mofmt fmt --trace-mode=ring --trace-heartbeat=5s src/
//
// A stream tracer writes events as they happen, as text, NDJSON or a
// Chrome trace where every worker gets its own track. A ring tracer keeps
// the latest events in memory; the CLI prints them, together with the
// spans that never ended, only when the run fails. Heartbeats report how
// many files are in flight, which makes a hang visible in either mode.
//
// Spans travel in the context:
//
//	span, ctx := trace.StartFile(ctx, path)
//	defer span.End("")
//	phase, _ := trace.StartPhase(ctx, trace.PhaseTokenize)
//	phase.SetNodes(n).End("")
//
// Start functions return a nil *Span when the level filters the scope out;
// its methods are no-ops.
package trace
