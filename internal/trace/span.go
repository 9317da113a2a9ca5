package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	lastSpan atomic.Uint64
	// inFlight counts file spans that began and have not ended yet;
	// heartbeats report it.
	inFlight atomic.Int64
)

// Span is an open run, file or phase span. A nil *Span is valid and does
// nothing, which is what the Start functions return when the scope is
// filtered out.
type Span struct {
	t     Tracer
	begin Event
	files int
	bytes int
	nodes int
}

// StartRun opens the span of a whole command.
func StartRun(ctx context.Context, name string) (*Span, context.Context) {
	return start(ctx, ScopeRun, name, "")
}

// StartFile opens the span of one source file. Phase spans and marks
// started from the returned context carry the path.
func StartFile(ctx context.Context, path string) (*Span, context.Context) {
	ctx = context.WithValue(ctx, fileKey{}, path)
	s, ctx := start(ctx, ScopeFile, "file", path)
	if s != nil {
		inFlight.Add(1)
	}
	return s, ctx
}

// StartPhase opens the span of a formatter phase.
func StartPhase(ctx context.Context, p Phase) (*Span, context.Context) {
	return start(ctx, ScopePhase, string(p), fileOf(ctx))
}

func start(ctx context.Context, scope Scope, name, file string) (*Span, context.Context) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(scope) {
		return nil, ctx
	}
	s := &Span{t: t, begin: Event{
		Time:   time.Now(),
		Kind:   KindBegin,
		Scope:  scope,
		Span:   lastSpan.Add(1),
		Parent: spanOf(ctx),
		Worker: workerOf(ctx),
		Name:   name,
		File:   file,
	}}
	ev := s.begin
	t.Emit(&ev)
	return s, context.WithValue(ctx, spanKey{}, s.begin.Span)
}

// SetFiles records how many files a run span covers.
func (s *Span) SetFiles(n int) *Span {
	if s != nil {
		s.files = n
	}
	return s
}

// SetBytes records the source size of a file span.
func (s *Span) SetBytes(n int) *Span {
	if s != nil {
		s.bytes = n
	}
	return s
}

// SetNodes records the token tree size.
func (s *Span) SetNodes(n int) *Span {
	if s != nil {
		s.nodes = n
	}
	return s
}

// End closes the span with a status ("" when it simply finished) and
// returns its duration.
func (s *Span) End(status string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	ev := s.begin
	ev.Time = now
	ev.Kind = KindEnd
	ev.Status = status
	ev.Files, ev.Bytes, ev.Nodes = s.files, s.bytes, s.nodes
	ev.Elapsed = now.Sub(s.begin.Time)
	if s.begin.Scope == ScopeFile {
		inFlight.Add(-1)
	}
	s.t.Emit(&ev)
	return ev.Elapsed
}

// ID returns the span id, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.Span
}
