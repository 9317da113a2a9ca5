package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the latest events in memory. The CLI dumps it only
// when a run fails, so at LevelError it still records file spans.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int // slot of the next write
	stored int
	level  Level
	keep   Level
}

// NewRingTracer returns a ring holding up to size events (4096 when size
// is not positive).
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	keep := level
	if keep == LevelError {
		keep = LevelFile
	}
	return &RingTracer{buf: make([]Event, size), level: level, keep: keep}
}

func (r *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !r.keep.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	ev.Seq = nextSeq()
	r.buf[r.next] = *ev
	r.next = (r.next + 1) % len(r.buf)
	r.stored = min(r.stored+1, len(r.buf))
	r.mu.Unlock()
}

// Level reports the configured level; LevelError rings still accept
// file events.
func (r *RingTracer) Level() Level { return r.keep }

func (r *RingTracer) Close() error { return nil }

// Snapshot returns the stored events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.stored)
	first := (r.next - r.stored + len(r.buf)) % len(r.buf)
	for i := range r.stored {
		out = append(out, r.buf[(first+i)%len(r.buf)])
	}
	return out
}

// Unfinished returns the begin events of spans that have not ended, in
// the order they began. After a hang these are the stuck files and
// phases. Spans whose begin fell out of the ring are not reported.
func (r *RingTracer) Unfinished() []Event {
	events := r.Snapshot()
	ended := make(map[uint64]bool)
	for i := range events {
		if events[i].Kind == KindEnd {
			ended[events[i].Span] = true
		}
	}
	var open []Event
	for i := range events {
		if events[i].Kind == KindBegin && !ended[events[i].Span] {
			open = append(open, events[i])
		}
	}
	return open
}

// Dump writes the stored events as text, followed by the unfinished spans.
func (r *RingTracer) Dump(w io.Writer) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, FormatText)); err != nil {
			return err
		}
	}
	open := r.Unfinished()
	if len(open) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "unfinished spans: %d\n", len(open)); err != nil {
		return err
	}
	for _, ev := range open {
		if _, err := fmt.Fprintf(w, "  %s\n", describe(&ev)); err != nil {
			return err
		}
	}
	return nil
}
