package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes each event as soon as it is emitted, so a trace of a
// hung run still ends at the stuck file.
type StreamTracer struct {
	mu     sync.Mutex
	dst    io.Writer
	w      *bufio.Writer
	owned  bool // dst was opened by New and is closed with the tracer
	level  Level
	format Format
	count  int
	closed bool
}

// NewStreamTracer writes to w, which stays open after Close.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return newStreamTracer(w, false, level, format)
}

func newStreamTracer(w io.Writer, owned bool, level Level, format Format) *StreamTracer {
	st := &StreamTracer{dst: w, w: bufio.NewWriter(w), owned: owned, level: level, format: format}
	if format == FormatChrome {
		_, _ = st.w.WriteString("{\"traceEvents\":[\n")
	}
	return st
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	ev.Seq = nextSeq()
	if t.format == FormatChrome && t.count > 0 {
		_, _ = t.w.WriteString(",\n")
	}
	t.count++
	_, _ = t.w.Write(FormatEvent(ev, t.format))
	// ошибки записи трассы не должны ломать форматирование
	_ = t.w.Flush()
}

func (t *StreamTracer) Level() Level { return t.level }

// Close terminates a Chrome trace, flushes and closes an owned output.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.format == FormatChrome {
		_, _ = t.w.WriteString("\n]}\n")
	}
	err := t.w.Flush()
	if c, ok := t.dst.(io.Closer); ok && t.owned {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
