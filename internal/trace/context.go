package trace

import (
	"context"
	"time"
)

type (
	tracerKey struct{}
	spanKey   struct{}
	fileKey   struct{}
	workerKey struct{}
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithWorker records the driver worker slot that runs under ctx. Chrome
// traces use it as the thread id, so every worker gets its own track.
func WithWorker(ctx context.Context, slot int) context.Context {
	return context.WithValue(ctx, workerKey{}, slot)
}

func spanOf(ctx context.Context) uint64 {
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

func fileOf(ctx context.Context) string {
	f, _ := ctx.Value(fileKey{}).(string)
	return f
}

func workerOf(ctx context.Context) int {
	w, _ := ctx.Value(workerKey{}).(int)
	return w
}

// Mark records an instant event inside the current file span, e.g. a
// cache hit.
func Mark(ctx context.Context, name string) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(ScopeFile) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindMark,
		Scope:  ScopeFile,
		Parent: spanOf(ctx),
		Worker: workerOf(ctx),
		Name:   name,
		File:   fileOf(ctx),
	})
}
