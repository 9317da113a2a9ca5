package trace

import (
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat every interval until the returned stop
// function is called. Each heartbeat carries the number of files still
// being formatted: a count that stops moving points at a hang, and the
// ring dump names the files. A disabled tracer or a non-positive interval
// starts nothing.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := 1; ; beat++ {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				t.Emit(&Event{
					Time:  now,
					Kind:  KindHeartbeat,
					Scope: ScopeRun,
					Name:  "heartbeat #" + strconv.Itoa(beat),
					Files: int(inFlight.Load()),
				})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
