package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// Tracer receives events. Emit must be safe for concurrent use; it may
// assign ev.Seq.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	// Close flushes buffered output and releases the tracer.
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop drops everything.
var Nop Tracer = nopTracer{}

var lastSeq atomic.Uint64

func nextSeq() uint64 { return lastSeq.Add(1) }

// Mode selects where events go.
type Mode uint8

const (
	// ModeStream writes every event as it happens.
	ModeStream Mode = iota + 1
	// ModeRing keeps the latest events in memory for a failure dump.
	ModeRing
)

func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	default:
		return "unknown"
	}
}

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	default:
		return ModeStream, fmt.Errorf("invalid trace mode %q (expected stream|ring)", s)
	}
}

// Config describes the tracer the CLI asked for.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // overrides OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int
}

// New builds the tracer for cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream:
		w, owned, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return newStreamTracer(w, owned, cfg.Level, formatFor(cfg)), nil
	}
	return nil, fmt.Errorf("unknown trace mode %v", cfg.Mode)
}

// formatFor resolves FormatAuto: *.ndjson is NDJSON, *.json is a Chrome
// trace, anything else is text.
func formatFor(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch {
	case strings.HasSuffix(cfg.OutputPath, ".ndjson"):
		return FormatNDJSON
	case strings.HasSuffix(cfg.OutputPath, ".json"):
		return FormatChrome
	}
	return FormatText
}

// openOutput returns the destination and whether the tracer owns it and
// must close it.
func openOutput(cfg Config) (io.Writer, bool, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, false, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, false, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, false, fmt.Errorf("open trace output: %w", err)
	}
	return f, true, nil
}
