package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin     Kind = iota + 1 // span opened
	KindEnd                       // span closed, Elapsed is set
	KindMark                      // instant event inside a span
	KindHeartbeat                 // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	// ScopeRun covers one CLI command.
	ScopeRun Scope = iota + 1
	// ScopeFile covers one source file, from read to write.
	ScopeFile
	// ScopePhase covers one formatter phase of a file.
	ScopePhase
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Phase names a step of the formatter.
type Phase string

const (
	PhaseNormalize   Phase = "normalize"
	PhaseTokenize    Phase = "tokenize"
	PhaseSortImports Phase = "sort-imports"
	PhasePrint       Phase = "print"
	PhaseRender      Phase = "render"
	PhaseVerify      Phase = "verify"
)

// Event is one trace record. Zero-valued fields are unknown and are left
// out of every output format.
type Event struct {
	Time    time.Time
	Seq     uint64
	Kind    Kind
	Scope   Scope
	Span    uint64        // span the event opens, closes or belongs to
	Parent  uint64        // enclosing span, 0 at the top
	Worker  int           // driver worker slot, 0 outside the pool
	Name    string        // command, phase or mark name
	File    string        // source file being formatted
	Status  string        // outcome on KindEnd: "changed", "error", ...
	Files   int           // files in a run
	Bytes   int           // size of the file's source
	Nodes   int           // token tree size after tokenize
	Elapsed time.Duration // span duration on KindEnd
}
