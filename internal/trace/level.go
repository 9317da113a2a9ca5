package trace

import (
	"fmt"
	"strings"
)

// Level controls which scopes reach the tracer.
type Level uint8

const (
	LevelOff   Level = iota // nothing
	LevelError              // nothing is written; the ring still dumps on failure
	LevelFile               // runs and files
	LevelPhase              // runs, files and formatter phases
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelFile:
		return "file"
	case LevelPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "file":
		return LevelFile, nil
	case "phase":
		return LevelPhase, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level %q (expected off|error|file|phase)", s)
	}
}

// ShouldEmit reports whether events of scope pass at this level.
// Heartbeats are not scoped and are always kept by enabled tracers.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelFile:
		return scope <= ScopeFile
	case LevelPhase:
		return scope <= ScopePhase
	}
	return false
}
