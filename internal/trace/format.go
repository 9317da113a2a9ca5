package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of a trace stream.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output file extension
	FormatText                 // one readable line per event
	FormatNDJSON               // one JSON object per line
	FormatChrome               // chrome://tracing / Perfetto event array
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	case "chrome":
		return FormatChrome, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson|chrome)", s)
	}
}

// FormatEvent encodes one event. Text and NDJSON output ends in a newline;
// Chrome events are bare objects, the stream tracer adds the separators.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	case FormatChrome:
		return formatChrome(ev)
	default:
		return []byte(formatText(ev))
	}
}

type jsonEvent struct {
	Time      string  `json:"time"`
	Seq       uint64  `json:"seq"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope,omitempty"`
	Span      uint64  `json:"span,omitempty"`
	Parent    uint64  `json:"parent,omitempty"`
	Worker    int     `json:"worker,omitempty"`
	Name      string  `json:"name"`
	File      string  `json:"file,omitempty"`
	Status    string  `json:"status,omitempty"`
	Files     int     `json:"files,omitempty"`
	Bytes     int     `json:"bytes,omitempty"`
	Nodes     int     `json:"nodes,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Span:      ev.Span,
		Parent:    ev.Parent,
		Worker:    ev.Worker,
		Name:      ev.Name,
		File:      ev.File,
		Status:    ev.Status,
		Files:     ev.Files,
		Bytes:     ev.Bytes,
		Nodes:     ev.Nodes,
		ElapsedMS: float64(ev.Elapsed.Microseconds()) / 1000,
	}
	if ev.Kind != KindHeartbeat {
		j.Scope = ev.Scope.String()
	}
	data, _ := json.Marshal(j)
	return append(data, '\n')
}

type chromeEvent struct {
	Name string         `json:"name"`
	Cat  string         `json:"cat"`
	Ph   string         `json:"ph"`
	Ts   int64          `json:"ts"`
	Pid  int            `json:"pid"`
	Tid  int            `json:"tid"`
	S    string         `json:"s,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

// formatChrome maps spans to B/E pairs on the worker's track; marks and
// heartbeats become instant events.
func formatChrome(ev *Event) []byte {
	c := chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		Ts:   ev.Time.UnixMicro(),
		Pid:  1,
		Tid:  ev.Worker,
	}
	if ev.Scope == ScopeFile && ev.File != "" {
		// на дорожке воркера файл виден по имени
		c.Name = ev.File
	}
	switch ev.Kind {
	case KindBegin:
		c.Ph = "B"
	case KindEnd:
		c.Ph = "E"
	default:
		c.Ph, c.S = "i", "t"
	}
	args := map[string]any{}
	put := func(key string, v any, ok bool) {
		if ok {
			args[key] = v
		}
	}
	put("file", ev.File, ev.File != "" && ev.Scope != ScopeFile)
	put("status", ev.Status, ev.Status != "")
	put("files", ev.Files, ev.Files > 0)
	put("bytes", ev.Bytes, ev.Bytes > 0)
	put("nodes", ev.Nodes, ev.Nodes > 0)
	if len(args) > 0 {
		c.Args = args
	}
	data, _ := json.Marshal(c)
	return data
}

// formatText renders
//
//	[   seq] w2   ← phase print a.mo (1.2ms, 341 nodes)
//
// with nested scopes indented under their run.
func formatText(ev *Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%6d] ", ev.Seq)
	if ev.Worker > 0 {
		fmt.Fprintf(&sb, "w%-3d ", ev.Worker)
	}
	if ev.Scope > ScopeRun && ev.Kind != KindHeartbeat {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeRun)))
	}
	switch ev.Kind {
	case KindBegin:
		sb.WriteString("→ ")
	case KindEnd:
		sb.WriteString("← ")
	case KindMark:
		sb.WriteString("• ")
	case KindHeartbeat:
		sb.WriteString("♡ ")
	}
	sb.WriteString(describe(ev))
	sb.WriteByte('\n')
	return sb.String()
}

// describe is the scope, name and file of ev plus whatever it measured.
func describe(ev *Event) string {
	var sb strings.Builder
	switch {
	case ev.Kind == KindHeartbeat:
		sb.WriteString(ev.Name)
	case ev.Scope == ScopeFile && ev.Kind != KindMark:
		sb.WriteString("file " + ev.File)
	default:
		sb.WriteString(ev.Scope.String() + " " + ev.Name)
		if ev.File != "" {
			sb.WriteString(" " + ev.File)
		}
	}

	var facts []string
	if ev.Kind == KindEnd {
		facts = append(facts, ev.Elapsed.Round(time.Microsecond).String())
	}
	if ev.Status != "" {
		facts = append(facts, ev.Status)
	}
	switch {
	case ev.Kind == KindHeartbeat:
		facts = append(facts, strconv.Itoa(ev.Files)+" files in flight")
	case ev.Files > 0:
		facts = append(facts, strconv.Itoa(ev.Files)+" files")
	}
	if ev.Bytes > 0 {
		facts = append(facts, strconv.Itoa(ev.Bytes)+" bytes")
	}
	if ev.Nodes > 0 {
		facts = append(facts, strconv.Itoa(ev.Nodes)+" nodes")
	}
	if len(facts) > 0 {
		sb.WriteString(" (" + strings.Join(facts, ", ") + ")")
	}
	return sb.String()
}
