package ui

import (
	"errors"
	"strings"
	"testing"

	"mofmt/internal/pipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("Formatting", files, nil).(*progressModel)
}

func TestApplyEventStages(t *testing.T) {
	m := newModel("a.mo", "b.mo")

	m.applyEvent(pipeline.Event{File: "a.mo", Stage: pipeline.StageFormat, Status: pipeline.StatusWorking})
	if got := m.items[0].status; got != "formatting" {
		t.Fatalf("status = %q, want formatting", got)
	}
	m.applyEvent(pipeline.Event{File: "a.mo", Stage: pipeline.StageWrite, Status: pipeline.StatusChanged})
	m.applyEvent(pipeline.Event{File: "b.mo", Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: errors.New("boom")})
	// события после завершения файла игнорируются
	m.applyEvent(pipeline.Event{File: "a.mo", Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "unknown.mo", Status: pipeline.StatusDone})

	if got := m.items[0].status; got != "formatted" {
		t.Errorf("a.mo status = %q, want formatted", got)
	}
	if got := m.items[1].status; got != "error" {
		t.Errorf("b.mo status = %q, want error", got)
	}
	if m.finished() != 2 {
		t.Errorf("finished = %d, want 2", m.finished())
	}
	if got := m.summary(); got != "1 formatted, 1 error" {
		t.Errorf("summary = %q", got)
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("src/main.mo", "api.did")
	m.applyEvent(pipeline.Event{File: "api.did", Status: pipeline.StatusCached})
	m.done = true

	view := m.View()
	for _, want := range []string{"Formatting (1/2)", "src/main.mo", "queued", "cached", "1 cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestVisibleLimitsLargeRuns(t *testing.T) {
	files := make([]string, maxListed+10)
	for i := range files {
		files[i] = strings.Repeat("f", i+1) + ".mo"
	}
	m := newModel(files...)
	m.applyEvent(pipeline.Event{File: files[3], Stage: pipeline.StageFormat, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: files[5], Status: pipeline.StatusError})
	m.applyEvent(pipeline.Event{File: files[6], Status: pipeline.StatusDone})

	got := m.visible()
	if len(got) != 2 || got[0].path != files[3] || got[1].path != files[5] {
		t.Errorf("visible = %+v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.mo", 20, "short.mo"},
		{"very/long/path/file.mo", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestQueuedEventsAddFiles(t *testing.T) {
	m := newModel()
	m.applyEvent(pipeline.Event{File: "a.mo", Status: pipeline.StatusQueued})
	m.applyEvent(pipeline.Event{File: "a.mo", Status: pipeline.StatusQueued})
	m.applyEvent(pipeline.Event{File: "b.mo", Status: pipeline.StatusDone})
	if len(m.items) != 1 || m.items[0].path != "a.mo" {
		t.Fatalf("items = %+v", m.items)
	}
	m.applyEvent(pipeline.Event{File: "a.mo", Status: pipeline.StatusDone})
	if got := m.summary(); got != "1 unchanged" {
		t.Errorf("summary = %q", got)
	}
}
