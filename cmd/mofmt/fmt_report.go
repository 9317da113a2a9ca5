package main

import (
	"encoding/json"
	"fmt"
	"io"

	"rsc.io/diff"

	"mofmt/internal/diag"
	"mofmt/internal/diagfmt"
	"mofmt/internal/driver"
	"mofmt/internal/pipeline"
	"mofmt/internal/source"
)

// fmtReport gathers the diagnostics of one fmt run.
type fmtReport struct {
	s       fmtSettings
	mode    driver.Mode
	results []driver.FormatResult
	fs      *source.FileSet
	bag     *diag.Bag
	baseDir string
}

func newFmtReport(s fmtSettings, mode driver.Mode, results []driver.FormatResult, opts driver.FormatOptions) *fmtReport {
	r := &fmtReport{
		s:       s,
		mode:    mode,
		results: results,
		fs:      source.NewFileSet(),
		bag:     diag.NewBag(s.maxDiagnostics),
		baseDir: workingDir(),
	}
	driver.Diagnose(results, mode, r.bag, r.fs)
	for _, d := range driver.ConfigDiagnostics(opts.Config) {
		r.bag.Add(d)
	}
	if s.timings && s.outputFormat == "json" {
		if d, ok := driver.TimingDiagnostic(opts.Timer, len(results)); ok {
			r.bag.Add(d)
		}
	}
	r.bag.Sort()
	return r
}

// writeText renders diagnostics for humans, one line each in short
// format. Quiet runs only show errors.
func (r *fmtReport) writeText(w io.Writer) {
	bag := r.bag
	if r.s.quiet {
		bag = diag.NewBag(r.s.maxDiagnostics)
		for _, d := range r.bag.Items() {
			if d.Severity == diag.SevError {
				bag.Add(d)
			}
		}
	}
	if bag.Len() == 0 {
		return
	}
	if r.s.outputFormat == "short" {
		// диагностики без позиции в коротком виде не показываются
		if short := diag.FormatGoldenDiagnostics(bag.Items(), r.fs, false); short != "" {
			fmt.Fprintln(w, short)
		}
		return
	}
	diagfmt.Pretty(w, bag, r.fs, diagfmt.PrettyOpts{
		Color:     r.s.color,
		Context:   2,
		PathMode:  r.s.pathMode,
		BaseDir:   r.baseDir,
		ShowNotes: true,
	})
}

type fmtFileJSON struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
}

type fmtJSON struct {
	Check       bool                       `json:"check"`
	Files       []fmtFileJSON              `json:"files"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func (r *fmtReport) writeJSON(w io.Writer) error {
	payload := fmtJSON{
		Check: r.mode == driver.ModeCheck,
		Files: make([]fmtFileJSON, 0, len(r.results)),
		Diagnostics: diagfmt.BuildDiagnosticsOutput(r.bag, r.fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         r.s.pathMode,
			BaseDir:          r.baseDir,
			IncludeNotes:     true,
		}),
	}
	for _, res := range r.results {
		jr := fmtFileJSON{
			Path:    pipeline.DisplayPath(res.Path, r.baseDir),
			Changed: res.Changed,
			Cached:  res.Cached,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Files = append(payload.Files, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// writeDiffs prints a line diff for every changed file.
func writeDiffs(w io.Writer, results []driver.FormatResult, baseDir string) {
	for _, res := range results {
		if res.Err != nil || !res.Changed {
			continue
		}
		path := pipeline.DisplayPath(res.Path, baseDir)
		if _, err := fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n%s", path, path, diff.Format(string(res.Source), string(res.Formatted))); err != nil {
			panic(err)
		}
	}
}
