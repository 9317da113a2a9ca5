package driver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mofmt/internal/config"
	"mofmt/internal/diag"
	"mofmt/internal/format"
	"mofmt/internal/source"
)

func TestErrorDiagnosticParseError(t *testing.T) {
	opts := format.DefaultOptions()
	src := []byte("\n\nlet x = (1,\n  2;\n")
	_, err := format.Format(string(src), opts)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	fs := source.NewFileSet()
	d := ErrorDiagnostic(fs, "src/a.mo", src, opts, err)
	if d.Severity != diag.SevError || d.Code != diag.SynUnclosedDelimiter {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Primary.File == source.NoFile {
		t.Fatal("parse diagnostic has no location")
	}
	f := fs.Get(d.Primary.File)
	if f.Path != "src/a.mo" {
		t.Errorf("file path = %q", f.Path)
	}
	// позиция считается по нормализованному тексту без ведущих пустых строк
	if pos := f.Position(d.Primary.Start); pos.Line != 1 || pos.Col != 9 {
		t.Errorf("position = %+v, want 1:9", pos)
	}
	if len(d.Notes) != 1 {
		t.Errorf("notes = %+v, want the normalized-source note", d.Notes)
	}
}

func TestErrorDiagnosticKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code diag.Code
	}{
		{"config", &format.ConfigError{Option: "tabWidth", Value: 0, Msg: "bad"}, diag.CfgInvalidValue},
		{"config file", &config.Error{Path: ".mofmt.toml", Err: errors.New("bad toml")}, diag.CfgParseError},
		{"internal", &format.InternalError{Node: 3, Msg: "oops"}, diag.FmtInternal},
		{"read", &IOError{Op: "read", Path: "a.mo", Err: errors.New("denied")}, diag.IOLoadFileError},
		{"write", &IOError{Op: "write", Path: "a.mo", Err: errors.New("denied")}, diag.IOWriteFileError},
		{"idempotence", &NotIdempotentError{Line: 2}, diag.FmtNotIdempotent},
		{"other", errors.New("boom"), diag.UnknownCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ErrorDiagnostic(source.NewFileSet(), "a.mo", nil, format.DefaultOptions(), tt.err)
			if d.Code != tt.code || d.Severity != diag.SevError {
				t.Errorf("diagnostic = %+v, want code %v", d, tt.code)
			}
			if d.Primary.File != source.NoFile {
				t.Errorf("unexpected location %v", d.Primary)
			}
		})
	}
}

func TestDiagnoseCheckMode(t *testing.T) {
	src := []byte("a;\nb  +c\n")
	out, err := format.Format(string(src), format.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	opts := format.DefaultOptions()
	opts.RemoveLinesAroundCodeBlocks = true
	results := []FormatResult{
		{Path: "a.mo", Source: src, Formatted: []byte(out), Changed: true, Options: opts},
		{Path: "b.mo", Source: []byte("a\n"), Formatted: []byte("a\n"), Options: opts},
	}

	bag := diag.NewBag(0)
	fs := source.NewFileSet()
	Diagnose(results, ModeCheck, bag, fs)

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(items), items)
	}
	need := items[0]
	if need.Code != diag.FmtNeedsFormatting || need.Severity != diag.SevWarning {
		t.Fatalf("first diagnostic = %+v", need)
	}
	start, _ := fs.Resolve(need.Primary)
	if start.Line != 2 || start.Col != 3 {
		t.Errorf("first difference at %+v, want 2:3", start)
	}
	if items[1].Code != diag.FmtInertOption || !strings.Contains(items[1].Message, "removeLinesAroundCodeBlocks") {
		t.Errorf("inert option diagnostic = %+v", items[1])
	}

	// в режиме записи изменённые файлы не считаются проблемой
	bag = diag.NewBag(0)
	Diagnose(results, ModeWrite, bag, source.NewFileSet())
	if bag.Len() != 1 {
		t.Errorf("write mode produced %d diagnostics, want 1", bag.Len())
	}
}

func TestConfigDiagnostics(t *testing.T) {
	if ConfigDiagnostics(nil) != nil {
		t.Error("nil resolver should give no diagnostics")
	}
	dir := t.TempDir()
	writeFile(t, dir+"/"+config.FileName, "indent = 2\n", 0o644)
	writeFile(t, dir+"/a.mo", "a\n", 0o644)
	r := config.NewResolver()
	opts := baseOptions(ModeCheck)
	opts.Config = r
	if _, err := FormatPaths(context.Background(), []string{dir}, opts); err != nil {
		t.Fatal(err)
	}
	ds := ConfigDiagnostics(r)
	if len(ds) != 1 || ds[0].Code != diag.CfgUnknownKey {
		t.Errorf("config diagnostics = %+v", ds)
	}
}
