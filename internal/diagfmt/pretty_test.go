package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mofmt/internal/diag"
	"mofmt/internal/source"
)

func singleDiag(t *testing.T, path, content string, sp source.Span, code diag.Code, msg string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(content))
	sp.File = id
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(code, sp, msg))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := singleDiag(t, "/home/user/project/src/main.mo", "let x = (1;\n",
		source.Span{Start: 8, End: 9}, diag.SynUnclosedDelimiter, "unclosed '('")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
		excludes string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/main.mo", ""},
		{"relative", PathModeRelative, "src/main.mo:1:9", "/home/user"},
		{"basename", PathModeBasename, "main.mo:1:9", "src/"},
		{"auto", PathModeAuto, "src/main.mo:1:9", "/home/user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output lacks %q:\n%s", tt.contains, out)
			}
			if tt.excludes != "" && strings.Contains(out, tt.excludes) {
				t.Errorf("output has %q:\n%s", tt.excludes, out)
			}
			for _, want := range []string{"ERROR", "SYN2002", "unclosed '('"} {
				if !strings.Contains(out, want) {
					t.Errorf("output lacks %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrettyContext(t *testing.T) {
	src := "let a = 1;\nlet b = (2;\nlet c = 3;\n"
	bag, fs := singleDiag(t, "main.mo", src,
		source.Span{Start: 19, End: 20}, diag.SynUnclosedDelimiter, "unclosed '('")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})

	want := strings.Join([]string{
		"main.mo:2:9: ERROR SYN2002: unclosed '('",
		"1 | let a = 1;",
		"2 | let b = (2;",
		"  |         ^",
		"3 | let c = 3;",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	bag, fs := singleDiag(t, "a.mo", "x = /* open\n",
		source.Span{Start: 4, End: 11}, diag.LexUnterminatedBlockComment, "unterminated comment")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "    ^~~~~~~\n") {
		t.Errorf("underline not found:\n%s", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.CfgInvalidValue, source.Span{File: source.NoFile}, "bad tabWidth"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if diff := cmp.Diff("ERROR CFG5001: bad tabWidth\n", buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.mo", []byte("a\nb\nc\n"))
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		d := diag.New(diag.SevWarning, diag.FmtInertOption, source.Span{File: id, Start: 2 * i, End: 2*i + 1}, "w")
		bag.Add(d.WithNote(source.Span{File: id, Start: 0, End: 1}, "see here"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 2, ShowNotes: true})
	out := buf.String()
	if got := strings.Count(out, "WARNING"); got != 2 {
		t.Errorf("printed %d warnings, want 2:\n%s", got, out)
	}
	if !strings.Contains(out, "... and 1 more") {
		t.Errorf("missing truncation line:\n%s", out)
	}
	if !strings.Contains(out, "note: m.mo:1:1: see here") {
		t.Errorf("missing note:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := singleDiag(t, "a.mo", "(\n", source.Span{Start: 0, End: 1}, diag.SynUnclosedDelimiter, "unclosed")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("escape codes with color disabled")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("no escape codes with color enabled")
	}
}
