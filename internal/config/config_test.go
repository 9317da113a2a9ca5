package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mofmt/internal/diag"
	"mofmt/internal/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestApplyOnlyDefinedKeys(t *testing.T) {
	cfg, err := Parse("x/.mofmt.toml", "tabWidth = 4\nsemi = false\n")
	if err != nil {
		t.Fatal(err)
	}
	got := cfg.Apply(format.DefaultOptions())

	want := format.DefaultOptions()
	want.TabWidth = 4
	want.Semi = false
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyAllKeys(t *testing.T) {
	text := `
tabWidth = 3
printWidth = 100
semi = false
bracketSpacing = false
trailingComma = "es5"
sortImports = true
removeLinesAroundCodeBlocks = true
`
	cfg, err := Parse(".mofmt.toml", text)
	if err != nil {
		t.Fatal(err)
	}
	want := format.Options{
		TabWidth:                    3,
		PrintWidth:                  100,
		Semi:                        false,
		BracketSpacing:              false,
		TrailingComma:               format.TrailingES5,
		SortImports:                 true,
		RemoveLinesAroundCodeBlocks: true,
	}
	if diff := cmp.Diff(want, cfg.Apply(format.DefaultOptions())); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if diff := cmp.Diff(format.DefaultOptions(), cfg.Apply(format.DefaultOptions())); diff != "" {
		t.Errorf("nil Apply changed options:\n%s", diff)
	}
	if cfg.Excluded("a.mo") || cfg.Diagnostics() != nil {
		t.Error("nil config must be inert")
	}
}

func TestUnknownKeys(t *testing.T) {
	cfg, err := Parse("/p/.mofmt.toml", "tab_width = 4\nprintWidth = 90\nindent = 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"indent", "tab_width"}, cfg.Unknown); diff != "" {
		t.Errorf("Unknown mismatch (-want +got):\n%s", diff)
	}
	ds := cfg.Diagnostics()
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(ds))
	}
	for _, d := range ds {
		if d.Code != diag.CfgUnknownKey || d.Severity != diag.SevWarning {
			t.Errorf("unexpected diagnostic %+v", d)
		}
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("bad.toml", "tabWidth = \n")
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if cfgErr.Path != "bad.toml" || cfgErr.Diagnostic().Code != diag.CfgParseError {
		t.Errorf("unexpected error %+v", cfgErr)
	}

	_, err = Parse("bad.toml", "tabWidth = \"four\"\n")
	if !errors.As(err, &cfgErr) {
		t.Fatalf("type mismatch should fail, got %v", err)
	}
}

func TestOverrides(t *testing.T) {
	width := 120
	tc := "none"
	semi := false
	ov := Overrides{PrintWidth: &width, TrailingComma: &tc, Semi: &semi}

	got := ov.Apply(format.DefaultOptions())
	want := format.DefaultOptions()
	want.PrintWidth = 120
	want.TrailingComma = format.TrailingNone
	want.Semi = false
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "tabWidth = 4\n")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(deep)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != filepath.Join(root, FileName) {
		t.Errorf("Find = %q", got)
	}
}

func TestResolverNearestWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "tabWidth = 4\n")
	writeFile(t, filepath.Join(root, "sub", FileName), "printWidth = 40\n")
	writeFile(t, filepath.Join(root, "a.mo"), "")
	writeFile(t, filepath.Join(root, "sub", "b.mo"), "")
	writeFile(t, filepath.Join(root, "other", "c.mo"), "")

	r := NewResolver()
	top, err := r.For(filepath.Join(root, "a.mo"))
	if err != nil {
		t.Fatal(err)
	}
	sub, err := r.For(filepath.Join(root, "sub", "b.mo"))
	if err != nil {
		t.Fatal(err)
	}
	other, err := r.For(filepath.Join(root, "other", "c.mo"))
	if err != nil {
		t.Fatal(err)
	}

	if got := top.Apply(format.DefaultOptions()); got.TabWidth != 4 || got.PrintWidth != 80 {
		t.Errorf("root config applied as %+v", got)
	}
	// ближайший файл не наследует ключи родительского
	if got := sub.Apply(format.DefaultOptions()); got.TabWidth != 2 || got.PrintWidth != 40 {
		t.Errorf("sub config applied as %+v", got)
	}
	if other != top {
		t.Error("configs of one file should be shared")
	}
	if n := len(r.Configs()); n != 2 {
		t.Errorf("Configs() has %d entries, want 2", n)
	}
}

func TestResolverDisabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "tabWidth = 4\n")
	r := NewResolver()
	r.Disabled = true
	cfg, err := r.For(filepath.Join(root, "a.mo"))
	if cfg != nil || err != nil {
		t.Errorf("disabled resolver returned %v, %v", cfg, err)
	}
}

func TestExcluded(t *testing.T) {
	root := t.TempDir()
	cfg, err := Parse(filepath.Join(root, FileName), `exclude = ["generated", "*.did", "./vendor/"]`)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		want bool
	}{
		{"src/main.mo", false},
		{"generated/types.mo", true},
		{"src/generated/x.mo", false},
		{"api/service.did", true},
		{"vendor/lib/a.mo", true},
	}
	for _, tt := range tests {
		if got := cfg.Excluded(filepath.Join(root, filepath.FromSlash(tt.path))); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
