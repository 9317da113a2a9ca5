package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"mofmt/internal/diag"
)

func TestReadOverridesOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "fmt"}
	registerOptionFlags(cmd)
	if err := cmd.ParseFlags([]string{"--tab-width=4", "--no-semi", "--trailing-comma=none"}); err != nil {
		t.Fatal(err)
	}
	o, err := readOverrides(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if o.TabWidth == nil || *o.TabWidth != 4 {
		t.Errorf("TabWidth = %v, want 4", o.TabWidth)
	}
	if o.Semi == nil || *o.Semi {
		t.Errorf("Semi = %v, want false", o.Semi)
	}
	if o.TrailingComma == nil || *o.TrailingComma != "none" {
		t.Errorf("TrailingComma = %v, want none", o.TrailingComma)
	}
	// флаги по умолчанию не перекрывают конфиг
	if o.PrintWidth != nil || o.BracketSpacing != nil || o.SortImports != nil {
		t.Errorf("unset flags leaked into overrides: %+v", o)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("readUIMode accepted an invalid value")
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Error("explicit ui modes must win")
	}
}

func TestResolveColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	cases := []struct {
		value string
		tty   bool
		want  bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"off", true, false},
	}
	for _, tc := range cases {
		got, err := resolveColor(tc.value, tc.tty)
		if err != nil || got != tc.want {
			t.Errorf("resolveColor(%q, %v) = %v, %v", tc.value, tc.tty, got, err)
		}
	}
	if _, err := resolveColor("rainbow", true); err == nil {
		t.Error("resolveColor accepted an invalid value")
	}
}

func TestReadsStdin(t *testing.T) {
	cases := []struct {
		args    []string
		want    bool
		wantErr bool
	}{
		{nil, true, false},
		{[]string{"-"}, true, false},
		{[]string{"src"}, false, false},
		{[]string{"src", "-"}, false, true},
	}
	for _, tc := range cases {
		got, err := readsStdin(tc.args)
		if got != tc.want || (err != nil) != tc.wantErr {
			t.Errorf("readsStdin(%q) = %v, %v", tc.args, got, err)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name string
		s    fmtSettings
		ok   bool
	}{
		{"plain", fmtSettings{outputFormat: "text"}, true},
		{"json check", fmtSettings{outputFormat: "json", check: true}, true},
		{"yaml", fmtSettings{outputFormat: "yaml"}, false},
		{"stdout check", fmtSettings{outputFormat: "text", stdout: true, check: true}, false},
		{"stdout diff", fmtSettings{outputFormat: "text", stdout: true, diff: true}, false},
		{"diff json", fmtSettings{outputFormat: "json", diff: true}, false},
		{"diff short", fmtSettings{outputFormat: "short", diff: true}, true},
	}
	for _, tc := range cases {
		if err := tc.s.validate(); (err == nil) != tc.ok {
			t.Errorf("%s: validate() = %v", tc.name, err)
		}
	}
}

func testSettings() fmtSettings {
	return fmtSettings{
		outputFormat:   "text",
		noCache:        true,
		noConfig:       true,
		ui:             uiModeOff,
		maxDiagnostics: 100,
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.mo")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runFmtTest(t *testing.T, s fmtSettings, args []string, stdin string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = executeFmt(context.Background(), s, args, streams{
		in:     strings.NewReader(stdin),
		out:    &out,
		errOut: &errOut,
	})
	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestExecuteFmtWrite(t *testing.T) {
	path := writeSource(t, "1 +   5")
	out, _, err := runFmtTest(t, testSettings(), []string{path}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "reformatted ") || !strings.Contains(out, "a.mo") {
		t.Errorf("stdout = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1 + 5\n" {
		t.Errorf("file = %q", data)
	}
}

func TestExecuteFmtCheck(t *testing.T) {
	path := writeSource(t, "1 +   5")
	s := testSettings()
	s.check = true
	out, errOut, err := runFmtTest(t, s, []string{path}, "")
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, err)
	}
	if !strings.Contains(out, "a.mo") {
		t.Errorf("stdout lacks the file: %q", out)
	}
	if !strings.Contains(errOut, "file is not formatted") {
		t.Errorf("stderr lacks the warning: %q", errOut)
	}

	s.quiet = true
	out, errOut, err = runFmtTest(t, s, []string{path}, "")
	if exitCode(err) != 1 || out != "" || errOut != "" {
		t.Errorf("quiet check: code %d, stdout %q, stderr %q", exitCode(err), out, errOut)
	}
}

func TestExecuteFmtShort(t *testing.T) {
	path := writeSource(t, "1 +   5")
	s := testSettings()
	s.check = true
	s.outputFormat = "short"
	_, errOut, err := runFmtTest(t, s, []string{path}, "")
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d (%v), want 1", exitCode(err), err)
	}
	want := "warning " + diag.FmtNeedsFormatting.ID() + " " + filepath.ToSlash(path) + ":1:5 file is not formatted\n"
	if errOut != want {
		t.Errorf("stderr = %q, want %q", errOut, want)
	}
}

func TestExecuteFmtStdin(t *testing.T) {
	s := testSettings()
	out, _, err := runFmtTest(t, s, nil, "{a;\nb}")
	if err != nil {
		t.Fatal(err)
	}
	if out != "{\n  a;\n  b;\n};\n" {
		t.Errorf("stdout = %q", out)
	}

	tab := 4
	s.overrides.TabWidth = &tab
	out, _, err = runFmtTest(t, s, []string{"-"}, "{a;\nb}")
	if err != nil {
		t.Fatal(err)
	}
	if out != "{\n    a;\n    b;\n};\n" {
		t.Errorf("stdout with tab width 4 = %q", out)
	}
}

func TestExecuteFmtDiff(t *testing.T) {
	path := writeSource(t, "1 +   5")
	s := testSettings()
	s.diff = true
	out, _, err := runFmtTest(t, s, []string{path}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "--- ") || !strings.Contains(out, "1 + 5") {
		t.Errorf("diff output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1 +   5" {
		t.Errorf("--diff rewrote the file: %q", data)
	}
}

func TestExecuteFmtJSON(t *testing.T) {
	path := writeSource(t, "1 +   5")
	s := testSettings()
	s.check = true
	s.outputFormat = "json"
	out, _, err := runFmtTest(t, s, []string{path}, "")
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d (%v), want 1", exitCode(err), err)
	}
	var payload fmtJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if !payload.Check || len(payload.Files) != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	want := fmtFileJSON{Path: payload.Files[0].Path, Changed: true}
	if diff := cmp.Diff(want, payload.Files[0]); diff != "" {
		t.Errorf("file entry mismatch (-want +got):\n%s", diff)
	}
	if payload.Diagnostics.Count != 1 || payload.Diagnostics.Diagnostics[0].Severity != "WARNING" {
		t.Errorf("diagnostics = %+v", payload.Diagnostics)
	}
}

func TestExecuteFmtParseError(t *testing.T) {
	path := writeSource(t, "f(a")
	_, errOut, err := runFmtTest(t, testSettings(), []string{path}, "")
	if exitCode(err) != 2 {
		t.Fatalf("exit code = %d (%v), want 2", exitCode(err), err)
	}
	if errOut == "" {
		t.Error("parse error was not reported")
	}
}

func TestExecuteFmtNoFiles(t *testing.T) {
	_, _, err := runFmtTest(t, testSettings(), []string{t.TempDir()}, "")
	if err == nil || exitCode(err) != -1 {
		t.Errorf("err = %v, want a plain error", err)
	}
}
