package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mofmt/internal/diag"
	"mofmt/internal/source"
)

type palette struct {
	path, err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.FgMagenta),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		prettyOne(w, &items[i], fs, opts, pal)
	}
	if skipped := bag.Len() - len(items); skipped > 0 {
		fmt.Fprintf(w, "... and %d more\n", skipped)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := fmt.Sprintf("%s %s: %s",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if !hasFile(fs, d.Primary) {
		fmt.Fprintf(w, "%s\n", header)
		return
	}

	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := displayPath(f.Path, opts.PathMode, opts.BaseDir)
	fmt.Fprintf(w, "%s: %s\n", pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), header)
	writeContext(w, f, start, end, opts.Context, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !hasFile(fs, n.Span) {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		np, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			displayPath(fs.Get(n.Span.File).Path, opts.PathMode, opts.BaseDir), np.Line, np.Col, n.Msg)
	}
}

// writeContext prints the primary line with ctx lines around it and a
// caret line under the span. Multi-line spans are underlined to the end of
// their first line.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, ctx int, pal palette) {
	first := int(start.Line) - max(ctx, 0)
	first = max(first, 1)
	last := int(start.Line) + max(ctx, 0)
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln is bounded by start.Line + ctx
		if ln > int(start.Line) && text == "" {
			break
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), text)
		if ln != int(start.Line) {
			continue
		}

		col := int(start.Col) - 1
		col = min(max(col, 0), len(text))
		stop := len(text)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(text))
		}
		n := max(runewidth.StringWidth(text[col:max(stop, col)]), 1)
		pad := strings.Repeat(" ", runewidth.StringWidth(text[:col]))
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), pad,
			pal.caret.Sprint("^"+strings.Repeat("~", n-1)))
	}
}
