package format

import (
	"context"
	"strings"

	"mofmt/internal/doc"
	"mofmt/internal/normalize"
	"mofmt/internal/trace"
	"mofmt/internal/tree"
)

// Format returns the canonical layout of src. On error nothing is
// returned: the result is either complete or empty.
func Format(src string, opts Options) (string, error) {
	return FormatContext(context.Background(), src, opts)
}

// FormatContext is Format with phase spans reported to the tracer in ctx.
func FormatContext(ctx context.Context, src string, opts Options) (string, error) {
	d, err := documentContext(ctx, src, opts)
	if err != nil {
		return "", err
	}

	span, _ := trace.StartPhase(ctx, trace.PhaseRender)
	out := doc.Print(d, doc.Options{Width: opts.PrintWidth, IndentWidth: opts.TabWidth})
	span.End("")

	out = strings.TrimRight(out, " \t\n")
	if out != "" {
		out += "\n"
	}
	return out, nil
}

// Check reports whether src is already formatted.
func Check(src string, opts Options) (bool, error) {
	out, err := Format(src, opts)
	if err != nil {
		return false, err
	}
	return out == src, nil
}

// Document returns the unrendered layout document of src, for debugging.
func Document(src string, opts Options) (doc.Doc, error) {
	return documentContext(context.Background(), src, opts)
}

// Prepare validates opts, normalizes src and builds its token tree. The
// tree is what the printer consumes.
func Prepare(ctx context.Context, src string, opts Options) (*tree.Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	span, _ := trace.StartPhase(ctx, trace.PhaseNormalize)
	text, err := Normalized(src, opts)
	span.End("")
	if err != nil {
		return nil, err
	}

	span, _ = trace.StartPhase(ctx, trace.PhaseTokenize)
	t, err := tree.Tokenize(text)
	if err != nil {
		span.End("error")
		return nil, err
	}
	span.SetNodes(t.Len()).End("")

	if opts.SortImports {
		span, _ = trace.StartPhase(ctx, trace.PhaseSortImports)
		t = SortImports(t)
		span.End("")
	}
	return t, nil
}

// Normalized returns the text the tokenizer sees for src. Positions in a
// *ParseError refer to it.
func Normalized(src string, opts Options) (string, error) {
	text, err := normalize.Normalize(src, normalize.Options{TabWidth: opts.TabWidth, Semi: opts.Semi})
	if err != nil {
		return "", &InternalError{Node: tree.NoNode, Msg: "normalize: " + err.Error()}
	}
	return strings.TrimSpace(text), nil
}

func documentContext(ctx context.Context, src string, opts Options) (doc.Doc, error) {
	t, err := Prepare(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	span, _ := trace.StartPhase(ctx, trace.PhasePrint)
	d, err := buildDoc(t, opts)
	span.End("")
	return d, err
}
