package driver

import (
	"context"
	"fmt"
	"strings"

	"mofmt/internal/format"
	"mofmt/internal/trace"
	"mofmt/internal/tree"
)

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string // "read" или "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotIdempotentError reports output that changes when formatted again.
type NotIdempotentError struct {
	First  string
	Second string
	// Line is the first 1-based line where the two outputs differ.
	Line int
}

func (e *NotIdempotentError) Error() string {
	return fmt.Sprintf("formatting is not idempotent: second pass differs at line %d", e.Line)
}

// VerifyIdempotent formats src and then formats the result again. It
// returns the first output, or a *NotIdempotentError when the passes
// disagree.
func VerifyIdempotent(ctx context.Context, src string, opts format.Options) (string, error) {
	out, err := format.FormatContext(ctx, src, opts)
	if err != nil {
		return "", err
	}
	if err := verifyOutput(ctx, out, opts); err != nil {
		return "", err
	}
	return out, nil
}

func verifyOutput(ctx context.Context, out string, opts format.Options) error {
	span, ctx := trace.StartPhase(ctx, trace.PhaseVerify)
	again, err := format.FormatContext(ctx, out, opts)
	if err != nil {
		span.End("error")
		// уже отформатированный текст обязан разбираться снова
		return &format.InternalError{Node: tree.NoNode, Msg: "reformat failed: " + err.Error()}
	}
	if again != out {
		span.End("differs")
		return &NotIdempotentError{First: out, Second: again, Line: firstDiffLine(out, again)}
	}
	span.End("")
	return nil
}

// firstDiffLine returns the 1-based line of the first byte where a and b differ.
func firstDiffLine(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return strings.Count(a[:i], "\n") + 1
}

// firstDiffOffset returns the byte offset of the first difference, or -1
// when a and b are equal.
func firstDiffOffset(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) == len(b) {
		return -1
	}
	return n
}
