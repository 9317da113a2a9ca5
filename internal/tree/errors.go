package tree

import (
	"fmt"

	"mofmt/internal/diag"
	"mofmt/internal/source"
)

// ParseError reports unbalanced brackets or invalid lexical input.
type ParseError struct {
	Code diag.Code
	Span source.Span
	Pos  source.LineCol
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Diagnostic converts the error into a diag record.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}
