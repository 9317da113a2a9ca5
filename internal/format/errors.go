package format

import (
	"fmt"

	"mofmt/internal/diag"
	"mofmt/internal/source"
	"mofmt/internal/tree"
)

// ParseError reports unbalanced brackets or invalid lexical input.
type ParseError = tree.ParseError

// InternalError reports a tree shape the printer does not expect. It is
// always a bug in the formatter.
type InternalError struct {
	Node tree.NodeID
	Span source.Span
	Msg  string
}

func (e *InternalError) Error() string {
	if e.Node == tree.NoNode {
		return "internal formatter error: " + e.Msg
	}
	return fmt.Sprintf("internal formatter error at node %d: %s", e.Node, e.Msg)
}

// Diagnostic converts the error into a diag record.
func (e *InternalError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.FmtInternal, e.Span, e.Error())
}

// ConfigError reports an unsupported option value. It is returned before
// any formatting work starts.
type ConfigError struct {
	Option string
	Value  any
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value %v for option %s: %s", e.Value, e.Option, e.Msg)
}

// Diagnostic converts the error into a diag record without a location.
func (e *ConfigError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.CfgInvalidValue, source.Span{File: source.NoFile}, e.Error())
}
