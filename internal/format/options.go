package format

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions lists the file extensions the formatter accepts.
var Extensions = []string{".mo", ".did"}

// HasSourceExt reports whether path has one of Extensions.
func HasSourceExt(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// TrailingComma selects where trailing commas are injected.
type TrailingComma string

const (
	TrailingAll  TrailingComma = "all"
	TrailingES5  TrailingComma = "es5" // only in square brackets
	TrailingNone TrailingComma = "none"
)

// Options mirrors the prettier options the formatter understands.
type Options struct {
	TabWidth       int
	Semi           bool
	BracketSpacing bool
	TrailingComma  TrailingComma
	PrintWidth     int
	// RemoveLinesAroundCodeBlocks is accepted for compatibility and has no effect.
	RemoveLinesAroundCodeBlocks bool
	SortImports                 bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		TabWidth:       2,
		Semi:           true,
		BracketSpacing: true,
		TrailingComma:  TrailingAll,
		PrintWidth:     80,
	}
}

const (
	maxTabWidth   = 16
	maxPrintWidth = 1 << 16
)

// Validate returns a *ConfigError for the first unsupported value.
func (o Options) Validate() error {
	if o.TabWidth < 1 || o.TabWidth > maxTabWidth {
		return &ConfigError{Option: "tabWidth", Value: o.TabWidth, Msg: fmt.Sprintf("must be in [1, %d]", maxTabWidth)}
	}
	if o.PrintWidth < 1 || o.PrintWidth > maxPrintWidth {
		return &ConfigError{Option: "printWidth", Value: o.PrintWidth, Msg: fmt.Sprintf("must be in [1, %d]", maxPrintWidth)}
	}
	switch o.TrailingComma {
	case TrailingAll, TrailingES5, TrailingNone:
	default:
		return &ConfigError{Option: "trailingComma", Value: string(o.TrailingComma), Msg: `expected "all", "es5" or "none"`}
	}
	return nil
}

// InertOptions names the options that are set but currently do nothing.
func (o Options) InertOptions() []string {
	var out []string
	if o.RemoveLinesAroundCodeBlocks {
		out = append(out, "removeLinesAroundCodeBlocks")
	}
	return out
}

// Fingerprint is a stable textual form of the options, used as a cache key.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("tw=%d;semi=%t;bs=%t;tc=%s;pw=%d;rl=%t;si=%t",
		o.TabWidth, o.Semi, o.BracketSpacing, o.TrailingComma, o.PrintWidth,
		o.RemoveLinesAroundCodeBlocks, o.SortImports)
}

// trailingAllowed reports whether a delimiter may be injected at the end
// of a group that separates its elements with delim.
func (o Options) trailingAllowed(delim string, square bool) bool {
	if delim == ";" {
		return o.Semi
	}
	switch o.TrailingComma {
	case TrailingAll:
		return true
	case TrailingES5:
		return square
	}
	return false
}
