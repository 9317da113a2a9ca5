// Package diag defines the diagnostic model shared by the formatter phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by
//     the lexer, the tree builder, the printer and the driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or rendering.
//
// # Scope
//
// Package diag does not format anything and performs no IO. Rendering lives
// in internal/diagfmt; collection per file lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Primary – the source.Span pointing at the issue.
//   - Notes – optional secondary spans with context.
//   - Fixes – optional whole-text edits; `mofmt fmt --check` attaches the
//     formatted text as a fix so that editors can apply it.
//
// Keep the model deterministic: the driver caches and serialises diagnostics.
package diag
