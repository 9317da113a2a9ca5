// Package token defines the lexical token kinds of Motoko and Candid sources.
// Invariants:
//   - Token.Text is the exact source substring; whitespace is kept as tokens
//     (Space, Line, MultiLine) so that the token texts concatenate back to
//     the normalized input.
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are identifiers; IsKeyword classifies them on demand.
package token
