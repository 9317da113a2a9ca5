package token

import (
	"mofmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Lit  LitKind // только для Literal
	Span source.Span
	Pos  source.LineCol // позиция Span.Start
	Text string
}

// IsWhitespace reports whether the token is a Space, Line or MultiLine run.
func (t Token) IsWhitespace() bool {
	switch t.Kind {
	case Space, Line, MultiLine:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsKeyword reports whether the token is an identifier spelled as a keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == Ident && IsKeyword(t.Text)
}

// HasNewline reports whether the token text spans several lines.
func (t Token) HasNewline() bool {
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			return true
		}
	}
	return false
}

// Is reports whether the token has the given kind and exact text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}
