// Package lexer turns normalized Motoko/Candid text into a flat, lossless
// token stream: whitespace and comments are tokens too, so the texts of all
// tokens concatenate back to the input.
package lexer

import (
	"mofmt/internal/source"
	"mofmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	// открытые скобки: '(', '[', '{' или '<' для угловых групп
	brackets []byte
	prev     token.Kind // последний не-пробельный токен
	// решения opensAngle по смещению '<'; один проход решает и вложенные
	angleOpens map[uint32]bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен, включая пробельные и комментарии.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Pos:  lx.file.Position(lx.cursor.Off),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isSpace(ch) || ch == '\n':
		tok = lx.scanWhitespace()

	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		tok = lx.scanComment()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanQuoted(ch)

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Pos = lx.file.Position(tok.Span.Start)
	if !tok.IsWhitespace() && !tok.IsComment() {
		lx.prev = tok.Kind
	}
	return tok
}

// All лексит файл целиком; EOF в результат не входит.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/3+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
