package lexer

import (
	"mofmt/internal/diag"
	"mofmt/internal/token"
)

// scanWhitespace коалесцирует пробелы и переводы строк в один токен:
// без '\n' - Space, один '\n' - Line, два и больше - MultiLine.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	newlines := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			newlines++
		} else if !isSpace(b) {
			break
		}
		lx.cursor.Bump()
	}
	switch newlines {
	case 0:
		return lx.emit(token.Space, start)
	case 1:
		return lx.emit(token.Line, start)
	default:
		return lx.emit(token.MultiLine, start)
	}
}

// //... до '\n' (не включая) и /* ... */ с вложенностью.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(token.LineComment, start)
	}

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.BlockComment, start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
	}
	return tok
}
