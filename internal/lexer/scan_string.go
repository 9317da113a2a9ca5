package lexer

import (
	"mofmt/internal/diag"
	"mofmt/internal/token"
)

// scanQuoted читает "text" (может занимать несколько строк) или 'c'.
// Незакрытая кавычка становится односимвольным токеном Unknown, а лексинг
// продолжается сразу за ней.
func (lx *Lexer) scanQuoted(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			tok := lx.emit(token.Literal, start)
			tok.Lit = token.LitText
			if quote == '\'' {
				tok.Lit = token.LitChar
			}
			return tok
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' && quote == '\'' {
			break
		}
		lx.cursor.Bump()
	}

	lx.cursor.Reset(start)
	lx.cursor.Bump()
	tok := lx.emit(token.Unknown, start)
	lx.warnLex(diag.LexUnterminatedString, tok.Span, "unterminated literal, quote kept as is")
	return tok
}

func (lx *Lexer) warnLexUnknown(tok token.Token) {
	lx.warnLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
}
