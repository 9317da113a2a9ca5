package lexer

import (
	"mofmt/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор. Ключевые слова остаются Ident,
// кроме литералов true/false/null; одиночный '_' - Wild.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		// не буква: один символ Unknown
		if sz > 0 {
			lx.bumpRune()
		} else {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Unknown, start)
		lx.warnLexUnknown(tok)
		return tok
	}

	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	switch tok.Text {
	case "_":
		tok.Kind = token.Wild
	case "true", "false":
		tok.Kind, tok.Lit = token.Literal, token.LitBool
	case "null":
		tok.Kind, tok.Lit = token.Literal, token.LitNull
	}
	return tok
}
