package lexer

import (
	"mofmt/internal/token"
)

// Поддержка: 0, 1_000, 0xFF_FF, 1.5, 1., 1e10, 1.e-3, 2.5E+7.
// После '.' (индекс кортежа: x.0.1) читаем только цифры, чтобы точка
// осталась отдельным токеном Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.prev == token.Dot {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Literal, start)
		tok.Lit = token.LitNat
		return tok
	}

	lit := token.LitNat

	// шестнадцатеричные
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') && isHex(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		goto emit
	}

	// десятичная целая часть
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть; одиночная точка без цифр - тоже float "1."
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lit = token.LitFloat
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// экспонента только если за ней есть цифра
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			for range n {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lit = token.LitFloat
		}
	}

emit:
	tok := lx.emit(token.Literal, start)
	tok.Lit = lit
	return tok
}
