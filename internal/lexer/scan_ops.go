package lexer

import (
	"mofmt/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// Жадность: сначала длинные операторы, затем короткие. Всё, что
// заканчивается на '=' и не является сравнением, - присваивание.
var multiCharOps = [...]opEntry{
	{"<<>=", token.Assign},
	{"<>>=", token.Assign},
	{"**%=", token.Assign},
	{"<<>", token.Operator},
	{"<>>", token.Operator},
	{"<<=", token.Assign},
	{">>=", token.Assign},
	{"**%", token.Operator},
	{"**=", token.Assign},
	{"+%=", token.Assign},
	{"-%=", token.Assign},
	{"*%=", token.Assign},
	{":=", token.Assign},
	{"+=", token.Assign},
	{"-=", token.Assign},
	{"*=", token.Assign},
	{"/=", token.Assign},
	{"%=", token.Assign},
	{"&=", token.Assign},
	{"|=", token.Assign},
	{"^=", token.Assign},
	{"#=", token.Assign},
	{"==", token.Operator},
	{"!=", token.Operator},
	{"<=", token.Operator},
	{">=", token.Operator},
	{"<:", token.Operator},
	{"<<", token.Operator},
	{">>", token.Operator},
	{"->", token.Operator},
	{"|>", token.Operator},
	{"**", token.Operator},
	{"+%", token.Operator},
	{"-%", token.Operator},
	{"*%", token.Operator},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	// внутри угловой группы '>' всегда закрывает её, даже перед '>' или '='
	if ch == '>' && lx.innermost() == '<' {
		lx.cursor.Bump()
		lx.brackets = lx.brackets[:len(lx.brackets)-1]
		return lx.emit(token.Close, start)
	}

	for _, op := range multiCharOps {
		if op.text[0] == ch && lx.tryLit(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	if ch == '<' && lx.opensAngle() {
		lx.cursor.Bump()
		lx.brackets = append(lx.brackets, '<')
		return lx.emit(token.Open, start)
	}

	lx.cursor.Bump()
	switch ch {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, ch)
		return lx.emit(token.Open, start)
	case ')', ']', '}':
		if n := len(lx.brackets); n > 0 && lx.brackets[n-1] == openerOf(ch) {
			lx.brackets = lx.brackets[:n-1]
		}
		return lx.emit(token.Close, start)
	case ';', ',':
		return lx.emit(token.Delim, start)
	case '.':
		return lx.emit(token.Dot, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '+', '-', '*', '/', '%', '&', '|', '^', '#', '!', '?', '<', '>', '@', '~':
		return lx.emit(token.Operator, start)
	default:
		// неизвестный символ
		tok := lx.emit(token.Unknown, start)
		lx.warnLexUnknown(tok)
		return tok
	}
}

func (lx *Lexer) innermost() byte {
	if n := len(lx.brackets); n > 0 {
		return lx.brackets[n-1]
	}
	return 0
}

func openerOf(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	case '>':
		return '<'
	}
	return 0
}
