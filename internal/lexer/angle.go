package lexer

// opensAngle решает, начинает ли '<' под курсором угловую группу (параметры
// или аргументы типа). Условия: следом не пробел, не '=', ':', '<', '>', и
// сбалансированная '>' находится раньше ';', непарной закрывающей скобки или
// конца файла. Стрелки, '<:', '<=', '>=', строки и комментарии пропускаются.
func (lx *Lexer) opensAngle() bool {
	off := lx.cursor.Off
	if open, ok := lx.angleOpens[off]; ok {
		return open
	}
	if lx.angleOpens == nil {
		lx.angleOpens = make(map[uint32]bool)
	}
	lx.resolveAngles(lx.file.Content[:lx.cursor.limit()], int(off))
	return lx.angleOpens[off]
}

// angleCandidate is a '<' whose closing '>' is still being looked for.
type angleCandidate struct {
	off   int
	depth int  // bracket depth at the '<'
	ok    bool // the byte after '<' allows a group
}

// resolveAngles scans forward from the '<' at start until its fate is known
// and records the answer for every '<' met on the way. A '<' at bracket
// depth d sees only events at depth d, so its pending '<'s at the same
// depth form a stack: '>' closes the innermost one, while ';', an unmatched
// closer or the end of input rejects all of them.
func (lx *Lexer) resolveAngles(content []byte, start int) {
	var stack []angleCandidate
	brackets := 0
	resolve := func(c angleCandidate, open bool) {
		lx.angleOpens[uint32(c.off)] = open && c.ok // #nosec G115 -- offsets are below the content limit
	}
	// rejectDepth drops every candidate at the current depth
	rejectDepth := func() {
		for len(stack) > 0 && stack[len(stack)-1].depth == brackets {
			resolve(stack[len(stack)-1], false)
			stack = stack[:len(stack)-1]
		}
	}
	push := func(i int) {
		ok := i+1 < len(content)
		if ok {
			switch content[i+1] {
			case ' ', '\t', '\r', '\n', '=', ':', '<', '>':
				ok = false
			}
		}
		stack = append(stack, angleCandidate{off: i, depth: brackets, ok: ok})
	}

	push(start)
	i := start + 1
	for i < len(content) && len(stack) > 0 {
		b := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}
		switch {
		case b == '"' || b == '\'':
			end, ok := skipQuoted(content, i)
			if !ok {
				// незакрытая строка обрывает все сканы сразу
				i = len(content)
				continue
			}
			i = end
			continue
		case b == '/' && next == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		case b == '/' && next == '*':
			i = skipBlockComment(content, i)
			continue
		case b == '-' && next == '>':
			i += 2
			continue
		case b == '<' && (next == ':' || next == '='):
			i += 2
			continue
		case b == '>' && next == '=':
			i += 2
			continue
		case b == '<':
			push(i)
		case b == '>':
			if top := len(stack) - 1; stack[top].depth == brackets {
				resolve(stack[top], true)
				stack = stack[:top]
			}
		case b == '(' || b == '[' || b == '{':
			brackets++
		case b == ')' || b == ']' || b == '}':
			rejectDepth()
			if brackets > 0 {
				brackets--
			}
		case b == ';':
			rejectDepth()
		}
		i++
	}
	for _, c := range stack {
		resolve(c, false)
	}
}

// skipQuoted возвращает позицию сразу за закрывающей кавычкой.
func skipQuoted(content []byte, i int) (int, bool) {
	quote := content[i]
	for i++; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		case '\n':
			if quote == '\'' {
				return i, false
			}
		}
	}
	return i, false
}

func skipBlockComment(content []byte, i int) int {
	depth := 0
	for i < len(content) {
		if i+1 < len(content) {
			switch {
			case content[i] == '/' && content[i+1] == '*':
				depth++
				i += 2
				continue
			case content[i] == '*' && content[i+1] == '/':
				depth--
				i += 2
				if depth == 0 {
					return i
				}
				continue
			}
		}
		i++
	}
	return i
}
