package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type cmd struct {
	indent int
	mode   mode
	doc    Doc
}

// Options controls rendering.
type Options struct {
	Width       int // целевая ширина строки
	IndentWidth int // пробелов на уровень отступа
}

// Print renders d. Groups are propagated first, so d must not be shared
// with a concurrent Print. Trailing spaces are trimmed at every newline.
func Print(d Doc, opts Options) string {
	PropagateBreaks(d)

	p := printer{width: opts.Width, indentWidth: opts.IndentWidth}
	p.run(d)
	return string(p.out)
}

type printer struct {
	width       int
	indentWidth int

	out             []byte
	pos             int
	shouldRemeasure bool
}

func (p *printer) run(d Doc) {
	cmds := []cmd{{indent: 0, mode: modeBreak, doc: d}}
	for len(cmds) > 0 {
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch v := c.doc.(type) {
		case nil:
		case Text:
			p.out = append(p.out, v...)
			p.pos += runewidth.StringWidth(string(v))

		case Concat:
			for i := len(v) - 1; i >= 0; i-- {
				cmds = append(cmds, cmd{c.indent, c.mode, v[i]})
			}

		case Indent:
			cmds = append(cmds, cmd{c.indent + p.indentWidth, c.mode, v.Contents})

		case *Group:
			if c.mode == modeFlat && !p.shouldRemeasure {
				m := modeFlat
				if v.Break {
					m = modeBreak
				}
				cmds = append(cmds, cmd{c.indent, m, v.Contents})
				break
			}
			p.shouldRemeasure = false
			next := cmd{c.indent, modeFlat, v.Contents}
			if !v.Break && fits(next, cmds, p.width-p.pos, false) {
				cmds = append(cmds, next)
			} else {
				cmds = append(cmds, cmd{c.indent, modeBreak, v.Contents})
			}

		case *Fill:
			cmds = p.fill(c, v.Parts, cmds)

		case IfBreak:
			branch := v.Flat
			if c.mode == modeBreak {
				branch = v.Broken
			}
			if branch != nil {
				cmds = append(cmds, cmd{c.indent, c.mode, branch})
			}

		case LineBreak:
			if c.mode == modeFlat && !v.Hard {
				if !v.Soft {
					p.out = append(p.out, ' ')
					p.pos++
				}
				break
			}
			if c.mode == modeFlat {
				p.shouldRemeasure = true
			}
			p.trim()
			if v.Literal {
				p.out = append(p.out, '\n')
				p.pos = 0
				break
			}
			p.out = append(p.out, '\n')
			p.out = append(p.out, strings.Repeat(" ", c.indent)...)
			p.pos = c.indent

		case BreakParent:
		}
	}
}

// fill packs content parts greedily: a separator breaks only if the next
// content would not fit on the current line.
func (p *printer) fill(c cmd, parts []Doc, cmds []cmd) []cmd {
	if len(parts) == 0 {
		return cmds
	}
	rem := p.width - p.pos
	content := parts[0]
	contentFlat := cmd{c.indent, modeFlat, content}
	contentBreak := cmd{c.indent, modeBreak, content}
	contentFits := fits(contentFlat, nil, rem, true)

	if len(parts) == 1 {
		if contentFits {
			return append(cmds, contentFlat)
		}
		return append(cmds, contentBreak)
	}

	whitespace := parts[1]
	wsFlat := cmd{c.indent, modeFlat, whitespace}
	wsBreak := cmd{c.indent, modeBreak, whitespace}

	if len(parts) == 2 {
		if contentFits {
			return append(cmds, wsFlat, contentFlat)
		}
		return append(cmds, wsBreak, contentBreak)
	}

	remaining := cmd{c.indent, c.mode, &Fill{Parts: parts[2:]}}
	pair := cmd{c.indent, modeFlat, Concat{content, whitespace, parts[2]}}
	switch {
	case fits(pair, nil, rem, true):
		return append(cmds, remaining, wsFlat, contentFlat)
	case contentFits:
		return append(cmds, remaining, wsBreak, contentFlat)
	default:
		return append(cmds, remaining, wsBreak, contentBreak)
	}
}

// trim drops trailing spaces and tabs from the output.
func (p *printer) trim() {
	n := len(p.out)
	for n > 0 && (p.out[n-1] == ' ' || p.out[n-1] == '\t') {
		n--
	}
	p.pos -= len(p.out) - n
	p.out = p.out[:n]
}

// fits reports whether next, followed by the pending commands rest, can be
// printed in width columns up to the first forced line break. With
// mustBeFlat, any already broken group means "does not fit".
func fits(next cmd, rest []cmd, width int, mustBeFlat bool) bool {
	restIdx := len(rest)
	stack := []cmd{next}
	for width >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := c.doc.(type) {
		case Text:
			width -= runewidth.StringWidth(string(v))
		case Concat:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, cmd{c.indent, c.mode, v[i]})
			}
		case *Fill:
			for i := len(v.Parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{c.indent, c.mode, v.Parts[i]})
			}
		case Indent:
			stack = append(stack, cmd{c.indent, c.mode, v.Contents})
		case *Group:
			if mustBeFlat && v.Break {
				return false
			}
			m := c.mode
			if v.Break {
				m = modeBreak
			}
			stack = append(stack, cmd{c.indent, m, v.Contents})
		case IfBreak:
			branch := v.Flat
			if c.mode == modeBreak {
				branch = v.Broken
			}
			if branch != nil {
				stack = append(stack, cmd{c.indent, c.mode, branch})
			}
		case LineBreak:
			if c.mode == modeBreak || v.Hard {
				return true
			}
			if !v.Soft {
				width--
			}
		}
	}
	return false
}
