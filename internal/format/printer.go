package format

import (
	"fmt"
	"strings"

	"mofmt/internal/doc"
	"mofmt/internal/normalize"
	"mofmt/internal/rules"
	"mofmt/internal/token"
	"mofmt/internal/tree"
)

const ignoreDirective = "prettier-ignore"

type printer struct {
	t    *tree.Tree
	opts Options
	docs []doc.Doc
	// flat[id] is set for nodes inside an Angle group: such content never
	// breaks and line comments become block comments.
	flat []bool
	// blankBlock[id] marks an empty curly group kept open over a blank
	// line: it is always broken.
	blankBlock []bool
}

// buildDoc lays the tree out as a document. Nodes are visited in reverse
// arena order so every child document exists before its parent needs it.
func buildDoc(t *tree.Tree, opts Options) (d doc.Doc, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Node: tree.NoNode, Msg: fmt.Sprint(r)}
		}
	}()

	p := &printer{
		t:    t,
		opts: opts,
		docs:       make([]doc.Doc, t.Len()),
		flat:       make([]bool, t.Len()),
		blankBlock: make([]bool, t.Len()),
	}
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Parent == tree.NoNode {
			continue
		}
		parent := &t.Nodes[n.Parent]
		p.flat[i] = p.flat[n.Parent] || parent.Group == tree.Angle
	}

	for i := t.Len() - 1; i >= 0; i-- {
		id := tree.NodeID(i)
		if !t.Nodes[i].IsGroup {
			p.docs[i] = p.leaf(id)
			continue
		}
		gd, err := p.group(id)
		if err != nil {
			return nil, err
		}
		p.docs[i] = gd
	}
	return p.docs[t.Root], nil
}

func (p *printer) leaf(id tree.NodeID) doc.Doc {
	tok := p.t.Node(id).Tok
	switch tok.Kind {
	case token.Space, token.Line, token.MultiLine:
		return nil
	case token.LineComment:
		if p.flat[id] {
			return doc.Text("/* " + strings.TrimSpace(strings.TrimPrefix(tok.Text, "//")) + " */")
		}
	}
	return textDoc(tok.Text)
}

// textDoc keeps embedded newlines (multi-line text literals, block
// comments, verbatim segments) without re-indenting the following lines.
func textDoc(s string) doc.Doc {
	if !strings.Contains(s, "\n") {
		return doc.Text(s)
	}
	lines := strings.Split(s, "\n")
	parts := make(doc.Concat, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, doc.LiteralLine)
		}
		if line != "" {
			parts = append(parts, doc.Text(line))
		}
	}
	return parts
}

// groupLayout is the per-group state shared by the segment loop and the
// trailing-delimiter decision.
type groupLayout struct {
	kind   tree.GroupKind
	flatIn bool
	sibs   []tree.NodeID
	gaps   []rules.Gap // gaps[i]: whitespace before sibs[i]
	blank  bool        // a MultiLine child was dropped
	delim  string
}

func (p *printer) group(id tree.NodeID) (doc.Doc, error) {
	n := p.t.Node(id)
	switch n.Group {
	case tree.Comment:
		if len(n.Children) != 1 {
			return nil, p.internal(id, "comment group with %d children", len(n.Children))
		}
		return textDoc(p.t.CommentText(id)), nil
	case tree.Unenclosed, tree.Paren, tree.Curly, tree.Square, tree.Angle:
	default:
		return nil, p.internal(id, "unknown group kind %d", n.Group)
	}
	if n.Group == tree.Unenclosed && id != p.t.Root {
		return nil, p.internal(id, "unenclosed group below the root")
	}

	g := p.layout(id)

	var open, closing doc.Doc
	if n.Group.Bounded() {
		open, closing = doc.Text(n.Open.Text), doc.Text(n.Close.Text)
	}

	if len(g.sibs) == 0 {
		switch {
		case n.Group == tree.Unenclosed:
			return nil, nil
		case n.Group == tree.Curly && g.blank && !g.flatIn:
			// пустой блок с пустой строкой внутри сохраняет её
			p.blankBlock[id] = true
			return doc.Cat(open, doc.Indented(doc.HardLine), doc.HardLine, closing), nil
		}
		return doc.Cat(open, closing), nil
	}

	bracketList := n.Group == tree.Paren || n.Group == tree.Square
	if bracketList && len(g.sibs) == 1 && p.isBracketGroup(g.sibs[0]) {
		return doc.Cat(open, p.docs[g.sibs[0]], closing), nil
	}

	forced := !g.flatIn && p.t.ForcesBreak(id)
	elements, hasComment := p.countElements(g.sibs)
	single := bracketList && elements == 1 && !hasComment && !forced

	results, verbatimLast := p.segments(g)
	if d := p.trailing(g, single, verbatimLast, elements); d != nil {
		results = append(results, d)
	}
	body := doc.Concat(results)

	switch {
	case n.Group == tree.Unenclosed:
		return doc.NewGroup(body, forced), nil
	case g.flatIn:
		if n.Group == tree.Curly && p.opts.BracketSpacing {
			return doc.Cat(open, doc.Text(" "), body, doc.Text(" "), closing), nil
		}
		return doc.Cat(open, body, closing), nil
	case single:
		return doc.Cat(open, body, closing), nil
	}

	pad := doc.SoftLine
	if n.Group == tree.Curly && p.opts.BracketSpacing {
		pad = doc.Line
	}
	return doc.NewGroup(doc.Cat(open, doc.Indented(doc.Cat(pad, body)), pad, closing), forced), nil
}

// layout drops whitespace children and records the widest gap class in
// front of every surviving child.
func (p *printer) layout(id tree.NodeID) groupLayout {
	n := p.t.Node(id)
	g := groupLayout{
		kind:   n.Group,
		flatIn: p.flat[id] || n.Group == tree.Angle,
		sibs:   make([]tree.NodeID, 0, len(n.Children)),
		gaps:   make([]rules.Gap, 0, len(n.Children)),
		delim:  ",",
	}
	if n.Group == tree.Unenclosed || n.Group == tree.Curly {
		g.delim = ";"
	}

	gap := rules.GapNone
	for _, c := range n.Children {
		cn := p.t.Node(c)
		if cn.IsToken(token.Delim) && (len(g.sibs) == 0 || p.t.Node(g.sibs[len(g.sibs)-1]).IsToken(token.Delim)) {
			// пустые элементы: `{;}`, `(a,,b)`
			continue
		}
		if !cn.IsWhitespace() {
			g.sibs = append(g.sibs, c)
			g.gaps = append(g.gaps, gap)
			gap = rules.GapNone
			continue
		}
		var cg rules.Gap
		switch cn.Tok.Kind {
		case token.MultiLine:
			cg = rules.GapBlank
			g.blank = true
		case token.Line:
			cg = rules.GapLine
		default:
			cg = rules.GapSpace
		}
		gap = max(gap, cg)
	}
	return g
}

// segments emits the children: separators and comments go straight into
// the result list, everything between them is packed into one fill.
func (p *printer) segments(g groupLayout) (results []doc.Doc, verbatimLast bool) {
	var seg []doc.Doc
	flush := func() {
		if len(seg) > 0 {
			results = append(results, doc.NewFill(seg))
			seg = nil
		}
	}

	last := len(g.sibs) - 1
	ignoreNext := false
	for i := 0; i <= last; i++ {
		a := g.sibs[i]
		an := p.t.Node(a)
		isDelim := an.IsToken(token.Delim)
		isSep := isDelim || an.IsComment()
		if isSep {
			flush()
		}

		if ignoreNext && !isSep {
			j := i
			for j < last && !p.isSeparator(g.sibs[j+1]) {
				j++
			}
			results = append(results, textDoc(p.t.Source(p.t.LocStart(a), p.t.LocEnd(g.sibs[j]))))
			verbatimLast = j == last
			ignoreNext = false
			i = j
			if i < last {
				results = append(results, p.separator(g, i, false))
			}
			continue
		}

		ignore := an.IsComment() && isIgnoreComment(p.t, a)

		switch {
		case isDelim && i == last:
			// завершающий разделитель решает trailing
		case isDelim:
			results = append(results, doc.Text(g.delim))
		case isSep:
			results = append(results, p.docs[a])
		default:
			seg = append(seg, p.terminated(g, i))
		}

		if i < last {
			sep := p.separator(g, i, ignore)
			if isSep {
				results = append(results, sep)
			} else {
				seg = append(seg, sep)
			}
		}
		ignoreNext = ignore
	}
	flush()
	return results, verbatimLast
}

// separator resolves the rule directive between sibs[i] and sibs[i+1].
// exact bypasses the rule table and reproduces the source gap.
func (p *printer) separator(g groupLayout, i int, exact bool) doc.Doc {
	d := rules.Exact
	if !exact {
		d = rules.Spacing(p.t, g.kind, g.sibs, i)
	}
	res := d.Resolve(g.gaps[i+1])

	if g.flatIn {
		switch res {
		case rules.ResNone, rules.ResSoft:
			return nil
		}
		return doc.Text(" ")
	}

	switch res {
	case rules.ResSpace:
		return doc.Text(" ")
	case rules.ResSoft:
		return doc.SoftLine
	case rules.ResLine:
		return doc.Line
	case rules.ResHard:
		return doc.HardLine
	case rules.ResBlank:
		return doc.Cat(doc.HardLine, doc.HardLine)
	}
	return nil
}

// terminated returns the document of sibs[i]. A curly block that breaks
// right before a statement on the next line would leave its '}' alone on
// a line, and the next run would infer a terminator there; the block gets
// that terminator now.
func (p *printer) terminated(g groupLayout, i int) doc.Doc {
	id := g.sibs[i]
	d := p.docs[id]
	if !p.needsTerminator(g, i) {
		return d
	}
	term := doc.Text(g.delim)
	if p.blankBlock[id] {
		return doc.Cat(d, term)
	}
	if grp, ok := d.(*doc.Group); ok {
		return doc.NewGroup(doc.Cat(grp.Contents, doc.IfBreaking(term, nil)), grp.Break)
	}
	return d
}

func (p *printer) needsTerminator(g groupLayout, i int) bool {
	if g.flatIn || !p.opts.Semi || i == len(g.sibs)-1 {
		return false
	}
	if !p.t.Node(g.sibs[i]).IsGroupOf(tree.Curly) {
		return false
	}
	switch rules.Spacing(p.t, g.kind, g.sibs, i).Resolve(g.gaps[i+1]) {
	case rules.ResHard, rules.ResBlank:
	default:
		return false
	}
	for _, s := range g.sibs[i+1:] {
		n := p.t.Node(s)
		switch {
		case n.IsComment():
			continue
		case n.IsToken(token.Delim):
			return false
		case n.IsGroup:
			return !normalize.Continues(n.Open.Text)
		default:
			return !normalize.Continues(n.Tok.Text)
		}
	}
	// дальше только комментарии: следующая строка это закрывающая скобка
	// родителя или конец файла
	return g.kind == tree.Unenclosed
}

// trailing decides the delimiter appended after the last segment. Inside
// bounded groups it only shows when the group breaks; at the root an
// explicit terminator is kept unconditionally.
func (p *printer) trailing(g groupLayout, single, verbatimLast bool, elements int) doc.Doc {
	lastN := p.t.Node(g.sibs[len(g.sibs)-1])
	lastDelim := lastN.IsToken(token.Delim)

	switch {
	case g.flatIn, single, verbatimLast, lastN.IsComment():
		return nil
	case !p.opts.trailingAllowed(g.delim, g.kind == tree.Square):
		return nil
	case g.kind == tree.Curly && p.isRecordExtension(g.sibs):
		return nil
	case g.kind == tree.Curly && len(g.sibs) == 1 && p.isBracketGroup(g.sibs[0]):
		return nil
	case (g.kind == tree.Paren || g.kind == tree.Square) && elements == 1 && !lastDelim:
		return nil
	case g.kind == tree.Unenclosed && lastDelim:
		return doc.Text(g.delim)
	}
	return doc.IfBreaking(doc.Text(g.delim), nil)
}

// isRecordExtension matches `{ a with b = c }` and `{ a and b }`: a curly
// group with `with` and `=`, or with `and`, and no delimiters.
func (p *printer) isRecordExtension(sibs []tree.NodeID) bool {
	var with, assign, and bool
	for _, s := range sibs {
		n := p.t.Node(s)
		if n.IsGroup {
			continue
		}
		switch {
		case n.Tok.Kind == token.Delim:
			return false
		case n.Tok.Is(token.Ident, "with"):
			with = true
		case n.Tok.Is(token.Ident, "and"):
			and = true
		case n.Tok.Is(token.Assign, "="):
			assign = true
		}
	}
	return (with && assign) || and
}

// countElements counts the delimiter-separated runs of non-comment nodes.
func (p *printer) countElements(sibs []tree.NodeID) (elements int, hasComment bool) {
	inElem := false
	for _, s := range sibs {
		n := p.t.Node(s)
		switch {
		case n.IsToken(token.Delim):
			inElem = false
		case n.IsComment():
			hasComment = true
			inElem = false
		case !inElem:
			elements++
			inElem = true
		}
	}
	return elements, hasComment
}

func (p *printer) isSeparator(id tree.NodeID) bool {
	n := p.t.Node(id)
	return n.IsToken(token.Delim) || n.IsComment()
}

func (p *printer) isBracketGroup(id tree.NodeID) bool {
	n := p.t.Node(id)
	return n.IsGroup && n.Group.Bounded()
}

func isIgnoreComment(t *tree.Tree, id tree.NodeID) bool {
	text := t.CommentText(id)
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}
	return strings.TrimSpace(text) == ignoreDirective
}

func (p *printer) internal(id tree.NodeID, format string, args ...any) *InternalError {
	n := p.t.Node(id)
	sp := n.Tok.Span
	if n.IsGroup {
		sp = n.Open.Span
	}
	return &InternalError{Node: id, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
