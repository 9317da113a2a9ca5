package tree

import (
	"fmt"

	"fortio.org/safecast"

	"mofmt/internal/diag"
	"mofmt/internal/lexer"
	"mofmt/internal/source"
	"mofmt/internal/token"
)

// Tokenize builds a tree from in-memory text.
func Tokenize(text string) (*Tree, error) {
	fs := source.NewFileSet()
	return Build(fs.Get(fs.AddVirtual("input.mo", []byte(text))), nil)
}

// Build lexes file and nests its tokens into groups using an explicit
// stack. Lexer diagnostics are forwarded to reporter (may be nil); the first
// lexical or bracket error aborts the build with a *ParseError.
func Build(file *source.File, reporter diag.Reporter) (*Tree, error) {
	bag := diag.NewBag(0)
	var r diag.Reporter = diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: r})
	toks := lx.All()
	defer forward(bag, reporter)

	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return nil, parseError(file, d.Code, d.Primary, d.Message)
		}
	}

	b := builder{
		t: &Tree{File: file, Nodes: make([]Node, 0, len(toks)+1)},
	}
	b.t.Root = b.add(Node{IsGroup: true, Group: Unenclosed, Parent: NoNode})
	b.stack = append(b.stack, b.t.Root)

	for _, tok := range toks {
		switch tok.Kind {
		case token.Open:
			kind, _ := groupKindOf(tok.Text[0])
			id := b.add(Node{IsGroup: true, Group: kind, Open: tok, Parent: b.top()})
			b.attach(id)
			b.stack = append(b.stack, id)

		case token.Close:
			if len(b.stack) == 1 {
				return nil, parseError(file, diag.SynUnexpectedToken, tok.Span,
					fmt.Sprintf("unexpected '%s'", tok.Text))
			}
			top := b.t.Node(b.top())
			if _, closer := groupKindOf(top.Open.Text[0]); closer != tok.Text[0] {
				return nil, parseError(file, diag.SynMismatchedClose, tok.Span,
					fmt.Sprintf("mismatched '%s', expected '%c' to close '%s' at %d:%d",
						tok.Text, closer, top.Open.Text, top.Open.Pos.Line, top.Open.Pos.Col))
			}
			top.Close = tok
			b.stack = b.stack[:len(b.stack)-1]

		case token.BlockComment:
			id := b.add(Node{IsGroup: true, Group: Comment, Parent: b.top()})
			b.attach(id)
			leaf := b.add(Node{Tok: tok, Parent: id})
			b.t.Node(id).Children = []NodeID{leaf}

		default:
			b.attach(b.add(Node{Tok: tok, Parent: b.top()}))
		}
	}

	if len(b.stack) > 1 {
		open := b.t.Node(b.top()).Open
		return nil, parseError(file, diag.SynUnclosedDelimiter, open.Span,
			fmt.Sprintf("unclosed '%s'", open.Text))
	}
	return b.t, nil
}

type builder struct {
	t     *Tree
	stack []NodeID
}

func (b *builder) add(n Node) NodeID {
	id, err := safecast.Conv[int32](len(b.t.Nodes))
	if err != nil {
		panic(fmt.Errorf("tree arena overflow: %w", err))
	}
	b.t.Nodes = append(b.t.Nodes, n)
	return NodeID(id)
}

func (b *builder) top() NodeID {
	return b.stack[len(b.stack)-1]
}

func (b *builder) attach(id NodeID) {
	parent := b.t.Node(b.top())
	parent.Children = append(parent.Children, id)
}

func parseError(file *source.File, code diag.Code, sp source.Span, msg string) *ParseError {
	return &ParseError{Code: code, Span: sp, Pos: file.Position(sp.Start), Msg: msg}
}

func forward(bag *diag.Bag, reporter diag.Reporter) {
	if reporter == nil {
		return
	}
	for _, d := range bag.Items() {
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}
