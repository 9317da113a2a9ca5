package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mofmt/internal/token"
	"mofmt/internal/tree"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Lit   string `json:"lit,omitempty"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		kind := tok.Kind.String()
		if tok.Kind == token.Literal {
			kind += "(" + tok.Lit.String() + ")"
		}
		if _, err := fmt.Fprintf(w, "%3d: %-18s %-24q at %d:%d [%d,%d)\n",
			i+1, kind, tok.Text, tok.Pos.Line, tok.Pos.Col, tok.Span.Start, tok.Span.End); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Pos.Line,
			Col:   tok.Pos.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		if tok.Kind == token.Literal {
			out.Lit = tok.Lit.String()
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTree prints the group structure of t, one node per line, indented
// by depth. Whitespace leaves are shown by kind only.
func FormatTree(w io.Writer, t *tree.Tree) error {
	type frame struct {
		id    tree.NodeID
		depth int
	}
	var b strings.Builder
	stack := []frame{{id: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(f.id)
		b.WriteString(strings.Repeat("  ", f.depth))
		switch {
		case n.IsGroup && n.Group.Bounded():
			fmt.Fprintf(&b, "%s %s%s\n", n.Group, n.Open.Text, n.Close.Text)
		case n.IsGroup:
			fmt.Fprintf(&b, "%s\n", n.Group)
		case n.IsWhitespace():
			fmt.Fprintf(&b, "%s\n", n.Tok.Kind)
		default:
			fmt.Fprintf(&b, "%s %q\n", n.Tok.Kind, n.Tok.Text)
		}
		kids := t.Children(f.id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], depth: f.depth + 1})
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
