package testkit

import (
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"mofmt/internal/format"
	"mofmt/internal/token"
	"mofmt/internal/tree"
)

// CheckTreeInvariants runs the structural invariants of a token tree:
// 1) leaf tokens, group boundaries included, concatenate to the file content
// 2) leaf spans are contiguous and point into the tree's file
// 3) only the root is Unenclosed; every bounded group has both boundaries
// 4) every child's Parent points back to the group holding it
func CheckTreeInvariants(t *tree.Tree) error {
	if t == nil || t.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(t.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) и 2) за один проход по листьям
	var (
		b       strings.Builder
		next    uint32
		leafErr error
	)
	t.Leaves(func(tok token.Token) {
		if leafErr != nil {
			return
		}
		switch {
		case tok.Span.File != t.File.ID:
			leafErr = fmt.Errorf("token %q points to file %d, want %d", tok.Text, tok.Span.File, t.File.ID)
		case tok.Span.Start != next:
			leafErr = fmt.Errorf("token %q starts at %d, previous ended at %d", tok.Text, tok.Span.Start, next)
		case tok.Span.End > lenContent:
			leafErr = fmt.Errorf("token %q ends beyond content: %d > %d", tok.Text, tok.Span.End, lenContent)
		case t.Source(tok.Span.Start, tok.Span.End) != tok.Text:
			leafErr = fmt.Errorf("token text %q does not match its span %v", tok.Text, tok.Span)
		}
		next = tok.Span.End
		b.WriteString(tok.Text)
	})
	if leafErr != nil {
		return leafErr
	}
	if b.String() != string(t.File.Content) {
		return fmt.Errorf("leaves do not concatenate to the input")
	}

	// 3) и 4)
	for i := range t.Nodes {
		raw, err := safecast.Conv[int32](i)
		if err != nil {
			return fmt.Errorf("node index overflow: %w", err)
		}
		id := tree.NodeID(raw)
		n := t.Node(id)
		if !n.IsGroup {
			continue
		}
		if n.Group == tree.Unenclosed && id != t.Root {
			return fmt.Errorf("node %d is Unenclosed but not the root", id)
		}
		if n.Group.Bounded() && (n.Open.Text == "" || n.Close.Text == "") {
			return fmt.Errorf("group %d (%s) lacks a boundary token", id, n.Group)
		}
		if n.Group == tree.Comment {
			if len(n.Children) != 1 || !t.Node(n.Children[0]).IsToken(token.BlockComment) {
				return fmt.Errorf("comment group %d must hold exactly one block comment", id)
			}
		}
		for _, child := range n.Children {
			if p := t.Node(child).Parent; p != id {
				return fmt.Errorf("node %d has parent %d, want %d", child, p, id)
			}
		}
	}
	if root := t.Node(t.Root); root.Parent != tree.NoNode || root.Group != tree.Unenclosed {
		return fmt.Errorf("root %d is malformed", t.Root)
	}
	return nil
}

// CheckFormatted formats src and checks the output contract: failures
// produce nothing, output is empty or ends in exactly one newline, no line
// carries trailing blanks, visible text survives and a second pass changes
// nothing.
func CheckFormatted(src string, opts format.Options) error {
	out, err := format.Format(src, opts)
	if err != nil {
		if out != "" {
			return fmt.Errorf("partial output on error %v", err)
		}
		return nil
	}
	if out != "" && (!strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n")) {
		return fmt.Errorf("output must end in exactly one newline: %q", out)
	}
	for i, line := range strings.Split(out, "\n") {
		if strings.TrimRight(line, " \t") != line {
			return fmt.Errorf("line %d has trailing blanks: %q", i+1, line)
		}
	}
	if !opts.SortImports {
		// сортировка импортов переставляет текст, сравнивать нечего
		normalized, err := format.Normalized(src, opts)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		if err := CheckPreserved(normalized, out); err != nil {
			return err
		}
	}
	again, err := format.Format(out, opts)
	if err != nil {
		return fmt.Errorf("formatted output does not parse: %w", err)
	}
	if again != out {
		return fmt.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", out, again)
	}
	return nil
}

// commentMarks are dropped before comparing: line comments inside type
// arguments are rewritten as block comments.
var commentMarks = strings.NewReplacer("//", "", "/*", "", "*/", "")

// visibleText strips whitespace, delimiters and comment markers.
func visibleText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ';' || r == ',' {
			return -1
		}
		return r
	}, s)
	return commentMarks.Replace(s)
}

// CheckPreserved reports an error when out differs from the normalized
// input in anything but whitespace, delimiters and comment markers.
func CheckPreserved(normalized, out string) error {
	want, got := visibleText(normalized), visibleText(out)
	if want == got {
		return nil
	}
	i := 0
	for i < len(want) && i < len(got) && want[i] == got[i] {
		i++
	}
	return fmt.Errorf("visible text differs at byte %d:\ninput:  %q\noutput: %q", i, excerpt(want, i), excerpt(got, i))
}

func excerpt(s string, at int) string {
	return s[max(at-20, 0):min(at+20, len(s))]
}
