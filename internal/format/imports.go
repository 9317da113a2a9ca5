package format

import (
	"slices"
	"strings"

	"mofmt/internal/token"
	"mofmt/internal/tree"
)

type importStmt struct {
	start, end int // inclusive indices into the root child list
	path       string
}

// SortImports reorders each run of adjacent top-level `import ... ;`
// statements by import path. Statements in a run are separated only by
// spaces and single line breaks; a blank line or a comment ends the run.
// An import right after a prettier-ignore comment stays in place and is
// not part of any run. The whitespace between statements stays where it was.
func SortImports(t *tree.Tree) *tree.Tree {
	kids := t.Children(t.Root)
	runs := importRuns(t, kids)

	changed := false
	out := make([]tree.NodeID, 0, len(kids))
	next := 0
	for _, run := range runs {
		sorted := slices.Clone(run)
		slices.SortStableFunc(sorted, func(a, b importStmt) int {
			return strings.Compare(a.path, b.path)
		})
		if slices.Equal(sorted, run) {
			continue
		}
		changed = true

		out = append(out, kids[next:run[0].start]...)
		for i, s := range sorted {
			out = append(out, kids[s.start:s.end+1]...)
			if i+1 < len(run) {
				out = append(out, kids[run[i].end+1:run[i+1].start]...)
			}
		}
		next = run[len(run)-1].end + 1
	}
	if !changed {
		return t
	}
	out = append(out, kids[next:]...)
	return t.WithRootChildren(out)
}

func importRuns(t *tree.Tree, kids []tree.NodeID) [][]importStmt {
	var (
		runs [][]importStmt
		cur  []importStmt
	)
	closeRun := func() {
		if len(cur) > 1 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	afterIgnore := false
	for i := 0; i < len(kids); i++ {
		n := t.Node(kids[i])
		switch {
		case n.IsWhitespace():
			if n.IsToken(token.MultiLine) {
				closeRun()
			}
			continue
		case !n.IsToken(token.Ident) || n.Tok.Text != "import":
			closeRun()
			afterIgnore = n.IsComment() && isIgnoreComment(t, kids[i])
			continue
		}

		stmt, ok := scanImport(t, kids, i)
		switch {
		case !ok:
			closeRun()
		case afterIgnore:
			// директива защищает именно эту инструкцию
			closeRun()
			i = stmt.end
		default:
			cur = append(cur, stmt)
			i = stmt.end
		}
		afterIgnore = false
	}
	closeRun()
	return runs
}

// scanImport reads `import <pattern> "<path>" ;` starting at kids[i].
func scanImport(t *tree.Tree, kids []tree.NodeID, i int) (importStmt, bool) {
	stmt := importStmt{start: i}
	for j := i + 1; j < len(kids); j++ {
		n := t.Node(kids[j])
		if n.IsGroup {
			continue
		}
		switch {
		case n.Tok.Kind == token.Literal && n.Tok.Lit == token.LitText && stmt.path == "":
			stmt.path = n.Tok.Text
		case n.Tok.Is(token.Delim, ";"):
			stmt.end = j
			return stmt, stmt.path != ""
		case n.Tok.IsComment(), n.Tok.Kind == token.MultiLine:
			return stmt, false
		case n.Tok.Is(token.Ident, "import"):
			return stmt, false
		}
	}
	return stmt, false
}
