package rules

import (
	"fmt"
	"strings"

	"mofmt/internal/token"
	"mofmt/internal/tree"
)

// Cursor points at one sibling inside the filtered child list of a group.
type Cursor struct {
	Tree   *tree.Tree
	Parent tree.GroupKind
	Sibs   []tree.NodeID
	Index  int
}

// Node returns the node under the cursor.
func (c Cursor) Node() *tree.Node {
	return c.Tree.Node(c.Sibs[c.Index])
}

// ID returns the arena id under the cursor.
func (c Cursor) ID() tree.NodeID {
	return c.Sibs[c.Index]
}

// Left returns the previous sibling, if any.
func (c Cursor) Left() (Cursor, bool) {
	if c.Index == 0 {
		return c, false
	}
	c.Index--
	return c, true
}

// Right returns the next sibling, if any.
func (c Cursor) Right() (Cursor, bool) {
	if c.Index+1 >= len(c.Sibs) {
		return c, false
	}
	c.Index++
	return c, true
}

// PatternKind enumerates the pattern shapes.
type PatternKind uint8

const (
	PatAny PatternKind = iota
	PatToken
	PatGroup
	PatText
	PatKeyword
	PatInGroup
	PatLeft
	PatCustom
	PatAnd
	PatOr
	PatNot
)

// Pattern matches one side of a sibling pair.
type Pattern struct {
	Kind   PatternKind
	Tokens []token.Kind
	Groups []tree.GroupKind
	Texts  []string
	Sub    []Pattern
	Name   string // для PatCustom
	Pred   func(Cursor) bool
}

func Any() Pattern { return Pattern{Kind: PatAny} }

// Tok matches leaves of any of the given kinds.
func Tok(kinds ...token.Kind) Pattern { return Pattern{Kind: PatToken, Tokens: kinds} }

// Grp matches groups of any of the given kinds.
func Grp(kinds ...tree.GroupKind) Pattern { return Pattern{Kind: PatGroup, Groups: kinds} }

// AnyGroup matches every bracket group.
func AnyGroup() Pattern { return Grp(tree.Paren, tree.Curly, tree.Square, tree.Angle) }

// Text matches leaves whose text is one of texts.
func Text(texts ...string) Pattern { return Pattern{Kind: PatText, Texts: texts} }

// Keyword matches identifiers spelled as keywords.
func Keyword() Pattern { return Pattern{Kind: PatKeyword} }

// InGroup restricts a match to siblings of the given enclosing group kinds.
func InGroup(kinds ...tree.GroupKind) Pattern { return Pattern{Kind: PatInGroup, Groups: kinds} }

// LeftIs matches when the previous sibling exists and matches p.
func LeftIs(p Pattern) Pattern { return Pattern{Kind: PatLeft, Sub: []Pattern{p}} }

// Custom wraps an arbitrary predicate under a name shown by Table.
func Custom(name string, pred func(Cursor) bool) Pattern {
	return Pattern{Kind: PatCustom, Name: name, Pred: pred}
}

func And(ps ...Pattern) Pattern { return Pattern{Kind: PatAnd, Sub: ps} }
func Or(ps ...Pattern) Pattern  { return Pattern{Kind: PatOr, Sub: ps} }
func Not(p Pattern) Pattern     { return Pattern{Kind: PatNot, Sub: []Pattern{p}} }

// Match reports whether the node under c matches p.
func (p Pattern) Match(c Cursor) bool {
	n := c.Node()
	switch p.Kind {
	case PatAny:
		return true
	case PatToken:
		if n.IsGroup {
			return false
		}
		for _, k := range p.Tokens {
			if n.Tok.Kind == k {
				return true
			}
		}
		return false
	case PatGroup:
		if !n.IsGroup {
			return false
		}
		for _, g := range p.Groups {
			if n.Group == g {
				return true
			}
		}
		return false
	case PatText:
		if n.IsGroup {
			return false
		}
		for _, s := range p.Texts {
			if n.Tok.Text == s {
				return true
			}
		}
		return false
	case PatKeyword:
		return !n.IsGroup && n.Tok.IsKeyword()
	case PatInGroup:
		for _, g := range p.Groups {
			if c.Parent == g {
				return true
			}
		}
		return false
	case PatLeft:
		l, ok := c.Left()
		return ok && p.Sub[0].Match(l)
	case PatCustom:
		return p.Pred(c)
	case PatAnd:
		for _, s := range p.Sub {
			if !s.Match(c) {
				return false
			}
		}
		return true
	case PatOr:
		for _, s := range p.Sub {
			if s.Match(c) {
				return true
			}
		}
		return false
	case PatNot:
		return !p.Sub[0].Match(c)
	}
	return false
}

func (p Pattern) String() string {
	switch p.Kind {
	case PatAny:
		return "_"
	case PatToken:
		return joinStrings(p.Tokens, "|")
	case PatGroup:
		return joinStrings(p.Groups, "|")
	case PatText:
		quoted := make([]string, len(p.Texts))
		for i, s := range p.Texts {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return strings.Join(quoted, "|")
	case PatKeyword:
		return "keyword"
	case PatInGroup:
		return "in(" + joinStrings(p.Groups, "|") + ")"
	case PatLeft:
		return "left(" + p.Sub[0].String() + ")"
	case PatCustom:
		return p.Name
	case PatAnd:
		return "(" + joinStrings(p.Sub, " & ") + ")"
	case PatOr:
		return "(" + joinStrings(p.Sub, " | ") + ")"
	case PatNot:
		return "!" + p.Sub[0].String()
	}
	return "?"
}

func joinStrings[T fmt.Stringer](items []T, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, sep)
}
