package rules

import (
	"fmt"

	"mofmt/internal/token"
	"mofmt/internal/tree"
)

// Rule is one row of the spacing table.
type Rule struct {
	Name      string
	Left      Pattern
	Right     Pattern
	Directive Directive
}

func (r Rule) String() string {
	return fmt.Sprintf("%-22s %s , %s => %s", r.Name, r.Left, r.Right, r.Directive)
}

// unaryOps are operators that may bind to the following operand.
var unaryOps = []string{"-", "+", "^", "#", "?"}

var (
	whitespace = Tok(token.Space, token.Line, token.MultiLine)
	comment    = Or(Grp(tree.Comment), Tok(token.BlockComment))
	bracket    = AnyGroup()

	// unary matches a prefix operator: one with no operand on its left.
	unary = And(
		Tok(token.Operator),
		Text(unaryOps...),
		Or(
			Custom("first", func(c Cursor) bool { return c.Index == 0 }),
			LeftIs(Or(
				Tok(token.Operator, token.Delim, token.Assign, token.Colon, token.LineComment),
				Keyword(),
				comment,
			)),
		),
	)

	// touchesLeft matches a sibling that starts exactly where its left neighbour ends.
	touchesLeft = Custom("touches-left", func(c Cursor) bool {
		l, ok := c.Left()
		if !ok {
			return false
		}
		return c.Tree.LocEnd(l.ID()) == c.Tree.LocStart(c.ID())
	})
)

var table = []Rule{
	{"whitespace-left", whitespace, Any(), Nil},
	{"whitespace-right", Any(), whitespace, Nil},

	{"after-line-comment", Tok(token.LineComment), Any(), Keep},
	{"before-line-comment", Any(), Tok(token.LineComment), KeepSpace},

	{"before-delim", Any(), Tok(token.Delim), Nil},

	{"after-comment", comment, Any(), KeepSpace},
	{"before-comment", Any(), comment, KeepSpace},

	{"after-delim", Tok(token.Delim), Any(), KeepWrap},

	{"before-bang", Any(), Text("!"), Nil},

	{"async-star", Text("async", "await"), Text("*"), Nil},
	{"after-async-star", And(Text("*"), LeftIs(Text("async", "await"))), Any(), Space},

	{"do-option", Text("do"), Text("?"), Space},
	{"after-do-option", And(Text("?"), LeftIs(Text("do"))), Any(), Space},

	{"unary", unary, Any(), Exact},

	{"after-operator", Tok(token.Operator), Any(), KeepSpace},
	{"before-operator", Any(), Tok(token.Operator), Space},

	{"after-with", Text("with", "and"), Any(), KeepSpace},
	{"before-with", Any(), Text("with", "and"), Space},

	{"func-args", Text("func"), Grp(tree.Paren, tree.Angle), Nil},
	{"keyword-group", Keyword(), bracket, Space},
	{"type-args", Tok(token.Ident), Grp(tree.Angle), Nil},
	{"call", Tok(token.Ident), Grp(tree.Paren, tree.Square), Exact},

	{"index-chain", Grp(tree.Paren, tree.Square), Grp(tree.Square), Nil},
	{"generic-call", Grp(tree.Angle), Grp(tree.Paren), Nil},
	{"call-chain", Grp(tree.Paren, tree.Square), Grp(tree.Paren), Exact},

	{"after-open", Tok(token.Open), Any(), Nil},
	{"before-close", Any(), Tok(token.Close), Nil},

	{"before-dot", Any(), Tok(token.Dot), Keep},
	{"after-dot", Tok(token.Dot), Any(), Nil},

	{"literal-suffix", Tok(token.Literal), And(Tok(token.Ident), touchesLeft), Nil},

	{"default", Any(), Any(), KeepSpace},
}

// Table returns a copy of the rule table in precedence order.
func Table() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// Match returns the directive of the first rule matching the pair
// (left, left+1) and that rule's index in the table.
func Match(left Cursor) (Directive, int) {
	right, ok := left.Right()
	if !ok {
		return Nil, -1
	}
	for i, r := range table {
		if r.Left.Match(left) && r.Right.Match(right) {
			return r.Directive, i
		}
	}
	// default row always matches
	return KeepSpace, len(table) - 1
}

// Spacing returns the directive between sibs[i] and sibs[i+1] inside a
// group of kind parent.
func Spacing(t *tree.Tree, parent tree.GroupKind, sibs []tree.NodeID, i int) Directive {
	d, _ := Match(Cursor{Tree: t, Parent: parent, Sibs: sibs, Index: i})
	return d
}
