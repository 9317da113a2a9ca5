package tree

import (
	"mofmt/internal/token"
)

// NodeID indexes Tree.Nodes.
type NodeID int32

// NoNode is returned where a node is absent.
const NoNode NodeID = -1

// GroupKind is the bracket type of a group.
type GroupKind uint8

const (
	// Unenclosed is the file root; it has no boundary tokens.
	Unenclosed GroupKind = iota
	Paren
	Curly
	Square
	Angle
	// Comment wraps a single block comment token.
	Comment
)

func (g GroupKind) String() string {
	switch g {
	case Unenclosed:
		return "Unenclosed"
	case Paren:
		return "Paren"
	case Curly:
		return "Curly"
	case Square:
		return "Square"
	case Angle:
		return "Angle"
	case Comment:
		return "Comment"
	}
	return "GroupKind(?)"
}

// Bounded reports whether groups of this kind have open/close tokens.
func (g GroupKind) Bounded() bool {
	return g != Unenclosed && g != Comment
}

func groupKindOf(open byte) (GroupKind, byte) {
	switch open {
	case '(':
		return Paren, ')'
	case '{':
		return Curly, '}'
	case '[':
		return Square, ']'
	case '<':
		return Angle, '>'
	}
	return Unenclosed, 0
}

// Node is either a leaf token or a group.
type Node struct {
	IsGroup bool
	Tok     token.Token // leaf only

	Group    GroupKind // group only
	Open     token.Token
	Close    token.Token
	Children []NodeID
	Parent   NodeID
}

// IsToken reports whether n is a leaf of kind k.
func (n *Node) IsToken(k token.Kind) bool {
	return !n.IsGroup && n.Tok.Kind == k
}

// IsGroupOf reports whether n is a group of kind g.
func (n *Node) IsGroupOf(g GroupKind) bool {
	return n.IsGroup && n.Group == g
}

// IsWhitespace reports whether n is a Space, Line or MultiLine leaf.
func (n *Node) IsWhitespace() bool {
	return !n.IsGroup && n.Tok.IsWhitespace()
}

// IsComment reports whether n is a line comment leaf or a Comment group.
func (n *Node) IsComment() bool {
	if n.IsGroup {
		return n.Group == Comment
	}
	return n.Tok.IsComment()
}

// Text returns the leaf text; for a Comment group, the comment text.
func (n *Node) Text() string {
	if !n.IsGroup {
		return n.Tok.Text
	}
	return ""
}
