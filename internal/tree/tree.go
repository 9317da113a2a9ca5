package tree

import (
	"mofmt/internal/source"
	"mofmt/internal/token"
)

// Tree is an arena of nodes rooted at Root.
type Tree struct {
	File  *source.File
	Nodes []Node
	Root  NodeID

	forces []bool // ForcesBreak memo, filled on first query
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Children returns the child list of a group (nil for leaves).
func (t *Tree) Children(id NodeID) []NodeID {
	return t.Nodes[id].Children
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// CommentText returns the text of a Comment group or a comment leaf.
func (t *Tree) CommentText(id NodeID) string {
	n := &t.Nodes[id]
	if n.IsGroup {
		if n.Group == Comment && len(n.Children) == 1 {
			return t.Nodes[n.Children[0]].Tok.Text
		}
		return ""
	}
	return n.Tok.Text
}

// Leaves calls fn for every leaf token in document order, including
// boundary tokens of groups.
func (t *Tree) Leaves(fn func(tok token.Token)) {
	type frame struct {
		id   NodeID
		next int
	}
	stack := []frame{{id: t.Root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &t.Nodes[top.id]
		if top.next == 0 && n.Group.Bounded() && n.IsGroup {
			fn(n.Open)
		}
		if top.next < len(n.Children) {
			child := n.Children[top.next]
			top.next++
			if c := &t.Nodes[child]; c.IsGroup {
				stack = append(stack, frame{id: child})
			} else {
				fn(c.Tok)
			}
			continue
		}
		if n.IsGroup && n.Group.Bounded() {
			fn(n.Close)
		}
		stack = stack[:len(stack)-1]
	}
}

// Source returns the file text covered by [start, end).
func (t *Tree) Source(start, end uint32) string {
	return string(t.File.Content[start:end])
}

// WithRootChildren returns a tree sharing this arena whose root has the
// given child list. Used by post-passes that reorder top-level statements.
func (t *Tree) WithRootChildren(children []NodeID) *Tree {
	nodes := make([]Node, len(t.Nodes))
	copy(nodes, t.Nodes)
	nodes[t.Root].Children = children
	return &Tree{File: t.File, Nodes: nodes, Root: t.Root}
}
