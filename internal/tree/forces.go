package tree

import "mofmt/internal/token"

// ForcesBreak reports whether the subtree rooted at id must render on
// several lines. A leaf forces a break when it is a line break or a line
// comment. Angle and Comment groups never force. A group whose direct
// children are all whitespace or groups is a pure wrapper and does not
// force either, even when a nested group does. Any other group forces when
// a direct child token is a line break or line comment, or a child group
// forces.
func (t *Tree) ForcesBreak(id NodeID) bool {
	if t.forces == nil {
		t.computeForces()
	}
	return t.forces[id]
}

func (t *Tree) computeForces() {
	t.forces = make([]bool, len(t.Nodes))
	// потомки всегда правее родителя, поэтому обратный проход снизу вверх
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		n := &t.Nodes[i]
		if !n.IsGroup {
			t.forces[i] = hardToken(n.Tok.Kind)
			continue
		}
		if n.Group == Angle || n.Group == Comment {
			continue
		}
		wrapper := true
		forced := false
		for _, c := range n.Children {
			child := &t.Nodes[c]
			if !child.IsGroup && !child.Tok.IsWhitespace() {
				wrapper = false
			}
			if t.forces[c] {
				forced = true
			}
		}
		t.forces[i] = forced && !wrapper
	}
}

func hardToken(k token.Kind) bool {
	return k == token.Line || k == token.MultiLine || k == token.LineComment
}
