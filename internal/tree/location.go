package tree

// LocStart returns the byte offset where a node starts: a token's own start,
// a bounded group's open token, otherwise its first child (0 when empty).
func (t *Tree) LocStart(id NodeID) uint32 {
	for {
		n := &t.Nodes[id]
		switch {
		case !n.IsGroup:
			return n.Tok.Span.Start
		case n.Group.Bounded():
			return n.Open.Span.Start
		case len(n.Children) == 0:
			return 0
		}
		id = n.Children[0]
	}
}

// LocEnd mirrors LocStart using the close token or the last child.
func (t *Tree) LocEnd(id NodeID) uint32 {
	for {
		n := &t.Nodes[id]
		switch {
		case !n.IsGroup:
			return n.Tok.Span.End
		case n.Group.Bounded():
			return n.Close.Span.End
		case len(n.Children) == 0:
			return 0
		}
		id = n.Children[len(n.Children)-1]
	}
}
