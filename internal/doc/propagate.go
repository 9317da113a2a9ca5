package doc

// PropagateBreaks marks groups broken when they contain a BreakParent
// or a broken group. It mutates the groups in place and is idempotent.
func PropagateBreaks(d Doc) {
	type frame struct {
		doc  Doc
		exit bool
	}
	var groups []*Group
	visited := make(map[*Group]bool)
	stack := []frame{{doc: d}}

	breakTop := func() {
		if n := len(groups); n > 0 {
			groups[n-1].Break = true
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			g := f.doc.(*Group)
			groups = groups[:len(groups)-1]
			if g.Break {
				breakTop()
			}
			continue
		}

		switch v := f.doc.(type) {
		case BreakParent:
			breakTop()
		case *Group:
			if visited[v] {
				// общий подграф уже обработан, но родителя всё равно ломаем
				if v.Break {
					breakTop()
				}
				continue
			}
			visited[v] = true
			groups = append(groups, v)
			stack = append(stack, frame{doc: v, exit: true}, frame{doc: v.Contents})
		case Concat:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, frame{doc: v[i]})
			}
		case *Fill:
			for i := len(v.Parts) - 1; i >= 0; i-- {
				stack = append(stack, frame{doc: v.Parts[i]})
			}
		case Indent:
			stack = append(stack, frame{doc: v.Contents})
		case IfBreak:
			if v.Flat != nil {
				stack = append(stack, frame{doc: v.Flat})
			}
			if v.Broken != nil {
				stack = append(stack, frame{doc: v.Broken})
			}
		}
	}
}
