// Package doc is a small Wadler-style document algebra and its renderer.
//
// A document describes text together with the places where it may break.
// Groups are printed flat when their content fits in the remaining width
// and broken otherwise; Fill packs its parts greedily; IfBreak selects
// content by the mode of the enclosing group. Line flavours:
//
//	Line         a space when flat, a newline when broken
//	SoftLine     nothing when flat, a newline when broken
//	HardLine     always a newline; breaks every enclosing group
//	LiteralLine  a newline without indentation that does not break groups
//
// Rendering never recurses: both propagation and printing run on explicit
// stacks, so deeply nested documents are safe.
package doc

// Doc is any document node.
type Doc interface {
	isDoc()
}

// Text is literal text without newlines.
type Text string

// Concat prints its parts one after another.
type Concat []Doc

// Group tries to print Contents flat; Break forces the broken mode.
type Group struct {
	Contents Doc
	Break    bool
}

// Fill alternates content and separator parts: [c0, s0, c1, s1, c2, ...].
// A separator breaks only when the content after it does not fit.
type Fill struct {
	Parts []Doc
}

// Indent increases the indentation of lines inside Contents.
type Indent struct {
	Contents Doc
}

// IfBreak prints Broken inside a broken group and Flat otherwise.
type IfBreak struct {
	Broken Doc
	Flat   Doc
}

// LineBreak is a possible line break; see the package comment.
type LineBreak struct {
	Soft    bool
	Hard    bool
	Literal bool
}

// BreakParent forces the enclosing group to break.
type BreakParent struct{}

func (Text) isDoc()        {}
func (Concat) isDoc()      {}
func (*Group) isDoc()      {}
func (*Fill) isDoc()       {}
func (Indent) isDoc()      {}
func (IfBreak) isDoc()     {}
func (LineBreak) isDoc()   {}
func (BreakParent) isDoc() {}

var (
	Line     Doc = LineBreak{}
	SoftLine Doc = LineBreak{Soft: true}
	HardLine Doc = Concat{LineBreak{Hard: true}, BreakParent{}}
	// LiteralLine does not carry BreakParent: it is used for text that
	// already spans several lines and must not change the layout around it.
	LiteralLine Doc = LineBreak{Hard: true, Literal: true}
)

// Cat concatenates docs, dropping nil entries.
func Cat(parts ...Doc) Doc {
	out := make(Concat, 0, len(parts))
	for _, p := range parts {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// NewGroup wraps contents in a group.
func NewGroup(contents Doc, shouldBreak bool) *Group {
	return &Group{Contents: contents, Break: shouldBreak}
}

// NewFill builds a fill from alternating content and separator parts.
func NewFill(parts []Doc) *Fill {
	return &Fill{Parts: parts}
}

// Indented wraps contents in one indentation level.
func Indented(contents Doc) Doc {
	return Indent{Contents: contents}
}

// IfBreaking returns broken content for broken groups and flat otherwise.
func IfBreaking(broken, flat Doc) Doc {
	return IfBreak{Broken: broken, Flat: flat}
}
