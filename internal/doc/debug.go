package doc

import (
	"fmt"
	"strings"
)

// Debug renders the document structure in a compact prefix notation,
// e.g. group(["{", indent([line, "x"]), line, "}"]). Used by tests and by
// `mofmt tokenize --doc`.
func Debug(d Doc) string {
	var b strings.Builder
	writeDebug(&b, d)
	return b.String()
}

func writeDebug(b *strings.Builder, d Doc) {
	switch v := d.(type) {
	case nil:
		b.WriteString("nil")
	case Text:
		fmt.Fprintf(b, "%q", string(v))
	case Concat:
		b.WriteByte('[')
		for i, p := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, p)
		}
		b.WriteByte(']')
	case *Group:
		if v.Break {
			b.WriteString("group!(")
		} else {
			b.WriteString("group(")
		}
		writeDebug(b, v.Contents)
		b.WriteByte(')')
	case *Fill:
		b.WriteString("fill(")
		writeDebug(b, Concat(v.Parts))
		b.WriteByte(')')
	case Indent:
		b.WriteString("indent(")
		writeDebug(b, v.Contents)
		b.WriteByte(')')
	case IfBreak:
		b.WriteString("ifBreak(")
		writeDebug(b, v.Broken)
		b.WriteString(", ")
		writeDebug(b, v.Flat)
		b.WriteByte(')')
	case LineBreak:
		switch {
		case v.Literal:
			b.WriteString("literalline")
		case v.Hard:
			b.WriteString("hardline")
		case v.Soft:
			b.WriteString("softline")
		default:
			b.WriteString("line")
		}
	case BreakParent:
		b.WriteString("breakParent")
	}
}
