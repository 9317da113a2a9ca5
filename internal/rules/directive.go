package rules

// Directive is the separator a rule asks for.
type Directive uint8

const (
	// Nil emits nothing.
	Nil Directive = iota
	// Space emits a single space.
	Space
	// Soft is invisible unless the enclosing group breaks.
	Soft
	// Hard always breaks and breaks the enclosing group.
	Hard
	// Wrap is a breakable space.
	Wrap
	// Keep reproduces source line breaks, otherwise nothing.
	Keep
	// KeepSpace reproduces source line breaks, otherwise a space.
	KeepSpace
	// KeepWrap reproduces source line breaks, otherwise a breakable space.
	KeepWrap
	// Exact reproduces line breaks and a single space exactly as in source.
	Exact
)

var directiveNames = [...]string{
	Nil:       "nil",
	Space:     "space",
	Soft:      "soft",
	Hard:      "hard",
	Wrap:      "wrap",
	Keep:      "keep",
	KeepSpace: "keep-space",
	KeepWrap:  "keep-wrap",
	Exact:     "exact",
}

func (d Directive) String() string {
	if int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return "directive(?)"
}

// Gap classifies the whitespace found between two siblings in the source.
type Gap uint8

const (
	GapNone Gap = iota
	GapSpace
	GapLine
	GapBlank
)

// Resolution is a directive resolved against the source gap.
type Resolution uint8

const (
	ResNone Resolution = iota
	ResSpace
	ResSoft
	ResLine // breakable space
	ResHard
	ResBlank // two hard breaks: keeps one empty line
)

// Resolve turns a directive into a concrete separator for the given gap.
func (d Directive) Resolve(g Gap) Resolution {
	switch d {
	case Nil:
		return ResNone
	case Space:
		return ResSpace
	case Soft:
		return ResSoft
	case Hard:
		return ResHard
	case Wrap:
		return ResLine
	}

	switch g {
	case GapBlank:
		return ResBlank
	case GapLine:
		return ResHard
	}
	switch d {
	case KeepSpace:
		return ResSpace
	case KeepWrap:
		return ResLine
	case Exact:
		if g == GapSpace {
			return ResSpace
		}
	}
	return ResNone
}
