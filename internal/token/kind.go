package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a zero token.
	Invalid Kind = iota
	// Open is an opening bracket: ( { [ or an angle <.
	Open
	// Close is a closing bracket: ) } ] or an angle >.
	Close
	// Delim is a separator: ';' or ','.
	Delim
	// Literal is a number, text, char, bool or null literal.
	Literal
	// LineComment is a '//' comment up to (not including) the newline.
	LineComment
	// BlockComment is a complete, possibly nested, '/* */' comment.
	BlockComment
	// Dot is a member access '.'.
	Dot
	// Colon is a type annotation ':'.
	Colon
	// Assign is '=', ':=' or a compound 'op=' assignment.
	Assign
	// Operator is any other operator.
	Operator
	// Ident is an identifier or keyword.
	Ident
	// Wild is the lone '_' pattern.
	Wild
	// Space is a run of spaces without line breaks.
	Space
	// Line is a whitespace run with exactly one line break.
	Line
	// MultiLine is a whitespace run with two or more line breaks.
	MultiLine
	// Unknown is a byte sequence the lexer could not classify.
	Unknown
	// EOF marks the end of the source input; never stored in a tree.
	EOF
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	Open:         "Open",
	Close:        "Close",
	Delim:        "Delim",
	Literal:      "Literal",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Dot:          "Dot",
	Colon:        "Colon",
	Assign:       "Assign",
	Operator:     "Operator",
	Ident:        "Ident",
	Wild:         "Wild",
	Space:        "Space",
	Line:         "Line",
	MultiLine:    "MultiLine",
	Unknown:      "Unknown",
	EOF:          "EOF",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// LitKind refines Literal tokens.
type LitKind uint8

const (
	LitNone LitKind = iota
	LitBool
	LitNull
	LitNat
	LitFloat
	LitText
	LitChar
)

var litNames = [...]string{
	LitNone:  "",
	LitBool:  "Bool",
	LitNull:  "Null",
	LitNat:   "Nat",
	LitFloat: "Float",
	LitText:  "Text",
	LitChar:  "Char",
}

func (l LitKind) String() string {
	if int(l) < len(litNames) {
		return litNames[l]
	}
	return "LitKind(?)"
}
