package token

// keywords holds the reserved words of Motoko; Candid keywords are a subset.
var keywords = map[string]struct{}{
	"actor":       {},
	"and":         {},
	"assert":      {},
	"async":       {},
	"await":       {},
	"break":       {},
	"case":        {},
	"catch":       {},
	"class":       {},
	"composite":   {},
	"continue":    {},
	"debug":       {},
	"debug_show":  {},
	"do":          {},
	"else":        {},
	"finally":     {},
	"flexible":    {},
	"for":         {},
	"from_candid": {},
	"func":        {},
	"if":          {},
	"ignore":      {},
	"import":      {},
	"in":          {},
	"label":       {},
	"let":         {},
	"loop":        {},
	"module":      {},
	"not":         {},
	"object":      {},
	"or":          {},
	"persistent":  {},
	"private":     {},
	"public":      {},
	"query":       {},
	"return":      {},
	"shared":      {},
	"stable":      {},
	"switch":      {},
	"system":      {},
	"throw":       {},
	"to_candid":   {},
	"transient":   {},
	"try":         {},
	"type":        {},
	"var":         {},
	"while":       {},
	"with":        {},
}

// IsKeyword reports whether ident is a reserved word.
// Ключевые слова регистрозависимые.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
