package lexer

import (
	"mofmt/internal/source"
	"mofmt/internal/token"
)

// CommentSpans возвращает байтовые диапазоны всех комментариев текста.
// Строковые литералы учитываются, поэтому "//" внутри строки комментарием
// не считается. Незакрытый блочный комментарий тянется до конца текста.
func CommentSpans(text string) []source.Span {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("comments", []byte(text)))
	lx := New(file, Options{})

	var spans []source.Span
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return spans
		}
		if tok.IsComment() {
			spans = append(spans, tok.Span)
		}
	}
}
