package driver

import (
	"errors"
	"os"

	"mofmt/internal/diag"
	"mofmt/internal/format"
	"mofmt/internal/lexer"
	"mofmt/internal/source"
	"mofmt/internal/token"
	"mofmt/internal/tree"
)

// TokenizeResult holds the token dump of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	// Tree is nil when the brackets do not balance.
	Tree *tree.Tree
	Bag  *diag.Bag
}

// Tokenize lexes path and nests its tokens. With normalized set the
// normalizer runs first and the dump shows what the printer would see.
// Lexical and bracket problems end up in the bag, not in the error.
func Tokenize(path string, normalized bool, opts format.Options, maxDiagnostics int) (*TokenizeResult, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return TokenizeSource(path, content, normalized, opts, maxDiagnostics)
}

// TokenizeSource is Tokenize for in-memory content.
func TokenizeSource(path string, content []byte, normalized bool, opts format.Options, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	var fileID source.FileID
	if normalized {
		text, err := format.Normalized(string(content), opts)
		if err != nil {
			return nil, err
		}
		fileID = fs.Add(path, []byte(text), source.FileVirtual)
	} else {
		fileID = fs.Add(path, content, 0)
	}
	file := fs.Get(fileID)

	// Создаём диагностический пакет
	bag := diag.NewBag(maxDiagnostics)
	res := &TokenizeResult{FileSet: fs, File: file, Bag: bag}

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	t, err := tree.Build(file, reporter)
	var parseErr *tree.ParseError
	switch {
	case err == nil:
		res.Tree = t
		t.Leaves(func(tok token.Token) { res.Tokens = append(res.Tokens, tok) })
	case errors.As(err, &parseErr):
		// дерево не собралось: показываем хотя бы плоский поток токенов
		res.Tokens = lexer.New(file, lexer.Options{}).All()
		// лексическая ошибка уже пришла через reporter, дубль отсечётся
		d := parseErr.Diagnostic()
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil, nil)
	default:
		return nil, err
	}
	return res, nil
}
