package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// languageSeeds covers constructs the printer treats specially.
var languageSeeds = []string{
	"",
	"actor {\n  public func greet(name : Text) : async Text {\n    \"Hello, \" # name\n  }\n}",
	"import Debug \"mo:base/Debug\";\nimport Array \"mo:base/Array\";",
	"type Shape = {\n  #circle : Float;\n  #square : Float\n};",
	"let r = { a = 1; b = 2 } and { c = 3 };",
	"switch (x) { case (#a) { 1 }; case _ { 2 } }",
	"func foo<A <: Any>(x : A) : async* () {}",
	"service : {\n  add : (nat, nat) -> (nat) query;\n}",
	"// line\n/* block /* nested */ */\nlet x = 0;",
	"if a (b) else { c }",
	"(\n  a,\n  b,\n);",
	"{ a; b; c }",
	"\"unterminated",
	"x.0.1 := -+5;",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по testdata форматтера, добавляем все *.input файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".input" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
