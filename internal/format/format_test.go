package format_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mofmt/internal/format"
)

type formatCase struct {
	name string
	src  string
	want string
}

func runCases(t *testing.T, opts format.Options, cases []formatCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.Format(tt.src, opts)
			if err != nil {
				t.Fatalf("Format(%q): %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
			again, err := format.Format(got, opts)
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if again != got {
				t.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", got, again)
			}
		})
	}
}

// formatted lists inputs that are already in canonical form.
func formatted(name string, srcs ...string) []formatCase {
	out := make([]formatCase, 0, len(srcs))
	for _, s := range srcs {
		out = append(out, formatCase{name, s, s})
	}
	return out
}

func TestFormatLayout(t *testing.T) {
	x20 := strings.Repeat("x", 20)
	x80 := strings.Repeat("x", 80)
	tuple := "(" + strings.Repeat("\n  "+x20+",", 5) + "\n);\n"

	cases := []formatCase{
		{"empty", "", ""},
		{"only newlines", "\n\n\n", ""},
		{"trailing newline", "a", "a\n"},
		{"leading blank lines", "\n\na", "a\n"},
		{"surrounding blank lines", "\n\na\n\n", "a\n"},
		{"blank lines collapse", "\n\na;\n\n\nb;\n\n", "a;\n\nb;\n"},
		{"empty block", "{\n\n}", "{\n\n};\n"},
		{"block with newline", "{a;\nb}", "{\n  a;\n  b;\n};\n"},
		{"extra newlines", "a;\n\n\n\n\nb", "a;\n\nb;\n"},
		{"group spacing", "{};{a};();(a)", "{}; { a }; (); (a)\n"},

		{"line comment after block", "{//\n}//", "{\n  //\n} //\n"},
		{"line comment inside block", "{\n//\n}\n//", "{\n  //\n};\n//\n"},
		{"adjacent line comments", "//a\n//b", "//a\n//b\n"},
		{"line comments blank", "//a\n\n\n//b", "//a\n\n//b\n"},
		{"block comment inline", "let/*{{*/x = 0;//x\n (x)", "let /*{{*/ x = 0; //x\n(x);\n"},
		{"adjacent block comments", "/**//**/", "/**/ /**/\n"},
		{"block comments blank", "\n/**/\n\n\n/**/", "/**/\n\n/**/\n"},

		{"unary chain", "-+5", "-+5\n"},
		{"unary on ident", "+-a", "+-a\n"},
		{"unary spaced", "+ - ^5", "+ - ^5\n"},
		{"unary xor", "^ ^a", "^ ^a\n"},
		{"unary xor spaced", "^ ^ a", "^ ^ a\n"},
		{"binary spacing", "1 +   5", "1 + 5\n"},
		{"binary then unary", "1./+5", "1. / +5\n"},

		{"variant text", `# "A"`, "# \"A\"\n"},
		{"variant number", "# 5", "# 5\n"},
		{"variant ident", "#a", "#a\n"},
		{"concat ident", `"A" # b`, "\"A\" # b\n"},
		{"concat variant", `"A" # #b`, "\"A\" # #b\n"},
		{"concat tight left", `"A"# b`, "\"A\" # b\n"},
		{"concat tight", `"A"#"B"`, "\"A\" # \"B\"\n"},
		{"concat tight variant", `"A"# #b`, "\"A\" # #b\n"},
		{"concat line break", "\"A\" #\n\"B\"", "\"A\" #\n\"B\";\n"},

		{"option block", "?{}", "?{}\n"},
		{"do option", "do?{}", "do ? {}\n"},
		{"anonymous func", "func ():() {}", "func() : () {}\n"},
		{"anonymous generic func", "func <T> () {}", "func<T>() {}\n"},

		{"if unit", "if true () else ()", "if true () else ()\n"},
		{"if blocks", "if true {} else {}", "if true {} else {}\n"},
		{"if parens", "if true (a) else (b)", "if true (a) else (b)\n"},
		{
			"if else chain",
			"if true {\na} else if false {\nb} else {\nc}",
			"if true {\n  a;\n} else if false {\n  b;\n} else {\n  c;\n};\n",
		},
		{"type bindings", "func foo<A<:Any>(x:A) {}", "func foo<A <: Any>(x : A) {}\n"},
		{"type bindings spaced", "func foo <A <: Any>(x:A) {}", "func foo<A <: Any>(x : A) {}\n"},

		{"tuple line breaks", tuple, tuple},
		{
			"nested group line breaks",
			"(\n(" + strings.Repeat("\n"+x20+", ", 4) + "\n" + x20 + "));\n",
			"((" + strings.Repeat("\n  "+x20+",", 5) + "\n));\n",
		},

		{"dot after empty group", "().0", "().0\n"},
		{"dot after blank group", "(\n\n\n).0", "().0\n"},
		{"dot after broken group", "(\na\n).0", "(\n  a\n).0;\n"},

		{"replace semicolons", "(a;b;c)", "(a, b, c)\n"},
		{"replace commas", "{a,b,c}", "{ a; b; c }\n"},
		{"add trailing comma", "(a\n,b,c)", "(\n  a,\n  b,\n  c,\n);\n"},
		{"keep trailing comma", "(a\n,b,c,)", "(\n  a,\n  b,\n  c,\n);\n"},
		{"remove trailing comma", "(a,b,c,)", "(a, b, c)\n"},

		{"block single", "{\na}", "{\n  a;\n};\n"},
		{"block field", "{\na : b}", "{\n  a : b;\n};\n"},
		{"block assign", "{\na = b}", "{\n  a = b;\n};\n"},
		{"record and", "{\na and b}", "{\n  a and b\n};\n"},
		{"record with", "{\na with b = c}", "{\n  a with b = c\n};\n"},
		{"record and delimited", "{\na and b;}", "{\n  a and b;\n};\n"},
		{"bracket spacing", "{abc}", "{ abc }\n"},

		{"ignore line", "//prettier-ignore\n1*1;\n2*2", "//prettier-ignore\n1*1;\n2 * 2;\n"},
		{"ignore blank", "//prettier-ignore\n1*1;\n\n2*2", "//prettier-ignore\n1*1;\n\n2 * 2;\n"},
		{"ignore block", "// prettier-ignore\n{\nabc}", "// prettier-ignore\n{\nabc}\n"},
		{"ignore block comment", "/*prettier-ignore*/{\nabc\n\n1}", "/*prettier-ignore*/{\nabc\n\n1}\n"},
		{"ignore first in block", "{\n// prettier-ignore\n  123}", "{\n  // prettier-ignore\n  123\n};\n"},

		{"identifier after index", "x.0.e0x", "x.0.e0x\n"},
		{"identifier after index spaced", "x.0.e0 x", "x.0.e0 x\n"},

		{"index line", x80 + "[0]", x80 + "[0];\n"},
		{"index broken", x80 + "[\n0]", x80 + "[\n  0\n];\n"},
		{"index trailing comma", x80 + "[0,]", x80 + "[0];\n"},
		{"anonymous func line break", "(func() {\na\n})", "(\n  func() {\n    a;\n  }\n);\n"},
		{"line comment in angle", "a<(b,\n//c\n)>()", "a<(b, /* c */)>()\n"},

		{"unclosed quote after comment", "// a'b\n '", "// a'b\n';\n"},
		{"unclosed dquote after comment", "// a\"b\n \"", "// a\"b\n\";\n"},
		{"unclosed quote short", "//'\n '", "//'\n';\n"},
		{"unclosed dquote short", "//\"\n \"", "//\"\n\";\n"},
		{"quote in block comment", "/*'*/  '", "/*'*/ '\n"},
		{"dquote in block comment", "/*;\"*/  \"", "/*;\"*/ \"\n"},
		{"quote in spaced block comment", "/* a'b */  '", "/* a'b */ '\n"},
		{"dquote in spaced block comment", "/* a\"b */  \"", "/* a\"b */ \"\n"},

		{"shared group", "shared({})", "shared ({})\n"},
		{"shared query group", "shared query({})", "shared query ({})\n"},
		{"tuple index", "x.0.y", "x.0.y\n"},
		{"float then ident", "0. y", "0. y\n"},
		{"float then line", "0.\ny", "0.\ny;\n"},

		{"inferred terminator", "{\n}\nA\n", "{};\nA;\n"},
		{"brace in comment", "{\n// }\n}\nA\n", "{\n  // }\n};\nA;\n"},
		{
			"block broken before statement",
			"func f() {\n  if (c) { a;\n    b }\n  c\n}\n",
			"func f() {\n  if (c) {\n    a;\n    b;\n  };\n  c;\n};\n",
		},
		{"nested blocks before statements", "{{{\n0}\n0}}", "{\n  {\n    {\n      0;\n    };\n    0;\n  }\n};\n"},

		{"empty statement block", "{ ; }", "{}\n"},
		{"empty statement func", "func f() { ; }", "func f() {}\n"},
		{"empty list elements", "[,];(,)", "[]; ()\n"},
		{"double delimiter", "{a,,}", "{ a }\n"},
		{"double delimiter inside", "(a,,b)", "(a, b)\n"},

		{"if ident ident", "if a b", "if a b\n"},
		{"if paren ident", "if (a) b", "if (a) b\n"},
		{"if ident paren", "if a (b)", "if a (b)\n"},
		{"if paren paren", "if (a) (b)", "if (a) (b)\n"},

		{"async star", "async* T", "async* T\n"},
		{"async star spaced", "async * T", "async* T\n"},
		{"await star", "await * t", "await* t\n"},
		{"quote literal", `'\"'; //abc`, "'\\\"'; //abc\n"},

		{"square trailing comma", "[\na,b]", "[\n  a,\n  b,\n];\n"},
		{"square single trailing comma", "[\na,]", "[\n  a,\n];\n"},
		{"square single", "x : [\nT\n]", "x : [\n  T\n];\n"},
		{"keyword paren", "if(\nx) { y }", "if (\n  x\n) { y };\n"},

		{"block comment after statement", "x;\n/**/", "x;\n/**/\n"},
		{"multi-line block comment after statement", "x;\n/*\n*/", "x;\n/*\n*/\n"},
		{"invisible character", "let x\u200b = 123;", "let x = 123;\n"},

		{"with inline", "{a and b with c = d}", "{ a and b with c = d }\n"},
		{"with broken", "{a and b with\nc = d}", "{\n  a and b with\n  c = d\n};\n"},
		{"with trailing space", "{a and b with \nc = d}", "{\n  a and b with\n  c = d\n};\n"},
		{"with fields", "{a and b with\nc = d; e = f;}", "{\n  a and b with\n  c = d;\n  e = f;\n};\n"},
	}

	cases = append(cases, formatted("already formatted", "let x = 0;\n")...)
	cases = append(cases, formatted("block comment",
		"/**/\n", "/***/\n", "/*****/\n",
		"/*=*/\n", "/**=*/\n", "/**=**/\n", "/** **/\n", "/*** **/\n", "/** ***/\n",
		"/****\n-----\n******/\n",
		"{\n  /****\n  -----\n  ******/;\n};\n",
	)...)
	cases = append(cases, formatted("exponent", "1e1\n", "1e-1\n", "1.e1\n", ".1e1\n")...)
	cases = append(cases, formatted("hex", "0xf\n", "0xF\n", "0xf_f\n", "0xF_f\n", "0xF_F\n")...)
	cases = append(cases, formatted("multi-line text",
		"\"A\nB\"\n", "\"  A\n  B\"\n", "\"A\n\nB\"\n", "\"A\n\n  B\"\n", "\"\nA\n\n  B\n    \"\n",
	)...)
	cases = append(cases, formatted("type binding line breaks",
		"<("+strings.Repeat(x20+", ", 4)+x20+")>;\n",
	)...)

	runCases(t, format.DefaultOptions(), cases)
}

func TestFormatOptions(t *testing.T) {
	t.Run("trailing comma none", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.TrailingComma = format.TrailingNone
		runCases(t, opts, []formatCase{
			{"tuple", "(a\n,b,c,)", "(\n  a,\n  b,\n  c\n);\n"},
			{"square", "[\na,b]", "[\n  a,\n  b\n];\n"},
		})
	})
	t.Run("trailing comma es5", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.TrailingComma = format.TrailingES5
		runCases(t, opts, []formatCase{
			{"tuple", "(a\n,b,c,)", "(\n  a,\n  b,\n  c\n);\n"},
			{"square", "[\na,b]", "[\n  a,\n  b,\n];\n"},
		})
	})
	t.Run("no semi", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.Semi = false
		runCases(t, opts, []formatCase{
			{"tuple", "(a\n,b,c,)", "(\n  a,\n  b,\n  c,\n)\n"},
			{"block", "{\na}", "{\n  a\n}\n"},
		})
	})
	t.Run("no bracket spacing", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.BracketSpacing = false
		runCases(t, opts, []formatCase{
			{"block", "{ abc }", "{abc}\n"},
			{"blocks", "{a,b,c}", "{a; b; c}\n"},
		})
	})
	t.Run("tab width", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.TabWidth = 4
		runCases(t, opts, []formatCase{
			{"block", "{a;\nb}", "{\n    a;\n    b;\n};\n"},
			{"tabs", "{\n\ta;\n}", "{\n    a;\n};\n"},
		})
	})
	t.Run("print width", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.PrintWidth = 10
		runCases(t, opts, []formatCase{
			{"fits", "(a, b)", "(a, b)\n"},
			{"breaks", "(aaaa, bbbb, cccc)", "(\n  aaaa,\n  bbbb,\n  cccc,\n);\n"},
		})
	})
	t.Run("sort imports", func(t *testing.T) {
		opts := format.DefaultOptions()
		opts.SortImports = true
		runCases(t, opts, []formatCase{
			{
				"run",
				"import B \"mo:b\";\nimport A \"mo:a\";\n",
				"import A \"mo:a\";\nimport B \"mo:b\";\n",
			},
			{
				"blank line splits runs",
				"import C \"c\";\nimport B \"b\";\n\nimport A \"a\";\n",
				"import B \"b\";\nimport C \"c\";\n\nimport A \"a\";\n",
			},
			{
				"comment splits runs",
				"import B \"b\";\n// keep\nimport A \"a\";\n",
				"import B \"b\";\n// keep\nimport A \"a\";\n",
			},
			{
				"ignored import stays first",
				"// prettier-ignore\nimport Z \"z\";\nimport B \"b\";\nimport A \"a\";\n",
				"// prettier-ignore\nimport Z \"z\";\nimport A \"a\";\nimport B \"b\";\n",
			},
		})
	})
}

func TestFormatDeepNesting(t *testing.T) {
	const depth = 10000
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	got, err := format.Format(src, format.DefaultOptions())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := src + ";\n"; got != want {
		t.Errorf("deep nesting changed shape: got %d bytes, want %d", len(got), len(want))
	}
}

func TestFormatParseError(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line uint32
	}{
		{"unclosed paren", "(a", 1},
		{"unmatched close", "a\n)", 2},
		{"mismatched", "{\n(]\n}", 2},
		{"unterminated block comment", "x\n/* open", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := format.Format(tt.src, format.DefaultOptions())
			if out != "" {
				t.Errorf("partial output %q", out)
			}
			var pe *format.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if pe.Pos.Line != tt.line {
				t.Errorf("error line = %d, want %d (%v)", pe.Pos.Line, tt.line, pe)
			}
		})
	}
}

func TestFormatConfigError(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*format.Options)
		option string
	}{
		{"tab width zero", func(o *format.Options) { o.TabWidth = 0 }, "tabWidth"},
		{"tab width huge", func(o *format.Options) { o.TabWidth = 100 }, "tabWidth"},
		{"print width", func(o *format.Options) { o.PrintWidth = -1 }, "printWidth"},
		{"trailing comma", func(o *format.Options) { o.TrailingComma = "some" }, "trailingComma"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := format.DefaultOptions()
			tt.mutate(&opts)
			_, err := format.Format("a", opts)
			var ce *format.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("got %v, want *ConfigError", err)
			}
			if ce.Option != tt.option {
				t.Errorf("option = %q, want %q", ce.Option, tt.option)
			}
			if ce.Diagnostic().Code == 0 {
				t.Error("diagnostic without code")
			}
		})
	}
}

func TestCheck(t *testing.T) {
	opts := format.DefaultOptions()
	tests := []struct {
		src  string
		want bool
	}{
		{"let x = 0;\n", true},
		{"let x = 0;", false},
		{"let  x = 0;\n", false},
		{"", true},
	}
	for _, tt := range tests {
		got, err := format.Check(tt.src, opts)
		if err != nil {
			t.Fatalf("Check(%q): %v", tt.src, err)
		}
		if got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}

	if _, err := format.Check("(", opts); err == nil {
		t.Error("Check on unbalanced input returned no error")
	}
}

func TestInertOptions(t *testing.T) {
	opts := format.DefaultOptions()
	if got := opts.InertOptions(); len(got) != 0 {
		t.Errorf("defaults report inert options %v", got)
	}
	opts.RemoveLinesAroundCodeBlocks = true
	if diff := cmp.Diff([]string{"removeLinesAroundCodeBlocks"}, opts.InertOptions()); diff != "" {
		t.Errorf("inert options mismatch (-want +got):\n%s", diff)
	}

	base, _ := format.Format("{\na}\n", format.DefaultOptions())
	got, err := format.Format("{\na}\n", opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != base {
		t.Errorf("inert option changed output: %q vs %q", got, base)
	}
}

func TestFingerprint(t *testing.T) {
	a := format.DefaultOptions()
	b := format.DefaultOptions()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal options, different fingerprints")
	}
	b.Semi = false
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("semi not part of the fingerprint")
	}
}

func TestHasSourceExt(t *testing.T) {
	for path, want := range map[string]bool{
		"main.mo":       true,
		"api/types.did": true,
		"Main.MO":       true,
		"readme.md":     false,
		"mo":            false,
	} {
		if got := format.HasSourceExt(path); got != want {
			t.Errorf("HasSourceExt(%q) = %v, want %v", path, got, want)
		}
	}
}
