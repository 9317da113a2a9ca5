package fuzztests

import (
	"testing"

	"mofmt/internal/format"
	"mofmt/internal/testkit"
)

// formatSeeds are inputs whose formatting is pinned by the format tests.
var formatSeeds = []string{
	"",
	"{a;\nb}",
	"1 +   5",
	"{};{a};();(a)",
	"let/*{{*/x = 0;//x\n (x)",
	"if true {\na} else if false {\nb} else {\nc}",
	"func foo<A<:Any>(x:A) {}",
	"(a;b;c)",
	"f(a",
	"func f() {\n  if (c) { a;\n    b }\n  c\n}\n",
	"{{{\n0}\n0}}",
	"{ ; }",
	"{a,,}",
	"[,];(,)",
}

func FuzzFormatIdempotent(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range formatSeeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		if err := testkit.CheckFormatted(string(input), format.DefaultOptions()); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzFormatOptions(f *testing.F) {
	f.Add([]byte("(aaaa, bbbb, cccc)"), uint8(1), uint8(9), true)
	f.Add([]byte("{\na}"), uint8(1), uint8(79), false)
	f.Fuzz(func(t *testing.T, input []byte, tab, width uint8, semi bool) {
		input = clampInput(input)
		opts := format.DefaultOptions()
		opts.TabWidth = int(tab%8) + 1
		opts.PrintWidth = int(width) + 1
		opts.Semi = semi
		if err := testkit.CheckFormatted(string(input), opts); err != nil {
			t.Fatal(err)
		}
	})
}
