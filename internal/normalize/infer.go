package normalize

import (
	"sort"
	"strings"

	"mofmt/internal/lexer"
	"mofmt/internal/source"
)

// continuations are line prefixes that keep the previous '}' inside the
// same expression: method chains, pipes and further closing brackets.
var continuations = []string{".", "|>", ")", "}", "]"}

// continuationWords must appear as whole words.
var continuationWords = []string{"else", "catch", "finally"}

// InferTerminators appends ';' to every line consisting of a lone '}' unless
// the next non-blank line continues the expression, or the brace sits inside
// a comment or a string literal. Comments do not count as content when
// looking for the next line.
func InferTerminators(text string) string {
	comments := lexer.CommentSpans(text)
	masked := maskComments(text, comments)
	ignore := mergeSpans(append(comments, stringSpans(masked)...))

	lines := strings.Split(text, "\n")
	maskedLines := strings.Split(masked, "\n")
	starts := make([]int, len(lines))
	for i, off := 1, 0; i < len(lines); i++ {
		off += len(lines[i-1]) + 1
		starts[i] = off
	}

	next := "" // следующая непустая строка (в маскированном тексте)
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "}" {
			pos := starts[i] + strings.IndexByte(lines[i], '}')
			if !Continues(next) && !inSpans(ignore, pos) {
				lines[i] += ";"
			}
		}
		if m := strings.TrimSpace(maskedLines[i]); m != "" {
			next = m
		}
	}
	return strings.Join(lines, "\n")
}

// Continues reports whether a line starting with line keeps a preceding
// lone '}' inside the same expression.
func Continues(line string) bool {
	for _, p := range continuations {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	for _, w := range continuationWords {
		if strings.HasPrefix(line, w) && (len(line) == len(w) || !isWordByte(line[len(w)])) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// maskComments replaces comment bytes with spaces, keeping newlines so that
// line numbers stay aligned.
func maskComments(text string, spans []source.Span) string {
	if len(spans) == 0 {
		return text
	}
	buf := []byte(text)
	for _, sp := range spans {
		for i := sp.Start; i < sp.End; i++ {
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
	}
	return string(buf)
}

// stringSpans finds matched, non-escaped quote pairs.
func stringSpans(text string) []source.Span {
	var spans []source.Span
	for i := 0; i < len(text); i++ {
		q := text[i]
		if q != '"' && q != '\'' {
			continue
		}
		j := i + 1
		for ; j < len(text) && text[j] != q; j++ {
			if text[j] == '\\' {
				j++
			}
		}
		if j >= len(text) {
			continue // непарная кавычка
		}
		spans = append(spans, source.Span{Start: uint32(i), End: uint32(j + 1)}) // #nosec G115 -- text length is bounded by the file size
		i = j
	}
	return spans
}

// mergeSpans sorts spans and unions overlapping ones.
func mergeSpans(spans []source.Span) []source.Span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	out := spans[:0]
	for _, sp := range spans {
		if n := len(out); n > 0 && sp.Start < out[n-1].End {
			out[n-1].End = max(out[n-1].End, sp.End)
			continue
		}
		out = append(out, sp)
	}
	return out
}

// inSpans reports whether pos lies inside one of the disjoint sorted spans.
func inSpans(spans []source.Span, pos int) bool {
	k := sort.Search(len(spans), func(i int) bool { return int(spans[i].Start) > pos })
	return k > 0 && int(spans[k-1].End) > pos
}
