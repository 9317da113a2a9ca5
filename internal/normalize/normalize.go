package normalize

import (
	"strings"

	"golang.org/x/text/transform"
)

// Options controls the normalization steps.
type Options struct {
	TabWidth int
	Semi     bool // выводить ';' после строк из одной '}'
}

// Normalize applies, in order: CRLF to LF, tab expansion, trailing
// whitespace removal, invisible-character scrubbing and, when opts.Semi is
// set, terminator inference.
func Normalize(text string, opts Options) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = ExpandTabs(text, opts.TabWidth)
	text = TrimTrailingSpace(text)

	scrubbed, _, err := transform.String(NewScrubber(), text)
	if err != nil {
		return "", err
	}
	text = scrubbed

	if opts.Semi {
		text = InferTerminators(text)
	}
	return text, nil
}

// ExpandTabs replaces every tab with width spaces.
func ExpandTabs(text string, width int) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", max(width, 0)))
}

// TrimTrailingSpace drops spaces and tabs that directly precede a newline.
func TrimTrailingSpace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(strings.TrimRight(text[:i], " \t"))
		b.WriteByte('\n')
		text = text[i+1:]
	}
}
