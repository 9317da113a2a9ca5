package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const zeroWidthJoiner = '\u200D'

// invisible maps zero-width and look-alike whitespace characters to their
// replacement: nothing, or a plain space for the visible-width spaces.
var invisible = map[rune]string{
	'\u00A0': " ", // no-break space
	'\u00AD': "",  // soft hyphen
	'\u034F': "",  // combining grapheme joiner
	'\u061C': "",  // arabic letter mark
	'\u115F': "",  // hangul choseong filler
	'\u1160': "",  // hangul jungseong filler
	'\u17B4': "",
	'\u17B5': "",
	'\u180E': "", // mongolian vowel separator
	'\u2000': " ",
	'\u2001': " ",
	'\u2002': " ",
	'\u2003': " ",
	'\u2004': " ",
	'\u2005': " ",
	'\u2006': " ",
	'\u2007': " ",
	'\u2008': " ",
	'\u2009': " ",
	'\u200A': " ",
	'\u200B': "", // zero width space
	'\u200C': "", // zero width non-joiner
	'\u200D': "", // zero width joiner, kept inside emoji sequences
	'\u200E': "", // left-to-right mark
	'\u200F': "", // right-to-left mark
	'\u202F': " ",
	'\u205F': " ",
	'\u2060': "", // word joiner
	'\u2061': "",
	'\u2062': "",
	'\u2063': "",
	'\u2064': "",
	'\u206A': "",
	'\u206B': "",
	'\u206C': "",
	'\u206D': "",
	'\u206E': "",
	'\u206F': "",
	'\u2800': "", // braille pattern blank
	'\u3000': " ",
	'\u3164': "", // hangul filler
	'\uFEFF': "", // zero width no-break space
	'\uFFA0': "",
}

// Scrubber is a transform.Transformer removing invisible characters.
// A zero width joiner survives when its neighbour is an astral rune or a
// variation selector, since it then glues an emoji sequence.
type Scrubber struct {
	prev rune
}

var _ transform.Transformer = (*Scrubber)(nil)

func NewScrubber() *Scrubber {
	return &Scrubber{}
}

func (s *Scrubber) Reset() {
	s.prev = 0
}

func (s *Scrubber) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		out := src[nSrc : nSrc+size]
		if rep, ok := invisible[r]; ok {
			keep := false
			if r == zeroWidthJoiner {
				rest := src[nSrc+size:]
				if !atEOF && !utf8.FullRune(rest) {
					// нужен следующий символ, чтобы решить судьбу ZWJ
					return nDst, nSrc, transform.ErrShortSrc
				}
				next, _ := utf8.DecodeRune(rest)
				keep = joins(s.prev) || (len(rest) > 0 && joins(next))
			}
			if !keep {
				out = []byte(rep)
			}
		}

		if len(dst)-nDst < len(out) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
		s.prev = r
	}
	return nDst, nSrc, nil
}

func joins(r rune) bool {
	return r > 0xFFFF || (r >= 0xFE00 && r <= 0xFE0F)
}
