// Package text provides word-wrapping, the line buffer behind a box's
// interior and the slot table buffers are saved to.
//
// A character is one grapheme cluster and occupies one cell.
package text

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Split returns the NFC-normalized grapheme clusters of s.
func Split(s string) []string {
	s = norm.NFC.String(s)
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Len returns the number of characters in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(norm.NFC.String(s))
}

// Truncate returns at most n leading characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	cs := Split(s)
	if len(cs) <= n {
		return strings.Join(cs, "")
	}
	return strings.Join(cs[:n], "")
}

func isNewline(c string) bool {
	return c == "\n" || c == "\r\n"
}

// Wrap reflows input into lines of at most width characters in a single
// greedy pass.
//
// A newline ends the current line. When a line reaches width characters it
// is broken at the last space seen since the line started and that space is
// dropped; if no such space exists the line is cut at exactly width
// characters. A non-empty remainder becomes the final line. Width below 1
// yields no lines.
func Wrap(input string, width int) []string {
	if width < 1 {
		return nil
	}

	cs := Split(input)
	var lines []string
	start := 0
	brk := -1

	for i := start; i < len(cs); i++ {
		c := cs[i]
		if isNewline(c) {
			lines = append(lines, strings.Join(cs[start:i], ""))
			start = i + 1
			brk = -1
			continue
		}
		if c == " " {
			brk = i
		}
		if i-start < width {
			continue
		}

		if brk > start {
			lines = append(lines, strings.Join(cs[start:brk], ""))
			start = brk + 1
		} else {
			lines = append(lines, strings.Join(cs[start:start+width], ""))
			start += width
		}
		brk = -1
		i = start - 1
	}

	if start < len(cs) {
		lines = append(lines, strings.Join(cs[start:], ""))
	}
	return lines
}
