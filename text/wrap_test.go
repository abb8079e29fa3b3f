package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"short word", "hello", 10, []string{"hello"}},
		{"exact width", "abcdef", 6, []string{"abcdef"}},
		{"break at last space", "the quick brown fox jumps", 18, []string{"the quick brown", "fox jumps"}},
		{"several breaks", "aa bb cc dd", 5, []string{"aa bb", "cc dd"}},
		{"space at width boundary", "abcde fgh", 5, []string{"abcde", "fgh"}},
		{"newline", "one\ntwo", 10, []string{"one", "two"}},
		{"blank line", "one\n\ntwo", 10, []string{"one", "", "two"}},
		{"trailing newline", "one\n", 10, []string{"one"}},
		{"lone newline", "\n", 10, []string{""}},
		{"crlf", "one\r\ntwo", 10, []string{"one", "two"}},
		{"newline at width", "abcde\nfg", 5, []string{"abcde", "fg"}},
		{"newline after wrap", "aaa bbb\nc", 5, []string{"aaa", "bbb", "c"}},
		{"empty", "", 5, nil},
		{"zero width", "abc", 0, nil},
		{"trailing space kept", "abc ", 10, []string{"abc "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

// A line with no space to break at is cut at exactly width characters
// instead of producing an empty line.
func TestWrapHardBreakWithoutSpace(t *testing.T) {
	got := Wrap("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap = %q, want %q", got, want)
	}

	// A space at the very start of a line is not a break point.
	got = Wrap(" abcdefg", 4)
	want = []string{" abc", "defg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap = %q, want %q", got, want)
	}

	// Long word after a short one: soft break, then hard breaks.
	got = Wrap("ab cdefghijk", 4)
	want = []string{"ab", "cdef", "ghij", "k"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap = %q, want %q", got, want)
	}
}

func TestWrapShortInputIsIdentity(t *testing.T) {
	for _, s := range []string{"a", "abc", "0123456789", "h\u00e9llo"} {
		got := Wrap(s, 20)
		if len(got) != 1 || got[0] != s {
			t.Errorf("Wrap(%q) = %q, want single identical line", s, got)
		}
	}
}

func TestWrapLinesNeverExceedWidth(t *testing.T) {
	input := strings.Repeat("lorem ipsum dolor sit amet, consectetur adipiscing elit ", 8) +
		"supercalifragilisticexpialidocious\nend"
	for width := 1; width < 30; width++ {
		for _, line := range Wrap(input, width) {
			if n := Len(line); n > width {
				t.Fatalf("width %d: line %q has %d characters", width, line, n)
			}
		}
	}
}

func TestWrapGraphemes(t *testing.T) {
	// "e" + combining acute normalizes to one character; the flag is one
	// cluster of two code points.
	input := "e\u0301\U0001F1EB\U0001F1F7ab"
	got := Wrap(input, 2)
	want := []string{"\u00e9\U0001F1EB\U0001F1F7", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap = %q, want %q", got, want)
	}
}

func TestLenAndTruncate(t *testing.T) {
	if Len("h\u00e9llo") != 5 {
		t.Errorf("Len = %d, want 5", Len("h\u00e9llo"))
	}
	if Len("e\u0301") != 1 {
		t.Errorf("combining sequence should count once, got %d", Len("e\u0301"))
	}

	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"status", 16, "status"},
		{"a very long title", 6, "a very"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
		{"abc", -2, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
