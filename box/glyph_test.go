package box

import "testing"

func TestGlyphStyleRanges(t *testing.T) {
	tests := []struct {
		style GlyphStyle
		want  string
	}{
		{StyleSingle, "─│┌┐└┘├┤┬┴┼"},
		{StyleDouble, "═║╔╗╚╝╠╣╦╩╬"},
		{StyleBlock, "███████████"},
		{StyleASCII, "-|+++++++++"},
	}
	for _, tt := range tests {
		if got := string(Glyphs(tt.style)); got != tt.want {
			t.Errorf("Glyphs(%s) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestGlyphFallbacks(t *testing.T) {
	if got := Glyph(GlyphStyle(9), GlyphTopLeft); got != '┌' {
		t.Errorf("unknown style should fall back to single, got %q", got)
	}
	if got := Glyph(StyleDouble, GlyphPos(11)); got != ' ' {
		t.Errorf("unknown position should be blank, got %q", got)
	}
}

func TestParseGlyphStyle(t *testing.T) {
	for _, s := range []GlyphStyle{StyleSingle, StyleDouble, StyleBlock, StyleASCII} {
		got, err := ParseGlyphStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseGlyphStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseGlyphStyle("rounded"); err == nil {
		t.Error("expected error for unknown style")
	}
	if GlyphStyle(7).String() != "style(7)" {
		t.Errorf("GlyphStyle(7).String() = %q", GlyphStyle(7).String())
	}
}

func render(style GlyphStyle, w, h int) []string {
	rows := make([]string, h)
	for row := 0; row < h; row++ {
		line := make([]rune, w)
		for col := 0; col < w; col++ {
			line[col] = BorderGlyph(style, col, row, w, h)
		}
		rows[row] = string(line)
	}
	return rows
}

func TestBorderGlyphSingle(t *testing.T) {
	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	got := render(StyleSingle, 6, 4)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBorderGlyphMinimalDouble(t *testing.T) {
	want := []string{
		"╔═╗",
		"║ ║",
		"╚═╝",
	}
	got := render(StyleDouble, 3, 3)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBorderGlyphASCII(t *testing.T) {
	got := render(StyleASCII, 4, 3)
	want := []string{"+--+", "|  |", "+--+"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}
