package font

import "testing"

func TestToCP437(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want uint8
	}{
		{"ascii letter", 'A', 65},
		{"space", ' ', 32},
		{"smiley", '☺', 0x01},
		{"heart", '♥', 0x03},
		{"house", '⌂', 0x7F},
		{"accented", 'É', 0x90},
		{"full block", '█', 0xDB},
		{"unmapped euro", '€', 0},
		{"unmapped cjk", 'あ', 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCP437(tt.r); got != tt.want {
				t.Errorf("ToCP437(%q) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestToRune(t *testing.T) {
	tests := []struct {
		glyph uint8
		want  rune
	}{
		{65, 'A'},
		{0x01, '☺'},
		{0x03, '♥'},
		{0x1F, '▼'},
		{0x7F, '⌂'},
		{0x90, 'É'},
		{0xDB, '█'},
	}
	for _, tt := range tests {
		if got := ToRune(tt.glyph); got != tt.want {
			t.Errorf("ToRune(%d) = %q, want %q", tt.glyph, got, tt.want)
		}
	}
}

func TestCP437RoundTrip(t *testing.T) {
	// Every glyph index survives display mapping and back.
	for g := 0; g < 256; g++ {
		r := ToRune(uint8(g))
		if got := ToCP437(r); got != uint8(g) {
			t.Errorf("ToCP437(ToRune(%d)) = %d via %q", g, got, r)
		}
	}
}

func TestStringToCP437(t *testing.T) {
	got := StringToCP437("Hi♥")
	want := []uint8{72, 105, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("glyph %d = %d, want %d", i, got[i], want[i])
		}
	}

	if got := StringToCP437(""); len(got) != 0 {
		t.Errorf("empty string gave %d glyphs", len(got))
	}
}
