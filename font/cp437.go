package font

import "golang.org/x/text/encoding/charmap"

// graphicalRunes maps the code page 437 control range to its graphical
// interpretation (smileys, card suits, arrows). Hardware character ROMs
// displayed these shapes for bytes 0x01-0x1F and 0x7F; the overrides
// guarantee that reading regardless of how the charmap tables treat
// the C0 range.
var graphicalRunes = map[uint8]rune{
	0x01: '☺',
	0x02: '☻',
	0x03: '♥',
	0x04: '♦',
	0x05: '♣',
	0x06: '♠',
	0x07: '•',
	0x08: '◘',
	0x09: '○',
	0x0A: '◙',
	0x0B: '♂',
	0x0C: '♀',
	0x0D: '♪',
	0x0E: '♫',
	0x0F: '☼',
	0x10: '►',
	0x11: '◄',
	0x12: '↕',
	0x13: '‼',
	0x14: '¶',
	0x15: '§',
	0x16: '▬',
	0x17: '↨',
	0x18: '↑',
	0x19: '↓',
	0x1A: '→',
	0x1B: '←',
	0x1C: '∟',
	0x1D: '↔',
	0x1E: '▲',
	0x1F: '▼',
	0x7F: '⌂',
}

// graphicalBytes is the reverse of graphicalRunes.
var graphicalBytes = func() map[rune]uint8 {
	m := make(map[rune]uint8, len(graphicalRunes))
	for b, r := range graphicalRunes {
		m[r] = b
	}
	return m
}()

// ToCP437 converts a rune to its code page 437 glyph index. Runes with
// no CP437 equivalent map to glyph 0, which renders as a blank cell.
func ToCP437(r rune) uint8 {
	if b, ok := graphicalBytes[r]; ok {
		return b
	}
	if b, ok := charmap.CodePage437.EncodeRune(r); ok {
		return b
	}
	return 0
}

// ToRune converts a glyph index to the rune it displays as, using the
// graphical interpretation of the control range.
func ToRune(glyph uint8) rune {
	if r, ok := graphicalRunes[glyph]; ok {
		return r
	}
	return charmap.CodePage437.DecodeByte(glyph)
}

// StringToCP437 converts a string to glyph indices, one per rune.
func StringToCP437(s string) []uint8 {
	out := make([]uint8, 0, len(s))
	for _, r := range s {
		out = append(out, ToCP437(r))
	}
	return out
}
