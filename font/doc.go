// Package font builds glyph atlases for text-grid rendering.
//
// An Atlas is a 16x16 grid of glyph cells in code page 437 order,
// 256 glyphs total. Atlases come from two sources:
//
//   - LoadSheet / DecodeSheet read a pre-drawn bitmap font sheet (PNG),
//     the classic roguelike format with white glyphs on black.
//   - Rasterize renders a TrueType font into the same grid layout, so
//     vector fonts and bitmap sheets are interchangeable at draw time.
//
// Both sources produce the same contract: opaque RGBA, glyph shapes in
// white (or grayscale for antialiased edges) on a black background. The
// renderer separates glyph from background by texel brightness, so
// sheets with colored or transparent artwork will not composite
// correctly.
//
// ToCP437 and StringToCP437 translate Unicode text into glyph indices,
// including the graphical interpretation of the control range (glyph 1
// is U+263A, and so on).
package font
