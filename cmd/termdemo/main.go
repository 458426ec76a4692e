// Command termdemo demonstrates the termgrid console host.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/termgrid"
	_ "github.com/gogpu/termgrid/backend/wgpu" // Register the GPU backend
	"github.com/gogpu/termgrid/font"
	_ "github.com/gogpu/termgrid/window" // Register the platform window
)

func main() {
	var (
		cols  = flag.Int("cols", 80, "console width in cells")
		rows  = flag.Int("rows", 25, "console height in cells")
		cellW = flag.Int("cellw", 8, "glyph cell width in pixels")
		cellH = flag.Int("cellh", 16, "glyph cell height in pixels")
		sheet = flag.String("font", "", "glyph sheet PNG (16x16 grid); renders Go Mono when empty")
	)
	flag.Parse()

	atlas, err := loadAtlas(*sheet, *cellW, *cellH)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	host, err := termgrid.New(*cols**cellW, *rows**cellH,
		termgrid.WithTitle("termgrid demo"))
	if err != nil {
		log.Fatalf("Failed to create host: %v", err)
	}

	fontIdx, err := host.RegisterFont(atlas)
	if err != nil {
		log.Fatalf("Failed to register font: %v", err)
	}

	console, err := termgrid.NewSimpleConsole(*cols, *rows)
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}
	host.RegisterConsole(console, fontIdx)

	err = host.Run(termgrid.AppFunc(func(h *termgrid.Host) {
		for _, ev := range h.Events() {
			if key, ok := ev.(termgrid.KeyEvent); ok && key.Key == gpucontext.KeySpace {
				h.Quit()
			}
		}

		h.Cls()
		h.Print(1, 1, "Hello termgrid world")
		h.Print(1, 2, "Space or close button exits")
		h.PrintColor(1, 4, termgrid.Yellow, termgrid.Black,
			fmt.Sprintf("FPS: %5.0f", h.FPS()))
		h.PrintColor(1, 5, termgrid.Cyan, termgrid.Black,
			fmt.Sprintf("Frame: %3.0f ms", h.FrameTimeMS()))
		drawPalette(h, 1, 7)
		drawGlyphTable(h, 1, 9)
	}))
	if err != nil {
		log.Fatalf("Host loop failed: %v", err)
	}
}

// loadAtlas reads a glyph sheet when a path is given, otherwise
// rasterizes the embedded Go Mono face.
func loadAtlas(path string, cellW, cellH int) (*font.Atlas, error) {
	if path != "" {
		return font.LoadSheet(path)
	}
	return font.Rasterize(gomono.TTF, cellW, cellH)
}

// drawPalette prints one swatch per classic text-mode color.
func drawPalette(h *termgrid.Host, x, y int) {
	palette := []termgrid.RGBA{
		termgrid.Black, termgrid.Blue, termgrid.Green, termgrid.Cyan,
		termgrid.Red, termgrid.Magenta, termgrid.Brown, termgrid.LightGrey,
		termgrid.DarkGrey, termgrid.LightBlue, termgrid.LightGreen, termgrid.LightCyan,
		termgrid.LightRed, termgrid.LightMagenta, termgrid.Yellow, termgrid.White,
	}
	for i, c := range palette {
		h.PrintColor(x+i*2, y, c, termgrid.DarkGrey, "██")
	}
}

// drawGlyphTable prints the full code page 437 glyph set, 32 per row.
func drawGlyphTable(h *termgrid.Host, x, y int) {
	for g := 0; g < 256; g++ {
		row := y + g/32
		col := x + g%32
		h.PrintColor(col, row, termgrid.LightGrey, termgrid.Black,
			string(font.ToRune(uint8(g))))
	}
}
