package backend

// Vertex is one corner of a console cell quad.
// Positions are in clip space so a console stretches with the window,
// UVs address the glyph atlas, and the color pairs are resolved by the
// shader (foreground tint over background fill).
type Vertex struct {
	X, Y float32
	U, V float32
	Fg   [4]float32
	Bg   [4]float32
}

// GridMesh is the CPU-side geometry a console rebuild produces: one
// quad per cell, four vertices per quad. Backends generate the shared
// index pattern themselves.
type GridMesh struct {
	Vertices []Vertex
}

// Reset clears the mesh for a fresh rebuild, keeping capacity.
func (m *GridMesh) Reset() {
	m.Vertices = m.Vertices[:0]
}

// AppendQuad appends one cell quad. Corners must be given in
// top-left, top-right, bottom-right, bottom-left order to match the
// backend index pattern (0,1,2, 2,3,0).
func (m *GridMesh) AppendQuad(tl, tr, br, bl Vertex) {
	m.Vertices = append(m.Vertices, tl, tr, br, bl)
}

// QuadCount returns the number of complete quads in the mesh.
func (m *GridMesh) QuadCount() int {
	return len(m.Vertices) / 4
}
