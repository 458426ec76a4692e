package backend

import "testing"

func TestGridMeshAppendQuad(t *testing.T) {
	var m GridMesh

	tl := Vertex{X: -1, Y: 1, U: 0, V: 0}
	tr := Vertex{X: 1, Y: 1, U: 1, V: 0}
	br := Vertex{X: 1, Y: -1, U: 1, V: 1}
	bl := Vertex{X: -1, Y: -1, U: 0, V: 1}
	m.AppendQuad(tl, tr, br, bl)

	if m.QuadCount() != 1 {
		t.Fatalf("QuadCount() = %d, want 1", m.QuadCount())
	}
	want := []Vertex{tl, tr, br, bl}
	for i, v := range want {
		if m.Vertices[i] != v {
			t.Errorf("Vertices[%d] = %+v, want %+v", i, m.Vertices[i], v)
		}
	}
}

func TestGridMeshReset(t *testing.T) {
	var m GridMesh
	for i := 0; i < 8; i++ {
		m.AppendQuad(Vertex{}, Vertex{}, Vertex{}, Vertex{})
	}
	grown := cap(m.Vertices)

	m.Reset()

	if m.QuadCount() != 0 {
		t.Errorf("QuadCount() after Reset = %d, want 0", m.QuadCount())
	}
	if cap(m.Vertices) != grown {
		t.Errorf("Reset dropped capacity: %d, want %d", cap(m.Vertices), grown)
	}
}
