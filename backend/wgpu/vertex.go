package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/termgrid/backend"
)

// gridVertexStride is the byte size of one console vertex:
// position (8) + tex_coord (8) + fg (16) + bg (16).
const gridVertexStride = 48

// buildGridVertexData serializes vertices into raw bytes for GPU
// upload.
func buildGridVertexData(vertices []backend.Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	data := make([]byte, len(vertices)*gridVertexStride)
	off := 0
	for _, v := range vertices {
		writeGridVertex(data[off:], v)
		off += gridVertexStride
	}
	return data
}

// writeGridVertex writes a single vertex into buf.
func writeGridVertex(buf []byte, v backend.Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.U))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.V))
	for i, c := range v.Fg {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(c))
	}
	for i, c := range v.Bg {
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(c))
	}
}

// generateQuadIndices generates index buffer data for a given number of
// quads. Uses the pattern: 0,1,2, 2,3,0 for each quad (two triangles).
func generateQuadIndices(numQuads int) []uint16 {
	indices := make([]uint16, numQuads*6)

	for i := 0; i < numQuads; i++ {
		base := i * 6
		vertex := uint16(i * 4)

		// First triangle: 0, 1, 2
		indices[base+0] = vertex + 0
		indices[base+1] = vertex + 1
		indices[base+2] = vertex + 2

		// Second triangle: 2, 3, 0
		indices[base+3] = vertex + 2
		indices[base+4] = vertex + 3
		indices[base+5] = vertex + 0
	}

	return indices
}

// buildGridIndexData serializes quad indices into raw bytes for GPU upload.
func buildGridIndexData(numQuads int) []byte {
	indices := generateQuadIndices(numQuads)
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
