package mesh

import "github.com/go-gl/mathgl/mgl32"

// Mesh holds the GPU-ready geometry of one 16x16x16 section: flattened
// world-space positions, one normal per vertex and a triangle index list.
type Mesh struct {
	// Origin is the world-space block origin of the section.
	Origin [3]int

	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// New returns an empty mesh for the section at the given origin.
func New(x, y, z int) *Mesh {
	return &Mesh{
		Origin:    [3]int{x, y, z},
		Positions: make([]float32, 0, 1024),
		Normals:   make([]float32, 0, 1024),
		Indices:   make([]uint32, 0, 1536),
	}
}

// AppendQuad appends the four corners of a quad sharing one normal and the
// two triangles (0,1,2) and (2,1,3) referencing them.
func (m *Mesh) AppendQuad(corners [4]mgl32.Vec3, normal mgl32.Vec3) {
	base := uint32(len(m.Positions) / 3)
	for _, c := range corners {
		m.Positions = append(m.Positions, c[0], c[1], c[2])
		m.Normals = append(m.Normals, normal[0], normal[1], normal[2])
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base+2, base+1, base+3,
	)
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// QuadCount returns the number of quads (two triangles each) in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Indices) / 6
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
}
