package world

import "voxmesh/internal/mesh"

// Sink receives finished section meshes. Add is called once when a mesh is
// registered and Remove once when it is invalidated.
type Sink interface {
	Add(m *mesh.Mesh)
	Remove(m *mesh.Mesh)
}

// NopSink discards every mesh.
type NopSink struct{}

func (NopSink) Add(*mesh.Mesh)    {}
func (NopSink) Remove(*mesh.Mesh) {}
