package meshing

import (
	"voxmesh/internal/mesh"
	"voxmesh/internal/world"
)

// BuildSectionMesh emits every visible face of the 16x16x16 section at
// origin. Full cubes drop faces covered by a full-cube neighbour; any other
// shape list renders all six faces of each box.
//
// A neighbour that is not loaded never occludes, so faces on the border of
// unloaded columns are still emitted. Faces of full cubes pointing below the
// world floor are dropped.
func BuildSectionMesh(origin world.SectionCoord, src world.BlockSource) *mesh.Mesh {
	m := mesh.New(origin.X, origin.Y, origin.Z)

	for y := origin.Y; y < origin.Y+world.SectionSize; y++ {
		for z := origin.Z; z < origin.Z+world.SectionSize; z++ {
			for x := origin.X; x < origin.X+world.SectionSize; x++ {
				b, ok := src.BlockAt(x, y, z)
				if !ok {
					continue
				}
				appendBlock(m, b, src)
			}
		}
	}
	return m
}

// appendBlock appends the visible faces of b to m.
func appendBlock(m *mesh.Mesh, b world.Block, src world.BlockSource) {
	model := b.Model()
	switch model.Kind {
	case world.KindEmpty:
		return

	case world.KindFullCube:
		for _, f := range Faces {
			n := b.Pos.Add(f.Offset)
			if n.Y < 0 || occluded(n, src) {
				continue
			}
			m.AppendQuad(f.Quad(b.Pos, world.FullCube), f.Normal)
		}

	case world.KindBoxes:
		for _, box := range model.Boxes {
			for _, f := range Faces {
				m.AppendQuad(f.Quad(b.Pos, box), f.Normal)
			}
		}
	}
}

// occluded reports whether the voxel at p hides the face of a full cube
// touching it.
func occluded(p world.BlockPos, src world.BlockSource) bool {
	n, ok := src.BlockAt(p.X, p.Y, p.Z)
	if !ok {
		return false
	}
	return n.IsFullCube()
}
