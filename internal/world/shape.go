package world

import "github.com/go-gl/mathgl/mgl32"

// Shape is an axis-aligned box inside a unit voxel cell. Both corners are
// expected in [0,1]; boxes outside that range or with Min > Max are not
// rejected and render as given.
type Shape struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// FullCube is the shape filling the whole cell.
var FullCube = Shape{Max: mgl32.Vec3{1, 1, 1}}

// NewShape builds a shape from its six scalars.
func NewShape(minX, minY, minZ, maxX, maxY, maxZ float32) Shape {
	return Shape{
		Min: mgl32.Vec3{minX, minY, minZ},
		Max: mgl32.Vec3{maxX, maxY, maxZ},
	}
}

// IsFullCube reports whether shapes is exactly one box equal to (0,0,0,1,1,1).
// Only such voxels take part in neighbour occlusion.
func IsFullCube(shapes []Shape) bool {
	return len(shapes) == 1 && shapes[0] == FullCube
}

// Kind tells how a voxel's geometry is meshed.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindFullCube
	KindBoxes
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFullCube:
		return "full_cube"
	case KindBoxes:
		return "boxes"
	default:
		return "unknown"
	}
}

// Model is the classified geometry of a voxel. Boxes is only set for
// KindBoxes.
type Model struct {
	Kind  Kind
	Boxes []Shape
}

// Classify decides once how a shape list is meshed.
func Classify(shapes []Shape) Model {
	switch {
	case len(shapes) == 0:
		return Model{Kind: KindEmpty}
	case IsFullCube(shapes):
		return Model{Kind: KindFullCube}
	default:
		return Model{Kind: KindBoxes, Boxes: shapes}
	}
}
