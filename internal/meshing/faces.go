package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

// Direction is one of the six axis-aligned face directions.
type Direction int

const (
	West  Direction = iota // -X
	East                   // +X
	Down                   // -Y
	Up                     // +Y
	North                  // -Z
	South                  // +Z
)

func (d Direction) String() string {
	switch d {
	case West:
		return "west"
	case East:
		return "east"
	case Down:
		return "down"
	case Up:
		return "up"
	case North:
		return "north"
	case South:
		return "south"
	default:
		return "unknown"
	}
}

// Face describes one side of the unit cube: its outward normal, the offset
// of the neighbour it touches and four corners in local [0,1] space.
//
// Corners are ordered so that triangles (0,1,2) and (2,1,3) are front facing
// seen from outside. Do not reorder them.
type Face struct {
	Dir     Direction
	Normal  mgl32.Vec3
	Offset  world.BlockPos
	Corners [4][3]float32
}

// Faces holds the six cube faces in Direction order.
var Faces = [6]Face{
	{
		Dir:     West,
		Normal:  mgl32.Vec3{-1, 0, 0},
		Offset:  world.BlockPos{X: -1},
		Corners: [4][3]float32{{0, 1, 0}, {0, 0, 0}, {0, 1, 1}, {0, 0, 1}},
	},
	{
		Dir:     East,
		Normal:  mgl32.Vec3{1, 0, 0},
		Offset:  world.BlockPos{X: 1},
		Corners: [4][3]float32{{1, 1, 1}, {1, 0, 1}, {1, 1, 0}, {1, 0, 0}},
	},
	{
		Dir:     Down,
		Normal:  mgl32.Vec3{0, -1, 0},
		Offset:  world.BlockPos{Y: -1},
		Corners: [4][3]float32{{1, 0, 1}, {0, 0, 1}, {1, 0, 0}, {0, 0, 0}},
	},
	{
		Dir:     Up,
		Normal:  mgl32.Vec3{0, 1, 0},
		Offset:  world.BlockPos{Y: 1},
		Corners: [4][3]float32{{0, 1, 1}, {1, 1, 1}, {0, 1, 0}, {1, 1, 0}},
	},
	{
		Dir:     North,
		Normal:  mgl32.Vec3{0, 0, -1},
		Offset:  world.BlockPos{Z: -1},
		Corners: [4][3]float32{{1, 0, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	},
	{
		Dir:     South,
		Normal:  mgl32.Vec3{0, 0, 1},
		Offset:  world.BlockPos{Z: 1},
		Corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}},
	},
}

// Quad returns the world-space corners of the face for a box at the voxel
// pos. A corner component of 0 takes the box minimum, 1 takes the maximum.
func (f Face) Quad(pos world.BlockPos, box world.Shape) [4]mgl32.Vec3 {
	origin := mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)}
	var quad [4]mgl32.Vec3
	for i, c := range f.Corners {
		for axis := 0; axis < 3; axis++ {
			v := box.Min[axis]
			if c[axis] != 0 {
				v = box.Max[axis]
			}
			quad[i][axis] = origin[axis] + v
		}
	}
	return quad
}
