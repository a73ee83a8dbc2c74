package world

const (
	// Column dimensions
	ColumnSizeX  = 16
	ColumnHeight = 256
	ColumnSizeZ  = 16

	// Section dimensions
	SectionSize   = 16
	NumSections   = ColumnHeight / SectionSize
	SectionVolume = ColumnSizeX * SectionSize * ColumnSizeZ
)

// BlockPos is an integer voxel position.
type BlockPos struct {
	X, Y, Z int
}

// Add returns p offset by o.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// ColumnCoord is the horizontal world-block origin of a column. Both
// components are multiples of 16.
type ColumnCoord struct {
	X, Z int
}

// SectionCoord is the world-block origin of a section. X and Z are multiples
// of 16, Y is a multiple of 16 in [0, 240].
type SectionCoord struct {
	X, Y, Z int
}

// ColumnOf returns the origin of the column owning the world block column
// (x, z).
func ColumnOf(x, z int) ColumnCoord {
	return ColumnCoord{
		X: floorDiv(x, ColumnSizeX) * ColumnSizeX,
		Z: floorDiv(z, ColumnSizeZ) * ColumnSizeZ,
	}
}

// Section returns the origin of section i of the column.
func (c ColumnCoord) Section(i int) SectionCoord {
	return SectionCoord{X: c.X, Y: i * SectionSize, Z: c.Z}
}

// Column returns the origin of the column holding the section.
func (s SectionCoord) Column() ColumnCoord {
	return ColumnCoord{X: s.X, Z: s.Z}
}

// Index returns the vertical section index within the column.
func (s SectionCoord) Index() int {
	return s.Y / SectionSize
}

// SectionOf returns the origin of the section containing the world block
// (x, y, z).
func SectionOf(x, y, z int) SectionCoord {
	c := ColumnOf(x, z)
	return SectionCoord{X: c.X, Y: floorDiv(y, SectionSize) * SectionSize, Z: c.Z}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
