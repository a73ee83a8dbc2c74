package world

// BlockID identifies a block type in the block registry.
type BlockID uint16

// AirID is the id of the empty block.
const AirID BlockID = 0

// Block is the resolved content of one voxel. Blocks are produced per query
// and are not retained by the world.
type Block struct {
	ID     BlockID
	Pos    BlockPos
	Shapes []Shape
}

// IsEmpty reports whether the block has no geometry.
func (b Block) IsEmpty() bool {
	return len(b.Shapes) == 0
}

// IsFullCube reports whether the block fills its whole cell.
func (b Block) IsFullCube() bool {
	return IsFullCube(b.Shapes)
}

// Model classifies the block's shapes.
func (b Block) Model() Model {
	return Classify(b.Shapes)
}
