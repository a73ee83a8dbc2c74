package world

// Column is the unit of world storage: a 16x256x16 strip addressed in local
// coordinates and split into 16 sections stacked along Y.
type Column interface {
	// Block returns the block at local coordinates. The position of the
	// returned block is filled in by the world.
	Block(x, y, z int) Block
	// HasSection reports whether section i (0-15) has loaded data.
	HasSection(i int) bool
}

// ShapeSource resolves the shapes of a block type.
type ShapeSource interface {
	Shapes(id BlockID) []Shape
}

// section is a 16x16x16 sub-volume of a column.
type section struct {
	blocks []BlockID
}

// BlockColumn is a Column storing block ids in lazily allocated sections
// and resolving their shapes through a ShapeSource.
type BlockColumn struct {
	sections [NumSections]*section
	shapes   ShapeSource
}

// NewBlockColumn creates an empty column whose blocks resolve shapes
// through shapes.
func NewBlockColumn(shapes ShapeSource) *BlockColumn {
	return &BlockColumn{shapes: shapes}
}

// indexInSection converts local section coordinates (x, localY, z) → flat index
func indexInSection(x, localY, z int) int {
	return x*SectionSize*ColumnSizeZ + localY*ColumnSizeZ + z
}

func inColumn(x, y, z int) bool {
	return x >= 0 && x < ColumnSizeX && y >= 0 && y < ColumnHeight && z >= 0 && z < ColumnSizeZ
}

// ID returns the block id at the specified local coordinates.
func (c *BlockColumn) ID(x, y, z int) BlockID {
	if !inColumn(x, y, z) {
		return AirID
	}
	sec := c.sections[y/SectionSize]
	if sec == nil {
		return AirID
	}
	return sec.blocks[indexInSection(x, y%SectionSize, z)]
}

// Set sets the block id at the specified local coordinates. Setting air in a
// missing section does not allocate it.
func (c *BlockColumn) Set(x, y, z int, id BlockID) {
	if !inColumn(x, y, z) {
		return
	}
	secIdx := y / SectionSize
	sec := c.sections[secIdx]
	if sec == nil {
		if id == AirID {
			return
		}
		sec = &section{blocks: make([]BlockID, SectionVolume)}
		c.sections[secIdx] = sec
	}
	sec.blocks[indexInSection(x, y%SectionSize, z)] = id
}

// Block implements Column.
func (c *BlockColumn) Block(x, y, z int) Block {
	id := c.ID(x, y, z)
	b := Block{ID: id, Pos: BlockPos{X: x, Y: y, Z: z}}
	if id != AirID && c.shapes != nil {
		b.Shapes = c.shapes.Shapes(id)
	}
	return b
}

// HasSection implements Column.
func (c *BlockColumn) HasSection(i int) bool {
	if i < 0 || i >= NumSections {
		return false
	}
	return c.sections[i] != nil
}

// SectionIDs returns the raw ids of section i in x, y, z order (see
// indexInSection), or nil when the section is absent. The slice is shared
// with the column.
func (c *BlockColumn) SectionIDs(i int) []BlockID {
	if !c.HasSection(i) {
		return nil
	}
	return c.sections[i].blocks
}

// SetSection replaces section i with ids, which must hold SectionVolume
// entries. A nil slice clears the section.
func (c *BlockColumn) SetSection(i int, ids []BlockID) bool {
	if i < 0 || i >= NumSections {
		return false
	}
	if ids == nil {
		c.sections[i] = nil
		return true
	}
	if len(ids) != SectionVolume {
		return false
	}
	c.sections[i] = &section{blocks: ids}
	return true
}

// SectionCount returns the number of present sections.
func (c *BlockColumn) SectionCount() int {
	n := 0
	for _, sec := range c.sections {
		if sec != nil {
			n++
		}
	}
	return n
}
