package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockColumnSections(t *testing.T) {
	col := NewBlockColumn(testShapes)
	require.Equal(t, 0, col.SectionCount())

	col.Set(3, 40, 7, AirID)
	require.False(t, col.HasSection(2))

	col.Set(3, 40, 7, stone)
	require.True(t, col.HasSection(2))
	require.Equal(t, stone, col.ID(3, 40, 7))
	require.Equal(t, AirID, col.ID(3, 41, 7))

	b := col.Block(3, 40, 7)
	require.Equal(t, BlockPos{X: 3, Y: 40, Z: 7}, b.Pos)
	require.True(t, b.IsFullCube())
	require.True(t, col.Block(0, 0, 0).IsEmpty())

	require.Equal(t, AirID, col.ID(-1, 0, 0))
	require.False(t, col.HasSection(NumSections))
}

func TestBlockColumnSetSection(t *testing.T) {
	col := NewBlockColumn(testShapes)
	require.False(t, col.SetSection(0, make([]BlockID, 10)))

	ids := make([]BlockID, SectionVolume)
	ids[indexInSection(1, 2, 3)] = stone
	require.True(t, col.SetSection(4, ids))
	require.Equal(t, stone, col.ID(1, 4*SectionSize+2, 3))
	require.Equal(t, ids, col.SectionIDs(4))

	require.True(t, col.SetSection(4, nil))
	require.Nil(t, col.SectionIDs(4))
}

func TestColumnOf(t *testing.T) {
	require.Equal(t, ColumnCoord{X: 16, Z: -16}, ColumnOf(17, -3))
	require.Equal(t, ColumnCoord{X: 0, Z: -16}, ColumnOf(15, -16))
	require.Equal(t, ColumnCoord{X: -32, Z: 0}, ColumnOf(-17, 0))
	require.Equal(t, SectionCoord{X: 16, Y: 32, Z: -16}, SectionOf(17, 47, -3))
}
