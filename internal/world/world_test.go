package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"voxmesh/internal/mesh"
)

type recordingSink struct {
	added   []*mesh.Mesh
	removed []*mesh.Mesh
}

func (s *recordingSink) Add(m *mesh.Mesh)    { s.added = append(s.added, m) }
func (s *recordingSink) Remove(m *mesh.Mesh) { s.removed = append(s.removed, m) }

// countingBuild returns a build func emitting one quad per section and the
// number of calls made so far.
func countingBuild() (BuildFunc, *int) {
	calls := 0
	return func(origin SectionCoord, src BlockSource) *mesh.Mesh {
		calls++
		m := mesh.New(origin.X, origin.Y, origin.Z)
		m.AppendQuad([4]mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
		return m
	}, &calls
}

type shapeTable map[BlockID][]Shape

func (t shapeTable) Shapes(id BlockID) []Shape { return t[id] }

const stone BlockID = 1

var testShapes = shapeTable{stone: {FullCube}}

func columnWithSections(sections ...int) *BlockColumn {
	col := NewBlockColumn(testShapes)
	for _, i := range sections {
		col.Set(0, i*SectionSize, 0, stone)
	}
	return col
}

// recordingColumn records the local coordinates it is queried with.
type recordingColumn struct {
	last BlockPos
}

func (c *recordingColumn) Block(x, y, z int) Block {
	c.last = BlockPos{X: x, Y: y, Z: z}
	return Block{ID: stone, Pos: c.last, Shapes: []Shape{FullCube}}
}

func (c *recordingColumn) HasSection(int) bool { return true }

func TestGetBlockResolvesColumnAndLocalCoords(t *testing.T) {
	w := New(nil, nil)
	col := &recordingColumn{}
	w.AddColumn(16, -16, col)

	b, ok := w.GetBlock(mgl32.Vec3{17, 5, -3})
	require.True(t, ok)
	require.Equal(t, BlockPos{X: 1, Y: 5, Z: 13}, col.last)
	require.Equal(t, BlockPos{X: 17, Y: 5, Z: -3}, b.Pos)

	b, ok = w.GetBlock(mgl32.Vec3{17.9, 5.5, -2.1})
	require.True(t, ok)
	require.Equal(t, BlockPos{X: 17, Y: 5, Z: -3}, b.Pos)
}

func TestGetBlockNotLoaded(t *testing.T) {
	w := New(nil, nil)
	w.AddColumn(0, 0, columnWithSections(0))

	_, ok := w.BlockAt(16, 0, 0)
	require.False(t, ok)
	_, ok = w.BlockAt(-1, 0, 0)
	require.False(t, ok)

	_, ok = w.BlockAt(0, 0, 0)
	require.True(t, ok)
}

func TestBlockAtOutOfRangeY(t *testing.T) {
	w := New(nil, nil)
	w.AddColumn(0, 0, columnWithSections(0, 15))

	_, ok := w.BlockAt(0, -1, 0)
	require.False(t, ok)
	_, ok = w.BlockAt(0, ColumnHeight, 0)
	require.False(t, ok)

	b, ok := w.BlockAt(0, ColumnHeight-16, 0)
	require.True(t, ok)
	require.Equal(t, stone, b.ID)
}

func TestUpdateBuildsOnlyMissingSections(t *testing.T) {
	sink := &recordingSink{}
	build, calls := countingBuild()
	w := New(sink, build)

	w.AddColumn(0, 0, columnWithSections(0, 1, 2, 3))
	w.AddColumn(16, 0, columnWithSections(4))

	require.Equal(t, 5, w.Update())
	require.Equal(t, 5, *calls)
	require.Len(t, sink.added, 5)
	require.Equal(t, 5, w.MeshCount())

	require.Equal(t, 0, w.Update())
	require.Equal(t, 5, *calls)
	require.Len(t, sink.added, 5)
	require.Empty(t, sink.removed)
}

func TestAddColumnReplacesMeshes(t *testing.T) {
	sink := &recordingSink{}
	build, calls := countingBuild()
	w := New(sink, build)

	w.AddColumn(0, 0, columnWithSections(0, 1, 2, 3))
	w.AddColumn(16, 16, columnWithSections(0))
	require.Equal(t, 5, w.Update())

	var old []*mesh.Mesh
	for y := 0; y <= 48; y += 16 {
		m, ok := w.Mesh(0, y, 0)
		require.True(t, ok)
		old = append(old, m)
	}

	w.AddColumn(0, 0, columnWithSections(0, 5))
	require.ElementsMatch(t, old, sink.removed)
	require.Equal(t, 1, w.MeshCount())
	require.Equal(t, 5, *calls)

	require.Equal(t, 2, w.Update())
	require.Equal(t, StateMeshed, w.SectionState(0, 0, 0))
	require.Equal(t, StateMeshed, w.SectionState(0, 80, 0))
	require.Equal(t, StateAbsent, w.SectionState(0, 16, 0))
	_, ok := w.Mesh(0, 16, 0)
	require.False(t, ok)
}

func TestAddColumnWithoutMeshesRemovesNothing(t *testing.T) {
	sink := &recordingSink{}
	build, _ := countingBuild()
	w := New(sink, build)

	w.AddColumn(0, 0, columnWithSections(0))
	w.AddColumn(0, 0, columnWithSections(0))
	require.Empty(t, sink.removed)
	require.Equal(t, 1, w.ColumnCount())
}

func TestRemoveColumn(t *testing.T) {
	sink := &recordingSink{}
	build, _ := countingBuild()
	w := New(sink, build)

	w.AddColumn(32, -16, columnWithSections(0, 2))
	w.Update()

	require.True(t, w.RemoveColumn(32, -16))
	require.Len(t, sink.removed, 2)
	require.Equal(t, 0, w.MeshCount())
	require.Equal(t, 0, w.ColumnCount())
	require.False(t, w.RemoveColumn(32, -16))

	_, ok := w.BlockAt(32, 0, -16)
	require.False(t, ok)
}

func TestSectionStates(t *testing.T) {
	build, _ := countingBuild()
	w := New(nil, build)

	require.Equal(t, StateAbsent, w.SectionState(0, 0, 0))
	w.AddColumn(0, 0, columnWithSections(1))
	require.Equal(t, StateAbsent, w.SectionState(0, 0, 0))
	require.Equal(t, StateDataNoMesh, w.SectionState(0, 16, 0))

	w.Update()
	require.Equal(t, StateMeshed, w.SectionState(0, 16, 0))

	w.AddColumn(0, 0, columnWithSections(1))
	require.Equal(t, StateDataNoMesh, w.SectionState(0, 16, 0))
}

func TestSkipEmptyMeshes(t *testing.T) {
	sink := &recordingSink{}
	build := func(origin SectionCoord, src BlockSource) *mesh.Mesh {
		return mesh.New(origin.X, origin.Y, origin.Z)
	}
	w := New(sink, build, WithSkipEmpty(true))

	w.AddColumn(0, 0, columnWithSections(0))
	require.Equal(t, 1, w.Update())
	require.Empty(t, sink.added)
	require.Equal(t, 0, w.Update())

	w.AddColumn(0, 0, columnWithSections(0))
	require.Empty(t, sink.removed)
}

func TestUpdateOrderIsDeterministic(t *testing.T) {
	var order []SectionCoord
	build := func(origin SectionCoord, src BlockSource) *mesh.Mesh {
		order = append(order, origin)
		return mesh.New(origin.X, origin.Y, origin.Z)
	}
	w := New(nil, build)
	w.AddColumn(16, 0, columnWithSections(0))
	w.AddColumn(-16, 16, columnWithSections(0))
	w.AddColumn(-16, -16, columnWithSections(1, 0))
	w.Update()

	require.Equal(t, []SectionCoord{
		{X: -16, Y: 0, Z: -16},
		{X: -16, Y: 16, Z: -16},
		{X: -16, Y: 0, Z: 16},
		{X: 16, Y: 0, Z: 0},
	}, order)
}
