package world

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/mesh"
)

// BlockSource answers per-voxel queries in world coordinates. A false result
// means the owning column is not loaded.
type BlockSource interface {
	BlockAt(x, y, z int) (Block, bool)
}

// BuildFunc builds the mesh of the section at origin.
type BuildFunc func(origin SectionCoord, src BlockSource) *mesh.Mesh

// SectionState is the meshing state of one section origin.
type SectionState int

const (
	StateAbsent SectionState = iota
	StateDataNoMesh
	StateMeshed
)

func (s SectionState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateDataNoMesh:
		return "data_no_mesh"
	case StateMeshed:
		return "meshed"
	default:
		return "unknown"
	}
}

type sectionMesh struct {
	mesh  *mesh.Mesh
	added bool
}

// World owns the loaded columns and the section meshes built from them.
// It is not safe for concurrent use: AddColumn, RemoveColumn and Update are
// expected to run on one control loop.
type World struct {
	columns map[ColumnCoord]Column
	meshes  map[SectionCoord]*sectionMesh

	sink      Sink
	build     BuildFunc
	skipEmpty bool
}

// Option configures a World.
type Option func(*World)

// WithSkipEmpty keeps meshes without geometry away from the sink. They are
// still registered so that Update does not rebuild them.
func WithSkipEmpty(skip bool) Option {
	return func(w *World) {
		w.skipEmpty = skip
	}
}

// New creates an empty world handing meshes built by build to sink.
func New(sink Sink, build BuildFunc, opts ...Option) *World {
	if sink == nil {
		sink = NopSink{}
	}
	w := &World{
		columns: make(map[ColumnCoord]Column),
		meshes:  make(map[SectionCoord]*sectionMesh),
		sink:    sink,
		build:   build,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddColumn stores col at the column origin (x, z), replacing any previous
// column there. Every mesh built for that origin is removed from the sink,
// whether or not the new data changed.
func (w *World) AddColumn(x, z int, col Column) {
	coord := ColumnCoord{X: x, Z: z}
	_, replaced := w.columns[coord]
	w.columns[coord] = col
	removed := w.dropMeshes(coord)
	columnsLoaded.Set(float64(len(w.columns)))

	if replaced {
		logs.WithTag("x", x).
			WithTag("z", z).
			WithTag("removed_meshes", removed).
			Debug("column replaced")
	}
}

// RemoveColumn unloads the column at (x, z) and removes its meshes. It
// returns false when no column was loaded there.
func (w *World) RemoveColumn(x, z int) bool {
	coord := ColumnCoord{X: x, Z: z}
	if _, ok := w.columns[coord]; !ok {
		return false
	}
	w.dropMeshes(coord)
	delete(w.columns, coord)
	columnsLoaded.Set(float64(len(w.columns)))
	return true
}

func (w *World) dropMeshes(coord ColumnCoord) int {
	removed := 0
	for i := 0; i < NumSections; i++ {
		key := coord.Section(i)
		sm, ok := w.meshes[key]
		if !ok {
			continue
		}
		if sm.added {
			w.sink.Remove(sm.mesh)
		}
		delete(w.meshes, key)
		removed++
	}
	if removed > 0 {
		sectionRemovals.Add(float64(removed))
		sectionMeshes.Set(float64(len(w.meshes)))
	}
	return removed
}

// Update builds a mesh for every loaded section that has none yet, registers
// it and hands it to the sink. Sections that already have a mesh are left
// alone. It returns the number of meshes built.
func (w *World) Update() int {
	if w.build == nil {
		return 0
	}

	coords := make([]ColumnCoord, 0, len(w.columns))
	for coord := range w.columns {
		coords = append(coords, coord)
	}
	slices.SortFunc(coords, func(a, b ColumnCoord) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})

	built := 0
	for _, coord := range coords {
		col := w.columns[coord]
		for i := 0; i < NumSections; i++ {
			key := coord.Section(i)
			if !col.HasSection(i) {
				continue
			}
			if _, ok := w.meshes[key]; ok {
				continue
			}

			start := time.Now()
			m := w.build(key, w)
			elapsed := time.Since(start)
			sectionBuildSeconds.Observe(elapsed.Seconds())

			sm := &sectionMesh{mesh: m}
			w.meshes[key] = sm
			if !(w.skipEmpty && m.IsEmpty()) {
				w.sink.Add(m)
				sm.added = true
			}
			built++

			logs.WithTag("x", key.X).
				WithTag("y", key.Y).
				WithTag("z", key.Z).
				WithTag("quads", m.QuadCount()).
				WithTag("duration", elapsed.String()).
				Debug("section meshed")
		}
	}

	if built > 0 {
		sectionBuilds.Add(float64(built))
		sectionMeshes.Set(float64(len(w.meshes)))
	}
	return built
}

// GetBlock returns the block at the floored world position pos.
func (w *World) GetBlock(pos mgl32.Vec3) (Block, bool) {
	return w.BlockAt(
		int(math.Floor(float64(pos[0]))),
		int(math.Floor(float64(pos[1]))),
		int(math.Floor(float64(pos[2]))),
	)
}

// BlockAt returns the block at the world voxel (x, y, z), stamped with its
// absolute position. It returns false when the owning column is not loaded
// or y lies outside the column.
func (w *World) BlockAt(x, y, z int) (Block, bool) {
	if y < 0 || y >= ColumnHeight {
		return Block{}, false
	}
	col, ok := w.columns[ColumnOf(x, z)]
	if !ok {
		return Block{}, false
	}
	b := col.Block(x&(ColumnSizeX-1), y, z&(ColumnSizeZ-1))
	b.Pos = BlockPos{X: x, Y: y, Z: z}
	return b, true
}

// Column returns the column loaded at origin (x, z).
func (w *World) Column(x, z int) (Column, bool) {
	col, ok := w.columns[ColumnCoord{X: x, Z: z}]
	return col, ok
}

// Mesh returns the mesh registered for the section origin (x, y, z).
func (w *World) Mesh(x, y, z int) (*mesh.Mesh, bool) {
	sm, ok := w.meshes[SectionCoord{X: x, Y: y, Z: z}]
	if !ok {
		return nil, false
	}
	return sm.mesh, true
}

// SectionState returns the meshing state of the section origin (x, y, z).
func (w *World) SectionState(x, y, z int) SectionState {
	key := SectionCoord{X: x, Y: y, Z: z}
	if _, ok := w.meshes[key]; ok {
		return StateMeshed
	}
	col, ok := w.columns[key.Column()]
	if !ok || y < 0 || y%SectionSize != 0 || !col.HasSection(key.Index()) {
		return StateAbsent
	}
	return StateDataNoMesh
}

// ColumnCount returns the number of loaded columns.
func (w *World) ColumnCount() int {
	return len(w.columns)
}

// MeshCount returns the number of registered section meshes.
func (w *World) MeshCount() int {
	return len(w.meshes)
}
