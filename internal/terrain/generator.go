package terrain

import (
	"math"

	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// Generator produces heightmap columns: stone up to a few blocks below the
// surface, dirt, then grass, with the occasional partial block (slab,
// carpet, fence post or stairs) placed on top.
type Generator struct {
	seed       int64
	noise      valueNoise
	scale      float64
	baseHeight int
	amp        float64
	// decorate is the chance, out of 256, of a partial block on a surface.
	decorate uint64
}

// New creates a generator with default settings.
func New(seed int64) *Generator {
	return &Generator{
		seed: seed,
		noise: valueNoise{
			seed:        seed,
			octaves:     4,
			persistence: 0.5,
			lacunarity:  2.0,
		},
		scale:      1.0 / 64.0,
		baseHeight: 48,
		amp:        32,
		decorate:   12,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z. The result is
// within [0, ColumnHeight-2] so there is always room for a decoration.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	n := g.noise.at(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	height := int(math.Floor(float64(g.baseHeight) + (n-0.5)*2*g.amp))
	if height < 0 {
		return 0
	}
	if height > world.ColumnHeight-2 {
		return world.ColumnHeight - 2
	}
	return height
}

// Decoration returns the partial block placed above the surface at world
// X,Z, or air.
func (g *Generator) Decoration(worldX, worldZ int) world.BlockID {
	h := splitmix(int64(worldX), int64(worldZ), g.seed^0x5DEECE66D)
	if h&0xFF >= g.decorate {
		return registry.Air
	}
	decorations := [...]world.BlockID{
		registry.Slab,
		registry.Carpet,
		registry.FencePost,
		registry.Stairs,
	}
	return decorations[(h>>8)%uint64(len(decorations))]
}

// Column generates the column whose origin is (x, z). Block shapes resolve
// through shapes.
func (g *Generator) Column(x, z int, shapes world.ShapeSource) *world.BlockColumn {
	origin := world.ColumnOf(x, z)
	col := world.NewBlockColumn(shapes)

	for lx := 0; lx < world.ColumnSizeX; lx++ {
		for lz := 0; lz < world.ColumnSizeZ; lz++ {
			worldX := origin.X + lx
			worldZ := origin.Z + lz
			height := g.HeightAt(worldX, worldZ)

			for y := 0; y < height; y++ {
				if y < height-3 {
					col.Set(lx, y, lz, registry.Stone)
				} else {
					col.Set(lx, y, lz, registry.Dirt)
				}
			}
			col.Set(lx, height, lz, registry.Grass)

			if deco := g.Decoration(worldX, worldZ); deco != registry.Air {
				col.Set(lx, height+1, lz, deco)
			}
		}
	}
	return col
}

// Origins returns the column origins within radius columns of the column
// holding (x, z), ordered by X then Z.
func Origins(x, z, radius int) []world.ColumnCoord {
	center := world.ColumnOf(x, z)
	coords := make([]world.ColumnCoord, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coords = append(coords, world.ColumnCoord{
				X: center.X + dx*world.ColumnSizeX,
				Z: center.Z + dz*world.ColumnSizeZ,
			})
		}
	}
	return coords
}
