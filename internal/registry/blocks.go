package registry

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"voxmesh/internal/world"
	"voxmesh/pkg/blockmodel"
)

const (
	ErrTypeDuplicate = "registry_duplicate"
	ErrTypeModel     = "registry_model"
)

// Built-in block ids registered by Default.
const (
	Air world.BlockID = iota
	Stone
	Dirt
	Grass
	Slab
	Carpet
	FencePost
	Stairs
)

// Definition is a registered block type.
type Definition struct {
	ID     world.BlockID
	Name   string
	Shapes []world.Shape
}

// Registry maps block ids to their shapes. It implements world.ShapeSource.
type Registry struct {
	blocks map[world.BlockID]*Definition
	names  map[string]world.BlockID
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		blocks: make(map[world.BlockID]*Definition),
		names:  make(map[string]world.BlockID),
	}
}

// Default returns a registry holding the built-in blocks.
func Default() *Registry {
	r := New()
	for _, def := range builtins() {
		// Built-in ids and names are unique.
		_ = r.Register(def)
	}
	return r
}

func builtins() []*Definition {
	return []*Definition{
		{ID: Air, Name: "air"},
		{ID: Stone, Name: "stone", Shapes: []world.Shape{world.FullCube}},
		{ID: Dirt, Name: "dirt", Shapes: []world.Shape{world.FullCube}},
		{ID: Grass, Name: "grass", Shapes: []world.Shape{world.FullCube}},
		{ID: Slab, Name: "stone_slab", Shapes: []world.Shape{
			world.NewShape(0, 0, 0, 1, 0.5, 1),
		}},
		{ID: Carpet, Name: "carpet", Shapes: []world.Shape{
			world.NewShape(0, 0, 0, 1, 1.0/16, 1),
		}},
		{ID: FencePost, Name: "fence", Shapes: []world.Shape{
			world.NewShape(0.375, 0, 0.375, 0.625, 1, 0.625),
		}},
		{ID: Stairs, Name: "stairs", Shapes: []world.Shape{
			world.NewShape(0, 0, 0, 1, 0.5, 1),
			world.NewShape(0, 0.5, 0.5, 1, 1, 1),
		}},
	}
}

// Register adds a definition. Ids and names must be unique.
func (r *Registry) Register(def *Definition) error {
	if _, ok := r.blocks[def.ID]; ok {
		return errors.New("block id already registered").
			WithType(ErrTypeDuplicate).
			WithTag("id", def.ID)
	}
	if _, ok := r.names[def.Name]; ok {
		return errors.New("block name already registered").
			WithType(ErrTypeDuplicate).
			WithTag("name", def.Name)
	}
	r.blocks[def.ID] = def
	r.names[def.Name] = def.ID
	return nil
}

// Shapes implements world.ShapeSource. Unknown ids have no shapes.
func (r *Registry) Shapes(id world.BlockID) []world.Shape {
	if def, ok := r.blocks[id]; ok {
		return def.Shapes
	}
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	id, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.blocks[id], true
}

// Definition returns the definition of id.
func (r *Registry) Definition(id world.BlockID) (*Definition, bool) {
	def, ok := r.blocks[id]
	return def, ok
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []world.BlockID {
	ids := make([]world.BlockID, 0, len(r.blocks))
	for id := range r.blocks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered blocks.
func (r *Registry) Len() int {
	return len(r.blocks)
}

// ShapesFromModel converts the elements of a block model to unit-cell
// shapes. Element rotations are ignored.
func ShapesFromModel(m *blockmodel.Model) []world.Shape {
	if len(m.Elements) == 0 {
		return nil
	}
	shapes := make([]world.Shape, 0, len(m.Elements))
	for _, e := range m.Elements {
		min, max := e.Box()
		shapes = append(shapes, world.Shape{Min: min, Max: max})
	}
	return shapes
}

// LoadModels replaces the shapes of the named blocks with the geometry of
// their block models. Blocks whose blockstate or model cannot be loaded keep
// their current shapes; the first such error is returned after all blocks
// have been tried.
func (r *Registry) LoadModels(loader *blockmodel.Loader, names ...string) error {
	var firstErr error
	for _, name := range names {
		if err := r.loadModel(loader, name); err != nil {
			logs.WithTag("block", name).Warn(err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Registry) loadModel(loader *blockmodel.Loader, name string) error {
	def, ok := r.Lookup(name)
	if !ok {
		return errors.New("block not registered").
			WithType(ErrTypeModel).
			WithTag("name", name)
	}

	bs, err := loader.LoadBlockState(name)
	if err != nil {
		return errors.New("could not load blockstate").
			WithType(ErrTypeModel).
			WithTag("name", name).
			Wrap(err)
	}

	modelName := bs.DefaultModelName()
	if modelName == "" {
		return errors.New("blockstate has no model").
			WithType(ErrTypeModel).
			WithTag("name", name)
	}

	model, err := loader.LoadModel(modelName)
	if err != nil {
		return errors.New("could not load model").
			WithType(ErrTypeModel).
			WithTag("name", name).
			WithTag("model", modelName).
			Wrap(err)
	}

	def.Shapes = ShapesFromModel(model)
	return nil
}
