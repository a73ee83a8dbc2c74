package blockmodel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/segmentio/encoding/json"
)

// Model is a block model file. Only the geometry is decoded; textures,
// display transforms and overrides are ignored.
type Model struct {
	Parent   string    `json:"parent"`
	Elements []Element `json:"elements"`
}

// Element is one box of a model, in sixteenths of a block.
type Element struct {
	From     [3]float32 `json:"from"`
	To       [3]float32 `json:"to"`
	Rotation *Rotation  `json:"rotation"`
}

type Rotation struct {
	Origin [3]float32 `json:"origin"`
	Angle  float32    `json:"angle"`
	Axis   string     `json:"axis"`
}

// Box returns the element bounds scaled to the unit cell.
func (e Element) Box() (min, max mgl32.Vec3) {
	min = mgl32.Vec3{e.From[0], e.From[1], e.From[2]}.Mul(1.0 / 16)
	max = mgl32.Vec3{e.To[0], e.To[1], e.To[2]}.Mul(1.0 / 16)
	return min, max
}

// BlockState defines the blockstate JSON structure. It maps variants of a block to their corresponding models.
type BlockState struct {
	// Variants is a map of variant names to a list of models.
	Variants map[string]BlockStateVariants `json:"variants"`
}

// BlockStateVariants is a custom type to handle the fact that the "variants" field can contain either a single object or an array of objects.
type BlockStateVariants []Variant

func (v *BlockStateVariants) UnmarshalJSON(data []byte) error {
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err == nil {
		*v = variants
		return nil
	}

	var singleVariant Variant
	if err := json.Unmarshal(data, &singleVariant); err != nil {
		return err
	}

	*v = []Variant{singleVariant}
	return nil
}

type Variant struct {
	Model string `json:"model"`
}
