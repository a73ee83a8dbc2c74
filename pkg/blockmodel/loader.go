package blockmodel

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeRead   = "blockmodel_read"
	ErrTypeDecode = "blockmodel_decode"
	ErrTypeParent = "blockmodel_parent"
)

// maxParentDepth bounds parent chains so that cyclic models fail instead of
// recursing forever.
const maxParentDepth = 16

// Loader reads block models and blockstates from an assets directory laid
// out as <assets>/models/<name>.json and <assets>/blockstates/<name>.json.
type Loader struct {
	assetsPath string
	modelCache map[string]*Model
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		modelCache: make(map[string]*Model),
	}
}

// LoadModel loads a model, inheriting the elements of its parents when it
// declares none of its own.
func (l *Loader) LoadModel(name string) (*Model, error) {
	return l.loadModel(name, 0)
}

func (l *Loader) loadModel(name string, depth int) (*Model, error) {
	if !strings.Contains(name, "/") {
		name = "block/" + name
	}
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}
	if depth > maxParentDepth {
		return nil, errors.New("model parent chain too deep").
			WithType(ErrTypeParent).
			WithTag("model", name)
	}

	var model Model
	if err := l.readJSON(filepath.Join("models", name+".json"), &model); err != nil {
		return nil, err
	}

	if model.Parent != "" && !strings.HasPrefix(model.Parent, "builtin/") {
		parent, err := l.loadModel(model.Parent, depth+1)
		if err != nil {
			return nil, errors.New("could not load parent model").
				WithType(ErrTypeParent).
				WithTag("model", name).
				WithTag("parent", model.Parent).
				Wrap(err)
		}
		if len(model.Elements) == 0 {
			model.Elements = parent.Elements
		}
	}

	l.modelCache[name] = &model
	return &model, nil
}

// LoadBlockState loads the blockstate of a block.
func (l *Loader) LoadBlockState(name string) (*BlockState, error) {
	var blockState BlockState
	if err := l.readJSON(filepath.Join("blockstates", name+".json"), &blockState); err != nil {
		return nil, err
	}
	return &blockState, nil
}

// DefaultModelName picks the model of the "normal" or "" variant, falling
// back to the alphabetically first variant.
func (bs *BlockState) DefaultModelName() string {
	for _, key := range []string{"normal", ""} {
		if v, ok := bs.Variants[key]; ok && len(v) > 0 {
			return v[0].Model
		}
	}

	keys := make([]string, 0, len(bs.Variants))
	for k := range bs.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := bs.Variants[k]; len(v) > 0 {
			return v[0].Model
		}
	}
	return ""
}

func (l *Loader) readJSON(rel string, v any) error {
	path := filepath.Join(l.assetsPath, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("could not read file").
			WithType(ErrTypeRead).
			WithTag("path", path).
			Wrap(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.New("could not decode json").
			WithType(ErrTypeDecode).
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
