package store

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"voxmesh/internal/world"
)

type cubeShapes struct{}

func (cubeShapes) Shapes(id world.BlockID) []world.Shape {
	if id == world.AirID {
		return nil
	}
	return []world.Shape{world.FullCube}
}

func TestEncodeDecodeColumn(t *testing.T) {
	col := world.NewBlockColumn(cubeShapes{})
	col.Set(0, 0, 0, 1)
	col.Set(15, 15, 15, 2)
	col.Set(3, 70, 9, 513)
	col.Set(7, 255, 1, 4)

	data := EncodeColumn(col)
	require.NotEmpty(t, data)

	got, err := DecodeColumn(data, cubeShapes{})
	require.NoError(t, err)
	require.Equal(t, col.SectionCount(), got.SectionCount())

	for i := 0; i < world.NumSections; i++ {
		require.Equal(t, col.HasSection(i), got.HasSection(i), "section %d", i)
		require.Equal(t, col.SectionIDs(i), got.SectionIDs(i), "section %d", i)
	}

	require.Equal(t, world.BlockID(513), got.ID(3, 70, 9))
	require.True(t, got.Block(0, 0, 0).IsFullCube())
	require.True(t, got.Block(1, 0, 0).IsEmpty())
}

func TestEncodeEmptyColumn(t *testing.T) {
	data := EncodeColumn(world.NewBlockColumn(nil))

	got, err := DecodeColumn(data, nil)
	require.NoError(t, err)
	require.Zero(t, got.SectionCount())
}

func TestDecodeColumnCorrupt(t *testing.T) {
	t.Run("not zstd", func(t *testing.T) {
		_, err := DecodeColumn([]byte("definitely not a column"), nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeCorrupt, errors.Type(err))
	})

	t.Run("short header", func(t *testing.T) {
		_, err := DecodeColumn(encoder.EncodeAll([]byte{codecVersion}, nil), nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeCorrupt, errors.Type(err))
	})

	t.Run("bad version", func(t *testing.T) {
		_, err := DecodeColumn(encoder.EncodeAll([]byte{9, 0, 0}, nil), nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeCorrupt, errors.Type(err))
	})

	t.Run("truncated section", func(t *testing.T) {
		raw := []byte{codecVersion, 1, 0, 1, 0}
		_, err := DecodeColumn(encoder.EncodeAll(raw, nil), nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeCorrupt, errors.Type(err))
	})

	t.Run("trailing bytes", func(t *testing.T) {
		raw := []byte{codecVersion, 0, 0, 42}
		_, err := DecodeColumn(encoder.EncodeAll(raw, nil), nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeCorrupt, errors.Type(err))
	})
}

func TestCodecConstructors(t *testing.T) {
	require.NotNil(t, encoder)
	require.NotNil(t, decoder)

	require.Panics(t, func() {
		mustEncoder(zstd.WithEncoderLevel(zstd.EncoderLevel(0)))
	})
	require.Panics(t, func() {
		mustDecoder(zstd.WithDecoderMaxWindow(1))
	})
}
