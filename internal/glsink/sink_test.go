package glsink

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"voxmesh/internal/mesh"
	"voxmesh/internal/world"
)

type fakeBackend struct {
	uploaded int
	freed    int
	drawn    []*buffer
}

func (f *fakeBackend) upload(m *mesh.Mesh) *buffer {
	f.uploaded++
	return &buffer{indexCount: int32(len(m.Indices))}
}

func (f *fakeBackend) free(*buffer) {
	f.freed++
}

func (f *fakeBackend) draw(b *buffer) {
	f.drawn = append(f.drawn, b)
}

func quadMesh(x, y, z int) *mesh.Mesh {
	m := mesh.New(x, y, z)
	fx, fy, fz := float32(x), float32(y), float32(z)
	m.AppendQuad([4]mgl32.Vec3{
		{fx, fy, fz},
		{fx + 1, fy, fz},
		{fx, fy + 1, fz},
		{fx + 1, fy + 1, fz},
	}, mgl32.Vec3{0, 0, -1})
	return m
}

func TestSinkAddRemove(t *testing.T) {
	fb := &fakeBackend{}
	s := newSink(fb)

	m := quadMesh(0, 0, 0)
	empty := mesh.New(16, 0, 0)

	s.Add(m)
	s.Add(empty)
	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, s.Uploaded())
	require.Equal(t, 1, fb.uploaded)

	s.Add(m)
	require.Equal(t, 1, fb.uploaded)

	s.Remove(empty)
	require.Equal(t, 1, s.Len())
	require.Zero(t, fb.freed)

	s.Remove(m)
	require.Zero(t, s.Len())
	require.Equal(t, 1, fb.freed)

	s.Remove(m)
	require.Equal(t, 1, fb.freed)
}

func TestSinkDrawCulls(t *testing.T) {
	fb := &fakeBackend{}
	s := newSink(fb)

	front := quadMesh(0, 0, -32)
	behind := quadMesh(0, 0, 32)
	s.Add(front)
	s.Add(behind)
	s.Add(mesh.New(0, 16, -32))

	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 500)
	view := mgl32.LookAtV(mgl32.Vec3{8, 8, 0}, mgl32.Vec3{8, 8, -1}, mgl32.Vec3{0, 1, 0})

	drawn := s.Draw(proj.Mul4(view))
	require.Equal(t, 1, drawn)
	require.Len(t, fb.drawn, 1)
	require.Equal(t, s.meshes[front], fb.drawn[0])
}

func TestSinkClose(t *testing.T) {
	fb := &fakeBackend{}
	s := newSink(fb)
	s.Add(quadMesh(0, 0, 0))
	s.Add(quadMesh(16, 0, 0))
	s.Add(mesh.New(32, 0, 0))

	s.Close()
	require.Zero(t, s.Len())
	require.Equal(t, 2, fb.freed)
}

func TestSinkWithWorld(t *testing.T) {
	fb := &fakeBackend{}
	s := newSink(fb)

	w := world.New(s, func(origin world.SectionCoord, _ world.BlockSource) *mesh.Mesh {
		if origin.Y == 0 {
			return quadMesh(origin.X, origin.Y, origin.Z)
		}
		return mesh.New(origin.X, origin.Y, origin.Z)
	})

	col := world.NewBlockColumn(nil)
	col.Set(0, 0, 0, 1)
	col.Set(0, 20, 0, 1)
	w.AddColumn(0, 0, col)
	w.Update()

	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, s.Uploaded())

	w.AddColumn(0, 0, col)
	require.Zero(t, s.Len())
	require.Equal(t, 1, fb.freed)
}

func TestFrustumPlanes(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	planes := extractFrustumPlanes(proj)

	require.True(t, aabbIntersectsFrustum(mgl32.Vec3{-1, -1, -10}, mgl32.Vec3{1, 1, -9}, planes))
	require.False(t, aabbIntersectsFrustum(mgl32.Vec3{-1, -1, 5}, mgl32.Vec3{1, 1, 6}, planes))
	require.False(t, aabbIntersectsFrustum(mgl32.Vec3{-1, -1, -300}, mgl32.Vec3{1, 1, -200}, planes))
	require.False(t, aabbIntersectsFrustum(mgl32.Vec3{50, -1, -10}, mgl32.Vec3{51, 1, -9}, planes))
}
