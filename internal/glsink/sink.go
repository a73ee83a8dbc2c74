package glsink

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/mesh"
	"voxmesh/internal/world"
)

// Sink is a world.Sink keeping section meshes on the GPU. Empty meshes are
// tracked but never uploaded. Every method must be called on the thread
// owning the GL context.
type Sink struct {
	backend backend
	shader  *shader
	meshes  map[*mesh.Mesh]*buffer

	LightDir  mgl32.Vec3
	BaseColor mgl32.Vec3
}

// New compiles the sink shader. The GL context must be current.
func New() (*Sink, error) {
	s, err := newShader(vertexSource, fragmentSource)
	if err != nil {
		return nil, errors.New("could not create mesh shader").Wrap(err)
	}
	sink := newSink(glBackend{})
	sink.shader = s
	return sink, nil
}

func newSink(b backend) *Sink {
	return &Sink{
		backend:   b,
		meshes:    make(map[*mesh.Mesh]*buffer),
		LightDir:  mgl32.Vec3{-0.4, -1, -0.25},
		BaseColor: mgl32.Vec3{0.55, 0.7, 0.45},
	}
}

// Add implements world.Sink.
func (s *Sink) Add(m *mesh.Mesh) {
	if _, ok := s.meshes[m]; ok {
		logs.Warn(errors.New("mesh added twice").WithTag("origin", m.Origin))
		return
	}
	if m.IsEmpty() {
		s.meshes[m] = nil
		return
	}
	s.meshes[m] = s.backend.upload(m)
}

// Remove implements world.Sink.
func (s *Sink) Remove(m *mesh.Mesh) {
	b, ok := s.meshes[m]
	if !ok {
		return
	}
	delete(s.meshes, m)
	if b != nil {
		s.backend.free(b)
	}
}

// Draw renders every uploaded mesh intersecting the view frustum and
// returns how many were drawn.
func (s *Sink) Draw(viewProj mgl32.Mat4) int {
	if s.shader != nil {
		s.shader.use()
		s.shader.setMatrix4("viewProj", &viewProj[0])
		s.shader.setVector3("lightDir", s.LightDir.X(), s.LightDir.Y(), s.LightDir.Z())
		s.shader.setVector3("baseColor", s.BaseColor.X(), s.BaseColor.Y(), s.BaseColor.Z())
	}

	planes := extractFrustumPlanes(viewProj)
	drawn := 0
	for m, b := range s.meshes {
		if b == nil {
			continue
		}
		min, max := sectionBounds(m.Origin, world.SectionSize)
		if !aabbIntersectsFrustum(min, max, planes) {
			continue
		}
		s.backend.draw(b)
		drawn++
	}

	if s.shader != nil {
		gl.BindVertexArray(0)
	}
	return drawn
}

// Len returns the number of tracked meshes, including empty ones.
func (s *Sink) Len() int {
	return len(s.meshes)
}

// Uploaded returns the number of meshes holding GPU buffers.
func (s *Sink) Uploaded() int {
	n := 0
	for _, b := range s.meshes {
		if b != nil {
			n++
		}
	}
	return n
}

// Close frees every GPU buffer and the shader.
func (s *Sink) Close() {
	for m, b := range s.meshes {
		if b != nil {
			s.backend.free(b)
		}
		delete(s.meshes, m)
	}
	if s.shader != nil {
		s.shader.delete()
		s.shader = nil
	}
}
