package glsink

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"voxmesh/internal/mesh"
)

// buffer is the GPU side of one uploaded mesh.
type buffer struct {
	vao        uint32
	positions  uint32
	normals    uint32
	ebo        uint32
	indexCount int32
}

// backend uploads, frees and draws mesh buffers.
type backend interface {
	upload(m *mesh.Mesh) *buffer
	free(b *buffer)
	draw(b *buffer)
}

// glBackend is the OpenGL 4.1 core backend. It must be used on the thread
// owning the GL context.
type glBackend struct{}

func (glBackend) upload(m *mesh.Mesh) *buffer {
	b := &buffer{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, gl.Ptr(m.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &b.normals)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normals)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*4, gl.Ptr(m.Normals), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	// unbind to reduce accidental state changes; the EBO binding stays with the VAO
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (glBackend) free(b *buffer) {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.normals)
	gl.DeleteBuffers(1, &b.positions)
	gl.DeleteVertexArrays(1, &b.vao)
}

func (glBackend) draw(b *buffer) {
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}
