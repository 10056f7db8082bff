package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// TexturedStride is the byte stride of a textured vertex: position (3),
// normal (3), texture coordinates (2).
const TexturedStride = 8 * 4

// Mesh is an indexed mesh living on the GPU.
type Mesh struct {
	vao   *VertexArrayObject
	vbo   *BufferObject
	ebo   *BufferObject
	count int32
	mode  uint32
}

// NewTexturedMesh uploads interleaved position/normal/uv vertices drawn as
// triangles. Attribute locations are 0, 1 and 2.
func NewTexturedMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, TexturedStride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, TexturedStride, 3*4)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, TexturedStride, 6*4)

	vao.Unbind()

	return &Mesh{vao: vao, vbo: vbo, ebo: ebo, count: int32(len(indices)), mode: gl.TRIANGLES}
}

// NewPositionMesh uploads bare xyz positions drawn with mode, for example
// gl.LINES for bounding boxes or gl.TRIANGLES for flat-coloured shapes.
func NewPositionMesh(positions []float32, indices []uint32, mode uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(positions, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, 0)

	vao.Unbind()

	return &Mesh{vao: vao, vbo: vbo, ebo: ebo, count: int32(len(indices)), mode: mode}
}

// Draw renders the mesh with whatever shader is in use.
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all GPU resources.
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
