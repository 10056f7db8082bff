// Package openglhelper wraps the OpenGL calls the viewer needs in a small
// Go-friendly API: windows, buffers, shaders, meshes and textures.
package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject represents an OpenGL buffer object (VBO or EBO).
type BufferObject struct {
	ID    uint32
	Type  uint32 // GL_ARRAY_BUFFER or GL_ELEMENT_ARRAY_BUFFER
	Size  int    // bytes
	Usage uint32
}

// BufferUsage is the usage hint passed to glBufferData.
type BufferUsage uint32

const (
	// StaticDraw is for data uploaded once and drawn many times.
	StaticDraw BufferUsage = gl.STATIC_DRAW
)

// VertexArrayObject stores a vertex attribute configuration.
type VertexArrayObject struct {
	ID uint32
}

// NewVBO uploads interleaved float vertex data to a new array buffer. The
// calling VAO must be bound for the buffer to be recorded in it.
func NewVBO(vertices []float32, usage BufferUsage) *BufferObject {
	var id uint32
	gl.GenBuffers(1, &id)

	bo := &BufferObject{ID: id, Type: gl.ARRAY_BUFFER, Size: len(vertices) * 4, Usage: uint32(usage)}
	bo.Bind()
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, bo.Size, gl.Ptr(vertices), uint32(usage))
	}
	return bo
}

// NewEBO uploads triangle or line indices to a new element buffer.
func NewEBO(indices []uint32, usage BufferUsage) *BufferObject {
	var id uint32
	gl.GenBuffers(1, &id)

	bo := &BufferObject{ID: id, Type: gl.ELEMENT_ARRAY_BUFFER, Size: len(indices) * 4, Usage: uint32(usage)}
	bo.Bind()
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, bo.Size, gl.Ptr(indices), uint32(usage))
	}
	return bo
}

// Bind binds the buffer object to its type target.
func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

// Unbind unbinds the buffer object from its type target.
func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

// Delete releases the buffer object.
func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
}

// NewVAO creates a new Vertex Array Object.
func NewVAO() *VertexArrayObject {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return &VertexArrayObject{ID: id}
}

// Bind binds the vertex array object.
func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

// Unbind unbinds the vertex array object.
func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

// Delete releases the vertex array object.
func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
}

// SetVertexAttribPointer sets up a float vertex attribute and enables it.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}
