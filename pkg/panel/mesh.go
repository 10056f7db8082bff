package panel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/arc"
)

// FloatsPerVertex is the interleaved layout used for GPU upload:
// position (3), normal (3), texture coordinates (2).
const FloatsPerVertex = 8

// Mesh is an indexed triangle mesh. Meshes are treated as immutable; every
// transform returns a new Mesh.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
}

// NewGrid builds a flat width×height rectangle in the z = 0 plane, centred on
// the origin and facing +Z, subdivided into widthSegments×heightSegments
// cells. Rows run top to bottom; v = 1 on the top row.
func NewGrid(width, height float64, widthSegments, heightSegments int) *Mesh {
	cols := widthSegments + 1
	rows := heightSegments + 1

	segW := width / float64(widthSegments)
	segH := height / float64(heightSegments)

	m := &Mesh{
		Positions: make([]mgl64.Vec3, 0, cols*rows),
		Normals:   make([]mgl64.Vec3, 0, cols*rows),
		UVs:       make([]mgl64.Vec2, 0, cols*rows),
		Indices:   make([]uint32, 0, widthSegments*heightSegments*6),
	}

	for iy := 0; iy < rows; iy++ {
		y := float64(iy)*segH - height/2
		for ix := 0; ix < cols; ix++ {
			x := float64(ix)*segW - width/2
			m.Positions = append(m.Positions, mgl64.Vec3{x, -y, 0})
			m.Normals = append(m.Normals, mgl64.Vec3{0, 0, 1})
			m.UVs = append(m.UVs, mgl64.Vec2{
				float64(ix) / float64(widthSegments),
				1 - float64(iy)/float64(heightSegments),
			})
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)

			m.Indices = append(m.Indices, a, b, d)
			m.Indices = append(m.Indices, b, c, d)
		}
	}

	return m
}

// Bend projects every vertex onto the cylinder of the given radius and
// recentres the result on the cylinder axis. Normals are replaced by the
// inward radial direction.
func (m *Mesh) Bend(radius float64) *Mesh {
	projected := arc.ProjectAll(m.Positions, radius)

	out := &Mesh{
		Positions: make([]mgl64.Vec3, len(projected)),
		Normals:   make([]mgl64.Vec3, len(projected)),
		UVs:       append([]mgl64.Vec2(nil), m.UVs...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range projected {
		out.Positions[i] = arc.Centered(p, radius)
		out.Normals[i] = arc.Normal(p, radius)
	}
	return out
}

// Transformed returns a copy of the mesh with positions and normals moved
// by the given affine matrix.
func (m *Mesh) Transformed(mat mgl64.Mat4) *Mesh {
	out := &Mesh{
		Positions: make([]mgl64.Vec3, len(m.Positions)),
		Normals:   make([]mgl64.Vec3, len(m.Normals)),
		UVs:       append([]mgl64.Vec2(nil), m.UVs...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mgl64.TransformCoordinate(p, mat)
	}
	for i, n := range m.Normals {
		out.Normals[i] = mgl64.TransformNormal(n, mat).Normalize()
	}
	return out
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Triangle returns the three corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned box enclosing every vertex.
func (m *Mesh) Bounds() Box {
	box := EmptyBox()
	for _, p := range m.Positions {
		box = box.Expand(p)
	}
	return box
}

// Interleaved packs the mesh into float32s for GPU upload, FloatsPerVertex
// per vertex.
func (m *Mesh) Interleaved() []float32 {
	data := make([]float32, 0, len(m.Positions)*FloatsPerVertex)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		data = append(data,
			float32(p.X()), float32(p.Y()), float32(p.Z()),
			float32(n.X()), float32(n.Y()), float32(n.Z()),
			float32(uv.X()), float32(uv.Y()),
		)
	}
	return data
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing; expanding it by any point
// yields a box around that point alone.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Expand returns the smallest box containing b and p.
func (b Box) Expand(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Contains reports whether p lies inside the box, boundary included.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of the box, bottom face first.
func (b Box) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
	}
}

// BoxEdges lists the twelve edges of a box as index pairs into Corners.
var BoxEdges = [12][2]uint32{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
