package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-panorama/pkg/panel"
)

// floorDisc returns a horizontal disc of the given radius centred on the
// origin at y = 0, as a triangle fan flattened to indexed triangles.
func floorDisc(radius float64, segments int) ([]float32, []uint32) {
	positions := make([]float32, 0, (segments+1)*3)
	indices := make([]uint32, 0, segments*3)

	positions = append(positions, 0, 0, 0)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		positions = append(positions,
			float32(radius*math.Cos(theta)),
			0,
			float32(radius*math.Sin(theta)),
		)
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		indices = append(indices, 0, uint32(i+1), uint32(next))
	}
	return positions, indices
}

// boxLines returns the twelve edges of b as a line list.
func boxLines(b panel.Box) ([]float32, []uint32) {
	corners := b.Corners()
	positions := make([]float32, 0, len(corners)*3)
	for _, c := range corners {
		positions = append(positions, float32(c.X()), float32(c.Y()), float32(c.Z()))
	}
	indices := make([]uint32, 0, len(panel.BoxEdges)*2)
	for _, e := range panel.BoxEdges {
		indices = append(indices, e[0], e[1])
	}
	return positions, indices
}

// hexColor converts 0xRRGGBB into an opaque RGBA vector.
func hexColor(c uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
		1,
	}
}
