package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/locomotion"
	"github.com/leterax/go-panorama/pkg/panel"
)

const epsilon = 1e-12

// Hit is the nearest intersection of a ray with the scene.
type Hit struct {
	Panel    *panel.Panel
	Triangle int
	Distance float64
	Point    mgl64.Vec3
}

// Raycast returns the nearest intersection of the ray with any registered
// panel. Triangles are hit from either side. direction need not be
// normalised; distances are in world units.
func (s *Scene) Raycast(origin, direction mgl64.Vec3) (Hit, bool) {
	length := direction.Len()
	if length < epsilon {
		return Hit{}, false
	}
	dir := direction.Mul(1 / length)

	s.mu.RLock()
	defer s.mu.RUnlock()

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, p := range s.meshes {
		near, ok := rayBox(origin, dir, p.Bounds)
		if !ok || near > best.Distance {
			continue
		}
		for i := 0; i < p.World.TriangleCount(); i++ {
			a, b, c := p.World.Triangle(i)
			t, ok := rayTriangle(origin, dir, a, b, c)
			if !ok || t >= best.Distance {
				continue
			}
			best = Hit{Panel: p, Triangle: i, Distance: t}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Point = origin.Add(dir.Mul(best.Distance))
	return best, true
}

// Test implements locomotion.GroundTester.
func (s *Scene) Test(origin, direction mgl64.Vec3) locomotion.GroundHit {
	hit, ok := s.Raycast(origin, direction)
	if !ok {
		return locomotion.GroundHit{}
	}
	return locomotion.GroundHit{Hit: true, Distance: hit.Distance}
}

// rayTriangle is the Möller–Trumbore test without back-face culling.
func rayTriangle(origin, dir, a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayBox is the slab test. It returns the entry distance, clamped to zero
// when the origin is inside the box.
func rayBox(origin, dir mgl64.Vec3, box panel.Box) (float64, bool) {
	if box.IsEmpty() {
		return 0, false
	}
	near, far := 0.0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < epsilon {
			if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[axis]
		t0 := (box.Min[axis] - origin[axis]) * inv
		t1 := (box.Max[axis] - origin[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		near = math.Max(near, t0)
		far = math.Min(far, t1)
		if near > far {
			return 0, false
		}
	}
	return near, true
}

var _ locomotion.GroundTester = (*Scene)(nil)
var _ panel.SceneGraph = (*Scene)(nil)
