package arc

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func TestProjectKeepsRadiusAndHeight(t *testing.T) {
	radii := []float64{0.25, 1, 3.5, 100, 12345}
	for _, r := range radii {
		width := 2 * math.Pi * r
		for i := 0; i <= 40; i++ {
			x := -width/2 + width*float64(i)/40
			y := float64(i)*0.37 - 5
			p := Project(mgl64.Vec3{x, y, 0}, r)

			assert.InDelta(t, r, AxisDistance(p, r), tol*math.Max(1, r), "radius %v x %v", r, x)
			assert.Equal(t, y, p.Y(), "height must pass through exactly")
		}
	}
}

func TestProjectOriginTouchesCylinder(t *testing.T) {
	p := Project(mgl64.Vec3{0, 2, 0}, 4)
	assert.InDelta(t, 0, p.X(), tol)
	assert.InDelta(t, 2, p.Y(), tol)
	assert.InDelta(t, 0, p.Z(), tol)
}

func TestProjectQuarterTurn(t *testing.T) {
	r := 2.0
	// A quarter of the circumference turns the point a quarter of the way
	// round the axis at (0, 0, r).
	p := Project(mgl64.Vec3{math.Pi * r / 2, 0, 0}, r)
	assert.InDelta(t, -r, p.X(), tol)
	assert.InDelta(t, r, p.Z(), tol)

	q := Project(mgl64.Vec3{-math.Pi * r / 2, 0, 0}, r)
	assert.InDelta(t, r, q.X(), tol)
	assert.InDelta(t, r, q.Z(), tol)
}

func TestProjectFlatLimitMirrorsX(t *testing.T) {
	// With a huge radius the bend vanishes; the rotation convention maps
	// local x onto -x.
	r := 1e9
	for _, x := range []float64{-3, -0.5, 0, 1, 2.25} {
		p := Project(mgl64.Vec3{x, 1.5, 0}, r)
		assert.InDelta(t, -x, p.X(), 1e-6)
		assert.InDelta(t, 1.5, p.Y(), 0)
		assert.InDelta(t, 0, p.Z(), 1e-6)
	}
}

func TestProjectInjectiveOverFullTurn(t *testing.T) {
	r := 1.0
	const samples = 720
	seen := make([]mgl64.Vec3, 0, samples)
	// Open interval (-π, π): a single panel wrapping the whole circle.
	for i := 1; i < samples; i++ {
		x := -math.Pi*r + 2*math.Pi*r*float64(i)/samples
		p := Project(mgl64.Vec3{x, 0, 0}, r)
		for _, q := range seen {
			require.Greater(t, p.Sub(q).Len(), 1e-9, "x=%v collides with an earlier sample", x)
		}
		seen = append(seen, p)
	}
}

func TestProjectAllDoesNotMutateInput(t *testing.T) {
	in := []mgl64.Vec3{{0.5, 0, 0}, {-0.5, 1, 0}}
	orig := append([]mgl64.Vec3(nil), in...)

	out := ProjectAll(in, 1)
	require.Len(t, out, 2)
	assert.Equal(t, orig, in)
	assert.Equal(t, Project(in[0], 1), out[0])
	assert.Equal(t, Project(in[1], 1), out[1])
}

func TestNormalPointsAtAxis(t *testing.T) {
	r := 1.5
	p := Project(mgl64.Vec3{0.7, 0.2, 0}, r)
	n := Normal(p, r)
	assert.InDelta(t, 1, n.Len(), tol)

	back := p.Add(n.Mul(r))
	assert.InDelta(t, 0, AxisDistance(back, r), tol)
	assert.InDelta(t, 0, n.Y(), 0)
}

func TestSpanAndWidth(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Span(4), tol)
	assert.InDelta(t, math.Pi/2, PanelWidth(1, 4), tol)
	assert.Zero(t, Span(0))
	assert.Zero(t, PanelWidth(1, 0))

	for _, n := range []int{1, 3, 7, 12} {
		total := 0.0
		for i := 0; i < n; i++ {
			total += Span(n)
		}
		assert.InDelta(t, 2*math.Pi, total, tol, "n=%d", n)
	}
}

func TestCentered(t *testing.T) {
	r := 3.0
	p := Project(mgl64.Vec3{1, 0.5, 0}, r)
	c := Centered(p, r)
	assert.InDelta(t, r, math.Hypot(c.X(), c.Z()), tol)
	assert.InDelta(t, 0.5, c.Y(), 0)
}
