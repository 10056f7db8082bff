package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandle string

func (h stubHandle) ID() string { return string(h) }

type stubLoader struct{}

func (stubLoader) LoadTexture(id string) (panel.TextureHandle, error) { return stubHandle(id), nil }
func (stubLoader) Placeholder() panel.TextureHandle                   { return stubHandle("") }

func buildScene(t *testing.T, n int, radius float64, debug bool) (*Scene, *panel.Layout) {
	t.Helper()
	textures := make([]string, n)
	for i := range textures {
		textures[i] = string(rune('a' + i))
	}
	s := New()
	layout, err := panel.Build(panel.Config{Textures: textures, Radius: radius, DebugBounds: debug}, stubLoader{}, s)
	require.NoError(t, err)
	return s, layout
}

func TestSceneRegistration(t *testing.T) {
	s := New()
	assert.Zero(t, s.Version())
	assert.Empty(t, s.Meshes())

	s, layout := buildScene(t, 3, 1, false)
	assert.Equal(t, layout.Panels, s.Meshes())
	assert.Empty(t, s.Boxes())
	assert.Equal(t, uint64(3), s.Version())

	s, layout = buildScene(t, 3, 1, true)
	assert.Equal(t, layout.Panels, s.Boxes())
	assert.Equal(t, uint64(6), s.Version())

	s.AddMesh(nil)
	assert.Equal(t, uint64(6), s.Version())
}

func TestMeshesReturnsACopy(t *testing.T) {
	s, _ := buildScene(t, 2, 1, false)
	meshes := s.Meshes()
	meshes[0] = nil
	assert.NotNil(t, s.Meshes()[0])
}

func TestRaycastFromInside(t *testing.T) {
	const r = 2.0
	s, _ := buildScene(t, 4, r, false)

	// Azimuth of this direction falls inside panel 3.
	hit, ok := s.Raycast(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 0, 0.3})
	require.True(t, ok)
	assert.Equal(t, 3, hit.Panel.Index)

	// The tessellated wall lies between the chord and the true circle.
	segment := (math.Pi / 2) / panel.DefaultWidthSegments
	assert.LessOrEqual(t, hit.Distance, r+1e-9)
	assert.GreaterOrEqual(t, hit.Distance, r*math.Cos(segment/2)-1e-9)
	assert.InDelta(t, hit.Distance, hit.Point.Sub(mgl64.Vec3{0, 0.5, 0}).Len(), 1e-9)
	assert.InDelta(t, 0.5, hit.Point.Y(), 1e-9)
}

func TestRaycastDistanceIgnoresDirectionLength(t *testing.T) {
	s, _ := buildScene(t, 4, 2, false)
	origin := mgl64.Vec3{0, 0.5, 0}

	a, ok := s.Raycast(origin, mgl64.Vec3{1, 0, 0.3})
	require.True(t, ok)
	b, ok := s.Raycast(origin, mgl64.Vec3{10, 0, 3})
	require.True(t, ok)
	assert.InDelta(t, a.Distance, b.Distance, 1e-9)
}

func TestRaycastHitsBackFaces(t *testing.T) {
	const r = 2.0
	s, _ := buildScene(t, 4, r, false)

	hit, ok := s.Raycast(mgl64.Vec3{5, 0.5, 0.1}, mgl64.Vec3{-1, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 5-r, hit.Distance, 1e-2)
}

func TestRaycastMisses(t *testing.T) {
	s, layout := buildScene(t, 4, 2, false)

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
	}{
		{"straight up the axis", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 1, 0}},
		{"straight down the axis", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -1, 0}},
		{"above the panels", mgl64.Vec3{0, layout.Height + 1, 0}, mgl64.Vec3{1, 0, 0}},
		{"pointing away", mgl64.Vec3{5, 0.5, 0}, mgl64.Vec3{1, 0, 0}},
		{"zero direction", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Raycast(tt.origin, tt.direction)
			assert.False(t, ok)
			assert.False(t, s.Test(tt.origin, tt.direction).Hit)
		})
	}
}

func TestEmptySceneNeverHits(t *testing.T) {
	assert.False(t, New().Test(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}).Hit)
}

func TestGroundTester(t *testing.T) {
	s, _ := buildScene(t, 4, 2, false)
	got := s.Test(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0, -1})
	assert.True(t, got.Hit)
	assert.InDelta(t, 2, got.Distance, 1e-2)
}

func TestRayTriangle(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}

	d, ok := rayTriangle(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{0, 0, -1}, a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-12)

	d, ok = rayTriangle(mgl64.Vec3{0.25, 0.25, -2}, mgl64.Vec3{0, 0, 1}, a, b, c)
	require.True(t, ok, "back face")
	assert.InDelta(t, 2, d, 1e-12)

	_, ok = rayTriangle(mgl64.Vec3{0.75, 0.75, 1}, mgl64.Vec3{0, 0, -1}, a, b, c)
	assert.False(t, ok, "outside the hypotenuse")

	_, ok = rayTriangle(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{0, 0, 1}, a, b, c)
	assert.False(t, ok, "behind the origin")

	_, ok = rayTriangle(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{1, 0, 0}, a, b, c)
	assert.False(t, ok, "parallel")
}

func TestRayBox(t *testing.T) {
	box := panel.Box{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	near, ok := rayBox(mgl64.Vec3{-3, 0, 0}, mgl64.Vec3{1, 0, 0}, box)
	require.True(t, ok)
	assert.InDelta(t, 2, near, 1e-12)

	near, ok = rayBox(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, box)
	require.True(t, ok)
	assert.Zero(t, near, "origin inside")

	_, ok = rayBox(mgl64.Vec3{-3, 2, 0}, mgl64.Vec3{1, 0, 0}, box)
	assert.False(t, ok)

	_, ok = rayBox(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, panel.EmptyBox())
	assert.False(t, ok)
}
