package panel

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/arc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle string

func (h fakeHandle) ID() string { return string(h) }

type fakeLoader struct {
	requested []string
	fail      map[string]error
}

func (l *fakeLoader) LoadTexture(id string) (TextureHandle, error) {
	l.requested = append(l.requested, id)
	if err := l.fail[id]; err != nil {
		return nil, err
	}
	return fakeHandle(id), nil
}

func (l *fakeLoader) Placeholder() TextureHandle {
	return fakeHandle("placeholder")
}

type fakeScene struct {
	meshes []*Panel
	boxes  []*Panel
}

func (s *fakeScene) AddMesh(p *Panel)             { s.meshes = append(s.meshes, p) }
func (s *fakeScene) AddDebugBoundingBox(p *Panel) { s.boxes = append(s.boxes, p) }

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestBuildFourPanelAngles(t *testing.T) {
	loader := &fakeLoader{}
	scene := &fakeScene{}

	layout, err := Build(Config{Textures: ids(4), Radius: 1}, loader, scene)
	require.NoError(t, err)
	require.Len(t, layout.Panels, 4)

	want := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for i, p := range layout.Panels {
		assert.Equal(t, i, p.Index)
		assert.InDelta(t, want[i], p.Angle, 1e-6)
		assert.InDelta(t, math.Pi/2, p.Span, 1e-6)
	}
	assert.InDelta(t, 2*math.Pi, layout.Coverage(), 1e-6)
	assert.NoError(t, layout.Err())
}

func TestBuildDimensions(t *testing.T) {
	layout, err := Build(Config{Textures: ids(3), Radius: 2}, &fakeLoader{}, &fakeScene{})
	require.NoError(t, err)

	wantWidth := 2 * math.Pi * 2 / 3
	assert.InDelta(t, wantWidth, layout.Width, 1e-12)
	assert.InDelta(t, wantWidth/DefaultAspectRatio, layout.Height, 1e-12)

	p := layout.Panels[0]
	assert.Equal(t, (DefaultWidthSegments+1)*(DefaultHeightSegments+1), p.World.VertexCount())
	assert.Equal(t, DefaultWidthSegments*DefaultHeightSegments*2, p.World.TriangleCount())

	// Panels stand on the floor.
	assert.InDelta(t, 0, p.Bounds.Min.Y(), 1e-9)
	assert.InDelta(t, layout.Height, p.Bounds.Max.Y(), 1e-9)
}

func TestBuildVerticesOnCylinder(t *testing.T) {
	r := 1.7
	layout, err := Build(Config{Textures: ids(5), Radius: r}, &fakeLoader{}, &fakeScene{})
	require.NoError(t, err)

	for _, p := range layout.Panels {
		for _, v := range p.World.Positions {
			require.InDelta(t, r, math.Hypot(v.X(), v.Z()), 1e-9)
		}
	}
}

func TestBuildPanelsCloseTheCircle(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7} {
		cfg := Config{Textures: ids(n), Radius: 1, WidthSegments: 8, HeightSegments: 4}
		layout, err := Build(cfg, &fakeLoader{}, &fakeScene{})
		require.NoError(t, err)

		cols := cfg.WidthSegments + 1
		rows := cfg.HeightSegments + 1
		for i, p := range layout.Panels {
			next := layout.Panels[(i+1)%n]
			for row := 0; row < rows; row++ {
				trailing := p.World.Positions[row*cols+cols-1]
				leading := next.World.Positions[row*cols]
				require.InDelta(t, 0, trailing.Sub(leading).Len(), 1e-9,
					"n=%d panel %d row %d", n, i, row)
			}

			diff := math.Remainder(p.TrailingEdge()-next.LeadingEdge(), 2*math.Pi)
			assert.InDelta(t, 0, diff, 1e-9)
		}
	}
}

func TestBuildEdgeAzimuthMatchesGeometry(t *testing.T) {
	cfg := Config{Textures: ids(4), Radius: 1, WidthSegments: 4, HeightSegments: 2}
	layout, err := Build(cfg, &fakeLoader{}, &fakeScene{})
	require.NoError(t, err)

	cols := cfg.WidthSegments + 1
	for _, p := range layout.Panels {
		first := p.World.Positions[0]
		last := p.World.Positions[cols-1]
		assert.InDelta(t, 0, math.Remainder(arc.Azimuth(first)-p.LeadingEdge(), 2*math.Pi), 1e-9)
		assert.InDelta(t, 0, math.Remainder(arc.Azimuth(last)-p.TrailingEdge(), 2*math.Pi), 1e-9)
	}
}

func TestBuildConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no textures", Config{Radius: 1}, ErrNoTextures},
		{"zero radius", Config{Textures: ids(2), Radius: 0}, ErrInvalidRadius},
		{"negative radius", Config{Textures: ids(2), Radius: -3}, ErrInvalidRadius},
		{"nan radius", Config{Textures: ids(2), Radius: math.NaN()}, ErrInvalidRadius},
		{"infinite radius", Config{Textures: ids(2), Radius: math.Inf(1)}, ErrInvalidRadius},
		{"negative aspect", Config{Textures: ids(2), Radius: 1, AspectRatio: -1}, ErrInvalidAspect},
		{"negative segments", Config{Textures: ids(2), Radius: 1, WidthSegments: -2}, ErrInvalidSegments},
		{"grid too large", Config{Textures: ids(2), Radius: 1, WidthSegments: 1 << 16, HeightSegments: 1 << 16}, ErrTooManyVertices},
		{"huge segment counts", Config{Textures: ids(2), Radius: 1, WidthSegments: math.MaxInt32, HeightSegments: math.MaxInt32}, ErrTooManyVertices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{}
			scene := &fakeScene{}

			layout, err := Build(tt.cfg, loader, scene)
			require.Error(t, err)
			assert.Nil(t, layout)

			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.ErrorIs(t, err, tt.want)

			assert.Empty(t, loader.requested, "no texture may be requested")
			assert.Empty(t, scene.meshes, "no mesh may be registered")
			assert.Empty(t, scene.boxes)
		})
	}
}

func TestValidateLargestAddressableGrid(t *testing.T) {
	cfg := Config{Textures: ids(1), Radius: 1, WidthSegments: 1<<16 - 1, HeightSegments: 1<<16 - 1}
	assert.NoError(t, cfg.Validate(), "65536×65536 vertices fit uint32 indices")

	cfg.HeightSegments++
	assert.ErrorIs(t, cfg.Validate(), ErrTooManyVertices)
}

func TestBuildTextureFailureUsesPlaceholder(t *testing.T) {
	missing := errors.New("file not found")
	loader := &fakeLoader{fail: map[string]error{"b": missing}}
	scene := &fakeScene{}

	layout, err := Build(Config{Textures: ids(3), Radius: 1}, loader, scene)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, loader.requested)
	assert.Equal(t, "a", layout.Panels[0].Texture.ID())
	assert.Equal(t, "placeholder", layout.Panels[1].Texture.ID())
	assert.Equal(t, "c", layout.Panels[2].Texture.ID())
	assert.Len(t, scene.meshes, 3, "sibling panels are still registered")

	var rerr *ResourceError
	require.True(t, errors.As(layout.Err(), &rerr))
	assert.Equal(t, 1, rerr.Index)
	assert.Equal(t, "b", rerr.TextureID)
	assert.ErrorIs(t, layout.Err(), missing)
}

func TestBuildDebugBounds(t *testing.T) {
	scene := &fakeScene{}
	_, err := Build(Config{Textures: ids(2), Radius: 1}, &fakeLoader{}, scene)
	require.NoError(t, err)
	assert.Len(t, scene.meshes, 2)
	assert.Empty(t, scene.boxes)

	scene = &fakeScene{}
	layout, err := Build(Config{Textures: ids(2), Radius: 1, DebugBounds: true}, &fakeLoader{}, scene)
	require.NoError(t, err)
	require.Len(t, scene.boxes, 2)
	for i, p := range scene.boxes {
		assert.Same(t, layout.Panels[i], p)
		for _, v := range p.World.Positions {
			assert.True(t, p.Bounds.Contains(v))
		}
	}
}

func TestGridLayout(t *testing.T) {
	g := NewGrid(4, 2, 2, 1)
	require.Equal(t, 6, g.VertexCount())
	require.Equal(t, 4, g.TriangleCount())

	assert.Equal(t, mgl64.Vec3{-2, 1, 0}, g.Positions[0])
	assert.Equal(t, mgl64.Vec3{2, 1, 0}, g.Positions[2])
	assert.Equal(t, mgl64.Vec3{-2, -1, 0}, g.Positions[3])
	assert.Equal(t, mgl64.Vec2{0, 1}, g.UVs[0])
	assert.Equal(t, mgl64.Vec2{1, 0}, g.UVs[5])
	assert.Equal(t, []uint32{0, 3, 1, 3, 4, 1, 1, 4, 2, 4, 5, 2}, g.Indices)
}

func TestBendDoesNotTouchSource(t *testing.T) {
	g := NewGrid(1, 1, 2, 2)
	before := append([]mgl64.Vec3(nil), g.Positions...)

	bent := g.Bend(1)
	assert.Equal(t, before, g.Positions)
	assert.NotEqual(t, g.Positions, bent.Positions)
	for _, n := range bent.Normals {
		assert.InDelta(t, 1, n.Len(), 1e-12)
	}
}

func TestInterleaved(t *testing.T) {
	g := NewGrid(2, 2, 1, 1)
	data := g.Interleaved()
	require.Len(t, data, 4*FloatsPerVertex)
	assert.Equal(t, []float32{-1, 1, 0, 0, 0, 1, 0, 1}, data[:FloatsPerVertex])
}

func TestBox(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())

	b = b.Expand(mgl64.Vec3{1, 2, 3}).Expand(mgl64.Vec3{-1, 0, 5})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl64.Vec3{-1, 0, 3}, b.Min)
	assert.Equal(t, mgl64.Vec3{1, 2, 5}, b.Max)
	assert.True(t, b.Contains(mgl64.Vec3{0, 1, 4}))
	assert.False(t, b.Contains(mgl64.Vec3{0, 3, 4}))

	corners := b.Corners()
	assert.Equal(t, b.Min, corners[0])
	assert.Equal(t, b.Max, corners[6])
}
