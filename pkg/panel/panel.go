// Package panel tiles a set of textured panels around a vertical cylinder to
// form a 360° panorama.
//
// Each panel is a subdivided rectangle whose width is an equal share of the
// circumference. It is bent onto the cylinder with package arc, stood on the
// floor and rotated into its slot, so neighbouring panels meet edge to edge.
package panel

import (
	"errors"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/arc"
)

const (
	DefaultAspectRatio    = 16.0 / 9.0
	DefaultWidthSegments  = 32
	DefaultHeightSegments = 32
)

// MaxGridVertices is the largest panel grid whose vertices uint32 indices
// can address.
const MaxGridVertices int64 = 1 << 32

// TextureHandle identifies a texture owned by a TextureLoader. It may still
// be resolving when Build returns.
type TextureHandle interface {
	ID() string
}

// TextureLoader resolves texture identifiers into handles.
type TextureLoader interface {
	// LoadTexture requests the texture with the given id. A returned error
	// means the texture can never resolve.
	LoadTexture(id string) (TextureHandle, error)

	// Placeholder returns a handle usable in place of a texture that failed.
	Placeholder() TextureHandle
}

// SceneGraph receives finished panels.
type SceneGraph interface {
	AddMesh(p *Panel)
	AddDebugBoundingBox(p *Panel)
}

// Config describes a panorama layout.
type Config struct {
	// Textures holds one texture id per panel, in placement order.
	Textures []string
	// Radius of the cylinder the panels are bent onto.
	Radius float64
	// AspectRatio is width divided by height. Zero selects DefaultAspectRatio.
	AspectRatio float64
	// WidthSegments and HeightSegments control the grid resolution. Zero
	// selects the defaults.
	WidthSegments  int
	HeightSegments int
	// DebugBounds registers one bounding box per panel with the scene.
	DebugBounds bool
}

// Panel is one bent, textured segment of the panorama.
type Panel struct {
	Index int
	// Angle is the panel's rotation about the vertical axis, 2π·Index/N.
	Angle float64
	// Span is the angle the panel covers, 2π/N.
	Span   float64
	Width  float64
	Height float64

	// Local is the bent mesh, centred on the cylinder axis, before placement.
	Local *Mesh
	// Transform places Local in the world.
	Transform mgl64.Mat4
	// World is Local with Transform applied.
	World *Mesh
	// Bounds is the world-space bounding box of the panel.
	Bounds Box

	TextureID string
	Texture   TextureHandle
}

// LeadingEdge is the azimuth of the panel's first column of vertices.
func (p *Panel) LeadingEdge() float64 {
	return p.Angle - p.Span/2
}

// TrailingEdge is the azimuth of the panel's last column of vertices.
func (p *Panel) TrailingEdge() float64 {
	return p.Angle + p.Span/2
}

// Layout is the full set of panels built for one session.
type Layout struct {
	Radius float64
	Width  float64
	Height float64
	Panels []*Panel

	errs []error
}

// Err joins every ResourceError raised while building the layout, or
// returns nil if every texture request succeeded.
func (l *Layout) Err() error {
	return errors.Join(l.errs...)
}

// Coverage is the total angle spanned by the panels.
func (l *Layout) Coverage() float64 {
	total := 0.0
	for _, p := range l.Panels {
		total += p.Span
	}
	return total
}

func (cfg Config) withDefaults() Config {
	if cfg.AspectRatio == 0 {
		cfg.AspectRatio = DefaultAspectRatio
	}
	if cfg.WidthSegments == 0 {
		cfg.WidthSegments = DefaultWidthSegments
	}
	if cfg.HeightSegments == 0 {
		cfg.HeightSegments = DefaultHeightSegments
	}
	return cfg
}

// Validate checks the configuration without building anything.
func (cfg Config) Validate() error {
	cfg = cfg.withDefaults()

	if len(cfg.Textures) == 0 {
		return &ConfigurationError{Field: "textures", Value: len(cfg.Textures), Err: ErrNoTextures}
	}
	if !positiveFinite(cfg.Radius) {
		return &ConfigurationError{Field: "radius", Value: cfg.Radius, Err: ErrInvalidRadius}
	}
	if !positiveFinite(cfg.AspectRatio) {
		return &ConfigurationError{Field: "aspect ratio", Value: cfg.AspectRatio, Err: ErrInvalidAspect}
	}
	if cfg.WidthSegments < 0 {
		return &ConfigurationError{Field: "width segments", Value: cfg.WidthSegments, Err: ErrInvalidSegments}
	}
	if cfg.HeightSegments < 0 {
		return &ConfigurationError{Field: "height segments", Value: cfg.HeightSegments, Err: ErrInvalidSegments}
	}
	cols, rows := int64(cfg.WidthSegments)+1, int64(cfg.HeightSegments)+1
	if cols > MaxGridVertices/rows {
		return &ConfigurationError{Field: "segments", Value: [2]int{cfg.WidthSegments, cfg.HeightSegments}, Err: ErrTooManyVertices}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Build creates one panel per texture id and registers them with the scene.
//
// An invalid configuration returns a *ConfigurationError; in that case no
// texture is requested and nothing reaches the scene. A texture that fails
// to load leaves its panel on the loader's placeholder and is reported
// through Layout.Err.
func Build(cfg Config, textures TextureLoader, scene SceneGraph) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	n := len(cfg.Textures)
	width := arc.PanelWidth(cfg.Radius, n)
	height := width / cfg.AspectRatio
	span := arc.Span(n)

	// Every panel shares the same bent geometry; only placement differs.
	local := NewGrid(width, height, cfg.WidthSegments, cfg.HeightSegments).Bend(cfg.Radius)
	lift := mgl64.Translate3D(0, height/2, 0)

	layout := &Layout{
		Radius: cfg.Radius,
		Width:  width,
		Height: height,
		Panels: make([]*Panel, 0, n),
	}

	for i, id := range cfg.Textures {
		angle := span * float64(i)
		transform := lift.Mul4(mgl64.HomogRotate3DY(angle))
		world := local.Transformed(transform)

		p := &Panel{
			Index:     i,
			Angle:     angle,
			Span:      span,
			Width:     width,
			Height:    height,
			Local:     local,
			Transform: transform,
			World:     world,
			Bounds:    world.Bounds(),
			TextureID: id,
		}

		handle, err := textures.LoadTexture(id)
		if err != nil {
			rerr := &ResourceError{Index: i, TextureID: id, Err: err}
			slog.Warn("Texture unavailable, using placeholder", "panel", i, "texture", id, "error", err)
			layout.errs = append(layout.errs, rerr)
			handle = textures.Placeholder()
		}
		p.Texture = handle

		layout.Panels = append(layout.Panels, p)
	}

	for _, p := range layout.Panels {
		scene.AddMesh(p)
		if cfg.DebugBounds {
			scene.AddDebugBoundingBox(p)
		}
	}

	slog.Info("Built panorama",
		"panels", n,
		"radius", cfg.Radius,
		"panel_width", width,
		"panel_height", height,
		"vertices_per_panel", local.VertexCount(),
	)

	return layout, nil
}
