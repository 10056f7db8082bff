package render

import (
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/leterax/go-panorama/internal/openglhelper"
	"github.com/leterax/go-panorama/pkg/panel"
	"github.com/leterax/go-panorama/pkg/scene"
)

type gpuPanel struct {
	panel   *panel.Panel
	mesh    *openglhelper.Mesh
	texture *openglhelper.Texture
}

// PanelBufferManager owns the GPU copies of the scene: one mesh per panel,
// one line mesh per debug box and one texture per distinct texture handle.
// Textures are uploaded as their handles resolve; until then a panel
// samples the placeholder.
type PanelBufferManager struct {
	panels   []*gpuPanel
	boxes    []*openglhelper.Mesh
	textures map[panel.TextureHandle]*openglhelper.Texture

	placeholder *openglhelper.Texture
	tracker     textureTracker

	meshCount int
	boxCount  int
	version   uint64
}

// NewPanelBufferManager uploads the placeholder image. A GL context must be
// current.
func NewPanelBufferManager(placeholder *image.RGBA) *PanelBufferManager {
	return &PanelBufferManager{
		textures:    make(map[panel.TextureHandle]*openglhelper.Texture),
		placeholder: openglhelper.NewTexture(placeholder),
	}
}

// Sync uploads panels and boxes registered with sc since the last call.
func (m *PanelBufferManager) Sync(sc *scene.Scene) {
	v := sc.Version()
	if v == m.version {
		return
	}
	m.version = v

	meshes := sc.Meshes()
	for _, p := range meshes[m.meshCount:] {
		gp := &gpuPanel{
			panel:   p,
			mesh:    openglhelper.NewTexturedMesh(p.World.Interleaved(), p.World.Indices),
			texture: m.placeholder,
		}
		if tex, ok := m.textures[p.Texture]; ok {
			gp.texture = tex
		} else {
			m.tracker.Add(p)
		}
		m.panels = append(m.panels, gp)
	}
	m.meshCount = len(meshes)

	boxes := sc.Boxes()
	for _, p := range boxes[m.boxCount:] {
		positions, indices := boxLines(p.Bounds)
		m.boxes = append(m.boxes, openglhelper.NewPositionMesh(positions, indices, gl.LINES))
	}
	m.boxCount = len(boxes)

	slog.Debug("Uploaded scene", "panels", len(m.panels), "boxes", len(m.boxes), "version", m.version)
}

// UploadTextures moves newly decoded textures to the GPU and reports
// failures, which keep the placeholder. It returns the number still pending.
func (m *PanelBufferManager) UploadTextures() int {
	if m.tracker.Pending() == 0 {
		return 0
	}
	return m.tracker.Poll(m.attachTexture, func(err *panel.ResourceError) {
		slog.Warn("Texture failed, keeping placeholder", "panel", err.Index, "texture", err.TextureID, "error", err.Err)
	})
}

func (m *PanelBufferManager) attachTexture(p *panel.Panel, img *image.RGBA) {
	tex, ok := m.textures[p.Texture]
	if !ok {
		if img == nil {
			return
		}
		tex = openglhelper.NewTexture(img)
		m.textures[p.Texture] = tex
		slog.Debug("Texture uploaded", "texture", p.TextureID, "width", tex.Width, "height", tex.Height)
	}
	for _, gp := range m.panels {
		if gp.panel == p {
			gp.texture = tex
		}
	}
}

// DrawPanels draws every panel with shader, which samples texture unit 0.
func (m *PanelBufferManager) DrawPanels(shader *openglhelper.Shader) {
	shader.SetInt("panelTexture", 0)
	for _, gp := range m.panels {
		gp.texture.Bind(0)
		gp.mesh.Draw()
	}
}

// DrawBoxes draws every debug box with the currently bound line shader.
func (m *PanelBufferManager) DrawBoxes() {
	for _, b := range m.boxes {
		b.Draw()
	}
}

// Delete releases every GPU resource.
func (m *PanelBufferManager) Delete() {
	for _, gp := range m.panels {
		gp.mesh.Delete()
	}
	for _, b := range m.boxes {
		b.Delete()
	}
	for _, t := range m.textures {
		t.Delete()
	}
	m.placeholder.Delete()
	m.panels = nil
	m.boxes = nil
	clear(m.textures)
}
