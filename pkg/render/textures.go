package render

import (
	"image"

	"github.com/leterax/go-panorama/pkg/panel"
	"github.com/leterax/go-panorama/pkg/texture"
)

// resolvable is the view of an asynchronous texture handle the renderer
// polls each frame.
type resolvable interface {
	Status() texture.Status
	Image() *image.RGBA
	Err() error
}

type textureSlot struct {
	panel  *panel.Panel
	source resolvable
}

// textureTracker follows panel textures until each is ready or failed.
type textureTracker struct {
	pending []textureSlot
}

// Add starts tracking p's texture. Handles that cannot resolve
// asynchronously are ignored; their panel keeps the placeholder.
func (t *textureTracker) Add(p *panel.Panel) {
	src, ok := p.Texture.(resolvable)
	if !ok {
		return
	}
	t.pending = append(t.pending, textureSlot{panel: p, source: src})
}

// Poll reports every texture that resolved since the last call, through
// ready or failed, and returns how many are still pending. A failure is
// reported once.
func (t *textureTracker) Poll(ready func(p *panel.Panel, img *image.RGBA), failed func(err *panel.ResourceError)) int {
	remaining := t.pending[:0]
	for _, slot := range t.pending {
		switch slot.source.Status() {
		case texture.Ready:
			ready(slot.panel, slot.source.Image())
		case texture.Failed:
			failed(&panel.ResourceError{
				Index:     slot.panel.Index,
				TextureID: slot.panel.TextureID,
				Err:       slot.source.Err(),
			})
		default:
			remaining = append(remaining, slot)
		}
	}
	clear(t.pending[len(remaining):])
	t.pending = remaining
	return len(t.pending)
}

// Pending returns the number of textures still decoding.
func (t *textureTracker) Pending() int {
	return len(t.pending)
}
