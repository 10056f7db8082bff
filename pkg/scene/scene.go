// Package scene keeps the panels a layout registers and answers ray queries
// against them.
package scene

import (
	"sync"

	"github.com/leterax/go-panorama/pkg/panel"
)

// Scene is an in-memory scene graph. Registration and queries are safe for
// concurrent use.
type Scene struct {
	mu      sync.RWMutex
	meshes  []*panel.Panel
	boxes   []*panel.Panel
	version uint64
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddMesh registers a panel for drawing and ray casting.
func (s *Scene) AddMesh(p *panel.Panel) {
	if p == nil {
		return
	}
	s.mu.Lock()
	s.meshes = append(s.meshes, p)
	s.version++
	s.mu.Unlock()
}

// AddDebugBoundingBox registers a panel whose bounding box is drawn as lines.
func (s *Scene) AddDebugBoundingBox(p *panel.Panel) {
	if p == nil {
		return
	}
	s.mu.Lock()
	s.boxes = append(s.boxes, p)
	s.version++
	s.mu.Unlock()
}

// Meshes returns the registered panels in registration order.
func (s *Scene) Meshes() []*panel.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*panel.Panel(nil), s.meshes...)
}

// Boxes returns the panels registered for bounding box drawing.
func (s *Scene) Boxes() []*panel.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*panel.Panel(nil), s.boxes...)
}

// Version increases on every registration. A renderer compares it with the
// value it last saw to detect new content.
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
