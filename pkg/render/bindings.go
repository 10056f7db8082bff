package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-panorama/pkg/locomotion"
)

// Keys handled by the renderer itself rather than the controller.
const (
	KeyQuit       = glfw.KeyEscape
	KeyToggleWalk = glfw.KeyC
)

// Bindings maps keys to movement actions. Several keys may share an action.
type Bindings map[glfw.Key]locomotion.Action

// DefaultBindings binds WASD, the arrow keys and Space.
func DefaultBindings() Bindings {
	return Bindings{
		glfw.KeyW:     locomotion.MoveForward,
		glfw.KeyUp:    locomotion.MoveForward,
		glfw.KeyS:     locomotion.MoveBackward,
		glfw.KeyDown:  locomotion.MoveBackward,
		glfw.KeyA:     locomotion.MoveLeft,
		glfw.KeyLeft:  locomotion.MoveLeft,
		glfw.KeyD:     locomotion.MoveRight,
		glfw.KeyRight: locomotion.MoveRight,
		glfw.KeySpace: locomotion.Jump,
	}
}

// Apply forwards a key event to state and reports whether the key is bound.
// Key repeats carry no new information and are ignored.
func (b Bindings) Apply(state *locomotion.InputState, key glfw.Key, action glfw.Action) bool {
	a, ok := b[key]
	if !ok {
		return false
	}
	switch action {
	case glfw.Press:
		state.SetAction(a, true)
	case glfw.Release:
		state.SetAction(a, false)
	}
	return true
}

// Sync rebuilds state from the keys currently held, as reported by
// pressed. It is used when the window regains input focus.
func (b Bindings) Sync(state *locomotion.InputState, pressed func(glfw.Key) bool) {
	state.Reset()
	for key, a := range b {
		if pressed(key) {
			state.SetAction(a, true)
		}
	}
}
