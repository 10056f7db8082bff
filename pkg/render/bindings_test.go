package render

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-panorama/pkg/locomotion"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		keys []glfw.Key
		want locomotion.Action
	}{
		{[]glfw.Key{glfw.KeyW, glfw.KeyUp}, locomotion.MoveForward},
		{[]glfw.Key{glfw.KeyS, glfw.KeyDown}, locomotion.MoveBackward},
		{[]glfw.Key{glfw.KeyA, glfw.KeyLeft}, locomotion.MoveLeft},
		{[]glfw.Key{glfw.KeyD, glfw.KeyRight}, locomotion.MoveRight},
		{[]glfw.Key{glfw.KeySpace}, locomotion.Jump},
	}
	for _, tt := range tests {
		for _, k := range tt.keys {
			assert.Equal(t, tt.want, b[k], "key %d", k)
		}
	}
	_, bound := b[KeyToggleWalk]
	assert.False(t, bound)
}

func TestBindingsApply(t *testing.T) {
	b := DefaultBindings()
	s := locomotion.NewInputState()

	assert.True(t, b.Apply(s, glfw.KeyW, glfw.Press))
	assert.True(t, s.Pressed(locomotion.MoveForward))

	assert.True(t, b.Apply(s, glfw.KeyW, glfw.Repeat))
	assert.True(t, s.Pressed(locomotion.MoveForward), "repeat keeps the action held")

	assert.True(t, b.Apply(s, glfw.KeyW, glfw.Release))
	assert.False(t, s.Pressed(locomotion.MoveForward))

	assert.False(t, b.Apply(s, glfw.KeyQ, glfw.Press))
	assert.Equal(t, locomotion.Snapshot{}, s.Snapshot())
}

func TestBindingsSync(t *testing.T) {
	b := DefaultBindings()
	s := locomotion.NewInputState()
	s.SetAction(locomotion.Jump, true)

	held := map[glfw.Key]bool{glfw.KeyLeft: true, glfw.KeyW: true}
	b.Sync(s, func(k glfw.Key) bool { return held[k] })

	assert.Equal(t, locomotion.Snapshot{Forward: true, Left: true}, s.Snapshot())
}
