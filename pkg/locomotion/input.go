package locomotion

import "math"

// Action is a movement intent a key can assert.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	Jump

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:  "forward",
	MoveBackward: "backward",
	MoveLeft:     "left",
	MoveRight:    "right",
	Jump:         "jump",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

// InputState records which actions are currently held. It is written by key
// event handlers and read once per tick through Snapshot. Jump is
// edge-triggered: a press is latched until the next Snapshot consumes it, so
// holding the key jumps once.
type InputState struct {
	pressed     [actionCount]bool
	jumpPending bool
}

// NewInputState returns an input state with every action released.
func NewInputState() *InputState {
	return &InputState{}
}

// SetAction marks a as pressed or released. Repeating the same event is a
// no-op, and unknown actions are ignored.
func (s *InputState) SetAction(a Action, pressed bool) {
	if !a.Valid() {
		return
	}
	if a == Jump && pressed && !s.pressed[Jump] {
		s.jumpPending = true
	}
	s.pressed[a] = pressed
}

// Pressed reports whether a is currently held.
func (s *InputState) Pressed(a Action) bool {
	if !a.Valid() {
		return false
	}
	return s.pressed[a]
}

// Reset releases every action.
func (s *InputState) Reset() {
	s.pressed = [actionCount]bool{}
	s.jumpPending = false
}

// Snapshot copies the current state and consumes a pending jump press.
// Later events do not affect it.
func (s *InputState) Snapshot() Snapshot {
	snap := Snapshot{
		Forward:  s.pressed[MoveForward],
		Backward: s.pressed[MoveBackward],
		Left:     s.pressed[MoveLeft],
		Right:    s.pressed[MoveRight],
		Jump:     s.jumpPending,
	}
	s.jumpPending = false
	return snap
}

// Snapshot is the input a single tick sees.
type Snapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	// Jump is true for the one snapshot following a jump press.
	Jump bool
}

// Direction returns the unit movement direction in the controlled frame,
// x to the right and z forward, or the zero vector when opposing keys cancel
// or nothing is held. Diagonals are normalised so every direction has the
// same speed.
func (s Snapshot) Direction() (x, z float64) {
	z = boolToFloat(s.Forward) - boolToFloat(s.Backward)
	x = boolToFloat(s.Right) - boolToFloat(s.Left)

	length := math.Hypot(x, z)
	if length == 0 {
		return 0, 0
	}
	return x / length, z / length
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
