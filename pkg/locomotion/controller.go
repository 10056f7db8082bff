// Package locomotion integrates the motion of a ground-based first-person
// viewpoint: horizontal damping, gravity, jumping and a hard floor.
//
// The integrator is a fixed sequence of explicit Euler steps. Reordering
// the steps changes the trajectory, so Tick applies them in one fixed order
// and tests pin the resulting numbers.
package locomotion

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertical movement is integrated at a tenth of the horizontal rate.
const verticalDivisor = 10.0

const (
	DefaultDampingCoefficient = 10.0
	DefaultGravityAccel       = 980.0 // 9.8 scaled by a mass of 100
	DefaultMoveAccel          = 50.0
	DefaultJumpImpulse        = 150.0
	DefaultMinEyeHeight       = 1.8
)

var (
	ErrNegative  = errors.New("must not be negative")
	ErrNotFinite = errors.New("must be finite")
	ErrNilFrame  = errors.New("controlled frame is nil")
)

// ConfigurationError reports an unusable controller setting.
type ConfigurationError struct {
	Field string
	Value float64
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("locomotion: %s (%v) %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Config holds the integrator constants.
type Config struct {
	DampingCoefficient float64 // horizontal damping, 1/s
	GravityAccel       float64
	MoveAccel          float64
	JumpImpulse        float64
	MinEyeHeight       float64
	// GroundProbeDistance is how close a ground-contact hit must be to count.
	// Zero accepts a hit at any distance.
	GroundProbeDistance float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		DampingCoefficient: DefaultDampingCoefficient,
		GravityAccel:       DefaultGravityAccel,
		MoveAccel:          DefaultMoveAccel,
		JumpImpulse:        DefaultJumpImpulse,
		MinEyeHeight:       DefaultMinEyeHeight,
	}
}

// Validate checks every constant is finite and, apart from the eye height,
// non-negative.
func (c Config) Validate() error {
	fields := []struct {
		name          string
		value         float64
		allowNegative bool
	}{
		{"damping coefficient", c.DampingCoefficient, false},
		{"gravity", c.GravityAccel, false},
		{"move acceleration", c.MoveAccel, false},
		{"jump impulse", c.JumpImpulse, false},
		{"min eye height", c.MinEyeHeight, true},
		{"ground probe distance", c.GroundProbeDistance, false},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigurationError{Field: f.name, Value: f.value, Err: ErrNotFinite}
		}
		if !f.allowNegative && f.value < 0 {
			return &ConfigurationError{Field: f.name, Value: f.value, Err: ErrNegative}
		}
	}
	return nil
}

// Frame is the externally owned transform the controller moves, usually a
// camera. Moves are along the frame's horizontal right and forward axes.
type Frame interface {
	MoveRight(distance float64)
	MoveForward(distance float64)
	Height() float64
	SetHeight(y float64)
}

// GroundHit is the result of a ground-contact probe.
type GroundHit struct {
	Hit      bool
	Distance float64
}

// GroundTester casts a probe ray and reports the nearest hit.
type GroundTester interface {
	Test(origin, direction mgl64.Vec3) GroundHit
}

// Mode is the controller's contact state.
type Mode int

const (
	Grounded Mode = iota
	Airborne
)

func (m Mode) String() string {
	if m == Grounded {
		return "grounded"
	}
	return "airborne"
}

// State is the simulation state the controller owns.
type State struct {
	Velocity  mgl64.Vec3
	Grounded  bool
	JumpReady bool
}

// Mode reports Grounded or Airborne.
func (s State) Mode() Mode {
	if s.Grounded {
		return Grounded
	}
	return Airborne
}

// Controller advances a Frame one tick at a time. It is not safe for
// concurrent use; the host calls Tick and reads State from one goroutine.
type Controller struct {
	cfg   Config
	frame Frame
	state State
}

// NewController returns a grounded controller, ready to jump, driving frame.
func NewController(cfg Config, frame Frame) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, ErrNilFrame
	}
	return &Controller{
		cfg:   cfg,
		frame: frame,
		state: State{Grounded: true, JumpReady: true},
	}, nil
}

// State returns a copy of the current simulation state.
func (c *Controller) State() State {
	return c.state
}

// Jump adds the jump impulse if the controller is ready to jump and reports
// whether it did. A jump while airborne is ignored.
func (c *Controller) Jump() bool {
	if !c.state.JumpReady {
		return false
	}
	c.state.Velocity[1] += c.cfg.JumpImpulse
	c.state.JumpReady = false
	c.state.Grounded = false
	return true
}

func (c *Controller) touchesGround(hit GroundHit) bool {
	if !hit.Hit {
		return false
	}
	return c.cfg.GroundProbeDistance == 0 || hit.Distance <= c.cfg.GroundProbeDistance
}

// Tick advances the simulation by dt seconds using one input snapshot and
// the ground-contact result the host probed before the tick.
func (c *Controller) Tick(dt float64, in Snapshot, hit GroundHit) {
	v := &c.state.Velocity

	if in.Jump {
		c.Jump()
	}

	// Damping
	v[0] -= v[0] * c.cfg.DampingCoefficient * dt
	v[2] -= v[2] * c.cfg.DampingCoefficient * dt

	// Gravity
	v[1] -= c.cfg.GravityAccel * dt

	// Movement intent
	dirX, dirZ := in.Direction()
	if in.Forward || in.Backward {
		v[2] -= dirZ * c.cfg.MoveAccel * dt
	}
	if in.Left || in.Right {
		v[0] -= dirX * c.cfg.MoveAccel * dt
	}

	// Ground contact
	c.state.Grounded = c.touchesGround(hit)
	if c.state.Grounded {
		v[1] = math.Max(0, v[1])
		c.state.JumpReady = true
	}

	// Integrate
	c.frame.MoveRight(-v[0] * dt)
	c.frame.MoveForward(-v[2] * dt)
	c.frame.SetHeight(c.frame.Height() + v[1]*dt/verticalDivisor)

	// Floor
	if c.frame.Height() < c.cfg.MinEyeHeight {
		v[1] = 0
		c.frame.SetHeight(c.cfg.MinEyeHeight)
		c.state.Grounded = true
		c.state.JumpReady = true
	}
}
