package render

import (
	"log/slog"

	"github.com/leterax/go-panorama/pkg/locomotion"
)

// Mode selects who moves the camera.
type Mode int

const (
	// ModeOrbit flies the camera around the idle orbit.
	ModeOrbit Mode = iota
	// ModeWalk hands the camera to the locomotion controller.
	ModeWalk
)

func (m Mode) String() string {
	if m == ModeWalk {
		return "walk"
	}
	return "orbit"
}

// Driver advances the camera once per frame. It holds no GL state.
type Driver struct {
	camera     *Camera
	controller *locomotion.Controller
	input      *locomotion.InputState
	ground     locomotion.GroundTester
	orbit      Orbit
	mode       Mode
}

// NewDriver wires a controller already driving camera to its inputs. It
// starts in orbit mode.
func NewDriver(camera *Camera, controller *locomotion.Controller, input *locomotion.InputState, ground locomotion.GroundTester, orbit Orbit) *Driver {
	return &Driver{
		camera:     camera,
		controller: controller,
		input:      input,
		ground:     ground,
		orbit:      orbit,
	}
}

// Mode returns the current mode.
func (d *Driver) Mode() Mode {
	return d.mode
}

// SetMode switches mode. Leaving walk mode releases every held action so
// nothing is stuck on return.
func (d *Driver) SetMode(m Mode) {
	if m == d.mode {
		return
	}
	if d.mode == ModeWalk {
		d.input.Reset()
	}
	if m == ModeWalk {
		d.camera.ResetMouseState()
	}
	d.mode = m
	slog.Info("Camera mode changed", "mode", m)
}

// ToggleMode flips between orbit and walk and returns the new mode.
func (d *Driver) ToggleMode() Mode {
	if d.mode == ModeWalk {
		d.SetMode(ModeOrbit)
	} else {
		d.SetMode(ModeWalk)
	}
	return d.mode
}

// Update moves the camera for a frame ending at time now, dt seconds after
// the previous one. In walk mode the ground is probed along the view
// direction before the controller ticks.
func (d *Driver) Update(now, dt float64) {
	switch d.mode {
	case ModeWalk:
		if dt < 0 {
			dt = 0
		}
		if dt > maxStep {
			dt = maxStep
		}
		hit := d.ground.Test(d.camera.Position(), d.camera.Forward())
		d.controller.Tick(dt, d.input.Snapshot(), hit)
	default:
		d.orbit.Apply(d.camera, now)
	}
}
