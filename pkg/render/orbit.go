package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orbit is the idle camera path: a horizontal circle around the panorama,
// always looking at Target.
type Orbit struct {
	Radius float64
	Height float64
	// Period is the time in seconds to sweep one radian.
	Period float64
	Target mgl64.Vec3
}

// DefaultOrbit circles at radius 3 and height 0.3, looking slightly up at
// the panels.
func DefaultOrbit() Orbit {
	return Orbit{Radius: 3, Height: 0.3, Period: 10, Target: mgl64.Vec3{0, 0.4, 0}}
}

// Eye returns the camera position at time t seconds.
func (o Orbit) Eye(t float64) mgl64.Vec3 {
	angle := t / o.Period
	return mgl64.Vec3{
		o.Radius * math.Cos(angle),
		o.Height,
		o.Radius * math.Sin(angle),
	}
}

// Apply places cam on the orbit at time t.
func (o Orbit) Apply(cam *Camera, t float64) {
	cam.SetPosition(o.Eye(t))
	cam.LookAt(o.Target)
}
