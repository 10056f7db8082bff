package render

// Camera defaults
const (
	DefaultRotateSpeed = 0.1

	// Default orientation
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0

	// Projection
	DefaultFOV  = 50.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
	MinFOV      = 1.0

	// Constraints
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Scene colours
const (
	BoxColorHex   = 0xffff00
	FloorColorHex = 0x2f1e1e
)

// Lighting: a white-over-black hemisphere light plus one directional light.
const (
	hemisphereIntensity = 1.0
	lightIntensity      = 0.5
)

var lightPosition = [3]float32{20, 20, 20}

// maxStep caps the simulation step after a stall so a long frame does not
// teleport the camera through the floor clamp.
const maxStep = 0.1

// floorSegments matches the reference floor disc.
const floorSegments = 32
