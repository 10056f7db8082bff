package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/pkg/locomotion"
)

// CameraOptions configures the projection and mouse-look of a Camera.
type CameraOptions struct {
	FOV         float64 // vertical, degrees
	Near        float64
	Far         float64
	Sensitivity float64 // degrees per pixel
}

// DefaultCameraOptions uses a 50° field of view.
func DefaultCameraOptions() CameraOptions {
	return CameraOptions{
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Sensitivity: DefaultRotateSpeed,
	}
}

// Camera is a yaw/pitch first-person camera. It implements
// locomotion.Frame: moves are along the horizontal projections of its right
// and forward vectors, the way pointer-lock controls walk.
type Camera struct {
	position mgl64.Vec3
	worldUp  mgl64.Vec3
	front    mgl64.Vec3
	up       mgl64.Vec3
	right    mgl64.Vec3

	// Euler angles, degrees
	yaw   float64
	pitch float64

	opts   CameraOptions
	maxFOV float64

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool

	aspect float64
}

// NewCamera creates a camera at position looking down -Z.
func NewCamera(position mgl64.Vec3, opts CameraOptions) *Camera {
	c := &Camera{
		position:   position,
		worldUp:    mgl64.Vec3{0, 1, 0},
		yaw:        DefaultYaw,
		pitch:      DefaultPitch,
		opts:       opts,
		maxFOV:     opts.FOV,
		firstMouse: true,
		aspect:     1,
	}
	c.updateCameraVectors()
	return c
}

func (c *Camera) updateCameraVectors() {
	yaw := mgl64.DegToRad(c.yaw)
	pitch := mgl64.DegToRad(c.pitch)
	front := mgl64.Vec3{
		math.Cos(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw) * math.Cos(pitch),
	}
	c.front = front.Normalize()

	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// SetAspect updates the projection for a new framebuffer shape.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

// ViewMatrix returns the current view matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mat4f(mgl64.LookAtV(c.position, c.position.Add(c.front), c.up))
}

// ProjectionMatrix returns the current projection matrix.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mat4f(mgl64.Perspective(mgl64.DegToRad(c.opts.FOV), c.aspect, c.opts.Near, c.opts.Far))
}

// Position returns the current camera position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos mgl64.Vec3) {
	c.position = pos
}

// Orientation returns yaw and pitch in degrees.
func (c *Camera) Orientation() (yaw, pitch float64) {
	return c.yaw, c.pitch
}

// SetRotation sets yaw and pitch in degrees. Pitch is clamped short of
// straight up or down.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = mgl64.Clamp(pitch, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

// LookAt turns the camera toward target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	direction := target.Sub(c.position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	c.SetRotation(
		mgl64.RadToDeg(math.Atan2(direction.Z(), direction.X())),
		mgl64.RadToDeg(math.Asin(direction.Y())),
	)
}

// Forward returns the unit view direction, pitch included.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.front
}

// Right returns the unit right vector. It is always horizontal.
func (c *Camera) Right() mgl64.Vec3 {
	return c.right
}

// MoveRight moves the camera sideways along its horizontal right vector.
func (c *Camera) MoveRight(distance float64) {
	c.position = c.position.Add(c.right.Mul(distance))
}

// MoveForward moves the camera along the horizontal direction it faces,
// ignoring pitch.
func (c *Camera) MoveForward(distance float64) {
	forward := c.worldUp.Cross(c.right)
	c.position = c.position.Add(forward.Mul(distance))
}

// Height returns the camera's y coordinate.
func (c *Camera) Height() float64 {
	return c.position.Y()
}

// SetHeight sets the camera's y coordinate.
func (c *Camera) SetHeight(y float64) {
	c.position[1] = y
}

// HandleMouseMovement updates orientation from a cursor position.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastX) * c.opts.Sensitivity
	yoffset := (c.lastY - ypos) * c.opts.Sensitivity // y grows downward on screen

	c.lastX = xpos
	c.lastY = ypos

	c.SetRotation(c.yaw+xoffset, c.pitch+yoffset)
}

// HandleMouseScroll zooms by narrowing the field of view.
func (c *Camera) HandleMouseScroll(yoffset float64) {
	c.opts.FOV = mgl64.Clamp(c.opts.FOV-yoffset, MinFOV, c.maxFOV)
}

// FOV returns the current vertical field of view in degrees.
func (c *Camera) FOV() float64 {
	return c.opts.FOV
}

// ResetMouseState makes the next cursor event a reference point only.
func (c *Camera) ResetMouseState() {
	c.firstMouse = true
}

func mat4f(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

var _ locomotion.Frame = (*Camera)(nil)
