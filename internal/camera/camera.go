// Package camera implements a first-person fly camera driven by discrete
// keyboard, pointer and scroll events.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 3.25
	DefaultSensitivity = 0.05
	DefaultFov         = 45.0

	MinFov   = 1.0
	MaxFov   = 45.0
	MaxPitch = 89.0
)

type Camera struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Yaw and Pitch are in degrees.
	Yaw   float32
	Pitch float32

	Speed       float32
	Fov         float32
	Sensitivity float32

	seeded    bool
	lastMouse mgl32.Vec2
}

// New creates a camera at position looking along the direction given by
// yaw and pitch.
func New(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		Forward:     mgl32.Vec3{0, 0, -1},
		WorldUp:     worldUp,
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       DefaultSpeed,
		Fov:         DefaultFov,
		Sensitivity: DefaultSensitivity,
	}
	c.updateVectors()
	return c
}

// Default creates a camera at the origin looking down -Z.
func Default() *Camera {
	return New(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch)
}

// Move translates the camera by Speed*dt. Forward and backward travel stay
// in the plane perpendicular to WorldUp, so looking up or down does not
// change horizontal speed. Looking exactly along WorldUp leaves nothing to
// project and the position becomes NaN; callers constrain pitch to avoid it.
func (c *Camera) Move(direction Direction, dt float32) {
	velocity := c.Speed * dt

	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.horizontalForward().Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.horizontalForward().Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

func (c *Camera) horizontalForward() mgl32.Vec3 {
	projected := c.Forward.Sub(c.WorldUp.Mul(c.Forward.Dot(c.WorldUp)))
	return projected.Normalize()
}

// Pointer rotates the camera by the distance the pointer moved since the
// previous call. The first call only records the reference position.
func (c *Camera) Pointer(x, y float32, constrainPitch bool) {
	current := mgl32.Vec2{x, y}

	if !c.seeded {
		c.lastMouse = current
		c.seeded = true
	}

	delta := current.Sub(c.lastMouse).Mul(c.Sensitivity)
	c.lastMouse = current

	// Screen y grows downwards.
	c.Yaw += delta[0]
	c.Pitch -= delta[1]

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// Scroll narrows the field of view by amount degrees, within [MinFov, MaxFov].
func (c *Camera) Scroll(amount float32) {
	c.Fov = mgl32.Clamp(c.Fov-amount, MinFov, MaxFov)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward), c.Up)
}

func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, near, far)
}

func (c *Camera) ViewProjection(aspect, near, far float32) mgl32.Mat4 {
	return c.Projection(aspect, near, far).Mul4(c.ViewMatrix())
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	forward := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Forward = forward.Normalize()
	c.Right = c.Forward.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}
