package camera

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	assert.InDelta(t, 1, c.Forward.Len(), tol)
	assert.InDelta(t, 1, c.Right.Len(), tol)
	assert.InDelta(t, 1, c.Up.Len(), tol)
	assert.InDelta(t, 0, c.Forward.Dot(c.Right), tol)
	assert.InDelta(t, 0, c.Forward.Dot(c.Up), tol)
	assert.InDelta(t, 0, c.Right.Dot(c.Up), tol)
}

func TestDefaultOrientation(t *testing.T) {
	c := Default()

	assert.Equal(t, float32(DefaultYaw), c.Yaw)
	assert.Equal(t, float32(DefaultPitch), c.Pitch)
	assert.Equal(t, float32(DefaultFov), c.Fov)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, c.Forward)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Right)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, c.Up)
	assertOrthonormal(t, c)
}

func TestFirstPointerSampleOnlySeeds(t *testing.T) {
	c := Default()
	forward := c.Forward

	c.Pointer(400, 300, true)

	assert.Equal(t, float32(DefaultYaw), c.Yaw)
	assert.Equal(t, float32(DefaultPitch), c.Pitch)
	assertVecNear(t, forward, c.Forward)
}

func TestRepeatedPointerSampleIsStill(t *testing.T) {
	c := Default()
	c.Pointer(10, 10, true)
	c.Pointer(250, 120, true)
	yaw, pitch := c.Yaw, c.Pitch

	c.Pointer(250, 120, true)

	assert.Equal(t, yaw, c.Yaw)
	assert.Equal(t, pitch, c.Pitch)
}

func TestPointerDelta(t *testing.T) {
	c := Default()
	c.Pointer(100, 100, true)
	c.Pointer(120, 80, true)

	// +20 px right turns right, -20 px (upwards on screen) looks up.
	assert.InDelta(t, DefaultYaw+20*DefaultSensitivity, c.Yaw, tol)
	assert.InDelta(t, 20*DefaultSensitivity, c.Pitch, tol)
	assert.Greater(t, c.Forward.Y(), float32(0))
	assertOrthonormal(t, c)
}

func TestPitchConstraint(t *testing.T) {
	c := Default()
	c.Sensitivity = 1
	c.Pointer(0, 0, true)

	c.Pointer(0, -500, true)
	assert.Equal(t, float32(MaxPitch), c.Pitch)
	assertOrthonormal(t, c)

	c.Pointer(0, 2000, true)
	assert.Equal(t, float32(-MaxPitch), c.Pitch)

	c.Pointer(0, 3000, false)
	assert.Less(t, c.Pitch, float32(-MaxPitch), "unconstrained pitch is not clamped")
}

func TestPitchStaysInRangeUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := Default()

	for range 1000 {
		c.Pointer(rng.Float32()*4000-2000, rng.Float32()*4000-2000, true)
		require.GreaterOrEqual(t, c.Pitch, float32(-MaxPitch))
		require.LessOrEqual(t, c.Pitch, float32(MaxPitch))
	}
	assertOrthonormal(t, c)
}

func TestScrollClampsFov(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float32
		want    float32
	}{
		{"zoom in", []float32{10}, 35},
		{"zoom past minimum", []float32{30, 30}, MinFov},
		{"zoom out past maximum", []float32{-5}, MaxFov},
		{"in then out", []float32{44, -3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			for _, a := range tt.amounts {
				c.Scroll(a)
				assert.GreaterOrEqual(t, c.Fov, float32(MinFov))
				assert.LessOrEqual(t, c.Fov, float32(MaxFov))
			}
			assert.InDelta(t, tt.want, c.Fov, tol)
		})
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		direction Direction
		want      mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2}},
		{Backward, mgl32.Vec3{0, 0, 2}},
		{Right, mgl32.Vec3{2, 0, 0}},
		{Left, mgl32.Vec3{-2, 0, 0}},
		{Up, mgl32.Vec3{0, 2, 0}},
		{Down, mgl32.Vec3{0, -2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			c := Default()
			c.Speed = 4
			c.Move(tt.direction, 0.5)
			assertVecNear(t, tt.want, c.Position)
		})
	}
}

func TestMoveForwardIgnoresPitch(t *testing.T) {
	c := Default()
	c.Sensitivity = 1
	c.Pointer(0, 0, true)
	c.Pointer(0, -60, true) // look 60 degrees up

	c.Move(Forward, 1)

	assert.InDelta(t, 0, c.Position.Y(), tol)
	assert.InDelta(t, DefaultSpeed, c.Position.Len(), tol)
}

func TestMoveForwardAlongWorldUpIsDegenerate(t *testing.T) {
	c := Default()
	c.Forward = c.WorldUp

	c.Move(Forward, 1)

	assert.True(t, math.IsNaN(float64(c.Position.X())), "no horizontal direction to travel in")
}

func TestViewMatrix(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, DefaultYaw, 0)
	view := c.ViewMatrix()

	// The eye maps to the origin and a point ahead lands on -Z.
	eye := view.Mul4x1(c.Position.Vec4(1))
	assertVecNear(t, mgl32.Vec3{}, eye.Vec3())

	ahead := view.Mul4x1(c.Position.Add(c.Forward.Mul(5)).Vec4(1))
	assertVecNear(t, mgl32.Vec3{0, 0, -5}, ahead.Vec3())
}

func TestViewProjection(t *testing.T) {
	c := Default()
	want := mgl32.Perspective(mgl32.DegToRad(DefaultFov), 4.0/3.0, 0.1, 100).Mul4(c.ViewMatrix())
	assert.True(t, want.ApproxEqual(c.ViewProjection(4.0/3.0, 0.1, 100)))

	c.Scroll(20)
	assert.False(t, want.ApproxEqual(c.ViewProjection(4.0/3.0, 0.1, 100)))
}
