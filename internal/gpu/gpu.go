// Package gpu describes the command stream the particle pipeline submits.
// The OpenGL implementation lives in internal/opengl; tests use gputest.
package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Stage int

const (
	Vertex Stage = iota
	Fragment
	Compute
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	case Compute:
		return "COMPUTE"
	default:
		return "UNKNOWN"
	}
}

type Barrier uint32

const (
	BarrierStorage Barrier = 1 << iota
	BarrierVertexAttrib

	BarrierAll Barrier = 0xFFFFFFFF
)

type Usage int

const (
	DynamicDraw Usage = iota
	DynamicCopy
)

// Device is a single logical command stream. Calls must come from the
// thread that owns the context; nothing here is safe for concurrent use.
type Device interface {
	CompileShader(stage Stage, source string) (uint32, error)
	DeleteShader(shader uint32)

	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	ActiveUniforms(program uint32) map[string]int32
	UniformLocation(program uint32, name string) int32
	// ComputeWorkGroupSize reports the local size a linked compute program
	// was compiled with.
	ComputeWorkGroupSize(program uint32) [3]int32

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform1fv(location int32, v []float32)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix4(location int32, m mgl32.Mat4)

	CreateStorageBuffer(binding uint32, data []mgl32.Vec4, usage Usage) uint32
	BindStorageBuffer(binding uint32, buffer uint32)
	DeleteBuffer(buffer uint32)

	// CreatePointArray returns a vertex array whose attribute 0 reads
	// components floats per vertex from buffer.
	CreatePointArray(buffer uint32, components int32) uint32
	DeleteVertexArray(vao uint32)

	DispatchCompute(x, y, z uint32)
	MemoryBarrier(bits Barrier)
	DrawPoints(vao uint32, count int32)

	Viewport(x, y, width, height int32)
	Clear(color mgl32.Vec4)
}
