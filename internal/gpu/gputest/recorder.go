// Package gputest provides a fake gpu.Device that records the command stream.
package gputest

import (
	"fmt"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

type Op string

const (
	OpCompileShader Op = "compile"
	OpDeleteShader  Op = "delete-shader"
	OpLinkProgram   Op = "link"
	OpDeleteProgram Op = "delete-program"
	OpUseProgram    Op = "use"
	OpUniform       Op = "uniform"
	OpCreateBuffer  Op = "create-buffer"
	OpBindBuffer    Op = "bind-buffer"
	OpDeleteBuffer  Op = "delete-buffer"
	OpCreateVAO     Op = "create-vao"
	OpDeleteVAO     Op = "delete-vao"
	OpDispatch      Op = "dispatch"
	OpBarrier       Op = "barrier"
	OpDraw          Op = "draw"
	OpViewport      Op = "viewport"
	OpClear         Op = "clear"
)

type Command struct {
	Op       Op
	Handle   uint32
	Stage    gpu.Stage
	Location int32
	Values   []float32
	Ints     []int32
	Groups   [3]uint32
	Barrier  gpu.Barrier
	Count    int32
}

type Buffer struct {
	Binding uint32
	Usage   gpu.Usage
	Data    []mgl32.Vec4
}

// Recorder implements gpu.Device without a GL context.
type Recorder struct {
	Commands []Command

	// Uniforms is the active uniform table reported for every linked program.
	Uniforms map[string]int32

	// FailCompile makes compilation of the given stage fail with that log.
	FailCompile map[gpu.Stage]string
	// FailLink makes every link fail with this log when non-empty.
	FailLink string
	// LocalSize is the compute work group size reported for every program.
	LocalSize [3]int32

	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]uint32
	Programs     map[uint32][]uint32
	Shaders      map[uint32]gpu.Stage

	lookups int
	next    uint32
}

// DefaultUniforms mirrors the layout of the embedded particle shaders.
func DefaultUniforms() map[string]int32 {
	return map[string]int32{
		"ModelViewProjection": 0,
		"Color":               1,
		"dt":                  2,
		"ParticleCount":       3,
		"GravMasses":          4,
		"GravMasses[0]":       4,
		"GravMasses[1]":       5,
		"GravPositions":       6,
		"GravPositions[0]":    6,
		"GravPositions[1]":    7,
		"GravCount":           8,
	}
}

func NewRecorder() *Recorder {
	return &Recorder{
		Uniforms:     DefaultUniforms(),
		FailCompile:  map[gpu.Stage]string{},
		LocalSize:    [3]int32{64, 1, 1},
		Buffers:      map[uint32]*Buffer{},
		VertexArrays: map[uint32]uint32{},
		Programs:     map[uint32][]uint32{},
		Shaders:      map[uint32]gpu.Stage{},
	}
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) record(c Command) {
	r.Commands = append(r.Commands, c)
}

// Reset drops recorded commands but keeps live objects.
func (r *Recorder) Reset() {
	r.Commands = nil
	r.lookups = 0
}

// Ops returns the recorded operations in submission order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded operations that appear in keep, in order.
func (r *Recorder) Filter(keep ...Op) []Op {
	var ops []Op
	for _, c := range r.Commands {
		for _, k := range keep {
			if c.Op == k {
				ops = append(ops, c.Op)
				break
			}
		}
	}
	return ops
}

// Find returns every recorded command with the given op.
func (r *Recorder) Find(op Op) []Command {
	var found []Command
	for _, c := range r.Commands {
		if c.Op == op {
			found = append(found, c)
		}
	}
	return found
}

// UniformAt returns the last value uploaded to location.
func (r *Recorder) UniformAt(location int32) (Command, bool) {
	for i := len(r.Commands) - 1; i >= 0; i-- {
		c := r.Commands[i]
		if c.Op == OpUniform && c.Location == location {
			return c, true
		}
	}
	return Command{}, false
}

// Lookups counts UniformLocation calls that reached the driver.
func (r *Recorder) Lookups() int {
	return r.lookups
}

// Live reports how many GPU objects have not been deleted.
func (r *Recorder) Live() int {
	return len(r.Buffers) + len(r.VertexArrays) + len(r.Programs) + len(r.Shaders)
}

func (r *Recorder) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	h := r.handle()
	r.record(Command{Op: OpCompileShader, Handle: h, Stage: stage})
	if msg, ok := r.FailCompile[stage]; ok {
		return 0, fmt.Errorf("%s", msg)
	}
	r.Shaders[h] = stage
	return h, nil
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record(Command{Op: OpDeleteShader, Handle: shader})
	delete(r.Shaders, shader)
}

func (r *Recorder) LinkProgram(shaders ...uint32) (uint32, error) {
	h := r.handle()
	r.record(Command{Op: OpLinkProgram, Handle: h})
	if r.FailLink != "" {
		return 0, fmt.Errorf("%s", r.FailLink)
	}
	r.Programs[h] = append([]uint32(nil), shaders...)
	return h, nil
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record(Command{Op: OpDeleteProgram, Handle: program})
	delete(r.Programs, program)
}

func (r *Recorder) UseProgram(program uint32) {
	r.record(Command{Op: OpUseProgram, Handle: program})
}

func (r *Recorder) ActiveUniforms(program uint32) map[string]int32 {
	table := make(map[string]int32, len(r.Uniforms))
	for name, loc := range r.Uniforms {
		table[name] = loc
	}
	return table
}

func (r *Recorder) ComputeWorkGroupSize(program uint32) [3]int32 {
	return r.LocalSize
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.lookups++
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) uniform(location int32, values []float32, ints []int32) {
	if location < 0 {
		return
	}
	r.record(Command{Op: OpUniform, Location: location, Values: values, Ints: ints})
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.uniform(location, nil, []int32{v})
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.uniform(location, []float32{v}, nil)
}

func (r *Recorder) Uniform1fv(location int32, v []float32) {
	r.uniform(location, append([]float32(nil), v...), nil)
}

func (r *Recorder) Uniform3f(location int32, v mgl32.Vec3) {
	r.uniform(location, v[:], nil)
}

func (r *Recorder) Uniform4f(location int32, v mgl32.Vec4) {
	r.uniform(location, v[:], nil)
}

func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) {
	r.uniform(location, m[:], nil)
}

func (r *Recorder) CreateStorageBuffer(binding uint32, data []mgl32.Vec4, usage gpu.Usage) uint32 {
	h := r.handle()
	r.Buffers[h] = &Buffer{
		Binding: binding,
		Usage:   usage,
		Data:    append([]mgl32.Vec4(nil), data...),
	}
	r.record(Command{Op: OpCreateBuffer, Handle: h, Count: int32(len(data)), Ints: []int32{int32(binding)}})
	return h
}

func (r *Recorder) BindStorageBuffer(binding uint32, buffer uint32) {
	if b, ok := r.Buffers[buffer]; ok {
		b.Binding = binding
	}
	r.record(Command{Op: OpBindBuffer, Handle: buffer, Ints: []int32{int32(binding)}})
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record(Command{Op: OpDeleteBuffer, Handle: buffer})
	delete(r.Buffers, buffer)
}

func (r *Recorder) CreatePointArray(buffer uint32, components int32) uint32 {
	h := r.handle()
	r.VertexArrays[h] = buffer
	r.record(Command{Op: OpCreateVAO, Handle: h, Count: components})
	return h
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record(Command{Op: OpDeleteVAO, Handle: vao})
	delete(r.VertexArrays, vao)
}

func (r *Recorder) DispatchCompute(x, y, z uint32) {
	r.record(Command{Op: OpDispatch, Groups: [3]uint32{x, y, z}})
}

func (r *Recorder) MemoryBarrier(bits gpu.Barrier) {
	r.record(Command{Op: OpBarrier, Barrier: bits})
}

func (r *Recorder) DrawPoints(vao uint32, count int32) {
	r.record(Command{Op: OpDraw, Handle: vao, Count: count})
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record(Command{Op: OpViewport, Ints: []int32{x, y, width, height}})
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.record(Command{Op: OpClear, Values: color[:]})
}

var _ gpu.Device = (*Recorder)(nil)
