package opengl

import (
	"fmt"
	"log"
	"strings"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device submits gpu commands to the OpenGL context current on the calling thread.
type Device struct{}

// Init loads the GL function pointers and sets the blend state the
// particle renderer expects. A context must already be current.
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}

	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return &Device{}, nil
}

func shaderType(stage gpu.Stage) (uint32, error) {
	switch stage {
	case gpu.Vertex:
		return gl.VERTEX_SHADER, nil
	case gpu.Fragment:
		return gl.FRAGMENT_SHADER, nil
	case gpu.Compute:
		return gl.COMPUTE_SHADER, nil
	}
	return 0, fmt.Errorf("unsupported shader stage %v", stage)
}

func usage(u gpu.Usage) uint32 {
	switch u {
	case gpu.DynamicCopy:
		return gl.DYNAMIC_COPY
	default:
		return gl.DYNAMIC_DRAW
	}
}

func barrierBits(b gpu.Barrier) uint32 {
	if b == gpu.BarrierAll {
		return gl.ALL_BARRIER_BITS
	}
	var bits uint32
	if b&gpu.BarrierStorage != 0 {
		bits |= gl.SHADER_STORAGE_BARRIER_BIT
	}
	if b&gpu.BarrierVertexAttrib != 0 {
		bits |= gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT
	}
	return bits
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, error) {
	kind, err := shaderType(stage)
	if err != nil {
		return 0, err
	}

	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(logMsg, "\x00\n "))
	}

	return shader, nil
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))

		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s", strings.TrimRight(logMsg, "\x00\n "))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	return program, nil
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// ActiveUniforms lists every active uniform of a linked program. Array
// uniforms are reported per element as name[i] and under the bare name.
func (d *Device) ActiveUniforms(program uint32) map[string]int32 {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)

	uniforms := make(map[string]int32, count)
	if maxLength == 0 {
		return uniforms
	}

	buf := make([]uint8, maxLength)
	for i := range uint32(count) {
		var length, size int32
		var kind uint32
		gl.GetActiveUniform(program, i, maxLength, &length, &size, &kind, &buf[0])
		name := string(buf[:length])

		loc := d.UniformLocation(program, name)
		if loc < 0 {
			// Block members have no location of their own.
			continue
		}
		uniforms[name] = loc

		if base, ok := strings.CutSuffix(name, "[0]"); ok {
			uniforms[base] = loc
			for j := int32(1); j < size; j++ {
				element := fmt.Sprintf("%s[%d]", base, j)
				uniforms[element] = d.UniformLocation(program, element)
			}
		}
	}
	return uniforms
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) ComputeWorkGroupSize(program uint32) [3]int32 {
	var size [3]int32
	gl.GetProgramiv(program, gl.COMPUTE_WORK_GROUP_SIZE, &size[0])
	return size
}

func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform1fv(location int32, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(location, int32(len(v)), &v[0])
}

func (d *Device) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (d *Device) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) CreateStorageBuffer(binding uint32, data []mgl32.Vec4, u gpu.Usage) uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, buffer)

	size := len(data) * 4 * 4
	if size == 0 {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, 0, nil, usage(u))
	} else {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, gl.Ptr(&data[0][0]), usage(u))
	}
	return buffer
}

func (d *Device) BindStorageBuffer(binding uint32, buffer uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, buffer)
}

func (d *Device) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Device) CreatePointArray(buffer uint32, components int32) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointer(0, components, gl.FLOAT, false, components*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) DispatchCompute(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
}

func (d *Device) MemoryBarrier(bits gpu.Barrier) {
	gl.MemoryBarrier(barrierBits(bits))
}

func (d *Device) DrawPoints(vao uint32, count int32) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.POINTS, 0, count)
	gl.BindVertexArray(0)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

var _ gpu.Device = (*Device)(nil)
