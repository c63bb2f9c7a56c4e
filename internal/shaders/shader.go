package shaders

import (
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Source is the text of one shader stage. Name is only used in diagnostics.
type Source struct {
	Stage gpu.Stage
	Name  string
	Text  string
}

// ReadSource loads a stage from disk. An empty path selects the embedded shader.
func ReadSource(stage gpu.Stage, path string) (Source, error) {
	if path == "" {
		return Embedded(stage), nil
	}

	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read shader file %q: %w", path, err)
	}

	return Source{Stage: stage, Name: path, Text: string(sourceBytes)}, nil
}

type CompileError struct {
	Stage gpu.Stage
	Name  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %s: %s", e.Stage, e.Name, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Program is a linked GPU program with its uniform locations resolved once
// at link time.
type Program struct {
	dev      gpu.Device
	id       uint32
	uniforms map[string]int32
}

// New compiles every source and links them into one program. On failure
// all intermediate objects are released and a *CompileError or *LinkError
// is returned.
func New(dev gpu.Device, sources ...Source) (*Program, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no shader sources given")
	}

	compiled := make([]uint32, 0, len(sources))
	release := func() {
		for _, s := range compiled {
			dev.DeleteShader(s)
		}
	}

	for _, src := range sources {
		shader, err := dev.CompileShader(src.Stage, src.Text)
		if err != nil {
			release()
			return nil, &CompileError{Stage: src.Stage, Name: src.Name, Log: err.Error()}
		}
		compiled = append(compiled, shader)
	}

	id, err := dev.LinkProgram(compiled...)
	release()
	if err != nil {
		return nil, &LinkError{Log: err.Error()}
	}

	return &Program{
		dev:      dev,
		id:       id,
		uniforms: dev.ActiveUniforms(id),
	}, nil
}

// Load reads one file per stage and builds a program from them, in vertex,
// fragment, compute order.
func Load(dev gpu.Device, paths map[gpu.Stage]string) (*Program, error) {
	var sources []Source
	for _, stage := range []gpu.Stage{gpu.Vertex, gpu.Fragment, gpu.Compute} {
		path, ok := paths[stage]
		if !ok {
			continue
		}
		src, err := ReadSource(stage, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return New(dev, sources...)
}

func (p *Program) ID() uint32 {
	return p.id
}

// WorkGroupSize is the local size of a compute program.
func (p *Program) WorkGroupSize() [3]int32 {
	return p.dev.ComputeWorkGroupSize(p.id)
}

func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Delete releases the program object. p must not be used afterwards.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}

// Location returns the cached location of name, asking the driver when the
// name was not reported as active. -1 means the uniform does not exist.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return p.dev.UniformLocation(p.id, name)
}

func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	p.dev.Uniform1i(p.Location(name), v)
}

func (p *Program) SetInt(name string, value int32) {
	p.dev.Uniform1i(p.Location(name), value)
}

func (p *Program) SetFloat(name string, value float32) {
	p.SetFloatAt(p.Location(name), value)
}

func (p *Program) SetFloats(name string, values []float32) {
	p.dev.Uniform1fv(p.Location(name), values)
}

func (p *Program) SetVec3(name string, value mgl32.Vec3) {
	p.dev.Uniform3f(p.Location(name), value)
}

func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	p.SetMat4At(p.Location(name), value)
}

func (p *Program) SetFloatAt(location int32, value float32) {
	p.dev.Uniform1f(location, value)
}

func (p *Program) SetVec4At(location int32, value mgl32.Vec4) {
	p.dev.Uniform4f(location, value)
}

func (p *Program) SetMat4At(location int32, value mgl32.Mat4) {
	p.dev.UniformMatrix4(location, value)
}
