package shaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/ThatOtherAndrew/particlegl/internal/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSources() []Source {
	return []Source{Embedded(gpu.Vertex), Embedded(gpu.Fragment)}
}

func TestNewLinksAndReleasesStages(t *testing.T) {
	dev := gputest.NewRecorder()

	p, err := New(dev, renderSources()...)
	require.NoError(t, err)
	assert.NotZero(t, p.ID())

	assert.Equal(t, []gputest.Op{
		gputest.OpCompileShader,
		gputest.OpCompileShader,
		gputest.OpLinkProgram,
		gputest.OpDeleteShader,
		gputest.OpDeleteShader,
	}, dev.Ops())
	assert.Empty(t, dev.Shaders)
	assert.Len(t, dev.Programs, 1)

	p.Delete()
	assert.Empty(t, dev.Programs)
	assert.Zero(t, p.ID())
}

func TestNewCompileFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailCompile[gpu.Fragment] = "0:3: syntax error"

	p, err := New(dev, renderSources()...)
	require.Error(t, err)
	assert.Nil(t, p)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.Fragment, compileErr.Stage)
	assert.Equal(t, ParticleFragmentPath, compileErr.Name)
	assert.Contains(t, compileErr.Log, "syntax error")
	assert.Contains(t, err.Error(), "FRAGMENT")

	assert.Zero(t, dev.Live(), "vertex stage should be released")
	assert.Empty(t, dev.Find(gputest.OpLinkProgram))
}

func TestNewLinkFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailLink = "error: undefined output"

	_, err := New(dev, Embedded(gpu.Compute))
	require.Error(t, err)

	var linkErr *LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "error: undefined output", linkErr.Log)
	assert.Zero(t, dev.Live())
}

func TestNewWithoutSources(t *testing.T) {
	_, err := New(gputest.NewRecorder())
	assert.Error(t, err)
}

func TestSetUniformUsesCachedLocations(t *testing.T) {
	dev := gputest.NewRecorder()
	p, err := New(dev, Embedded(gpu.Compute))
	require.NoError(t, err)
	dev.Reset()

	p.SetFloat("dt", 0.016)
	p.SetInt("ParticleCount", 8)
	p.SetBool("GravCount", true)
	p.SetFloats("GravMasses", []float32{5, 5})
	p.SetVec3("GravPositions[1]", mgl32.Vec3{3, 0, -5})

	assert.Zero(t, dev.Lookups(), "active uniforms must not be looked up per call")

	c, ok := dev.UniformAt(2)
	require.True(t, ok)
	assert.Equal(t, []float32{0.016}, c.Values)

	c, ok = dev.UniformAt(3)
	require.True(t, ok)
	assert.Equal(t, []int32{8}, c.Ints)

	c, ok = dev.UniformAt(8)
	require.True(t, ok)
	assert.Equal(t, []int32{1}, c.Ints)

	c, ok = dev.UniformAt(4)
	require.True(t, ok)
	assert.Equal(t, []float32{5, 5}, c.Values)

	c, ok = dev.UniformAt(7)
	require.True(t, ok)
	assert.Equal(t, []float32{3, 0, -5}, c.Values)
}

func TestSetUniformUnknownNameIsNoop(t *testing.T) {
	dev := gputest.NewRecorder()
	p, err := New(dev, renderSources()...)
	require.NoError(t, err)
	dev.Reset()

	p.SetFloat("doesNotExist", 1)
	p.SetMat4("alsoMissing", mgl32.Ident4())

	assert.Equal(t, 2, dev.Lookups())
	assert.Empty(t, dev.Find(gputest.OpUniform))
	assert.Equal(t, int32(-1), p.Location("doesNotExist"))
}

func TestSetByLocation(t *testing.T) {
	dev := gputest.NewRecorder()
	p, err := New(dev, renderSources()...)
	require.NoError(t, err)
	dev.Reset()

	color := mgl32.Vec4{0.15, 0.15, 0.15, 0.7}
	p.SetVec4At(1, color)
	p.SetMat4At(0, mgl32.Ident4())
	p.SetFloatAt(-1, 3)

	assert.Zero(t, dev.Lookups())
	assert.Len(t, dev.Find(gputest.OpUniform), 2)

	c, ok := dev.UniformAt(1)
	require.True(t, ok)
	assert.Equal(t, color[:], c.Values)
}

func TestReadSource(t *testing.T) {
	src, err := ReadSource(gpu.Compute, "")
	require.NoError(t, err)
	assert.Equal(t, ParticleCompute, src.Text)
	assert.Contains(t, src.Text, "local_size_x = 64")

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.vert.glsl")
	require.NoError(t, os.WriteFile(path, []byte("#version 430 core\nvoid main() {}\n"), 0644))

	src, err = ReadSource(gpu.Vertex, path)
	require.NoError(t, err)
	assert.Equal(t, gpu.Vertex, src.Stage)
	assert.Equal(t, path, src.Name)
	assert.Contains(t, src.Text, "void main")

	_, err = ReadSource(gpu.Vertex, filepath.Join(dir, "missing.glsl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "a.vert.glsl")
	frag := filepath.Join(dir, "a.frag.glsl")
	require.NoError(t, os.WriteFile(vert, []byte(ParticleVertex), 0644))
	require.NoError(t, os.WriteFile(frag, []byte(ParticleFragment), 0644))

	dev := gputest.NewRecorder()
	p, err := Load(dev, map[gpu.Stage]string{gpu.Fragment: frag, gpu.Vertex: vert})
	require.NoError(t, err)

	compiles := dev.Find(gputest.OpCompileShader)
	require.Len(t, compiles, 2)
	assert.Equal(t, gpu.Vertex, compiles[0].Stage)
	assert.Equal(t, gpu.Fragment, compiles[1].Stage)

	p.Delete()
	assert.Zero(t, dev.Live())

	_, err = Load(dev, map[gpu.Stage]string{gpu.Compute: filepath.Join(dir, "missing.comp.glsl")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
