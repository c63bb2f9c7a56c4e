package shaders

import (
	_ "embed"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
)

const ParticleVertexPath = "internal/shaders/glsl/particle.vert.glsl"
const ParticleFragmentPath = "internal/shaders/glsl/particle.frag.glsl"
const ParticleComputePath = "internal/shaders/glsl/particle.comp.glsl"

//go:embed glsl/particle.vert.glsl
var ParticleVertex string

//go:embed glsl/particle.frag.glsl
var ParticleFragment string

//go:embed glsl/particle.comp.glsl
var ParticleCompute string

// Embedded returns the built-in particle shader for stage.
func Embedded(stage gpu.Stage) Source {
	switch stage {
	case gpu.Vertex:
		return Source{Stage: stage, Name: ParticleVertexPath, Text: ParticleVertex}
	case gpu.Fragment:
		return Source{Stage: stage, Name: ParticleFragmentPath, Text: ParticleFragment}
	default:
		return Source{Stage: gpu.Compute, Name: ParticleComputePath, Text: ParticleCompute}
	}
}
