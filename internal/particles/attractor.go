package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxAttractors matches the uniform array size of the compute shader.
const MaxAttractors = 8

// Attractor is a point mass pulling every particle towards it.
type Attractor struct {
	Mass     float32    `json:"mass"`
	Position mgl32.Vec3 `json:"position"`
}

func DefaultAttractors() []Attractor {
	attractors := make([]Attractor, 2)
	for i := range attractors {
		attractors[i] = Attractor{
			Mass:     5,
			Position: mgl32.Vec3{float32(i) * 3, 0, -5},
		}
	}
	return attractors
}

func validateAttractors(attractors []Attractor) error {
	if len(attractors) > MaxAttractors {
		return fmt.Errorf("%d attractors given, at most %d supported", len(attractors), MaxAttractors)
	}
	return nil
}
