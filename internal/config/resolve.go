package config

import (
	"github.com/ThatOtherAndrew/particlegl/internal/camera"
	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/ThatOtherAndrew/particlegl/internal/particles"
	"github.com/ThatOtherAndrew/particlegl/internal/scenario"
	"github.com/ThatOtherAndrew/particlegl/internal/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// Sources reads the configured shader files, falling back to the embedded
// shaders for unset paths.
func (s *Settings) Sources() (particles.Sources, error) {
	var src particles.Sources
	var err error

	if src.Vertex, err = shaders.ReadSource(gpu.Vertex, s.Shaders.Vertex); err != nil {
		return src, err
	}
	if src.Fragment, err = shaders.ReadSource(gpu.Fragment, s.Shaders.Fragment); err != nil {
		return src, err
	}
	if src.Compute, err = shaders.ReadSource(gpu.Compute, s.Shaders.Compute); err != nil {
		return src, err
	}
	return src, nil
}

// ParticleConfig combines the selected scenario with the settings overrides.
func (s *Settings) ParticleConfig() (particles.Config, error) {
	sc, err := scenario.Lookup(s.Scenario)
	if err != nil {
		return particles.Config{}, err
	}

	sources, err := s.Sources()
	if err != nil {
		return particles.Config{}, err
	}

	grid := sc.Grid
	if s.Grid != nil {
		grid = *s.Grid
	}

	return particles.Config{
		Grid:       grid,
		Center:     s.Center,
		CubeSize:   s.CubeSize,
		Color:      s.Color,
		Attractors: sc.Attractors(s.Center),
		Sources:    sources,
	}, nil
}

// NewCamera builds a camera at the configured position using the configured
// speed, sensitivity and field of view.
func (c CameraSettings) NewCamera() *camera.Camera {
	cam := camera.New(c.Position, mgl32.Vec3{0, 1, 0}, camera.DefaultYaw, camera.DefaultPitch)
	cam.Speed = c.Speed
	cam.Sensitivity = c.Sensitivity
	cam.Fov = c.Fov
	return cam
}
