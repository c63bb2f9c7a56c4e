package particles

import (
	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Storage buffer binding points shared with the compute shader.
const (
	PositionBinding = 0
	VelocityBinding = 1
)

// Store owns the particle position and velocity buffers. The position
// buffer doubles as the vertex source of the point draw; no CPU copy is
// kept after upload.
type Store struct {
	dev  gpu.Device
	grid Grid

	positions  uint32
	velocities uint32
	vao        uint32
}

func NewStore(dev gpu.Device, grid Grid, center mgl32.Vec3, extent float32) (*Store, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	positions := GridPositions(grid, center, extent)
	velocities := make([]mgl32.Vec4, grid.Total())

	s := &Store{dev: dev, grid: grid}
	s.positions = dev.CreateStorageBuffer(PositionBinding, positions, gpu.DynamicDraw)
	s.velocities = dev.CreateStorageBuffer(VelocityBinding, velocities, gpu.DynamicCopy)
	s.vao = dev.CreatePointArray(s.positions, 4)

	return s, nil
}

// Bind restores the storage bindings the compute shader addresses by convention.
func (s *Store) Bind() {
	s.dev.BindStorageBuffer(PositionBinding, s.positions)
	s.dev.BindStorageBuffer(VelocityBinding, s.velocities)
}

func (s *Store) Grid() Grid {
	return s.grid
}

func (s *Store) Count() int {
	return s.grid.Total()
}

func (s *Store) VertexArray() uint32 {
	return s.vao
}

func (s *Store) Buffers() (positions, velocities uint32) {
	return s.positions, s.velocities
}

func (s *Store) Release() {
	if s.vao != 0 {
		s.dev.DeleteVertexArray(s.vao)
		s.vao = 0
	}
	if s.positions != 0 {
		s.dev.DeleteBuffer(s.positions)
		s.positions = 0
	}
	if s.velocities != 0 {
		s.dev.DeleteBuffer(s.velocities)
		s.velocities = 0
	}
}
