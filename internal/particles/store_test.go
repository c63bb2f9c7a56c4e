package particles

import (
	"testing"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/ThatOtherAndrew/particlegl/internal/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreUploadsInitialState(t *testing.T) {
	dev := gputest.NewRecorder()
	grid := Grid{X: 3, Y: 4, Z: 5}
	center := mgl32.Vec3{0, 0, -15}

	s, err := NewStore(dev, grid, center, DefaultCubeSize)
	require.NoError(t, err)
	assert.Equal(t, 60, s.Count())
	assert.Equal(t, grid, s.Grid())

	posID, velID := s.Buffers()
	pos := dev.Buffers[posID]
	vel := dev.Buffers[velID]
	require.NotNil(t, pos)
	require.NotNil(t, vel)

	assert.Equal(t, uint32(PositionBinding), pos.Binding)
	assert.Equal(t, uint32(VelocityBinding), vel.Binding)
	assert.Equal(t, gpu.DynamicDraw, pos.Usage)
	assert.Equal(t, gpu.DynamicCopy, vel.Usage)

	assert.Equal(t, GridPositions(grid, center, DefaultCubeSize), pos.Data)
	require.Len(t, vel.Data, grid.Total())
	for _, v := range vel.Data {
		assert.Equal(t, mgl32.Vec4{}, v)
	}

	// The draw reads straight from the position buffer.
	assert.Equal(t, posID, dev.VertexArrays[s.VertexArray()])
	vao := dev.Find(gputest.OpCreateVAO)
	require.Len(t, vao, 1)
	assert.Equal(t, int32(4), vao[0].Count)
}

func TestNewStoreRejectsEmptyGrid(t *testing.T) {
	dev := gputest.NewRecorder()

	_, err := NewStore(dev, Grid{X: 2, Y: 0, Z: 2}, mgl32.Vec3{}, DefaultCubeSize)
	assert.Error(t, err)
	assert.Empty(t, dev.Commands)
}

func TestStoreBindAndRelease(t *testing.T) {
	dev := gputest.NewRecorder()
	s, err := NewStore(dev, Cube(2), mgl32.Vec3{}, DefaultCubeSize)
	require.NoError(t, err)
	dev.Reset()

	s.Bind()
	binds := dev.Find(gputest.OpBindBuffer)
	require.Len(t, binds, 2)
	posID, velID := s.Buffers()
	assert.Equal(t, posID, binds[0].Handle)
	assert.Equal(t, []int32{PositionBinding}, binds[0].Ints)
	assert.Equal(t, velID, binds[1].Handle)
	assert.Equal(t, []int32{VelocityBinding}, binds[1].Ints)

	s.Release()
	assert.Zero(t, dev.Live())

	// A second release must not delete anything again.
	dev.Reset()
	s.Release()
	assert.Empty(t, dev.Commands)
}
