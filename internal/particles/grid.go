package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCubeSize is the edge length of the cube the initial grid fills.
const DefaultCubeSize = 5.0

// MaxParticles is the most particles 65535 work groups of 64 can cover.
const MaxParticles = 65535 * 64

// Grid is the number of particles along each axis of the initial cube.
type Grid struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func Cube(n int) Grid {
	return Grid{X: n, Y: n, Z: n}
}

func (g Grid) Total() int {
	return g.X * g.Y * g.Z
}

func (g Grid) Validate() error {
	if g.X < 1 || g.Y < 1 || g.Z < 1 {
		return fmt.Errorf("particle grid %dx%dx%d must have at least one particle per axis", g.X, g.Y, g.Z)
	}
	// Bounded one axis at a time so the product cannot overflow.
	if g.X > MaxParticles || g.Y > MaxParticles/g.X || g.Z > MaxParticles/(g.X*g.Y) {
		return fmt.Errorf("particle grid %dx%dx%d exceeds %d particles", g.X, g.Y, g.Z, MaxParticles)
	}
	return nil
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.X, g.Y, g.Z)
}

// GridPositions lays particles out on a regular grid filling a cube of edge
// extent centred at center. Each particle sits in the middle of its cell,
// so the centroid of the result is exactly center. Order is x outermost,
// z innermost; w is always 1.
func GridPositions(g Grid, center mgl32.Vec3, extent float32) []mgl32.Vec4 {
	if g.Validate() != nil {
		return nil
	}

	step := mgl32.Vec3{
		extent / float32(g.X),
		extent / float32(g.Y),
		extent / float32(g.Z),
	}
	origin := center.Sub(mgl32.Vec3{extent, extent, extent}.Mul(0.5))

	positions := make([]mgl32.Vec4, 0, g.Total())
	for x := 0; x < g.X; x++ {
		for y := 0; y < g.Y; y++ {
			for z := 0; z < g.Z; z++ {
				positions = append(positions, mgl32.Vec4{
					origin[0] + step[0]*(float32(x)+0.5),
					origin[1] + step[1]*(float32(y)+0.5),
					origin[2] + step[2]*(float32(z)+0.5),
					1,
				})
			}
		}
	}
	return positions
}
