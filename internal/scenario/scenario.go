// Package scenario holds the named particle setups the harness can run.
package scenario

import (
	"fmt"
	"sort"

	"github.com/ThatOtherAndrew/particlegl/internal/particles"
	"github.com/go-gl/mathgl/mgl32"
)

const Default = "gravity"

type Scenario struct {
	Name        string
	Description string
	Grid        particles.Grid
	// Attractors returns the point masses for a cloud centred at center.
	Attractors func(center mgl32.Vec3) []particles.Attractor
}

var registry = map[string]Scenario{
	"gravity": {
		Name:        "gravity",
		Description: "50x50x50 cloud pulled by two attractors",
		Grid:        particles.Cube(50),
		Attractors: func(mgl32.Vec3) []particles.Attractor {
			return particles.DefaultAttractors()
		},
	},
	"single": {
		Name:        "single",
		Description: "40x40x40 cloud collapsing onto one heavy attractor at its centre",
		Grid:        particles.Cube(40),
		Attractors: func(center mgl32.Vec3) []particles.Attractor {
			return []particles.Attractor{{Mass: 20, Position: center}}
		},
	},
	"still": {
		Name:        "still",
		Description: "30x30x30 cloud with no forces, useful for camera checks",
		Grid:        particles.Cube(30),
		Attractors: func(mgl32.Vec3) []particles.Attractor {
			return nil
		},
	},
}

func Lookup(name string) (Scenario, error) {
	s, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return s, nil
}

// All returns every scenario sorted by name.
func All() []Scenario {
	all := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}
