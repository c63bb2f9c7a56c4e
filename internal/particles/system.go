package particles

import (
	"fmt"

	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/ThatOtherAndrew/particlegl/internal/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

type State int

const (
	Idle State = iota
	Stepping
)

func (s State) String() string {
	if s == Stepping {
		return "stepping"
	}
	return "idle"
}

// Sources are the three stages of the particle pipeline.
type Sources struct {
	Vertex   shaders.Source
	Fragment shaders.Source
	Compute  shaders.Source
}

func DefaultSources() Sources {
	return Sources{
		Vertex:   shaders.Embedded(gpu.Vertex),
		Fragment: shaders.Embedded(gpu.Fragment),
		Compute:  shaders.Embedded(gpu.Compute),
	}
}

type Config struct {
	Grid       Grid
	Center     mgl32.Vec3
	CubeSize   float32
	Color      mgl32.Vec4
	Attractors []Attractor
	Sources    Sources
}

func DefaultConfig() Config {
	return Config{
		Grid:       Cube(50),
		Center:     mgl32.Vec3{0, 0, -15},
		CubeSize:   DefaultCubeSize,
		Color:      mgl32.Vec4{0.15, 0.15, 0.15, 0.7},
		Attractors: DefaultAttractors(),
		Sources:    DefaultSources(),
	}
}

// System advances the particles with a compute program and draws them as
// points with a render program. All calls must come from the thread that
// owns the device.
type System struct {
	dev   gpu.Device
	store *Store

	render *shaders.Program
	sim    *shaders.Program

	mvpLoc   int32
	colorLoc int32

	color         mgl32.Vec4
	workGroupSize int
	attractors    []Attractor
	masses        []float32
	positionNames []string

	state State
}

func New(dev gpu.Device, cfg Config) (*System, error) {
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	if cfg.CubeSize <= 0 {
		return nil, fmt.Errorf("cube size must be positive, got %g", cfg.CubeSize)
	}
	if err := validateAttractors(cfg.Attractors); err != nil {
		return nil, err
	}

	render, sim, err := buildPrograms(dev, cfg.Sources, cfg.Grid.Total())
	if err != nil {
		return nil, err
	}

	store, err := NewStore(dev, cfg.Grid, cfg.Center, cfg.CubeSize)
	if err != nil {
		render.Delete()
		sim.Delete()
		return nil, err
	}

	s := &System{
		dev:   dev,
		store: store,
		color: cfg.Color,
	}
	s.setPrograms(render, sim)
	if err := s.SetAttractors(cfg.Attractors); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// MaxWorkGroups is the dispatch width every GL 4.3 implementation accepts.
const MaxWorkGroups = 65535

func buildPrograms(dev gpu.Device, src Sources, count int) (render, sim *shaders.Program, err error) {
	render, err = shaders.New(dev, src.Vertex, src.Fragment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build render program: %w", err)
	}

	sim, err = shaders.New(dev, src.Compute)
	if err != nil {
		render.Delete()
		return nil, nil, fmt.Errorf("failed to build simulation program: %w", err)
	}

	if err := checkDispatch(sim.WorkGroupSize(), count); err != nil {
		render.Delete()
		sim.Delete()
		return nil, nil, err
	}

	return render, sim, nil
}

// checkDispatch rejects compute programs the one-dimensional dispatch of
// count particles cannot cover.
func checkDispatch(local [3]int32, count int) error {
	if local[0] < 1 || local[1] != 1 || local[2] != 1 {
		return fmt.Errorf("simulation program must use a work group of Nx1x1, got %dx%dx%d", local[0], local[1], local[2])
	}
	if groups := dispatchGroups(count, int(local[0])); groups > MaxWorkGroups {
		return fmt.Errorf("%d particles need %d work groups of %d, limit is %d", count, groups, local[0], MaxWorkGroups)
	}
	return nil
}

func dispatchGroups(count, size int) int {
	return (count + size - 1) / size
}

func (s *System) setPrograms(render, sim *shaders.Program) {
	s.render = render
	s.sim = sim
	s.workGroupSize = int(sim.WorkGroupSize()[0])
	s.mvpLoc = render.Location("ModelViewProjection")
	s.colorLoc = render.Location("Color")
}

// Reload rebuilds both programs from src. If either fails the running
// programs are kept and the error is returned.
func (s *System) Reload(src Sources) error {
	render, sim, err := buildPrograms(s.dev, src, s.store.Count())
	if err != nil {
		return err
	}

	s.render.Delete()
	s.sim.Delete()
	s.setPrograms(render, sim)
	return nil
}

func (s *System) SetAttractors(attractors []Attractor) error {
	if err := validateAttractors(attractors); err != nil {
		return err
	}

	s.attractors = append([]Attractor(nil), attractors...)
	s.masses = make([]float32, len(attractors))
	s.positionNames = make([]string, len(attractors))
	for i, a := range attractors {
		s.masses[i] = a.Mass
		s.positionNames[i] = fmt.Sprintf("GravPositions[%d]", i)
	}
	return nil
}

func (s *System) Attractors() []Attractor {
	return append([]Attractor(nil), s.attractors...)
}

func (s *System) Count() int {
	return s.store.Count()
}

func (s *System) State() State {
	return s.state
}

// RenderFrame advances the simulation by dt and draws the particles. The
// draw is ordered after the dispatch by a memory barrier so it never reads
// positions the same frame is still writing.
func (s *System) RenderFrame(dt float32, viewProjection mgl32.Mat4) {
	s.state = Stepping
	defer func() { s.state = Idle }()

	s.step(dt)
	s.dev.MemoryBarrier(gpu.BarrierAll)
	s.draw(viewProjection)
}

func (s *System) step(dt float32) {
	s.store.Bind()
	s.sim.Use()
	s.sim.SetFloat("dt", dt)
	s.sim.SetInt("ParticleCount", int32(s.store.Count()))
	s.sim.SetInt("GravCount", int32(len(s.attractors)))
	if len(s.attractors) > 0 {
		s.sim.SetFloats("GravMasses", s.masses)
		for i, a := range s.attractors {
			s.sim.SetVec3(s.positionNames[i], a.Position)
		}
	}

	s.dev.DispatchCompute(s.groups(), 1, 1)
}

func (s *System) groups() uint32 {
	return uint32(dispatchGroups(s.store.Count(), s.workGroupSize))
}

func (s *System) draw(viewProjection mgl32.Mat4) {
	s.render.Use()
	s.render.SetMat4At(s.mvpLoc, viewProjection)
	s.render.SetVec4At(s.colorLoc, s.color)

	s.dev.DrawPoints(s.store.VertexArray(), int32(s.store.Count()))
}

// Close releases every GPU object the system owns.
func (s *System) Close() {
	s.store.Release()
	s.render.Delete()
	s.sim.Delete()
}
