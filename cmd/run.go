package cmd

import (
	"log"
	"runtime"
	"time"

	"github.com/ThatOtherAndrew/particlegl/internal/draw"
	"github.com/ThatOtherAndrew/particlegl/internal/models"
	"github.com/ThatOtherAndrew/particlegl/internal/opengl"
	"github.com/ThatOtherAndrew/particlegl/internal/particles"
	"github.com/ThatOtherAndrew/particlegl/internal/scenario"
	"github.com/ThatOtherAndrew/particlegl/internal/update"
	"github.com/ThatOtherAndrew/particlegl/internal/watch"
	"github.com/ThatOtherAndrew/particlegl/internal/window"
	"github.com/spf13/cobra"
)

var (
	scenarioName string
	gridSize     int
	watchShaders bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and run the simulation",
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVarP(&scenarioName, "scenario", "s", "", "scenario to run (see 'particlegl list')")
		c.Flags().IntVarP(&gridSize, "grid", "n", 0, "override the particle grid with an n*n*n cube")
		c.Flags().BoolVarP(&watchShaders, "watch", "w", false, "reload shader files when they change")
		_ = c.RegisterFlagCompletionFunc("scenario", completeScenarios)
	}
}

// completeScenarios offers scenario names with their descriptions for --scenario.
func completeScenarios(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, s := range scenario.All() {
		names = append(names, s.Name+"\t"+s.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func Run(cmd *cobra.Command, args []string) {
	settings, err := loadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	if scenarioName != "" {
		if _, err := scenario.Lookup(scenarioName); err != nil {
			log.Fatal(err)
		}
		settings.Scenario = scenarioName
	}
	if gridSize > 0 {
		grid := particles.Cube(gridSize)
		if err := grid.Validate(); err != nil {
			log.Fatal(err)
		}
		settings.Grid = &grid
	}
	if cmd.Flags().Changed("watch") {
		settings.WatchShaders = watchShaders
	}

	win, err := window.New(settings.Window)
	if err != nil {
		log.Fatal("Failed to create window:", err)
	}
	defer win.Destroy()

	dev, err := opengl.Init()
	if err != nil {
		log.Fatal("Failed to initialize OpenGL:", err)
	}

	cfg, err := settings.ParticleConfig()
	if err != nil {
		log.Fatal("Failed to configure particles:", err)
	}

	system, err := particles.New(dev, cfg)
	if err != nil {
		log.Fatal("Failed to create particle system:", err)
	}
	defer system.Close()
	log.Printf("Simulating %d particles (%s, %d attractor(s))", system.Count(), settings.Scenario, len(cfg.Attractors))

	app := &models.App{
		Settings:  settings,
		Camera:    settings.Camera.NewCamera(),
		Particles: system,
		StartTime: time.Now(),
	}

	drawer := draw.New(app, dev)
	win.OnResize(drawer.Resize)
	drawer.Resize(win.FramebufferSize())

	var watcher *watch.Watcher
	if settings.WatchShaders {
		if paths := settings.Shaders.Paths(); len(paths) == 0 {
			log.Printf("No shader files configured, nothing to watch")
		} else if watcher, err = watch.New(paths...); err != nil {
			log.Printf("Failed to watch shaders: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
			log.Printf("Watching %d shader file(s)", len(paths))
		}
	}

	// The first cursor sample only seeds the camera's pointer tracking.
	input := update.New(app)
	input.UpdateCursor(win)

	lastTime := time.Now()
	for !win.ShouldClose() && !app.IsExiting {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		win.PollEvents()
		input.ProcessInput(win, dt)

		if watcher != nil {
			if name, ok := watcher.Pending(); ok {
				reloadShaders(app, name)
			}
		}

		drawer.Draw(dt)
		win.SwapBuffers()
	}

	elapsed := time.Since(app.StartTime).Seconds()
	log.Printf("Rendered %d frames in %.1fs (%.0f fps)", app.Frames, elapsed, float64(app.Frames)/elapsed)
}

func reloadShaders(app *models.App, changed string) {
	sources, err := app.Settings.Sources()
	if err != nil {
		log.Printf("Failed to read shaders after %s changed: %v", changed, err)
		return
	}
	if err := app.Particles.Reload(sources); err != nil {
		log.Printf("Shader reload failed, keeping previous programs: %v", err)
		return
	}
	log.Printf("Reloaded shaders after %s changed", changed)
}
