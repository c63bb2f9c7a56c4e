package draw

import (
	"github.com/ThatOtherAndrew/particlegl/internal/gpu"
	"github.com/ThatOtherAndrew/particlegl/internal/models"
)

type App struct {
	app *models.App
	dev gpu.Device
}

func New(app *models.App, dev gpu.Device) *App {
	return &App{app: app, dev: dev}
}

// Draw clears the frame and advances and renders the particle system.
// A paused app still renders, with a zero time step.
func (a *App) Draw(dt float32) {
	a.dev.Clear(a.app.Settings.Background)

	// Minimised windows report a zero-sized framebuffer.
	if a.app.Width <= 0 || a.app.Height <= 0 {
		return
	}

	if a.app.Paused {
		dt = 0
	}

	aspect := float32(a.app.Width) / float32(a.app.Height)
	cam := a.app.Settings.Camera
	vp := a.app.Camera.ViewProjection(aspect, cam.Near, cam.Far)

	a.app.Particles.RenderFrame(dt, vp)
	a.app.Frames++
}

// Resize records the new framebuffer size and matches the viewport to it.
func (a *App) Resize(width, height int) {
	a.app.Width, a.app.Height = width, height
	a.dev.Viewport(0, 0, int32(width), int32(height))
}
