package update

import (
	"github.com/ThatOtherAndrew/particlegl/internal/camera"
	"github.com/ThatOtherAndrew/particlegl/internal/models"
)

type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	Pause
	Quit
)

// Input is the window state the frame loop reads each frame.
type Input interface {
	Pressed(action Action) bool
	CursorPos() (x, y float64)
	// TakeScroll returns the vertical scroll accumulated since the last call.
	TakeScroll() float64
}

var movement = map[Action]camera.Direction{
	MoveForward:  camera.Forward,
	MoveBackward: camera.Backward,
	MoveLeft:     camera.Left,
	MoveRight:    camera.Right,
	MoveUp:       camera.Up,
	MoveDown:     camera.Down,
}

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

func (a *App) ProcessInput(in Input, dt float32) {
	if in.Pressed(Quit) {
		a.app.IsExiting = true
		return
	}

	pause := in.Pressed(Pause)
	if pause && !a.app.PauseHeld {
		a.app.Paused = !a.app.Paused
	}
	a.app.PauseHeld = pause

	for action, direction := range movement {
		if in.Pressed(action) {
			a.app.Camera.Move(direction, dt)
		}
	}

	a.UpdateCursor(in)

	if scroll := in.TakeScroll(); scroll != 0 {
		a.app.Camera.Scroll(float32(scroll))
	}
}

func (a *App) UpdateCursor(in Input) {
	x, y := in.CursorPos()
	a.app.Camera.Pointer(float32(x), float32(y), true)
}
